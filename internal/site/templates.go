package site

import "html/template"

var templateFuncs = template.FuncMap{
	// indent is the TOC padding for a heading level.
	"indent": func(level int) int { return (level - 2) * 12 },
}

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{if .Static}}{{.BasePath}}style.css{{else}}/static/style.css{{end}}">
</head>
<body data-doc-id="{{.DocID}}" data-base="{{.BasePath}}" data-ext="{{.Ext}}"{{if .Static}} data-static="true"{{end}}
      data-settle-ms="{{.SettleMS}}" data-display-ms="{{.DisplayMS}}" data-fade-ms="{{.FadeMS}}"
      data-min-query="{{.MinQuery}}" data-copy-feedback-ms="{{.CopyFeedback}}">
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <a class="project-title" href="{{.BasePath}}{{if .Static}}index.html{{end}}">{{.SiteTitle}}</a>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.Sidebar}}
    </div>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      <button class="search-trigger" id="search-trigger" aria-label="Search">
        <svg width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="11" cy="11" r="8"/><line x1="21" y1="21" x2="16.65" y2="16.65"/>
        </svg>
        <span>Search docs</span><kbd>Ctrl K</kbd>
      </button>
      <a class="print-link" href="{{.PrintHref}}" aria-label="Printable version">Print</a>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
        <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="4.22" y1="4.22" x2="5.64" y2="5.64"/><line x1="18.36" y1="18.36" x2="19.78" y2="19.78"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/><line x1="4.22" y1="19.78" x2="5.64" y2="18.36"/><line x1="18.36" y1="5.64" x2="19.78" y2="4.22"/>
        </svg>
        <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
        </svg>
      </button>
    </div>
    <div class="page-layout">
      <article class="page-content">
        {{if .Checklist}}
        <section class="checklist-panel" id="checklist-panel">
          <div class="checklist-header">
            <span class="checklist-progress" id="checklist-progress">{{.ItemsDone}} / {{len .Items}}</span>
            <button type="button" id="checklist-select-all">Select all</button>
            <button type="button" id="checklist-deselect-all">Deselect all</button>
          </div>
          <ul class="checklist-items">
            {{range .Items}}
            <li class="checklist-item" style="margin-left: {{.Level}}em">
              <label><input type="checkbox" data-item-id="{{.ID}}"{{if .Checked}} checked{{end}}> {{.Text}}</label>
            </li>
            {{end}}
          </ul>
        </section>
        {{end}}
        <div class="markdown-content">
          {{.Content}}
        </div>
        <nav class="page-nav">
          {{with .Prev}}<a class="page-nav-prev" href="{{.Href}}"><span>Previous</span>{{.Title}}</a>{{end}}
          {{with .Next}}<a class="page-nav-next" href="{{.Href}}"><span>Next</span>{{.Title}}</a>{{end}}
        </nav>
      </article>
      {{if .TOC}}
      <aside class="toc">
        <div class="toc-title">On this page</div>
        <ul>
          {{range .TOC}}<li style="padding-left: {{indent .Level}}px"><a class="anchor-link" data-smooth-scroll="true" href="#{{.ID}}">{{.Text}}</a></li>
          {{end}}
        </ul>
      </aside>
      {{end}}
    </div>
  </main>
  <div class="search-modal" id="search-modal" hidden>
    <div class="search-overlay" id="search-overlay"></div>
    <div class="search-dialog" role="dialog" aria-label="Search documentation">
      <input type="text" id="search-input" placeholder="Search documentation..." autocomplete="off">
      <div class="search-status" id="search-status"></div>
      <ul class="search-results" id="search-results"></ul>
      <div class="search-footer"><kbd>&uarr;</kbd><kbd>&darr;</kbd> navigate <kbd>Enter</kbd> open <kbd>Esc</kbd> close</div>
    </div>
  </div>
  <script src="{{if .Static}}{{.BasePath}}script.js{{else}}/static/script.js{{end}}"></script>
</body>
</html>`

// printTemplate renders a document without navigation for printing.
const printTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} · {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{if eq .BasePath "/"}}/static/style.css{{else}}{{.BasePath}}style.css{{end}}">
</head>
<body class="print-page">
  <div class="print-actions"><a href="{{.BackHref}}">Back</a> <button onclick="window.print()">Print</button></div>
  <article class="page-content markdown-content">
    {{.Content}}
  </article>
</body>
</html>`

const cssContent = `/* ============ Theme ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --code-bg: #f1f3f5;
  --code-border: #e9ecef;
  --mark-bg: #ffe066;
  --sidebar-width: 280px;
  --content-max-width: 860px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 8px 24px rgba(0,0,0,0.15);
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-secondary: #1f2030;
  --bg-sidebar: #16171f;
  --text: #c0caf5;
  --text-secondary: #a9b1d6;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #7aa2f7;
  --accent-light: #1a1b2e;
  --code-bg: #1f2030;
  --code-border: #292e42;
  --mark-bg: #8c6d1f;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
  --shadow-lg: 0 8px 24px rgba(0,0,0,0.5);
}

@media (prefers-color-scheme: dark) {
  [data-theme="system"] {
    --bg: #1a1b26;
    --bg-secondary: #1f2030;
    --bg-sidebar: #16171f;
    --text: #c0caf5;
    --text-secondary: #a9b1d6;
    --text-muted: #565f89;
    --border: #292e42;
    --accent: #7aa2f7;
    --accent-light: #1a1b2e;
    --code-bg: #1f2030;
    --code-border: #292e42;
    --mark-bg: #8c6d1f;
  }
}

*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

html { font-size: 16px; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  display: flex;
  min-height: 100vh;
}

/* ============ Sidebar ============ */
.sidebar {
  width: var(--sidebar-width);
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  position: fixed;
  top: 0;
  left: 0;
  bottom: 0;
  overflow-y: auto;
  z-index: 100;
}

.sidebar-header {
  padding: 20px 16px 12px;
  border-bottom: 1px solid var(--border);
}

.project-title {
  font-size: 1.1rem;
  font-weight: 700;
  color: var(--accent);
  text-decoration: none;
}

.sidebar-tree ul { list-style: none; }
.sidebar-tree { padding: 8px 0; }

.section-toggle {
  display: block;
  padding: 6px 16px;
  font-size: 0.8rem;
  font-weight: 600;
  text-transform: uppercase;
  letter-spacing: 0.04em;
  color: var(--text-muted);
  cursor: pointer;
  user-select: none;
}

.section-toggle::before {
  content: "\25B8";
  display: inline-block;
  margin-right: 6px;
  transition: transform 0.15s;
}

.section.expanded > .section-toggle::before { transform: rotate(90deg); }
.section > ul { display: none; }
.section.expanded > ul { display: block; }

.doc a {
  display: block;
  padding: 4px 16px 4px 32px;
  font-size: 0.9rem;
  color: var(--text-secondary);
  text-decoration: none;
  border-left: 2px solid transparent;
}

.doc a:hover { color: var(--accent); background: var(--accent-light); }
.doc a.active { color: var(--accent); border-left-color: var(--accent); font-weight: 600; }

.sidebar-overlay { display: none; }

/* ============ Content ============ */
.content {
  margin-left: var(--sidebar-width);
  flex: 1;
  min-width: 0;
}

.top-bar {
  display: flex;
  align-items: center;
  gap: 12px;
  padding: 10px 24px;
  border-bottom: 1px solid var(--border);
  position: sticky;
  top: 0;
  background: var(--bg);
  z-index: 50;
}

.menu-toggle { display: none; }

.menu-toggle, .theme-toggle, .search-trigger {
  background: none;
  border: 1px solid var(--border);
  border-radius: 6px;
  color: var(--text-secondary);
  cursor: pointer;
  padding: 6px 10px;
  display: inline-flex;
  align-items: center;
  gap: 8px;
}

.search-trigger { flex: 1; max-width: 360px; font-size: 0.85rem; }
.search-trigger kbd { margin-left: auto; }

.print-link { margin-left: auto; color: var(--text-secondary); font-size: 0.85rem; }

.theme-toggle .moon-icon { display: none; }
[data-theme="dark"] .theme-toggle .sun-icon { display: none; }
[data-theme="dark"] .theme-toggle .moon-icon { display: inline; }

kbd {
  font-family: inherit;
  font-size: 0.75rem;
  padding: 1px 6px;
  border: 1px solid var(--border);
  border-radius: 4px;
  background: var(--bg-secondary);
}

.page-layout {
  display: flex;
  gap: 32px;
  padding: 32px 40px;
}

.page-content { flex: 1; min-width: 0; max-width: var(--content-max-width); }

.markdown-content h1 { font-size: 2rem; margin: 0 0 16px; }
.markdown-content h2 { font-size: 1.5rem; margin: 32px 0 12px; padding-bottom: 6px; border-bottom: 1px solid var(--border); }
.markdown-content h3 { font-size: 1.2rem; margin: 24px 0 8px; }
.markdown-content h4, .markdown-content h5, .markdown-content h6 { margin: 20px 0 8px; }
.markdown-content p, .markdown-content ul, .markdown-content ol, .markdown-content table, .markdown-content blockquote { margin-bottom: 16px; }
.markdown-content ul, .markdown-content ol { padding-left: 24px; }
.markdown-content a { color: var(--accent); }
.markdown-content blockquote { border-left: 4px solid var(--border); padding: 4px 16px; color: var(--text-secondary); }
.markdown-content table { border-collapse: collapse; width: 100%; }
.markdown-content th, .markdown-content td { border: 1px solid var(--border); padding: 6px 12px; text-align: left; }
.markdown-content th { background: var(--bg-secondary); }

.markdown-content :not(pre) > code {
  background: var(--code-bg);
  border: 1px solid var(--code-border);
  border-radius: 4px;
  padding: 1px 5px;
  font-size: 0.875em;
}

.task-item { list-style: none; margin-left: -20px; }
.task-item input[type="checkbox"] { margin-right: 8px; }

/* ============ Code blocks ============ */
.code-block {
  border: 1px solid var(--code-border);
  border-radius: 8px;
  margin-bottom: 16px;
  overflow: hidden;
}

.code-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 6px 12px;
  background: var(--bg-secondary);
  border-bottom: 1px solid var(--code-border);
  font-size: 0.8rem;
  color: var(--text-muted);
}

.code-language { text-transform: uppercase; font-weight: 600; margin-left: 8px; }

.copy-button {
  background: none;
  border: 1px solid var(--border);
  border-radius: 4px;
  padding: 2px 8px;
  font-size: 0.75rem;
  color: var(--text-secondary);
  cursor: pointer;
}

.copy-button.copied { color: var(--accent); border-color: var(--accent); }

.code-block pre, .markdown-content pre {
  margin: 0;
  padding: 12px 16px;
  overflow-x: auto;
  background: var(--code-bg);
  font-size: 0.85rem;
  line-height: 1.5;
}

/* ============ Highlight ============ */
mark.search-highlight {
  background: var(--mark-bg);
  color: inherit;
  border-radius: 2px;
  transition: background-color 0.5s ease;
}

mark.search-highlight.fading { background: transparent; }

/* ============ Checklist ============ */
.checklist-panel {
  border: 1px solid var(--border);
  border-radius: 8px;
  padding: 12px 16px;
  margin-bottom: 24px;
  background: var(--bg-secondary);
}

.checklist-header { display: flex; align-items: center; gap: 8px; margin-bottom: 8px; }
.checklist-progress { font-weight: 600; margin-right: auto; }
.checklist-header button {
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 4px;
  padding: 2px 10px;
  color: var(--text-secondary);
  cursor: pointer;
}
.checklist-header button:disabled { opacity: 0.5; cursor: default; }
.checklist-items { list-style: none; }
.checklist-item input { margin-right: 6px; }

/* ============ Navigation ============ */
.page-nav {
  display: flex;
  justify-content: space-between;
  gap: 16px;
  margin-top: 48px;
  padding-top: 16px;
  border-top: 1px solid var(--border);
}

.page-nav a {
  text-decoration: none;
  color: var(--accent);
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: 8px 14px;
}

.page-nav span { display: block; font-size: 0.75rem; color: var(--text-muted); }
.page-nav-next { margin-left: auto; text-align: right; }

.toc {
  width: 220px;
  flex-shrink: 0;
  position: sticky;
  top: 72px;
  align-self: flex-start;
  font-size: 0.85rem;
}

.toc-title { font-weight: 600; margin-bottom: 8px; color: var(--text-muted); }
.toc ul { list-style: none; }
.toc a { color: var(--text-secondary); text-decoration: none; display: block; padding: 2px 0; }
.toc a:hover { color: var(--accent); }

/* ============ Search ============ */
.search-modal[hidden] { display: none; }

.search-overlay {
  position: fixed;
  inset: 0;
  background: rgba(0,0,0,0.4);
  z-index: 200;
}

.search-dialog {
  position: fixed;
  top: 10vh;
  left: 50%;
  transform: translateX(-50%);
  width: min(640px, 92vw);
  max-height: 70vh;
  display: flex;
  flex-direction: column;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 10px;
  box-shadow: var(--shadow-lg);
  z-index: 201;
}

#search-input {
  padding: 14px 16px;
  border: none;
  border-bottom: 1px solid var(--border);
  font-size: 1rem;
  background: transparent;
  color: var(--text);
  outline: none;
}

.search-status { padding: 8px 16px; color: var(--text-muted); font-size: 0.85rem; }
.search-status:empty { display: none; }
.search-results { list-style: none; overflow-y: auto; }

.search-result {
  padding: 10px 16px;
  cursor: pointer;
  border-left: 3px solid transparent;
}

.search-result.selected { background: var(--accent-light); border-left-color: var(--accent); }
.search-result-title { font-weight: 600; }
.search-result-section { font-size: 0.75rem; color: var(--text-muted); margin-left: 8px; }
.search-result-snippet { font-size: 0.85rem; color: var(--text-secondary); }

.search-footer {
  padding: 8px 16px;
  border-top: 1px solid var(--border);
  font-size: 0.75rem;
  color: var(--text-muted);
}

/* ============ Responsive ============ */
@media (max-width: 1100px) {
  .toc { display: none; }
}

@media (max-width: 800px) {
  .sidebar { transform: translateX(-100%); transition: transform 0.2s; }
  .sidebar.open { transform: none; }
  .sidebar-overlay.open { display: block; position: fixed; inset: 0; background: rgba(0,0,0,0.3); z-index: 99; }
  .content { margin-left: 0; }
  .menu-toggle { display: inline-flex; }
  .page-layout { padding: 24px 16px; }
}

/* ============ Print ============ */
.print-page { display: block; padding: 32px; }
.print-actions { margin-bottom: 24px; }

@media print {
  .sidebar, .top-bar, .toc, .page-nav, .copy-button, .print-actions, .checklist-header button { display: none !important; }
  .content { margin-left: 0; }
  body { display: block; }
  pre { white-space: pre-wrap; }
}
`

const jsContent = `(function() {
  'use strict';

  var body = document.body;
  var cfg = {
    docId: body.dataset.docId || '',
    base: body.dataset.base || '',
    ext: body.dataset.ext || '',
    isStatic: body.dataset.static === 'true',
    settleMs: parseInt(body.dataset.settleMs, 10) || 100,
    displayMs: parseInt(body.dataset.displayMs, 10) || 5000,
    fadeMs: parseInt(body.dataset.fadeMs, 10) || 500,
    minQuery: parseInt(body.dataset.minQuery, 10) || 2,
    copyFeedbackMs: parseInt(body.dataset.copyFeedbackMs, 10) || 2000
  };

  // ============ Local state (static builds) ============
  function readLocal(key, fallback) {
    try {
      var raw = localStorage.getItem(key);
      return raw === null ? fallback : JSON.parse(raw);
    } catch (e) {
      console.warn('docreader: ignoring malformed state for ' + key, e);
      return fallback;
    }
  }

  function writeLocal(key, value) {
    try {
      localStorage.setItem(key, JSON.stringify(value));
    } catch (e) {
      console.warn('docreader: could not persist ' + key, e);
    }
  }

  function api(method, path, payload) {
    var opts = { method: method, headers: {} };
    if (payload !== undefined) {
      opts.headers['Content-Type'] = 'application/json';
      opts.body = JSON.stringify(payload);
    }
    return fetch(path, opts).then(function(res) {
      if (!res.ok) { throw new Error(method + ' ' + path + ': ' + res.status); }
      return res.json();
    });
  }

  function docHref(id, query, heading) {
    var href = cfg.isStatic ? cfg.base + id + cfg.ext : '/' + id;
    if (query) { href += '?q=' + encodeURIComponent(query); }
    if (heading) { href += '#' + heading; }
    return href;
  }

  // ============ Theme ============
  var root = document.documentElement;
  if (cfg.isStatic) {
    var storedTheme = readLocal('docreader.theme', null);
    if (storedTheme === 'light' || storedTheme === 'dark' || storedTheme === 'system') {
      root.setAttribute('data-theme', storedTheme);
    }
  }

  var themeToggle = document.getElementById('theme-toggle');
  if (themeToggle) {
    themeToggle.addEventListener('click', function() {
      var next = root.getAttribute('data-theme') === 'dark' ? 'light' : 'dark';
      root.setAttribute('data-theme', next);
      if (cfg.isStatic) {
        writeLocal('docreader.theme', next);
      } else {
        api('PUT', '/api/theme', { theme: next }).catch(function(err) { console.warn(err); });
      }
    });
  }

  // ============ Sidebar ============
  var sidebar = document.getElementById('sidebar');
  var overlay = document.getElementById('sidebar-overlay');
  var menuToggle = document.getElementById('menu-toggle');
  function closeSidebar() {
    sidebar.classList.remove('open');
    overlay.classList.remove('open');
  }
  if (menuToggle) {
    menuToggle.addEventListener('click', function() {
      sidebar.classList.toggle('open');
      overlay.classList.toggle('open');
    });
  }
  if (overlay) { overlay.addEventListener('click', closeSidebar); }

  document.querySelectorAll('.section-toggle').forEach(function(toggle) {
    toggle.addEventListener('click', function() {
      toggle.parentElement.classList.toggle('expanded');
    });
  });

  // ============ Anchor links ============
  document.querySelectorAll('a[data-smooth-scroll="true"]').forEach(function(link) {
    link.addEventListener('click', function(e) {
      var id = decodeURIComponent(link.getAttribute('href').slice(1));
      var target = document.getElementById(id);
      if (!target) { return; }
      e.preventDefault();
      target.scrollIntoView({ behavior: 'smooth', block: 'start' });
      history.replaceState(null, '', '#' + id);
    });
  });

  // ============ Copy buttons ============
  document.querySelectorAll('.copy-button').forEach(function(btn) {
    btn.addEventListener('click', function() {
      var block = btn.closest('.code-block');
      var pre = block && block.querySelector('pre');
      if (!pre || !navigator.clipboard) { return; }
      navigator.clipboard.writeText(pre.innerText).then(function() {
        var label = btn.textContent;
        btn.textContent = btn.dataset.copiedLabel || 'Copied!';
        btn.classList.add('copied');
        setTimeout(function() {
          btn.textContent = label;
          btn.classList.remove('copied');
        }, parseInt(btn.dataset.feedbackMs, 10) || cfg.copyFeedbackMs);
      }).catch(function(err) { console.warn('copy failed', err); });
    });
  });

  // ============ Task checkboxes ============
  var taskBoxes = document.querySelectorAll('input.task-checkbox[data-check-id]');
  function applyTasks(tasks) {
    taskBoxes.forEach(function(box) {
      var id = box.dataset.checkId;
      if (Object.prototype.hasOwnProperty.call(tasks, id)) { box.checked = !!tasks[id]; }
    });
  }
  if (taskBoxes.length) {
    if (cfg.isStatic) {
      applyTasks(readLocal('docreader.tasks', {}) || {});
    } else {
      api('GET', '/api/tasks').then(applyTasks).catch(function(err) { console.warn(err); });
    }
    taskBoxes.forEach(function(box) {
      box.disabled = false;
      box.addEventListener('change', function() {
        var id = box.dataset.checkId;
        if (cfg.isStatic) {
          var tasks = readLocal('docreader.tasks', {}) || {};
          tasks[id] = box.checked;
          writeLocal('docreader.tasks', tasks);
        } else {
          api('PUT', '/api/tasks', { id: id, checked: box.checked }).catch(function(err) { console.warn(err); });
        }
      });
    });
  }

  // ============ Checklist panel ============
  var panel = document.getElementById('checklist-panel');
  if (panel) {
    var itemBoxes = panel.querySelectorAll('input[data-item-id]');
    var selectAll = document.getElementById('checklist-select-all');
    var deselectAll = document.getElementById('checklist-deselect-all');
    var progress = document.getElementById('checklist-progress');

    var renderChecklist = function(state) {
      var done = 0;
      itemBoxes.forEach(function(box) {
        box.checked = !!state[box.dataset.itemId];
        if (box.checked) { done++; }
      });
      progress.textContent = done + ' / ' + itemBoxes.length;
      selectAll.disabled = done === itemBoxes.length;
      deselectAll.disabled = done === 0;
    };

    var fromResponse = function(resp) {
      var state = {};
      (resp.items || []).forEach(function(item) { state[item.id] = item.checked; });
      renderChecklist(state);
    };

    var localChecklist = function(mutate) {
      var state = readLocal('docreader.checklist', {}) || {};
      mutate(state);
      writeLocal('docreader.checklist', state);
      renderChecklist(state);
    };

    var checklistPath = '/api/checklist/' + cfg.docId;

    if (cfg.isStatic) {
      localChecklist(function() {});
    } else {
      var initial = {};
      itemBoxes.forEach(function(box) { initial[box.dataset.itemId] = box.checked; });
      renderChecklist(initial);
    }

    itemBoxes.forEach(function(box) {
      box.addEventListener('change', function() {
        var id = box.dataset.itemId;
        if (cfg.isStatic) {
          localChecklist(function(state) { state[id] = !state[id]; });
          return;
        }
        api('POST', checklistPath + '/toggle/' + encodeURIComponent(id)).then(fromResponse)
          .catch(function(err) { console.warn(err); });
      });
    });

    var setAll = function(checked) {
      if (cfg.isStatic) {
        localChecklist(function(state) {
          itemBoxes.forEach(function(box) { state[box.dataset.itemId] = checked; });
        });
        return;
      }
      api('POST', checklistPath + (checked ? '/select-all' : '/deselect-all')).then(fromResponse)
        .catch(function(err) { console.warn(err); });
    };
    selectAll.addEventListener('click', function() { setAll(true); });
    deselectAll.addEventListener('click', function() { setAll(false); });
  }

  // ============ Static search ============
  function slugify(s) {
    s = s.replace(/<[^>]*>/g, '').toLowerCase();
    return s.replace(/[^a-z0-9]+/g, '-').replace(/^-+|-+$/g, '');
  }

  function scanHeadings(content) {
    var headings = [];
    var fence = '';
    var offset = 0;
    content.split('\n').forEach(function(line) {
      var trimmed = line.replace(/\r$/, '').replace(/^ +/, '');
      if (fence) {
        if (trimmed.indexOf(fence) === 0) { fence = ''; }
      } else if (trimmed.indexOf('~~~') === 0 || trimmed.indexOf('\x60\x60\x60') === 0) {
        fence = trimmed.slice(0, 3);
      } else {
        var m = /^(#{1,6})[ \t]+(.*?)(?:[ \t]+#+)?[ \t]*$/.exec(line.replace(/\r$/, ''));
        if (m && m[2]) { headings.push({ id: slugify(m[2]), offset: offset }); }
      }
      offset += line.length + 1;
    });
    return headings;
  }

  function countOf(hay, needle) {
    var n = 0;
    var i = hay.indexOf(needle);
    while (i !== -1) {
      n++;
      i = hay.indexOf(needle, i + needle.length);
    }
    return n;
  }

  function snippet(content, pos, len) {
    var matchEnd = pos + len;
    var start = Math.max(0, pos - 50);
    var end = Math.min(content.length, matchEnd + 100);
    if (start > 0) {
      var sp = content.slice(start, pos).indexOf(' ');
      if (sp >= 0) { start += sp + 1; }
    }
    if (end < content.length) {
      var last = content.slice(matchEnd, end).lastIndexOf(' ');
      if (last > 0) { end = matchEnd + last; }
    }
    return (start > 0 ? '...' : '') + content.slice(start, end) + (end < content.length ? '...' : '');
  }

  function localSearch(index, query) {
    if (!query) { return { state: 'idle', results: [] }; }
    if (Array.from(query).length < cfg.minQuery) { return { state: 'too-short', results: [] }; }
    var needle = query.toLowerCase();
    var results = [];
    index.forEach(function(doc) {
      var content = doc.content.toLowerCase();
      var titleCount = countOf(doc.title.toLowerCase(), needle);
      var first = content.indexOf(needle);
      if (titleCount === 0 && first === -1) { return; }
      var r = { id: doc.id, title: doc.title, section: doc.section, match_type: titleCount > 0 ? 'title' : 'content', match_count: titleCount };
      if (first >= 0) {
        r.match_count += countOf(content, needle);
        r.snippet = snippet(doc.content, first, needle.length);
        var headings = scanHeadings(doc.content);
        if (headings.length) {
          var nearest = headings[0];
          headings.forEach(function(h) { if (h.offset < first) { nearest = h; } });
          r.heading_id = nearest.id;
        }
      }
      results.push(r);
    });
    results.sort(function(a, b) {
      if (a.match_type !== b.match_type) { return a.match_type === 'title' ? -1 : 1; }
      return b.match_count - a.match_count;
    });
    return { state: results.length ? 'results' : 'no-results', results: results };
  }

  var searchIndex = null;
  function runSearch(query) {
    if (!cfg.isStatic) {
      return api('GET', '/api/search?q=' + encodeURIComponent(query));
    }
    if (searchIndex) { return Promise.resolve(localSearch(searchIndex, query)); }
    return fetch(cfg.base + 'search-index.json').then(function(res) { return res.json(); }).then(function(index) {
      searchIndex = index;
      return localSearch(index, query);
    });
  }

  // ============ Search modal ============
  var modal = document.getElementById('search-modal');
  var input = document.getElementById('search-input');
  var statusEl = document.getElementById('search-status');
  var list = document.getElementById('search-results');
  var results = [];
  var selected = 0;
  var currentQuery = '';

  function escapeHTML(s) {
    return s.replace(/[&<>"']/g, function(c) {
      return { '&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;' }[c];
    });
  }

  function marked(text, query) {
    if (!text) { return ''; }
    var lower = text.toLowerCase();
    var needle = query.toLowerCase();
    var out = '';
    var from = 0;
    var i = needle ? lower.indexOf(needle) : -1;
    while (i !== -1) {
      out += escapeHTML(text.slice(from, i)) + '<mark>' + escapeHTML(text.slice(i, i + needle.length)) + '</mark>';
      from = i + needle.length;
      i = lower.indexOf(needle, from);
    }
    return out + escapeHTML(text.slice(from));
  }

  function renderSelection() {
    list.querySelectorAll('.search-result').forEach(function(el, i) {
      el.classList.toggle('selected', i === selected);
      if (i === selected) { el.scrollIntoView({ block: 'nearest' }); }
    });
  }

  function renderResults(resp) {
    results = resp.results || [];
    selected = 0;
    list.innerHTML = '';
    var messages = {
      'idle': '',
      'too-short': 'Type at least ' + cfg.minQuery + ' characters to search.',
      'no-results': 'No results for "' + currentQuery + '".',
      'results': ''
    };
    statusEl.textContent = messages[resp.state] || '';
    results.forEach(function(r, i) {
      var li = document.createElement('li');
      li.className = 'search-result';
      li.innerHTML = '<div><span class="search-result-title">' + marked(r.title, currentQuery) + '</span>' +
        '<span class="search-result-section">' + escapeHTML(r.section || '') + '</span></div>' +
        (r.snippet ? '<div class="search-result-snippet">' + marked(r.snippet, currentQuery) + '</div>' : '');
      li.addEventListener('mouseenter', function() {
        selected = i;
        renderSelection();
      });
      li.addEventListener('click', function() { choose(i); });
      list.appendChild(li);
    });
    renderSelection();
  }

  function choose(i) {
    var r = results[i];
    if (!r) { return; }
    closeSearch();
    location.href = docHref(r.id, currentQuery, r.heading_id);
  }

  function openSearch() {
    modal.hidden = false;
    input.value = currentQuery;
    input.focus();
    input.select();
  }

  function closeSearch() {
    modal.hidden = true;
    results = [];
    selected = 0;
    currentQuery = '';
    list.innerHTML = '';
    statusEl.textContent = '';
  }

  var searchSeq = 0;
  input.addEventListener('input', function() {
    currentQuery = input.value;
    var seq = ++searchSeq;
    runSearch(currentQuery).then(function(resp) {
      if (seq === searchSeq) { renderResults(resp); }
    }).catch(function(err) { console.warn('search failed', err); });
  });

  input.addEventListener('keydown', function(e) {
    if (e.key === 'ArrowDown') {
      e.preventDefault();
      if (selected < results.length - 1) { selected++; }
      renderSelection();
    } else if (e.key === 'ArrowUp') {
      e.preventDefault();
      if (selected > 0) { selected--; }
      renderSelection();
    } else if (e.key === 'Enter') {
      e.preventDefault();
      choose(selected);
    }
  });

  document.getElementById('search-trigger').addEventListener('click', openSearch);
  document.getElementById('search-overlay').addEventListener('click', closeSearch);
  document.addEventListener('keydown', function(e) {
    if ((e.ctrlKey || e.metaKey) && e.key.toLowerCase() === 'k') {
      e.preventDefault();
      if (modal.hidden) { openSearch(); } else { closeSearch(); }
    } else if (e.key === 'Escape' && !modal.hidden) {
      closeSearch();
    }
  });

  // ============ Post-navigation highlight ============
  var content = document.querySelector('.markdown-content');

  function applyMark(term) {
    if (!content || !term) { return null; }
    var needle = term.toLowerCase();
    var walker = document.createTreeWalker(content, NodeFilter.SHOW_TEXT, {
      acceptNode: function(node) {
        var tag = node.parentNode.nodeName;
        return tag === 'SCRIPT' || tag === 'STYLE' ? NodeFilter.FILTER_REJECT : NodeFilter.FILTER_ACCEPT;
      }
    });
    var node;
    while ((node = walker.nextNode())) {
      var i = node.nodeValue.toLowerCase().indexOf(needle);
      if (i === -1) { continue; }
      var match = node.splitText(i);
      match.splitText(term.length);
      var mark = document.createElement('mark');
      mark.className = 'search-highlight';
      mark.setAttribute('data-search-highlight', String(Date.now()));
      match.parentNode.replaceChild(mark, match);
      mark.appendChild(match);
      return mark;
    }
    return null;
  }

  function removeMark(mark) {
    var parent = mark.parentNode;
    if (!parent) { return; }
    while (mark.firstChild) { parent.insertBefore(mark.firstChild, mark); }
    parent.removeChild(mark);
    parent.normalize();
  }

  var params = new URLSearchParams(location.search);
  var term = params.get('q');
  if (term) {
    setTimeout(function() {
      var mark = document.querySelector('mark[data-search-highlight]') || (cfg.isStatic ? applyMark(term) : null);
      if (!mark) { return; }
      if (!location.hash) { mark.scrollIntoView({ behavior: 'smooth', block: 'center' }); }
      setTimeout(function() {
        mark.classList.add('fading');
        setTimeout(function() { removeMark(mark); }, cfg.fadeMs);
      }, cfg.displayMs);
    }, cfg.settleMs);
  }

  // ============ Live reload ============
  if (!cfg.isStatic && window.WebSocket) {
    var connect = function() {
      var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
      var ws = new WebSocket(proto + location.host + '/ws');
      ws.onmessage = function(e) {
        try {
          if (JSON.parse(e.data).type === 'reload') { location.reload(); }
        } catch (err) {
          console.warn('live reload: bad message', err);
        }
      };
      ws.onclose = function() { setTimeout(connect, 2000); };
    };
    connect();
  }
})();
`
