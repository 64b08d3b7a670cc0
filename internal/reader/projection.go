package reader

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/docreader/internal/highlight"
)

// Projection is the terminal text of a rendered document.
type Projection struct {
	Lines []string
	// MarkLine is the line holding the search highlight, or -1.
	MarkLine int
	// Headings maps heading anchors to their line.
	Headings map[string]int
	// Code holds the raw text of each code block in document order.
	Code []CodeBlock
}

// CodeBlock is a code block and the line it starts on.
type CodeBlock struct {
	Line int
	Text string
}

// Project renders the content region of root as styled lines.
func Project(root *html.Node, st Styles) Projection {
	p := &projector{
		st:       st,
		out:      Projection{MarkLine: -1, Headings: make(map[string]int)},
		atStart:  true,
		trailing: 2,
	}
	region := highlight.ContentRegion(root)
	if region == nil {
		region = root
	}
	p.children(region)
	p.flush()
	for len(p.out.Lines) > 0 && p.out.Lines[len(p.out.Lines)-1] == "" {
		p.out.Lines = p.out.Lines[:len(p.out.Lines)-1]
	}
	return p.out
}

type projector struct {
	st  Styles
	out Projection

	cur      strings.Builder
	atStart  bool
	trailing int // consecutive line breaks already emitted
	space    bool

	style  *lipgloss.Style
	pre    int
	lists  int
	prefix string
}

func (p *projector) line() int { return len(p.out.Lines) }

func (p *projector) flush() {
	if p.atStart {
		return
	}
	p.out.Lines = append(p.out.Lines, p.cur.String())
	p.cur.Reset()
	p.atStart = true
	p.space = false
	p.trailing = 1
}

// breakLines ends the current line and pads with blank lines until n
// breaks separate it from what follows.
func (p *projector) breakLines(n int) {
	p.flush()
	if len(p.out.Lines) == 0 {
		return
	}
	for p.trailing < n {
		p.out.Lines = append(p.out.Lines, "")
		p.trailing++
	}
}

func (p *projector) write(s string) {
	if s == "" {
		return
	}
	if p.atStart {
		p.cur.WriteString(p.prefix)
		p.atStart = false
		p.trailing = 0
	}
	if p.style != nil {
		s = p.style.Render(s)
	}
	p.cur.WriteString(s)
}

func (p *projector) text(s string) {
	if p.pre > 0 {
		for i, part := range strings.Split(s, "\n") {
			if i > 0 {
				p.flushPre()
			}
			p.write(part)
		}
		return
	}

	leading := s != "" && unicode.IsSpace(firstRune(s))
	trailing := s != "" && unicode.IsSpace(lastRune(s))
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		if leading && !p.atStart {
			p.space = true
		}
		return
	}
	if (leading || p.space) && !p.atStart && !strings.HasSuffix(p.cur.String(), " ") {
		p.cur.WriteByte(' ')
	}
	p.space = trailing
	p.write(s)
}

// flushPre ends a line inside preformatted text, keeping empty lines.
func (p *projector) flushPre() {
	if p.atStart {
		p.out.Lines = append(p.out.Lines, p.prefix)
		return
	}
	p.flush()
}

func (p *projector) withStyle(s lipgloss.Style, fn func()) {
	prev := p.style
	p.style = &s
	fn()
	p.style = prev
}

func (p *projector) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.node(c)
	}
}

func (p *projector) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		p.text(n.Data)
		return
	case html.ElementNode:
	default:
		p.children(n)
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Button:
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p.breakLines(2)
		if id := attr(n, "id"); id != "" {
			if _, seen := p.out.Headings[id]; !seen {
				p.out.Headings[id] = p.line()
			}
		}
		level := int(n.Data[1] - '0')
		p.withStyle(p.st.Heading, func() {
			p.write(strings.Repeat("#", level) + " ")
			p.children(n)
		})
		p.breakLines(2)
	case atom.P:
		if n.Parent != nil && n.Parent.DataAtom == atom.Li {
			p.children(n)
			p.breakLines(1)
			return
		}
		p.breakLines(2)
		p.children(n)
		p.breakLines(2)
	case atom.Blockquote, atom.Table:
		p.breakLines(2)
		p.children(n)
		p.breakLines(2)
	case atom.Ul, atom.Ol:
		if p.lists == 0 {
			p.breakLines(2)
		}
		p.lists++
		p.children(n)
		p.lists--
		if p.lists == 0 {
			p.breakLines(2)
		}
	case atom.Li:
		p.breakLines(1)
		p.write(strings.Repeat("  ", p.lists-1))
		if !hasClass(n, "task-item") {
			p.write("• ")
		}
		p.children(n)
		p.breakLines(1)
	case atom.Pre:
		p.breakLines(2)
		p.out.Code = append(p.out.Code, CodeBlock{Line: p.line(), Text: textOf(n)})
		prevPrefix := p.prefix
		p.prefix = "    "
		p.pre++
		p.withStyle(p.st.Code, func() { p.children(n) })
		p.pre--
		p.prefix = prevPrefix
		p.breakLines(2)
	case atom.Tr, atom.Div:
		p.breakLines(1)
		p.children(n)
		p.breakLines(1)
	case atom.Td, atom.Th:
		if !p.atStart {
			p.write(" | ")
		}
		p.children(n)
	case atom.Br:
		p.flush()
	case atom.Hr:
		p.breakLines(2)
		p.withStyle(p.st.Muted, func() { p.write(strings.Repeat("─", 40)) })
		p.breakLines(2)
	case atom.Input:
		if attr(n, "type") == "checkbox" {
			box := "[ ] "
			if hasAttr(n, "checked") {
				box = "[x] "
			}
			p.write(box)
		}
	case atom.Mark:
		if p.out.MarkLine < 0 && hasAttr(n, highlight.MarkerAttr) {
			p.out.MarkLine = p.line()
		}
		style := p.st.Mark
		if hasClass(n, highlight.FadingClass) {
			style = p.st.Fading
		}
		p.withStyle(style, func() { p.children(n) })
	case atom.A:
		p.withStyle(p.st.Link, func() { p.children(n) })
	default:
		p.children(n)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
