package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/docreader/internal/checklist"
	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/kvstore"
)

// RegisterRoutes mounts the site's pages, assets and JSON API on r.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/static/style.css", s.handleCSS)
	r.Get("/static/script.js", s.handleJS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/documents", s.handleDocuments)
		r.Get("/documents/*", s.handleDocument)
		r.Get("/theme", s.handleGetTheme)
		r.Put("/theme", s.handlePutTheme)
		r.Get("/tasks", s.handleGetTasks)
		r.Put("/tasks", s.handlePutTask)
		r.Get("/checklist/*", s.handleGetChecklist)
		r.Post("/checklist/*", s.handleChecklistAction)
	})

	r.Get("/ws", s.hub.ServeHTTP)
	r.Get("/print/*", s.handlePrint)
	r.Get("/*", s.handlePage)
}

func (s *Site) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(s.css))
}

func (s *Site) handleJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(jsContent))
}

// lookup resolves a wildcard path to a document. An empty path is the
// first document.
func (s *Site) lookup(path string) (docstore.Document, error) {
	store := s.Store()
	id := strings.TrimSuffix(strings.Trim(path, "/"), ".html")
	if id == "" {
		doc, ok := store.First()
		if !ok {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return doc, nil
	}
	return store.Get(id)
}

func (s *Site) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, err := s.lookup(chi.URLParam(r, "*"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	page, err := s.RenderPage(r.Context(), doc, r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Error("rendering page", "doc", doc.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Site) handlePrint(w http.ResponseWriter, r *http.Request) {
	doc, err := s.lookup(chi.URLParam(r, "*"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	page, err := s.RenderPrint(doc)
	if err != nil {
		s.logger.Error("rendering print page", "doc", doc.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Site) handleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Search(r.URL.Query().Get("q")))
}

func (s *Site) handleDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store().Summaries())
}

// documentResponse is a document with its rendered body.
type documentResponse struct {
	docstore.Document
	HTML string `json:"html"`
}

func (s *Site) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store().Get(chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	out, err := s.pipeline.Render([]byte(doc.Content), doc.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	body, err := out.Hydrated()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{Document: doc, HTML: body})
}

type themeBody struct {
	Theme kvstore.Theme `json:"theme"`
}

func (s *Site) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := kvstore.LoadTheme(r.Context(), s.state, s.opts.DefaultTheme, s.logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: theme})
}

func (s *Site) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := kvstore.SaveTheme(r.Context(), s.state, body.Theme); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Site) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	tasks := make(map[string]bool)
	if _, err := kvstore.GetJSON(r.Context(), s.state, kvstore.KeyTasks, &tasks, s.logger); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

type taskBody struct {
	ID      string `json:"id"`
	Checked bool   `json:"checked"`
}

func (s *Site) handlePutTask(w http.ResponseWriter, r *http.Request) {
	var body taskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	tasks := make(map[string]bool)
	if _, err := kvstore.GetJSON(r.Context(), s.state, kvstore.KeyTasks, &tasks, s.logger); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tasks == nil {
		tasks = make(map[string]bool)
	}
	tasks[body.ID] = body.Checked
	if err := kvstore.SetJSON(r.Context(), s.state, kvstore.KeyTasks, tasks); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// checklistResponse is the checklist of one document.
type checklistResponse struct {
	DocumentID  string           `json:"document_id"`
	Items       []checklist.Item `json:"items"`
	Done        int              `json:"done"`
	Total       int              `json:"total"`
	AllChecked  bool             `json:"all_checked"`
	NoneChecked bool             `json:"none_checked"`
}

func newChecklistResponse(docID string, m *checklist.Manager) checklistResponse {
	done, total := m.Progress()
	return checklistResponse{
		DocumentID:  docID,
		Items:       m.Items(),
		Done:        done,
		Total:       total,
		AllChecked:  m.AllChecked(),
		NoneChecked: m.NoneChecked(),
	}
}

func (s *Site) loadChecklist(r *http.Request, docID string) (*checklist.Manager, error) {
	doc, err := s.Store().Get(docID)
	if err != nil {
		return nil, err
	}
	m := checklist.NewManager(s.state, s.logger)
	if err := m.Load(r.Context(), doc.Content); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Site) handleGetChecklist(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "*")
	m, err := s.loadChecklist(r, docID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newChecklistResponse(docID, m))
}

// checklistAction splits "{doc}/toggle/{item}", "{doc}/select-all" and
// "{doc}/deselect-all" paths. Document ids may contain slashes.
func checklistAction(path string) (docID, action, item string, ok bool) {
	if i := strings.LastIndex(path, "/toggle/"); i > 0 {
		return path[:i], "toggle", path[i+len("/toggle/"):], path[i+len("/toggle/"):] != ""
	}
	for _, a := range []string{"select-all", "deselect-all"} {
		if docID, found := strings.CutSuffix(path, "/"+a); found && docID != "" {
			return docID, a, "", true
		}
	}
	return "", "", "", false
}

func (s *Site) handleChecklistAction(w http.ResponseWriter, r *http.Request) {
	docID, action, item, ok := checklistAction(chi.URLParam(r, "*"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown checklist action")
		return
	}
	m, err := s.loadChecklist(r, docID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	switch action {
	case "toggle":
		_, err = m.Toggle(r.Context(), item)
	case "select-all":
		err = m.SelectAll(r.Context())
	case "deselect-all":
		err = m.DeselectAll(r.Context())
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newChecklistResponse(docID, m))
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, checklist.ErrUnknownItem) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
