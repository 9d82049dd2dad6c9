// Package catalogtest runs an in-memory catalog that speaks the same
// endpoints as the real one. It records what it receives so tests can
// inspect the wire format end to end.
package catalogtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/dbdbedit/internal/common"
)

type Server struct {
	*httptest.Server

	mu           sync.Mutex
	token        string
	failSave     bool
	saves        []url.Values
	publications []url.Values
	suggestions  []string
}

// NewServer starts a catalog issuing token as its CSRF cookie. It is closed
// when the test ends.
func NewServer(t testing.TB, token string, suggestions ...string) *Server {
	t.Helper()
	s := &Server{token: token, suggestions: suggestions}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/db/{slug}/edit/{key}", s.editPage)
	r.Post("/db/{slug}/edit/{key}", s.saveDocument)
	r.Post(common.AddPublicationPath, s.addPublication)
	r.Get(common.AutocompletePath, s.autocomplete)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// FailSaves makes every later save answer 500.
func (s *Server) FailSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = fail
}

func (s *Server) Saves() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.saves)
}

func (s *Server) Publications() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.publications)
}

func (s *Server) editPage(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: common.CSRFCookieName, Value: s.token, Path: "/"})
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte("<html><body>edit " + chi.URLParam(r, "slug") + "</body></html>"))
}

func (s *Server) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get(common.CSRFHeaderName) != s.token {
		http.Error(w, "CSRF verification failed", http.StatusForbidden)
		return false
	}
	return true
}

func (s *Server) saveDocument(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.saves = append(s.saves, r.PostForm)
	fail := s.failSave
	s.mu.Unlock()

	if fail {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"redirect": "/db/" + chi.URLParam(r, "slug")})
}

func (s *Server) addPublication(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.publications = append(s.publications, r.PostForm)
	s.mu.Unlock()

	link := r.PostForm.Get("download")
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = "http://" + link
	}
	writeJSON(w, map[string]string{"cite": cite(r.PostForm), "link": link})
}

// cite renders a citation the way the catalog does:
// Authors. "Title". Journal Year. Pages.
func cite(f url.Values) string {
	title := strings.Trim(f.Get("title"), `"`)
	return f.Get("authors") + `. "` + title + `". ` + f.Get("journal") + " " + f.Get("year") + ". " + f.Get("pages") + "."
}

func (s *Server) autocomplete(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	results := []string{}
	for _, name := range s.suggestions {
		if strings.Contains(strings.ToLower(name), q) {
			results = append(results, name)
		}
	}
	writeJSON(w, map[string][]string{"results": results})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
