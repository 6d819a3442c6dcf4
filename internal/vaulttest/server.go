// Package vaulttest runs an in-memory fake of the secret store HTTP API for
// tests. It understands LIST (GET ?list=true), READ, WRITE, DELETE,
// auth/token/lookup-self and sys/health, checks X-Vault-Token, and can be
// told to fail or delay individual requests.
package vaulttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/vault-browser/internal/utils"
	"github.com/MKhiriev/vault-browser/models"
)

// DefaultLeaseDuration is returned with every read.
const DefaultLeaseDuration = 2764800

type failure struct {
	status int
	body   string
}

// Server is a fake secret store listening on a local port.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	token        string
	displayName  string
	secrets      map[string]*models.SecretData
	failures     map[string]failure
	delays       map[string]time.Duration
	requests     []string
	healthStatus int
	healthBody   string
}

// New starts a server accepting token and registers its shutdown with t.
func New(t testing.TB, token string) *Server {
	t.Helper()

	s := &Server{
		token:        token,
		displayName:  "token-test",
		secrets:      make(map[string]*models.SecretData),
		failures:     make(map[string]failure),
		delays:       make(map[string]time.Duration),
		healthStatus: http.StatusOK,
		healthBody:   `{"initialized":true,"sealed":false,"standby":false,"version":"1.16.0"}`,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Get("/v1/sys/health", s.health)
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Use(s.inject)

		r.Get("/v1/auth/token/lookup-self", s.lookupSelf)
		r.Get("/v1/*", s.readOrList)
		r.Post("/v1/*", s.write)
		r.Put("/v1/*", s.write)
		r.Delete("/v1/*", s.delete)
	})

	return r
}

// ── configuration ─────────────────────────────────────────────────────────────

// Put stores a leaf built from name/value pairs in order.
func (s *Server) Put(path string, pairs ...string) {
	data := models.NewSecretData()
	for i := 0; i+1 < len(pairs); i += 2 {
		data.Set(pairs[i], pairs[i+1])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[path] = data
}

// PutJSON stores a leaf from a raw JSON object.
func (s *Server) PutJSON(t testing.TB, path, raw string) {
	t.Helper()

	data := models.NewSecretData()
	if err := json.Unmarshal([]byte(raw), data); err != nil {
		t.Fatalf("vaulttest: bad json for %s: %v", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[path] = data
}

// Secret returns the data stored at a leaf path.
func (s *Server) Secret(path string) (*models.SecretData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.secrets[path]
	return data, ok
}

// Fail makes every request with method on path answer status with body.
// For listings use the directory path with its trailing slash and
// method "LIST".
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// Delay holds answers to path for d.
func (s *Server) Delay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[path] = d
}

// SetDisplayName changes data.display_name of lookup-self.
func (s *Server) SetDisplayName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayName = name
}

// SetHealth changes the sys/health answer.
func (s *Server) SetHealth(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthStatus = status
	s.healthBody = body
}

// Requests returns "METHOD path" for every request served so far. Listings
// are recorded with method LIST.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests returns how many recorded requests equal req.
func (s *Server) CountRequests(req string) int {
	n := 0
	for _, r := range s.Requests() {
		if r == req {
			n++
		}
	}
	return n
}

// ── middleware ────────────────────────────────────────────────────────────────

func operation(r *http.Request) (string, string) {
	method := r.Method
	path := strings.TrimPrefix(r.URL.Path, "/v1/")
	if method == http.MethodGet && r.URL.Query().Get("list") == "true" {
		// list targets are directories; vault/api drops the trailing slash
		method = "LIST"
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}
	}
	return method, path
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path := operation(r)
		s.mu.Lock()
		s.requests = append(s.requests, method+" "+path)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != s.token {
			_, _ = utils.WriteJSON(w, models.ErrorResponse{Errors: []string{"permission denied"}}, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path := operation(r)

		s.mu.Lock()
		delay := s.delays[path]
		f, failed := s.failures[method+" "+path]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if failed {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ── handlers ──────────────────────────────────────────────────────────────────

func notFound(w http.ResponseWriter) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Errors: []string{}}, http.StatusNotFound)
}

func (s *Server) readOrList(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	if r.URL.Query().Get("list") == "true" {
		s.list(w, path)
		return
	}

	s.mu.Lock()
	data, ok := s.secrets[path]
	s.mu.Unlock()
	if !ok {
		notFound(w)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{
		"request_id":     utils.NewID(),
		"lease_id":       "",
		"renewable":      false,
		"lease_duration": DefaultLeaseDuration,
		"data":           data,
	}, http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, dir string) {
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	seen := make(map[string]struct{})
	s.mu.Lock()
	for p := range s.secrets {
		rest, ok := strings.CutPrefix(p, dir)
		if !ok || rest == "" {
			continue
		}
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[:i+1]
		}
		seen[rest] = struct{}{}
	}
	s.mu.Unlock()

	if len(seen) == 0 {
		notFound(w)
		return
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, _ = utils.WriteJSON(w, map[string]any{"data": map[string]any{"keys": keys}}, http.StatusOK)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	data := models.NewSecretData()
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Errors: []string{"failed to parse JSON input: " + err.Error()}}, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.secrets[path] = data
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	s.mu.Lock()
	delete(s.secrets, path)
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupSelf(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	name := s.displayName
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, map[string]any{
		"data": map[string]any{
			"accessor":     "acc-" + s.token,
			"display_name": name,
			"policies":     []string{"default"},
			"ttl":          3600,
		},
	}, http.StatusOK)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status, body := s.healthStatus, s.healthBody
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
