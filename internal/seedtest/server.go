// Package seedtest runs an in-memory imitation of the remote service for
// tests. It keeps per-organization cycles, datasets, column mapping profiles
// and labels, allows duplicate names like the real service, and records
// every request so tests can assert on call sequences.
package seedtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/agentstation/goseed/pkg/resources"
)

// Call is one request received by the server.
type Call struct {
	Method string
	Path   string
}

// Failure makes the next request matching Method and Path fail with Status.
type Failure struct {
	Method string
	Path   string
	Status int
	Body   string
}

type org struct {
	cycles   []resources.Cycle
	datasets []resources.Dataset
	profiles []resources.ColumnMappingProfile
	labels   []resources.Label
}

// Server is a fake service. The zero value is not usable; call NewServer.
type Server struct {
	*httptest.Server

	// Username and APIKey, when set, are required as basic credentials.
	Username string
	APIKey   string

	mu       sync.Mutex
	nextID   int
	orgs     map[int]*org
	calls    []Call
	failures []Failure

	// DropMappingsOnUpdate simulates a service that keeps only the first n
	// mappings of an update; negative disables it.
	DropMappingsOnUpdate int
}

// NewServer starts a server and stops it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		nextID:               100,
		orgs:                 map[int]*org{},
		DropMappingsOnUpdate: -1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/cycles/{$}", s.listCycles)
	mux.HandleFunc("POST /api/v3/cycles/{$}", s.createCycle)
	mux.HandleFunc("DELETE /api/v3/cycles/{id}/{$}", s.deleteCycle)
	mux.HandleFunc("GET /api/v3/datasets/{$}", s.listDatasets)
	mux.HandleFunc("POST /api/v3/datasets/{$}", s.createDataset)
	mux.HandleFunc("POST /api/v3/column_mapping_profiles/filter/{$}", s.listProfiles)
	mux.HandleFunc("POST /api/v3/column_mapping_profiles/{$}", s.createProfile)
	mux.HandleFunc("PUT /api/v3/column_mapping_profiles/{id}/{$}", s.updateProfile)
	mux.HandleFunc("DELETE /api/v3/column_mapping_profiles/{id}/{$}", s.deleteProfile)
	mux.HandleFunc("GET /api/v3/labels/{$}", s.listLabels)

	s.Server = httptest.NewServer(s.middleware(mux))
	t.Cleanup(s.Close)
	return s
}

// middleware records calls, injects failures, checks credentials and
// requires an organization id.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path})
		for i, f := range s.failures {
			if f.Method == r.Method && f.Path == r.URL.Path {
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
				s.mu.Unlock()
				w.WriteHeader(f.Status)
				_, _ = w.Write([]byte(f.Body))
				return
			}
		}
		s.mu.Unlock()

		if s.Username != "" {
			user, key, ok := r.BasicAuth()
			if !ok || user != s.Username || key != s.APIKey {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid username/password."})
				return
			}
		}
		if _, err := strconv.Atoi(r.URL.Query().Get("organization_id")); err != nil {
			writeError(w, http.StatusBadRequest, "organization_id is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CountCalls returns how many requests used method.
func (s *Server) CountCalls(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// CountRequests returns how many requests used method on path.
func (s *Server) CountRequests(method, path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// ResetCalls forgets recorded calls.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// FailNext queues a failure for the next matching request.
func (s *Server) FailNext(f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, f)
}

// org returns the state for id, creating it on first use. Callers hold s.mu.
func (s *Server) org(id int) *org {
	o, ok := s.orgs[id]
	if !ok {
		o = &org{}
		s.orgs[id] = o
	}
	return o
}

// id allocates a fresh record id. Callers hold s.mu.
func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

func orgID(r *http.Request) int {
	id, _ := strconv.Atoi(r.URL.Query().Get("organization_id"))
	return id
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}
