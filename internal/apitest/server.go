// Package apitest runs an in-memory stand-in for the remote expense service
// over httptest. It mimics the hosted mock API the client was built against:
// filters match by case-insensitive substring and a filter that matches
// nothing answers 404.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"spese-client/internal/core"
)

// BasePath is where the routes are mounted.
const BasePath = "/api/v1"

// Route names used by FailNext, Hits and hooks.
const (
	RouteListExpenses  = "GET /expenses"
	RouteGetExpense    = "GET /expenses/{id}"
	RouteCreateExpense = "POST /expenses"
	RouteDeleteExpense = "DELETE /expenses/{id}"
	RouteListUsers     = "GET /users"
	RouteCreateUser    = "POST /users"
)

// Server is the fake service. All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	expenses []core.Expense
	users    []core.User
	failures map[string][]int
	hits     map[string]int
	hook     func(route string)
	now      func() time.Time

	requestIDs []string
}

// NewServer starts a fake service. Call Close when done.
func NewServer() *Server {
	s := &Server{
		failures: make(map[string][]int),
		hits:     make(map[string]int),
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}

	r := chi.NewRouter()
	r.Use(s.trace)
	r.Route(BasePath, func(api chi.Router) {
		api.Get("/expenses", s.route(RouteListExpenses, s.listExpenses))
		api.Post("/expenses", s.route(RouteCreateExpense, s.createExpense))
		api.Get("/expenses/{id}", s.route(RouteGetExpense, s.getExpense))
		api.Delete("/expenses/{id}", s.route(RouteDeleteExpense, s.deleteExpense))
		api.Get("/users", s.route(RouteListUsers, s.listUsers))
		api.Post("/users", s.route(RouteCreateUser, s.createUser))
	})

	s.Server = httptest.NewServer(r)
	return s
}

// Start is NewServer with Close registered on t.
func Start(t testing.TB) *Server {
	t.Helper()
	s := NewServer()
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the value to hand to api.New.
func (s *Server) BaseURL() string {
	return s.URL + BasePath
}

// SeedExpenses appends expenses as stored records. Missing ids and
// timestamps are filled in.
func (s *Server) SeedExpenses(items ...core.Expense) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = s.now()
		}
		s.expenses = append(s.expenses, e)
		out = append(out, e)
	}
	return out
}

// SeedUsers appends users as stored records.
func (s *Server) SeedUsers(users ...core.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		s.users = append(s.users, u)
	}
}

// Expenses returns a copy of the stored expenses.
func (s *Server) Expenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...)
}

// Users returns a copy of the stored users.
func (s *Server) Users() []core.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.User(nil), s.users...)
}

// FailNext makes the next request to route answer status instead of being
// handled. Calls queue up.
func (s *Server) FailNext(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], status)
}

// Hits reports how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// OnRequest installs fn to run, outside the store lock, before every request
// is handled. Tests use it to block or observe in-flight requests.
func (s *Server) OnRequest(fn func(route string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = fn
}

func (s *Server) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[name]++
		hook := s.hook
		var status int
		if q := s.failures[name]; len(q) > 0 {
			status, s.failures[name] = q[0], q[1:]
		}
		s.mu.Unlock()

		if hook != nil {
			hook(name)
		}
		if status != 0 {
			writeJSON(w, status, http.StatusText(status))
			return
		}
		h(w, r)
	}
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	name, filtered := r.URL.Query()["name"]
	s.mu.Lock()
	out := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if !filtered || contains(e.Name, name[0]) {
			out = append(out, e)
		}
	}
	s.mu.Unlock()

	if filtered && len(out) == 0 {
		writeJSON(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if e.ID == id {
			writeJSON(w, http.StatusOK, e)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, "Not found")
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var in core.CreateExpenseData
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	s.mu.Lock()
	e := core.Expense{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Amount:      in.Amount,
		Description: in.Description,
		CreatedAt:   s.now(),
	}
	s.expenses = append(s.expenses, e)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i:i], s.expenses[i+1:]...)
			writeJSON(w, http.StatusOK, e)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, "Not found")
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	username, filtered := r.URL.Query()["username"]
	s.mu.Lock()
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		if !filtered || contains(u.Username, username[0]) {
			out = append(out, u)
		}
	}
	s.mu.Unlock()

	if filtered && len(out) == 0 {
		writeJSON(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in core.User
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, in.Username) {
			writeJSON(w, http.StatusConflict, "username taken")
			return
		}
	}
	in.ID = uuid.NewString()
	s.users = append(s.users, in)
	writeJSON(w, http.StatusCreated, in)
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
