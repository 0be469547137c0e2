// Package apitest runs an in-memory stand-in for the remote rental service.
// It speaks the same envelope and routes, keeps state between calls and
// records every request so tests can assert on what was sent.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"toolrent-console/internal/domain"
)

const secret = "apitest-secret"

// RecordedRequest is one request as the server saw it
type RecordedRequest struct {
	Route     string
	Method    string
	Path      string
	Query     url.Values
	Auth      string
	RequestID string
	Body      []byte
}

type account struct {
	user     domain.User
	password string
}

type failure struct {
	status  int
	message string
}

// Server is the fake remote service. The exported slices are the seed
// state; mutate them only before issuing requests or under Lock.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	Tools      []domain.Tool
	Orders     []domain.Order
	Reviews    []domain.Review
	Bookings   []domain.Booking
	Categories []domain.Category
	Statistics *domain.OrderStatistics

	accounts map[string]*account // by email
	requests []RecordedRequest
	failures map[string]failure // by route name
	nextID   int
	now      func() time.Time
}

// New starts a server that is closed when the test ends
func New(t testing.TB) *Server {
	s := &Server{
		accounts: make(map[string]*account),
		failures: make(map[string]failure),
		now:      time.Now,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to apiclient.New
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

func (s *Server) Lock()   { s.mu.Lock() }
func (s *Server) Unlock() { s.mu.Unlock() }

// AddUser registers an account and returns a valid credential for it
func (s *Server) AddUser(u domain.User, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = s.newID("user")
	}
	u.IsActive = true
	s.accounts[u.Email] = &account{user: u, password: password}
	return mintToken(u)
}

// Fail makes every request to the named route answer with status and message.
// An empty message produces a body without one.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// Recover undoes Fail for route
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Count returns how many requests hit the named route
func (s *Server) Count(route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Route == route {
			n++
		}
	}
	return n
}

// Last returns the most recent request to the named route
func (s *Server) Last(route string) (RecordedRequest, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Route == route {
			return reqs[i], true
		}
	}
	return RecordedRequest{}, false
}

func (s *Server) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func mintToken(u domain.User) string {
	claims := jwt.MapClaims{
		"userId": u.ID,
		"email":  u.Email,
		"role":   string(u.Role),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return signed
}

// caller resolves the bearer credential to an account; nil when absent or invalid
func (s *Server) caller(r *http.Request) *account {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return nil
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil
	}
	email, _ := claims["email"].(string)
	return s.accounts[email]
}

// middleware records the request and applies forced failures
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Route:     name,
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query(),
			Auth:      r.Header.Get("Authorization"),
			RequestID: r.Header.Get("X-Request-ID"),
			Body:      body,
		})
		f, forced := s.failures[name]
		s.mu.Unlock()

		if forced {
			writeFailure(w, f.status, f.message)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func paginate[T any](items []T, q url.Values) ([]T, domain.Pagination) {
	page := atoi(q.Get("page"), 1)
	limit := atoi(q.Get("limit"), 10)
	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pages := (total + limit - 1) / limit
	return append([]T{}, items[start:end]...), domain.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func atoi(s string, def int) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n <= 0 {
		return def
	}
	return n
}
