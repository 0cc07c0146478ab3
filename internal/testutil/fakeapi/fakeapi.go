// Package fakeapi is an in-process stand-in for the trip-planning backend,
// used by tests of the client, services and cli packages.
package fakeapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Known credentials of the seeded account.
const (
	UserID   = "u-1"
	Email    = "ana@example.com"
	Password = "secret"
	Name     = "Ana"
)

var signingKey = []byte("fakeapi-signing-key")

// Recorded is a request seen by the server.
type Recorded struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Server is a chi router behind httptest.Server. Default handlers serve a
// single seeded account; Override replaces any route.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	overrides map[string]http.HandlerFunc
	requests  []Recorded
	tokens    map[string]string
	profile   map[string]any
}

// New starts a server that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		overrides: map[string]http.HandlerFunc{},
		tokens:    map[string]string{},
		profile:   map[string]any{"id": UserID, "name": Name, "email": Email},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func routeKey(method, path string) string { return method + " " + path }

// Override replaces the handler of method+path.
func (s *Server) Override(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[routeKey(method, path)] = h
}

// Requests returns the recorded requests for method+path.
func (s *Server) Requests(method, path string) []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Recorded
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Hits counts requests to method+path.
func (s *Server) Hits(method, path string) int {
	return len(s.Requests(method, path))
}

// IssueToken signs a JWT for subject, valid for ttl, and accepts it on
// protected routes.
func (s *Server) IssueToken(subject string, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	s.tokens[token] = subject
	s.mu.Unlock()
	return token
}

// Profile returns a copy of the stored profile.
func (s *Server) Profile() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.profile))
	for k, v := range s.profile {
		out[k] = v
	}
	return out
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Post("/auth/login", s.dispatch(http.MethodPost, "/auth/login", s.handleLogin))
	r.Post("/auth/signup", s.dispatch(http.MethodPost, "/auth/signup", s.handleSignup))
	r.Get("/maps/api/place/nearbysearch/json", s.dispatch(http.MethodGet, "/maps/api/place/nearbysearch/json", s.handleNearby))

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/profile", s.dispatch(http.MethodGet, "/profile", s.handleGetProfile))
		r.Post("/profile", s.dispatch(http.MethodPost, "/profile", s.handleUpdateProfile))
		r.Get("/my-trips", s.dispatch(http.MethodGet, "/my-trips", s.handleMyTrips))
		r.Get("/rides", s.dispatch(http.MethodGet, "/rides", s.handleRides))
		r.Get("/bookings", s.dispatch(http.MethodGet, "/bookings", s.handleBookings))
		r.Get("/stats", s.dispatch(http.MethodGet, "/stats", s.handleStats))
		r.Get("/me", s.dispatch(http.MethodGet, "/me", s.handleMe))
		r.Post("/add_trip", s.dispatch(http.MethodPost, "/add_trip", s.handleAddTrip))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if h := s.override(r.Method, r.URL.Path); h != nil {
			h(w, r)
			return
		}
		WriteJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
	})
	return r
}

func (s *Server) override(method, path string) http.HandlerFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overrides[routeKey(method, path)]
}

func (s *Server) dispatch(method, path string, def http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h := s.override(method, path); h != nil {
			h(w, r)
			return
		}
		def(w, r)
	}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// requireAuth accepts issued tokens. Routes with an override skip the check.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.override(r.Method, r.URL.Path) != nil {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		_, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			WriteJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid body"})
		return
	}
	if in.Email != Email || in.Password != Password {
		WriteJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"token": s.IssueToken(UserID, time.Hour),
		"user":  s.Profile(),
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid body"})
		return
	}
	email, _ := in["email"].(string)
	if email == Email {
		WriteJSON(w, http.StatusConflict, map[string]any{"message": "Email already registered"})
		return
	}
	name, _ := in["name"].(string)
	WriteJSON(w, http.StatusCreated, map[string]any{
		"accessToken": s.IssueToken("u-2", time.Hour),
		"data":        map[string]any{"user": map[string]any{"_id": "u-2", "fullName": name, "email": email}},
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"profile": s.Profile()})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid body"})
		return
	}
	// Every key sent is applied as-is, empty strings included.
	s.mu.Lock()
	for k, v := range in {
		s.profile[k] = v
	}
	s.mu.Unlock()
	WriteJSON(w, http.StatusOK, map[string]any{"profile": s.Profile()})
}

func (s *Server) handleMyTrips(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"trips": []map[string]any{
		{"id": 7, "title": "Goa weekend", "date": "2025-02-14", "status": "planned"},
	}})
}

func (s *Server) handleRides(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, []map[string]any{
		{"id": "r1", "title": "Airport drop", "date": "2025-01-10", "status": "completed", "price": 450},
		{"id": "r2", "title": "City tour", "date": "2025-03-02", "status": "upcoming", "place": "Jaipur"},
	})
}

func (s *Server) handleBookings(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{
		{"id": "b1", "title": "Hotel Lake View", "date": "2025-02-20", "status": "confirmed", "place": "Udaipur"},
	}})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"totalDistanceKm": 1234.5, "tripsCount": 12})
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request) {
	p := s.Profile()
	WriteJSON(w, http.StatusOK, map[string]any{
		"id": p["id"], "name": p["name"], "email": p["email"],
		"memberSince": "2024-05-01", "tier": "gold", "coins": 300,
	})
}

func (s *Server) handleAddTrip(w http.ResponseWriter, r *http.Request) {
	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid body"})
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"id": "t-100"})
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("key") == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"status": "REQUEST_DENIED", "error_message": "Missing key"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "OK",
		"results": []map[string]any{
			{
				"place_id": "p1", "name": "Fort", "vicinity": "Old town",
				"types":    []string{"tourist_attraction"},
				"geometry": map[string]any{"location": map[string]any{"lat": 26.9855, "lng": 75.8513}},
			},
		},
	})
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusSequence answers each call with the next status of statuses and
// delegates to final once they are exhausted.
func StatusSequence(final http.HandlerFunc, statuses ...int) http.HandlerFunc {
	var mu sync.Mutex
	i := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		idx := i
		i++
		mu.Unlock()
		if idx < len(statuses) {
			WriteJSON(w, statuses[idx], map[string]any{"message": http.StatusText(statuses[idx])})
			return
		}
		final(w, r)
	}
}
