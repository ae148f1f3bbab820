// Package apitest provides an in-process fake of the travel API for tests.
// It implements the real endpoint contract (JSON shapes, status codes, the
// {"detail": ...} error envelope) over in-memory state, with knobs to force
// token expiry, revoke refresh tokens, slow down refresh and fail sign-out.
package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-travel-client/api"
)

type contextKey string

const userIDKey contextKey = "userID"

const signingKey = "apitest-signing-key"

type account struct {
	user         api.User
	passwordHash []byte
}

// Server is the fake travel API. All state is in memory and guarded by a
// single lock; handlers are safe for concurrent use.
type Server struct {
	router chi.Router

	lock          sync.Mutex
	accounts      map[string]*account // by user id
	emailIndex    map[string]string   // email -> user id
	trips         map[string]*api.TripPlan
	tripOrder     []string // trip ids, newest first
	expenses      map[string]*api.Expense
	expenseOrder  []string // expense ids, newest first
	refreshTokens map[string]string // refresh token -> user id

	accessTTL       time.Duration
	tokenGeneration int
	refreshCalls    int
	refreshDelay    time.Duration
	requestDelay    time.Duration
	failSignOut     bool
	failNext        int
}

// New creates a fake server with a fresh in-memory state.
func New() *Server {
	s := &Server{
		accounts:      make(map[string]*account),
		emailIndex:    make(map[string]string),
		trips:         make(map[string]*api.TripPlan),
		expenses:      make(map[string]*api.Expense),
		refreshTokens: make(map[string]string),
		accessTTL:     time.Hour,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, suitable for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.injectFailures)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignUp)
		r.Post("/signin", s.handleSignIn)
		r.Post("/refresh", s.handleRefresh)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/signout", s.handleSignOut)
			r.Get("/me", s.handleCurrentUser)
		})
	})

	r.Route("/trips", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(s.delayResponses)
		r.Post("/plan", s.handleCreateTrip)
		r.Get("/", s.handleListTrips)
		r.Get("/{tripID}", s.handleGetTrip)
		r.Put("/{tripID}", s.handleUpdateTrip)
		r.Delete("/{tripID}", s.handleDeleteTrip)
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(s.delayResponses)
		r.Post("/", s.handleCreateExpense)
		r.Get("/trip/{tripID}", s.handleTripExpenses)
		r.Get("/trip/{tripID}/summary", s.handleExpenseSummary)
		r.Post("/trip/{tripID}/analyze", s.handleAnalyzeBudget)
		r.Put("/{expenseID}", s.handleUpdateExpense)
		r.Delete("/{expenseID}", s.handleDeleteExpense)
	})

	return r
}

// Knobs

// SetAccessTTL controls the lifetime of subsequently minted access tokens.
func (s *Server) SetAccessTTL(ttl time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.accessTTL = ttl
}

// ExpireAccessTokens invalidates every access token minted so far. The next
// authenticated request gets a 401 and must refresh.
func (s *Server) ExpireAccessTokens() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.tokenGeneration++
}

// RevokeRefreshTokens makes every outstanding refresh token invalid, so the
// next refresh attempt fails with 401.
func (s *Server) RevokeRefreshTokens() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.refreshTokens = make(map[string]string)
}

// RefreshCalls reports how many times /auth/refresh has been hit.
func (s *Server) RefreshCalls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.refreshCalls
}

// SetRefreshDelay makes /auth/refresh sleep before answering, so tests can
// hold several 401 retries in flight at once.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.refreshDelay = d
}

// FailSignOut makes /auth/signout answer 500.
func (s *Server) FailSignOut(fail bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failSignOut = fail
}

// FailRequests makes the next n requests answer 500 regardless of endpoint.
func (s *Server) FailRequests(n int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failNext = n
}

// SetRequestDelay makes trip and expense endpoints sleep before answering,
// so tests can change session state while a request is in flight.
func (s *Server) SetRequestDelay(d time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.requestDelay = d
}

func (s *Server) delayResponses(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		delay := s.requestDelay
		s.lock.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		fail := s.failNext > 0
		if fail {
			s.failNext--
		}
		s.lock.Unlock()

		if fail {
			writeDetail(w, http.StatusInternalServerError, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Tokens

func (s *Server) mintTokensLocked(userID string) (access, refresh string) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.accessTTL).Unix(),
		"iat": time.Now().Unix(),
		"gen": s.tokenGeneration,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	access, err := tok.SignedString([]byte(signingKey))
	if err != nil {
		panic(err) // static key and claims, cannot fail
	}

	refresh = uuid.New().String()
	s.refreshTokens[refresh] = userID
	return access, refresh
}

func (s *Server) verifyAccessToken(raw string) (string, bool) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(signingKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	s.lock.Lock()
	current := s.tokenGeneration
	s.lock.Unlock()

	gen, ok := claims["gen"].(float64)
	if !ok || int(gen) != current {
		return "", false
	}

	sub, _ := claims["sub"].(string)
	return sub, sub != ""
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeDetail(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, ok := s.verifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
