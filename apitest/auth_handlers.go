package apitest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-travel-client/api"
	"golang.org/x/crypto/bcrypt"
)

type signUpRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "hashing password")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.emailIndex[req.Email]; exists {
		writeDetail(w, http.StatusConflict, "email already registered")
		return
	}

	user := api.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		FullName:  req.FullName,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.accounts[user.ID] = &account{user: user, passwordHash: hash}
	s.emailIndex[req.Email] = user.ID

	access, refresh := s.mintTokensLocked(user.ID)
	writeJSON(w, http.StatusOK, api.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	userID, ok := s.emailIndex[req.Email]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	acc := s.accounts[userID]
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	access, refresh := s.mintTokensLocked(userID)
	writeJSON(w, http.StatusOK, api.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         acc.user,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.lock.Lock()
	s.refreshCalls++
	delay := s.refreshDelay
	s.lock.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	userID, ok := s.refreshTokens[req.RefreshToken]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	// Rotation: the presented token is spent
	delete(s.refreshTokens, req.RefreshToken)
	access, refresh := s.mintTokensLocked(userID)
	writeJSON(w, http.StatusOK, api.TokenPair{AccessToken: access, RefreshToken: refresh})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	fail := s.failSignOut
	s.lock.Unlock()

	if fail {
		writeDetail(w, http.StatusInternalServerError, "sign-out unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	acc, ok := s.accounts[requestUserID(r)]
	s.lock.Unlock()

	if !ok {
		writeDetail(w, http.StatusUnauthorized, "unknown user")
		return
	}
	writeJSON(w, http.StatusOK, acc.user)
}
