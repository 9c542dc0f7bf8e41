package handler

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/sirupsen/logrus"

	"github.com/pizzalab/pizza-service/internal/middleware"
	"github.com/pizzalab/pizza-service/internal/service"
)

// AuthHandler serves the signup, login and refresh endpoints
type AuthHandler struct {
	auth *service.AuthService
	log  *logrus.Logger
}

// NewAuthHandler initializes a new auth handler
func NewAuthHandler(auth *service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// SignupRequest is the payload for user registration
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}

// Validate checks field presence and basic shape
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks field presence
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Hello is a sanity probe for authenticated callers
func (h *AuthHandler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "hello world"})
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.auth.Signup(r.Context(), req.Username, req.Email, req.Password, req.IsActive, req.IsStaff)
	if err != nil {
		h.logFailure("signup", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Login handles authentication and token issuance
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	access, refresh, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logFailure("login", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Refresh mints a new access token from a bearer refresh token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tokenString, err := middleware.BearerToken(r)
	if err != nil {
		writeError(w, service.ErrUnauthenticated)
		return
	}

	access, err := h.auth.Refresh(tokenString)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (h *AuthHandler) logFailure(op string, err error) {
	switch err {
	case service.ErrConflict, service.ErrAuthFailed, service.ErrUnauthenticated:
		h.log.Debugf("%s rejected: %v", op, err)
	default:
		h.log.Errorf("%s failed: %v", op, err)
	}
}
