package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/chat-relay-be/internal/auth"
	"github.com/isdelr/chat-relay-be/internal/models"
	"github.com/isdelr/chat-relay-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles registration and login.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenService) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Username, email and password are required"})
		return
	}

	_, err := h.service.CreateUser(payload.Username, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateIdentity) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Username or email already in use"})
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "message": "User registered successfully"})
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}

	user, err := h.service.AuthenticateUser(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "Invalid username or password"})
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Login failed")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Internal server error"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "token": token})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
