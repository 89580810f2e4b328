package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ZitouneMcGregor/messagerie/internal/metrics"
)

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles credential verification at session start.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.ServiceError(w, r, err)
		return
	}

	h.JSON(w, http.StatusOK, LoginResponse{
		Message: "login successful",
		UserID:  user.ID,
	})
}

// Register handles account creation.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		h.ServiceError(w, r, err)
		return
	}

	metrics.UsersRegistered.Inc()
	h.JSON(w, http.StatusOK, map[string]string{"message": "user created successfully"})
}
