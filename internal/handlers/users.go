package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ZitouneMcGregor/messagerie/internal/metrics"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the server.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SearchUsers handles directory search by username or email substring.
func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	metrics.SearchQueries.Inc()

	users, err := h.directory.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.ServiceError(w, r, err)
		return
	}

	results := make([]UserResponse, 0, len(users))
	for _, u := range users {
		results = append(results, UserResponse{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	h.JSON(w, http.StatusOK, results)
}

// GetUser handles user profile lookup by id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.Error(w, http.StatusBadRequest, "invalid user ID format")
		return
	}

	user, err := h.directory.FindByID(r.Context(), id)
	if err != nil {
		h.ServiceError(w, r, err)
		return
	}

	h.JSON(w, http.StatusOK, UserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}
