package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ZitouneMcGregor/messagerie/internal/metrics"
	"github.com/ZitouneMcGregor/messagerie/internal/models"
)

// CreateChatRequest represents the create-or-find chat request body.
type CreateChatRequest struct {
	User1ID int64 `json:"user1_id"`
	User2ID int64 `json:"user2_id"`
}

// CreateChatResponse represents the create-or-find chat response.
type CreateChatResponse struct {
	ChatID int64 `json:"chat_id"`
}

// CreateChat resolves the chat for a pair of users, creating it on first
// contact. Returns 200 with the existing id, or 201 when a new chat was made.
func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	chat, created, err := h.chats.ResolveOrCreate(r.Context(), req.User1ID, req.User2ID)
	if err != nil {
		h.ServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		metrics.ChatsCreated.Inc()
	}
	h.JSON(w, status, CreateChatResponse{ChatID: chat.ID})
}

// ListChats returns every chat the user participates in.
func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.Error(w, http.StatusBadRequest, "invalid user ID format")
		return
	}

	chats, err := h.chats.ListForUser(r.Context(), userID)
	if err != nil {
		h.ServiceError(w, r, err)
		return
	}

	if chats == nil {
		chats = []models.Chat{}
	}
	h.JSON(w, http.StatusOK, chats)
}
