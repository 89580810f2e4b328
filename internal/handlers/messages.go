package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ZitouneMcGregor/messagerie/internal/metrics"
	"github.com/ZitouneMcGregor/messagerie/internal/models"
)

// SendMessageRequest represents the send message request body.
type SendMessageRequest struct {
	ChatID   int64  `json:"chat_id"`
	SenderID int64  `json:"sender_id"`
	Content  string `json:"content"`
}

// ListMessages returns a chat's history in stable chronological order.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	chatIDStr := r.URL.Query().Get("chatId")
	if chatIDStr == "" {
		h.Error(w, http.StatusBadRequest, "chatId is required")
		return
	}
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		h.Error(w, http.StatusBadRequest, "invalid chatId format")
		return
	}

	messages, err := h.messages.ListForChat(r.Context(), chatID)
	if err != nil {
		h.ServiceError(w, r, err)
		return
	}

	if messages == nil {
		messages = []models.ChatMessage{}
	}
	h.JSON(w, http.StatusOK, messages)
}

// SendMessage appends a message to a chat.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, err := h.messages.Append(r.Context(), req.ChatID, req.SenderID, req.Content); err != nil {
		h.ServiceError(w, r, err)
		return
	}

	metrics.MessagesSent.Inc()
	h.JSON(w, http.StatusCreated, map[string]string{"message": "message sent successfully"})
}

// DeleteMessage removes a message by id. Deleting an absent message still
// reports success.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.Error(w, http.StatusBadRequest, "invalid message ID format")
		return
	}

	if err := h.messages.Delete(r.Context(), id); err != nil {
		h.ServiceError(w, r, err)
		return
	}

	metrics.MessagesDeleted.Inc()
	h.JSON(w, http.StatusOK, map[string]string{"message": "message deleted successfully"})
}
