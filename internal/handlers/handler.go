package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ZitouneMcGregor/messagerie/internal/service"
	"github.com/ZitouneMcGregor/messagerie/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	auth      *service.AuthGateway
	directory *service.UserDirectory
	chats     *service.ChatRegistry
	messages  *service.MessageLog
	store     store.DataStore
	logger    zerolog.Logger
}

// NewHandler creates a new Handler with the given services.
func NewHandler(
	auth *service.AuthGateway,
	directory *service.UserDirectory,
	chats *service.ChatRegistry,
	messages *service.MessageLog,
	st store.DataStore,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		directory: directory,
		chats:     chats,
		messages:  messages,
		store:     st,
		logger:    logger,
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// ServiceError maps a service error onto an HTTP response. Internal causes
// are logged and replaced by a generic message so store detail never reaches
// the client.
func (h *Handler) ServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("unclassified error")
		h.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch svcErr.Kind {
	case service.KindInvalidRequest, service.KindConflict:
		h.Error(w, http.StatusBadRequest, svcErr.Msg)
	case service.KindUnauthorized:
		h.Error(w, http.StatusUnauthorized, svcErr.Msg)
	case service.KindNotFound:
		h.Error(w, http.StatusNotFound, svcErr.Msg)
	default:
		h.logger.Error().Err(svcErr.Err).Str("path", r.URL.Path).Msg(svcErr.Msg)
		h.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
