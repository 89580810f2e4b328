package service

import (
	"context"
	"strings"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
)

// MessageStore is the slice of the data store the message log needs.
type MessageStore interface {
	GetChat(ctx context.Context, id int64) (*models.Chat, error)
	CreateMessage(ctx context.Context, chatID, senderID int64, content string) (*models.Message, error)
	ListMessagesForChat(ctx context.Context, chatID int64) ([]models.ChatMessage, error)
	DeleteMessage(ctx context.Context, id int64) error
}

// MessageLog is the append-only ordered message sequence of each chat.
type MessageLog struct {
	store MessageStore
}

// NewMessageLog returns a MessageLog backed by the given store.
func NewMessageLog(s MessageStore) *MessageLog {
	return &MessageLog{store: s}
}

// Append persists a new message in the chat and returns it with its assigned
// id and timestamp. The chat must exist; the sender is not required to be a
// participant (see DESIGN.md).
func (l *MessageLog) Append(ctx context.Context, chatID, senderID int64, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalid("message content is required")
	}
	if chatID <= 0 || senderID <= 0 {
		return nil, invalid("chat_id and sender_id are required")
	}

	chat, err := l.store.GetChat(ctx, chatID)
	if err != nil {
		return nil, internal("failed to look up chat", err)
	}
	if chat == nil {
		return nil, notFound("chat not found")
	}

	msg, err := l.store.CreateMessage(ctx, chatID, senderID, content)
	if err != nil {
		return nil, internal("failed to store message", err)
	}
	return msg, nil
}

// ListForChat returns the chat's messages joined with sender usernames,
// sorted ascending by timestamp with ties broken by insertion id. The
// tie-break makes the order a stable total order even when timestamps
// collide under a high write rate.
func (l *MessageLog) ListForChat(ctx context.Context, chatID int64) ([]models.ChatMessage, error) {
	if chatID <= 0 {
		return nil, invalid("chatId is required")
	}

	messages, err := l.store.ListMessagesForChat(ctx, chatID)
	if err != nil {
		return nil, internal("failed to fetch messages", err)
	}
	return messages, nil
}

// Delete removes a message by id. Deleting a message that does not exist
// succeeds; there is no existence pre-check and no ownership check.
func (l *MessageLog) Delete(ctx context.Context, messageID int64) error {
	if messageID <= 0 {
		return invalid("message id is required")
	}

	if err := l.store.DeleteMessage(ctx, messageID); err != nil {
		return internal("failed to delete message", err)
	}
	return nil
}
