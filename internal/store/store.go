package store

import (
	"context"
	"errors"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint:
// an already-taken username or email, or a second chat for the same pair.
var ErrDuplicate = errors.New("store: duplicate record")

// DataStore defines the interface for persistent storage of users, chats and
// messages. Both PostgresStore and SQLiteStore implement this interface.
// Point lookups return (nil, nil) when no record matches.
type DataStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// User operations
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)

	// Chat operations
	CreateChat(ctx context.Context, userA, userB int64) (*models.Chat, error)
	GetChatByPair(ctx context.Context, userA, userB int64) (*models.Chat, error)
	GetChat(ctx context.Context, id int64) (*models.Chat, error)
	ListChatsForUser(ctx context.Context, userID int64) ([]models.Chat, error)

	// Message operations
	CreateMessage(ctx context.Context, chatID, senderID int64, content string) (*models.Message, error)
	ListMessagesForChat(ctx context.Context, chatID int64) ([]models.ChatMessage, error)
	DeleteMessage(ctx context.Context, id int64) error
}

// normalizePair orders a pair of user ids so that the smaller id comes first.
// Chats are stored in this normalized order, which lets a single UNIQUE
// constraint cover the unordered pair.
func normalizePair(userA, userB int64) (int64, int64) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}
