package service

import (
	"context"
	"errors"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
	"github.com/ZitouneMcGregor/messagerie/internal/store"
)

// ChatStore is the slice of the data store the chat registry needs.
type ChatStore interface {
	GetChatByPair(ctx context.Context, userA, userB int64) (*models.Chat, error)
	CreateChat(ctx context.Context, userA, userB int64) (*models.Chat, error)
	ListChatsForUser(ctx context.Context, userID int64) ([]models.Chat, error)
}

// ChatRegistry owns the pairwise-unique chat identity: any unordered pair of
// users maps to exactly one chat, created lazily on first contact.
type ChatRegistry struct {
	store ChatStore
}

// NewChatRegistry returns a ChatRegistry backed by the given store.
func NewChatRegistry(s ChatStore) *ChatRegistry {
	return &ChatRegistry{store: s}
}

// ResolveOrCreate returns the chat for the unordered pair {userA, userB},
// creating it on first contact. The returned bool is true when a new chat was
// created. Argument order never matters: (A,B) and (B,A) resolve to the same
// chat, and repeated calls return the same id.
func (r *ChatRegistry) ResolveOrCreate(ctx context.Context, userA, userB int64) (*models.Chat, bool, error) {
	if userA <= 0 || userB <= 0 {
		return nil, false, invalid("both user ids are required")
	}
	if userA == userB {
		return nil, false, invalid("a chat requires two distinct users")
	}

	chat, err := r.store.GetChatByPair(ctx, userA, userB)
	if err != nil {
		return nil, false, internal("failed to look up chat", err)
	}
	if chat != nil {
		return chat, false, nil
	}

	chat, err = r.store.CreateChat(ctx, userA, userB)
	if err != nil {
		// A concurrent first contact for the same pair hit the unique
		// constraint first; re-read and return the winner.
		if errors.Is(err, store.ErrDuplicate) {
			chat, err = r.store.GetChatByPair(ctx, userA, userB)
			if err != nil {
				return nil, false, internal("failed to look up chat", err)
			}
			if chat != nil {
				return chat, false, nil
			}
		}
		return nil, false, internal("failed to create chat", err)
	}

	return chat, true, nil
}

// ListForUser returns every chat where the user is either participant, in
// natural store order.
func (r *ChatRegistry) ListForUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	if userID <= 0 {
		return nil, invalid("user id is required")
	}

	chats, err := r.store.ListChatsForUser(ctx, userID)
	if err != nil {
		return nil, internal("failed to list chats", err)
	}
	return chats, nil
}
