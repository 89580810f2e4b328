package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func seedUsers(t *testing.T, s *SQLiteStore, usernames ...string) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(usernames))
	for _, name := range usernames {
		user, err := s.CreateUser(context.Background(), name, name+"@example.com", "hash")
		require.NoError(t, err)
		ids = append(ids, user.ID)
	}
	return ids
}

func TestCreateUserDuplicate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first, err := s.CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice", "other@example.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = s.CreateUser(ctx, "other", "alice@example.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)

	// The original row is untouched by the failed inserts.
	got, err := s.GetUserByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
}

func TestGetUserNotFound(t *testing.T) {
	s := setupStore(t)

	user, err := s.GetUserByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = s.GetUserByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSearchUsers(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	seedUsers(t, s, "alice", "alicia", "bob")

	// Case-insensitive substring match on username or email.
	users, err := s.SearchUsers(ctx, "ALI", 10)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = s.SearchUsers(ctx, "example.com", 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = s.SearchUsers(ctx, "xyz-no-match", 10)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestChatPairUniqueness(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ids := seedUsers(t, s, "alice", "bob")

	chat, err := s.CreateChat(ctx, ids[1], ids[0])
	require.NoError(t, err)
	// Stored normalized regardless of argument order.
	assert.Less(t, chat.User1ID, chat.User2ID)

	_, err = s.CreateChat(ctx, ids[0], ids[1])
	assert.ErrorIs(t, err, ErrDuplicate)
	_, err = s.CreateChat(ctx, ids[1], ids[0])
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetChatByPairEitherOrder(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ids := seedUsers(t, s, "alice", "bob")

	created, err := s.CreateChat(ctx, ids[0], ids[1])
	require.NoError(t, err)

	forward, err := s.GetChatByPair(ctx, ids[0], ids[1])
	require.NoError(t, err)
	require.NotNil(t, forward)

	reverse, err := s.GetChatByPair(ctx, ids[1], ids[0])
	require.NoError(t, err)
	require.NotNil(t, reverse)

	assert.Equal(t, created.ID, forward.ID)
	assert.Equal(t, created.ID, reverse.ID)

	missing, err := s.GetChatByPair(ctx, ids[0], 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListChatsForUser(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ids := seedUsers(t, s, "alice", "bob", "carol")

	_, err := s.CreateChat(ctx, ids[0], ids[1])
	require.NoError(t, err)
	_, err = s.CreateChat(ctx, ids[2], ids[0])
	require.NoError(t, err)

	chats, err := s.ListChatsForUser(ctx, ids[0])
	require.NoError(t, err)
	assert.Len(t, chats, 2)

	chats, err = s.ListChatsForUser(ctx, ids[1])
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestListMessagesOrderAndAttribution(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ids := seedUsers(t, s, "alice", "bob")
	chat, err := s.CreateChat(ctx, ids[0], ids[1])
	require.NoError(t, err)

	_, err = s.CreateMessage(ctx, chat.ID, ids[0], "hi")
	require.NoError(t, err)
	_, err = s.CreateMessage(ctx, chat.ID, ids[1], "yo")
	require.NoError(t, err)

	messages, err := s.ListMessagesForChat(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, "alice", messages[0].SenderUsername)
	assert.Equal(t, "yo", messages[1].Content)
	assert.Equal(t, "bob", messages[1].SenderUsername)
}

func TestListMessagesTieBreakOnID(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ids := seedUsers(t, s, "alice", "bob")
	chat, err := s.CreateChat(ctx, ids[0], ids[1])
	require.NoError(t, err)

	contents := []string{"one", "two", "three", "four", "five"}
	for _, c := range contents {
		_, err = s.CreateMessage(ctx, chat.ID, ids[0], c)
		require.NoError(t, err)
	}

	// Collapse all timestamps onto a single instant; only the insertion id
	// can order the rows now.
	_, err = s.db.ExecContext(ctx, `
		UPDATE messages SET created_at = (SELECT MIN(created_at) FROM messages)
	`)
	require.NoError(t, err)

	messages, err := s.ListMessagesForChat(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, len(contents))
	for i, m := range messages {
		assert.Equal(t, contents[i], m.Content)
	}
}

func TestDeleteMessage(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ids := seedUsers(t, s, "alice", "bob")
	chat, err := s.CreateChat(ctx, ids[0], ids[1])
	require.NoError(t, err)

	msg, err := s.CreateMessage(ctx, chat.ID, ids[0], "gone soon")
	require.NoError(t, err)

	require.NoError(t, s.DeleteMessage(ctx, msg.ID))

	messages, err := s.ListMessagesForChat(ctx, chat.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// Deleting an id that was never assigned is not an error.
	require.NoError(t, s.DeleteMessage(ctx, 999999))
}
