package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
	"github.com/ZitouneMcGregor/messagerie/internal/store"
)

// fakeUserStore is an in-memory UserStore enforcing username/email uniqueness.
type fakeUserStore struct {
	users  []models.User
	nextID int64

	lastSearchLimit int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, username, email, passwordHash string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return nil, store.ErrDuplicate
		}
	}
	user := models.User{ID: f.nextID, Username: username, Email: email, PasswordHash: passwordHash}
	f.nextID++
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) SearchUsers(_ context.Context, query string, limit int) ([]models.User, error) {
	f.lastSearchLimit = limit
	q := strings.ToLower(query)
	var out []models.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func TestDirectoryCreate(t *testing.T) {
	fake := newFakeUserStore()
	directory := NewUserDirectory(fake)
	ctx := context.Background()

	user, err := directory.Create(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Same email again is a conflict, and the first user survives.
	_, err = directory.Create(ctx, "alice2", "alice@example.com", "hash")
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindConflict, svcErr.Kind)

	got, err := directory.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestDirectoryCreateValidation(t *testing.T) {
	directory := NewUserDirectory(newFakeUserStore())
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		hash     string
	}{
		{"empty username", "", "a@example.com", "hash"},
		{"empty email", "alice", "", "hash"},
		{"empty hash", "alice", "a@example.com", ""},
		{"bad email", "alice", "not-an-email", "hash"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := directory.Create(ctx, tc.username, tc.email, tc.hash)
			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, KindInvalidRequest, svcErr.Kind)
		})
	}
}

func TestDirectoryFindByIDNotFound(t *testing.T) {
	directory := NewUserDirectory(newFakeUserStore())

	_, err := directory.FindByID(context.Background(), 404)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindNotFound, svcErr.Kind)
}

func TestDirectorySearch(t *testing.T) {
	fake := newFakeUserStore()
	directory := NewUserDirectory(fake)
	ctx := context.Background()

	_, err := directory.Create(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	_, err = directory.Create(ctx, "bob", "bob@example.com", "hash")
	require.NoError(t, err)

	// Empty and whitespace queries return nothing without touching the store.
	for _, q := range []string{"", "   "} {
		users, err := directory.Search(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, users)
	}

	users, err := directory.Search(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, 10, fake.lastSearchLimit)

	users, err = directory.Search(ctx, "xyz-no-match")
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
