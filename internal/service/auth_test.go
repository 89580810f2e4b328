package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
)

// fakeHasher marks hashes deterministically so tests can see delegation.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(hash, password string) bool { return hash == "hashed:"+password }

// emailLookup adapts fakeUserStore to CredentialStore.
type emailLookup struct {
	users *fakeUserStore
}

func (l emailLookup) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range l.users.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func newTestGateway() (*AuthGateway, *fakeUserStore) {
	users := newFakeUserStore()
	directory := NewUserDirectory(users)
	return NewAuthGateway(directory, emailLookup{users}, fakeHasher{}), users
}

func TestRegisterHashesPassword(t *testing.T) {
	gateway, users := newTestGateway()

	user, err := gateway.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "hashed:s3cret", users.users[0].PasswordHash)
	assert.Equal(t, "alice", user.Username)
}

func TestRegisterSurfacesConflict(t *testing.T) {
	gateway, _ := newTestGateway()
	ctx := context.Background()

	_, err := gateway.Register(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = gateway.Register(ctx, "bob", "alice@example.com", "s3cret")
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindConflict, svcErr.Kind)
}

func TestRegisterRequiresPassword(t *testing.T) {
	gateway, _ := newTestGateway()

	_, err := gateway.Register(context.Background(), "alice", "alice@example.com", "")
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindInvalidRequest, svcErr.Kind)
}

func TestLogin(t *testing.T) {
	gateway, _ := newTestGateway()
	ctx := context.Background()

	registered, err := gateway.Register(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	user, err := gateway.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	gateway, _ := newTestGateway()
	ctx := context.Background()

	_, err := gateway.Register(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, wrongPassword := gateway.Login(ctx, "alice@example.com", "wrong")
	_, unknownEmail := gateway.Login(ctx, "nobody@example.com", "s3cret")

	var errA, errB *Error
	require.ErrorAs(t, wrongPassword, &errA)
	require.ErrorAs(t, unknownEmail, &errB)
	assert.Equal(t, KindUnauthorized, errA.Kind)
	assert.Equal(t, KindUnauthorized, errB.Kind)

	// Identical message for both failure modes.
	assert.Equal(t, errA.Msg, errB.Msg)
}
