package service

import (
	"context"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
)

// PasswordHasher is the opaque credential collaborator: hashing and
// verification happen outside this package.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// CredentialStore is the slice of the data store the auth gateway needs.
type CredentialStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthGateway provisions accounts and verifies credentials at session start.
type AuthGateway struct {
	directory *UserDirectory
	store     CredentialStore
	hasher    PasswordHasher
}

// NewAuthGateway returns an AuthGateway delegating account storage to the
// directory and hashing to the given hasher.
func NewAuthGateway(directory *UserDirectory, store CredentialStore, hasher PasswordHasher) *AuthGateway {
	return &AuthGateway{directory: directory, store: store, hasher: hasher}
}

// Register hashes the password and creates the account through the directory.
// Conflicts on username or email surface unchanged.
func (g *AuthGateway) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if password == "" {
		return nil, invalid("password is required")
	}

	hash, err := g.hasher.Hash(password)
	if err != nil {
		return nil, internal("failed to hash password", err)
	}

	return g.directory.Create(ctx, username, email, hash)
}

// Login verifies the credentials and returns the matching user. Unknown email
// and wrong password produce the same error so callers cannot tell which
// accounts exist.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, unauthorized("incorrect email or password")
	}

	user, err := g.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, internal("failed to look up user", err)
	}
	if user == nil || !g.hasher.Verify(user.PasswordHash, password) {
		return nil, unauthorized("incorrect email or password")
	}

	return user, nil
}
