package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
	"github.com/ZitouneMcGregor/messagerie/internal/store"
)

// searchLimit caps directory search results.
const searchLimit = 10

// emailRegex validates email addresses per RFC 5322 (simplified).
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserStore is the slice of the data store the directory needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)
}

// UserDirectory owns user records: creation with uniqueness enforcement,
// lookup by id, and substring search.
type UserDirectory struct {
	store UserStore
}

// NewUserDirectory returns a UserDirectory backed by the given store.
func NewUserDirectory(s UserStore) *UserDirectory {
	return &UserDirectory{store: s}
}

// Create registers a new user with an already-hashed password.
// Username and email must be unique.
func (d *UserDirectory) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || passwordHash == "" {
		return nil, invalid("username, email and password are required")
	}
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return nil, invalid("invalid email format")
	}

	user, err := d.store.CreateUser(ctx, username, email, passwordHash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflict("username or email already in use")
		}
		return nil, internal("failed to create user", err)
	}
	return user, nil
}

// FindByID returns the user with the given id.
func (d *UserDirectory) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, invalid("user id is required")
	}

	user, err := d.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, internal("failed to look up user", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	return user, nil
}

// Search returns up to 10 users whose username or email contains the query,
// case-insensitive. An empty query returns no results rather than everyone.
func (d *UserDirectory) Search(ctx context.Context, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}

	users, err := d.store.SearchUsers(ctx, query, searchLimit)
	if err != nil {
		return nil, internal("search failed", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
