package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// PostgresStore handles PostgreSQL database operations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store with a connection pool and
// initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	store := &PostgresStore{pool: pool}

	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS chats (
		id BIGSERIAL PRIMARY KEY,
		user1_id BIGINT NOT NULL REFERENCES users(id),
		user2_id BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (user1_id < user2_id),
		UNIQUE (user1_id, user2_id)
	);

	CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		chat_id BIGINT NOT NULL REFERENCES chats(id),
		sender_id BIGINT NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chats_user1 ON chats(user1_id);
	CREATE INDEX IF NOT EXISTS idx_chats_user2 ON chats(user2_id);
	CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, created_at, id);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// isPgUniqueViolation reports whether err is a PostgreSQL uniqueness violation.
func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// CreateUser inserts a new user record.
func (s *PostgresStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := &models.User{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, created_at
	`, username, email, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by id.
func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = $1
	`, id))
}

// GetUserByEmail retrieves a user by email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE email = $1
	`, email))
}

func (s *PostgresStore) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// SearchUsers retrieves users whose username or email contains the query,
// case-insensitive, capped at limit.
func (s *PostgresStore) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	pattern := "%" + query + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username ILIKE $1 OR email ILIKE $1
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// CreateChat inserts a new chat for the pair, stored in normalized order.
// Returns ErrDuplicate if a chat for the pair already exists.
func (s *PostgresStore) CreateChat(ctx context.Context, userA, userB int64) (*models.Chat, error) {
	lo, hi := normalizePair(userA, userB)

	chat := &models.Chat{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO chats (user1_id, user2_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, user1_id, user2_id, created_at
	`, lo, hi).Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return chat, nil
}

// GetChatByPair retrieves the chat for an unordered pair of user ids.
// Rows are stored normalized, but the lookup still matches either arrangement
// so pre-normalization rows resolve too.
func (s *PostgresStore) GetChatByPair(ctx context.Context, userA, userB int64) (*models.Chat, error) {
	return s.scanChat(s.pool.QueryRow(ctx, `
		SELECT id, user1_id, user2_id, created_at
		FROM chats
		WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)
	`, userA, userB))
}

// GetChat retrieves a chat by id.
func (s *PostgresStore) GetChat(ctx context.Context, id int64) (*models.Chat, error) {
	return s.scanChat(s.pool.QueryRow(ctx, `
		SELECT id, user1_id, user2_id, created_at
		FROM chats WHERE id = $1
	`, id))
}

func (s *PostgresStore) scanChat(row pgx.Row) (*models.Chat, error) {
	chat := &models.Chat{}
	err := row.Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return chat, nil
}

// ListChatsForUser retrieves every chat where the user is either participant.
func (s *PostgresStore) ListChatsForUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user1_id, user2_id, created_at
		FROM chats
		WHERE user1_id = $1 OR user2_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var chat models.Chat
		if err := rows.Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}

	return chats, rows.Err()
}

// CreateMessage inserts a new message with a server-assigned timestamp.
func (s *PostgresStore) CreateMessage(ctx context.Context, chatID, senderID int64, content string) (*models.Message, error) {
	now := time.Now().UTC()

	msg := &models.Message{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO messages (chat_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, chat_id, sender_id, content, created_at
	`, chatID, senderID, content, now).Scan(
		&msg.ID,
		&msg.ChatID,
		&msg.SenderID,
		&msg.Content,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessagesForChat retrieves a chat's messages joined with the sender's
// username, in chronological order. Ties on the timestamp are broken by
// insertion id so repeated fetches always render the same sequence.
func (s *PostgresStore) ListMessagesForChat(ctx context.Context, chatID int64) ([]models.ChatMessage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT messages.id, messages.content, messages.created_at, messages.sender_id, users.username
		FROM messages
		JOIN users ON messages.sender_id = users.id
		WHERE messages.chat_id = $1
		ORDER BY messages.created_at, messages.id
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		err := rows.Scan(
			&msg.ID,
			&msg.Content,
			&msg.CreatedAt,
			&msg.SenderID,
			&msg.SenderUsername,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// DeleteMessage removes a message by id. Deleting an absent id is not an error.
func (s *PostgresStore) DeleteMessage(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}
