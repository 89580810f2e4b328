package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/ZitouneMcGregor/messagerie/internal/models"
)

// SQLiteStore handles SQLite database operations.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
// If dbPath is empty, defaults to "./data/messagerie.db"
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/messagerie.db"
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// The resolve-or-create fallback relies on the UNIQUE constraint firing
	// under concurrent inserts; a single connection also sidesteps
	// SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}

	// Initialize schema
	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS chats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user1_id INTEGER NOT NULL REFERENCES users(id),
		user2_id INTEGER NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK (user1_id < user2_id),
		UNIQUE (user1_id, user2_id)
	);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chat_id INTEGER NOT NULL REFERENCES chats(id),
		sender_id INTEGER NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chats_user1 ON chats(user1_id);
	CREATE INDEX IF NOT EXISTS idx_chats_user2 ON chats(user2_id);
	CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, created_at, id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() {
	s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// isUniqueViolation reports whether err is a SQLite uniqueness constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// CreateUser inserts a new user record.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, username, email, passwordHash, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// GetUserByID retrieves a user by id.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = ?
	`, id))
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE email = ?
	`, email))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// SearchUsers retrieves users whose username or email contains the query,
// case-insensitive, capped at limit.
func (s *SQLiteStore) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username LIKE ? OR email LIKE ?
		LIMIT ?
	`, pattern, pattern, limit)
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
func (s *SQLiteStore) CreateChat(ctx context.Context, userA, userB int64) (*models.Chat, error) {
	lo, hi := normalizePair(userA, userB)
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO chats (user1_id, user2_id, created_at)
		VALUES (?, ?, ?)
	`, lo, hi, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Chat{ID: id, User1ID: lo, User2ID: hi, CreatedAt: now}, nil
}

// GetChatByPair retrieves the chat for an unordered pair of user ids.
// Rows are stored normalized, but the lookup still matches either arrangement
// so pre-normalization rows resolve too.
func (s *SQLiteStore) GetChatByPair(ctx context.Context, userA, userB int64) (*models.Chat, error) {
	return s.scanChat(s.db.QueryRowContext(ctx, `
		SELECT id, user1_id, user2_id, created_at
		FROM chats
		WHERE (user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)
	`, userA, userB, userB, userA))
}

// GetChat retrieves a chat by id.
func (s *SQLiteStore) GetChat(ctx context.Context, id int64) (*models.Chat, error) {
	return s.scanChat(s.db.QueryRowContext(ctx, `
		SELECT id, user1_id, user2_id, created_at
		FROM chats WHERE id = ?
	`, id))
}

func (s *SQLiteStore) scanChat(row *sql.Row) (*models.Chat, error) {
	chat := &models.Chat{}
	err := row.Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return chat, nil
}

// ListChatsForUser retrieves every chat where the user is either participant.
func (s *SQLiteStore) ListChatsForUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user1_id, user2_id, created_at
		FROM chats
		WHERE user1_id = ? OR user2_id = ?
	`, userID, userID)
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
func (s *SQLiteStore) CreateMessage(ctx context.Context, chatID, senderID int64, content string) (*models.Message, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (chat_id, sender_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`, chatID, senderID, content, now)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Message{
		ID:        id,
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: now,
	}, nil
}

// ListMessagesForChat retrieves a chat's messages joined with the sender's
// username, in chronological order. Ties on the timestamp are broken by
// insertion id so repeated fetches always render the same sequence.
func (s *SQLiteStore) ListMessagesForChat(ctx context.Context, chatID int64) ([]models.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT messages.id, messages.content, messages.created_at, messages.sender_id, users.username
		FROM messages
		JOIN users ON messages.sender_id = users.id
		WHERE messages.chat_id = ?
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
func (s *SQLiteStore) DeleteMessage(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return err
}
