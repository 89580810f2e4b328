package models

import "time"

// Chat is the single conversation record tying exactly two users together.
// Participants are stored normalized (User1ID < User2ID) so the storage-level
// uniqueness constraint covers the unordered pair.
type Chat struct {
	ID        int64     `json:"id"`
	User1ID   int64     `json:"user1_id"`
	User2ID   int64     `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Has reports whether the given user is a participant of the chat.
func (c *Chat) Has(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}
