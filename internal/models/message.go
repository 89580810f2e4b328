package models

import "time"

// Message represents a single text message within a chat.
type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	SenderID  int64     `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// ChatMessage is the read model for listing a chat's history: a message
// joined with the sender's display name.
type ChatMessage struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"timestamp"`
	SenderID       int64     `json:"sender_id"`
	SenderUsername string    `json:"username"`
}
