package models

import "time"

// MessageDB represents a user-authored post.
type MessageDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	UserID    int64     `json:"user_id" db:"user_id"`       // Author
	Text      string    `json:"text" db:"text"`             // Message body, at most 140 characters
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Publication timestamp
}
