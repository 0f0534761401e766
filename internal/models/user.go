package models

import "time"

// DefaultImageURL is used when a user signs up without a profile image.
const DefaultImageURL = "/static/images/default-pic.png"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                     // Primary key, assigned by the database
	Username     string    `json:"username" db:"username"`         // Unique username
	Email        string    `json:"email" db:"email"`               // Unique user email
	PasswordHash string    `json:"-" db:"password_hash"`           // bcrypt hash, never plaintext
	ImageURL     string    `json:"image_url" db:"image_url"`       // Profile image URL
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`     // Last update timestamp
}
