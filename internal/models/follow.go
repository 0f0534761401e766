package models

import "time"

// FollowDB represents a directed follow edge: follower follows followed.
// The pair (FollowerID, FollowedID) is unique in the database.
type FollowDB struct {
	FollowerID int64     `json:"follower_id" db:"follower_id"`
	FollowedID int64     `json:"followed_id" db:"followed_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
