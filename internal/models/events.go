package models

// FollowEvent is published to Kafka when a follow edge is created or removed.
type FollowEvent struct {
	EventID    string `json:"event_id"`
	Timestamp  int64  `json:"timestamp"`
	Action     string `json:"action"` // "follow" or "unfollow"
	FollowerID int64  `json:"follower_id"`
	FollowedID int64  `json:"followed_id"`
}

// MessageEvent is published to Kafka when a message is posted.
type MessageEvent struct {
	EventID   string `json:"event_id"`
	Timestamp int64  `json:"timestamp"`
	MessageID int64  `json:"message_id"`
	UserID    int64  `json:"user_id"`
}
