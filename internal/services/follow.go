package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/models"
)

var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// FollowWriter defines write operations for follow edges.
type FollowWriter interface {
	Save(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) error
}

// FollowReader defines read operations for follow edges.
type FollowReader interface {
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	ListFollowers(ctx context.Context, userID int64) ([]models.UserDB, error)
	ListFollowing(ctx context.Context, userID int64) ([]models.UserDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// FollowService manages follow relationships and publishes follow events.
type FollowService struct {
	writeRepo   FollowWriter
	readRepo    FollowReader
	kafkaWriter KafkaWriter
}

// NewFollowService creates a new FollowService.
func NewFollowService(writeRepo FollowWriter, readRepo FollowReader, kafkaWriter KafkaWriter) *FollowService {
	return &FollowService{
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishFollowEvent publishes a follow/unfollow event to Kafka.
func (s *FollowService) publishFollowEvent(ctx context.Context, action string, followerID, followedID int64) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "action", action)
		return
	}

	event := models.FollowEvent{
		EventID:    uuid.NewString(),
		Timestamp:  time.Now().Unix(),
		Action:     action,
		FollowerID: followerID,
		FollowedID: followedID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal follow event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish follow event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Follow event published", "event_id", event.EventID, "action", action)
	}
}

// Follow creates the edge follower -> followed. Following yourself returns
// ErrSelfFollow; following someone you already follow is a no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		logger.Log.Errorw("self-follow rejected", "userID", followerID)
		return ErrSelfFollow
	}

	if err := s.writeRepo.Save(ctx, followerID, followedID); err != nil {
		logger.Log.Errorw("failed to save follow edge", "followerID", followerID, "followedID", followedID, "error", err)
		return err
	}

	s.publishFollowEvent(ctx, "follow", followerID, followedID)
	return nil
}

// Unfollow removes the edge follower -> followed if present.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	if err := s.writeRepo.Delete(ctx, followerID, followedID); err != nil {
		logger.Log.Errorw("failed to delete follow edge", "followerID", followerID, "followedID", followedID, "error", err)
		return err
	}

	s.publishFollowEvent(ctx, "unfollow", followerID, followedID)
	return nil
}

// IsFollowing reports whether follower follows followed, i.e. whether the
// edge (followerID, followedID) exists.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.readRepo.Exists(ctx, followerID, followedID)
}

// IsFollowedBy reports whether other follows user. It is defined exactly as
// IsFollowing with the arguments swapped: "A is followed by B" holds iff
// "B is following A".
func (s *FollowService) IsFollowedBy(ctx context.Context, userID, otherID int64) (bool, error) {
	return s.IsFollowing(ctx, otherID, userID)
}

// Followers returns the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID int64) ([]models.UserDB, error) {
	return s.readRepo.ListFollowers(ctx, userID)
}

// Following returns the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID int64) ([]models.UserDB, error) {
	return s.readRepo.ListFollowing(ctx, userID)
}
