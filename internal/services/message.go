package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/models"
)

// MaxMessageLength is the maximum message body length in characters.
const MaxMessageLength = 140

var (
	ErrEmptyMessage   = errors.New("message text is empty")
	ErrMessageTooLong = errors.New("message text exceeds 140 characters")
)

// MessageWriter defines write operations for messages.
type MessageWriter interface {
	Save(ctx context.Context, userID int64, text string) (int64, error)
}

// MessageReader defines read operations for messages.
type MessageReader interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.MessageDB, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}

// MessageService handles posting and listing messages and publishes message
// events to Kafka.
type MessageService struct {
	writeRepo   MessageWriter
	readRepo    MessageReader
	kafkaWriter KafkaWriter
}

// NewMessageService creates a new MessageService.
func NewMessageService(writeRepo MessageWriter, readRepo MessageReader, kafkaWriter KafkaWriter) *MessageService {
	return &MessageService{
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishMessageEvent publishes a message event to Kafka.
func (s *MessageService) publishMessageEvent(ctx context.Context, messageID, userID int64) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "message_id", messageID)
		return
	}

	event := models.MessageEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		MessageID: messageID,
		UserID:    userID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal message event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish message event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Message event published", "event_id", event.EventID, "message_id", messageID)
	}
}

// Post validates and stores a new message for the user.
func (s *MessageService) Post(ctx context.Context, userID int64, text string) (*models.MessageDB, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if len([]rune(trimmed)) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	id, err := s.writeRepo.Save(ctx, userID, trimmed)
	if err != nil {
		logger.Log.Errorw("failed to save message", "userID", userID, "error", err)
		return nil, err
	}

	s.publishMessageEvent(ctx, id, userID)

	return &models.MessageDB{
		ID:     id,
		UserID: userID,
		Text:   trimmed,
	}, nil
}

// ListForUser returns the user's messages, newest first.
func (s *MessageService) ListForUser(ctx context.Context, userID int64) ([]models.MessageDB, error) {
	return s.readRepo.ListByUserID(ctx, userID)
}

// CountForUser returns how many messages the user has posted.
func (s *MessageService) CountForUser(ctx context.Context, userID int64) (int64, error) {
	return s.readRepo.CountByUserID(ctx, userID)
}
