package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/warbler-app/warbler/internal/models"
	"github.com/warbler-app/warbler/internal/services"
)

func TestMessageService_Post(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("stores message and publishes event", func(t *testing.T) {
		writer := services.NewMockMessageWriter(ctrl)
		reader := services.NewMockMessageReader(ctrl)
		kafkaWriter := services.NewMockKafkaWriter(ctrl)

		writer.EXPECT().Save(gomock.Any(), int64(1), "hello warbler").Return(int64(10), nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		svc := services.NewMessageService(writer, reader, kafkaWriter)
		msg, err := svc.Post(context.Background(), 1, "hello warbler")
		assert.NoError(t, err)
		assert.Equal(t, int64(10), msg.ID)
		assert.Equal(t, int64(1), msg.UserID)
		assert.Equal(t, "hello warbler", msg.Text)
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		writer := services.NewMockMessageWriter(ctrl)
		reader := services.NewMockMessageReader(ctrl)

		writer.EXPECT().Save(gomock.Any(), int64(1), "hi").Return(int64(11), nil)

		svc := services.NewMessageService(writer, reader, nil)
		msg, err := svc.Post(context.Background(), 1, "  hi  ")
		assert.NoError(t, err)
		assert.Equal(t, "hi", msg.Text)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		writer := services.NewMockMessageWriter(ctrl)
		reader := services.NewMockMessageReader(ctrl)

		svc := services.NewMessageService(writer, reader, nil)
		msg, err := svc.Post(context.Background(), 1, "   ")
		assert.ErrorIs(t, err, services.ErrEmptyMessage)
		assert.Nil(t, msg)
	})

	t.Run("too long rejected", func(t *testing.T) {
		writer := services.NewMockMessageWriter(ctrl)
		reader := services.NewMockMessageReader(ctrl)

		svc := services.NewMessageService(writer, reader, nil)
		msg, err := svc.Post(context.Background(), 1, strings.Repeat("a", services.MaxMessageLength+1))
		assert.ErrorIs(t, err, services.ErrMessageTooLong)
		assert.Nil(t, msg)
	})

	t.Run("store error propagated", func(t *testing.T) {
		writer := services.NewMockMessageWriter(ctrl)
		reader := services.NewMockMessageReader(ctrl)

		writer.EXPECT().Save(gomock.Any(), int64(1), "hello").Return(int64(0), errors.New("db error"))

		svc := services.NewMessageService(writer, reader, nil)
		msg, err := svc.Post(context.Background(), 1, "hello")
		assert.EqualError(t, err, "db error")
		assert.Nil(t, msg)
	})
}

func TestMessageService_ListAndCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := services.NewMockMessageWriter(ctrl)
	reader := services.NewMockMessageReader(ctrl)

	messages := []models.MessageDB{{ID: 1, UserID: 1, Text: "hi"}}
	reader.EXPECT().ListByUserID(gomock.Any(), int64(1)).Return(messages, nil)
	reader.EXPECT().CountByUserID(gomock.Any(), int64(1)).Return(int64(1), nil)

	svc := services.NewMessageService(writer, reader, nil)

	got, err := svc.ListForUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, messages, got)

	count, err := svc.CountForUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
