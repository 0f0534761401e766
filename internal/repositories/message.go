package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/models"
)

// MessageReadRepository handles message read operations.
type MessageReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewMessageReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *MessageReadRepository {
	return &MessageReadRepository{db: db, txGetter: txGetter}
}

func (r *MessageReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// ListByUserID returns the user's messages, newest first.
func (r *MessageReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.MessageDB, error) {
	const query = `
		SELECT id, user_id, text, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	messages := []models.MessageDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &messages, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(messages),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return messages, nil
}

// CountByUserID returns the number of messages the user has posted.
func (r *MessageReadRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM messages WHERE user_id = $1
	`

	var count int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &count, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", count,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return count, nil
}

// MessageWriteRepository handles message write operations.
type MessageWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewMessageWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *MessageWriteRepository {
	return &MessageWriteRepository{db: db, txGetter: txGetter}
}

func (r *MessageWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new message and returns the assigned identifier.
// Referencing a missing user returns ErrReferenceNotFound.
func (r *MessageWriteRepository) Save(ctx context.Context, userID int64, text string) (int64, error) {
	const query = `
		INSERT INTO messages (user_id, text, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id
	`

	var id int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &id, query, userID, text)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, text},
		"result", id,
		"error", err,
	)

	if err != nil {
		return 0, mapPgError(err)
	}

	return id, nil
}
