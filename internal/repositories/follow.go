package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/models"
)

// FollowReadRepository answers questions about follow edges.
type FollowReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewFollowReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FollowReadRepository {
	return &FollowReadRepository{db: db, txGetter: txGetter}
}

func (r *FollowReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Exists reports whether the edge (followerID, followedID) is present.
// Edge existence is the sole truth source for the follow predicates.
func (r *FollowReadRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM follows
			WHERE follower_id = $1 AND followed_id = $2
		)
	`

	var exists bool
	err := sqlx.GetContext(ctx, r.executor(ctx), &exists, query, followerID, followedID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{followerID, followedID},
		"result", exists,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return exists, nil
}

// ListFollowers returns the users following userID, ordered by id.
func (r *FollowReadRepository) ListFollowers(ctx context.Context, userID int64) ([]models.UserDB, error) {
	const query = `
		SELECT u.id, u.username, u.email, u.password_hash, u.image_url, u.created_at, u.updated_at
		FROM users u
		JOIN follows f ON f.follower_id = u.id
		WHERE f.followed_id = $1
		ORDER BY u.id
	`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// ListFollowing returns the users userID follows, ordered by id.
func (r *FollowReadRepository) ListFollowing(ctx context.Context, userID int64) ([]models.UserDB, error) {
	const query = `
		SELECT u.id, u.username, u.email, u.password_hash, u.image_url, u.created_at, u.updated_at
		FROM users u
		JOIN follows f ON f.followed_id = u.id
		WHERE f.follower_id = $1
		ORDER BY u.id
	`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// FollowWriteRepository creates and removes follow edges.
type FollowWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewFollowWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FollowWriteRepository {
	return &FollowWriteRepository{db: db, txGetter: txGetter}
}

func (r *FollowWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts the edge (followerID, followedID). Inserting an edge that
// already exists is a no-op. Referencing a missing user returns
// ErrReferenceNotFound.
func (r *FollowWriteRepository) Save(ctx context.Context, followerID, followedID int64) error {
	const query = `
		INSERT INTO follows (follower_id, followed_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, followerID, followedID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{followerID, followedID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return mapPgError(err)
	}

	return nil
}

// Delete removes the edge (followerID, followedID) if present.
func (r *FollowWriteRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	const query = `
		DELETE FROM follows
		WHERE follower_id = $1 AND followed_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, followerID, followedID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{followerID, followedID},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
