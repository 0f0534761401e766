package repositories

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func seedUsers(t *testing.T, db *sqlx.DB, usernames ...string) []int64 {
	t.Helper()

	writeRepo := NewUserWriteRepository(db, nil)
	ids := make([]int64, 0, len(usernames))
	for _, name := range usernames {
		id, err := writeRepo.Save(context.Background(), name, name+"@example.com", "hash", "/static/images/default-pic.png")
		assert.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestFollowWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ids := seedUsers(t, db, "alice", "bob")
	writeRepo := NewFollowWriteRepository(db, nil)
	readRepo := NewFollowReadRepository(db, nil)
	ctx := context.Background()

	t.Run("CreatesEdge", func(t *testing.T) {
		assert.NoError(t, writeRepo.Save(ctx, ids[0], ids[1]))

		exists, err := readRepo.Exists(ctx, ids[0], ids[1])
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("EdgeIsDirectional", func(t *testing.T) {
		exists, err := readRepo.Exists(ctx, ids[1], ids[0])
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("DuplicateIsNoop", func(t *testing.T) {
		assert.NoError(t, writeRepo.Save(ctx, ids[0], ids[1]))

		var count int
		assert.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM follows"))
		assert.Equal(t, 1, count)
	})

	t.Run("MissingUser", func(t *testing.T) {
		err := writeRepo.Save(ctx, ids[0], 9999)
		assert.ErrorIs(t, err, ErrReferenceNotFound)
	})
}

func TestFollowWriteRepository_Delete(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ids := seedUsers(t, db, "alice", "bob")
	writeRepo := NewFollowWriteRepository(db, nil)
	readRepo := NewFollowReadRepository(db, nil)
	ctx := context.Background()

	assert.NoError(t, writeRepo.Save(ctx, ids[0], ids[1]))
	assert.NoError(t, writeRepo.Delete(ctx, ids[0], ids[1]))

	exists, err := readRepo.Exists(ctx, ids[0], ids[1])
	assert.NoError(t, err)
	assert.False(t, exists)

	// deleting an absent edge is fine
	assert.NoError(t, writeRepo.Delete(ctx, ids[0], ids[1]))
}

func TestFollowReadRepository_Lists(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ids := seedUsers(t, db, "alice", "bob", "carol")
	writeRepo := NewFollowWriteRepository(db, nil)
	readRepo := NewFollowReadRepository(db, nil)
	ctx := context.Background()

	// bob and carol follow alice; alice follows bob
	assert.NoError(t, writeRepo.Save(ctx, ids[1], ids[0]))
	assert.NoError(t, writeRepo.Save(ctx, ids[2], ids[0]))
	assert.NoError(t, writeRepo.Save(ctx, ids[0], ids[1]))

	t.Run("Followers", func(t *testing.T) {
		followers, err := readRepo.ListFollowers(ctx, ids[0])
		assert.NoError(t, err)
		assert.Len(t, followers, 2)
		assert.Equal(t, "bob", followers[0].Username)
		assert.Equal(t, "carol", followers[1].Username)
	})

	t.Run("Following", func(t *testing.T) {
		following, err := readRepo.ListFollowing(ctx, ids[0])
		assert.NoError(t, err)
		assert.Len(t, following, 1)
		assert.Equal(t, "bob", following[0].Username)
	})

	t.Run("FreshUserEmpty", func(t *testing.T) {
		followers, err := readRepo.ListFollowers(ctx, ids[2])
		assert.NoError(t, err)
		assert.Empty(t, followers)
	})
}

func TestFollowWriteRepository_SelfEdgeRejected(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ids := seedUsers(t, db, "alice")
	writeRepo := NewFollowWriteRepository(db, nil)

	err := writeRepo.Save(context.Background(), ids[0], ids[0])
	assert.Error(t, err)
}
