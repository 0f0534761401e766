package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewSessionRepository(rdb, 2*time.Second)

	t.Run("Set and Get session", func(t *testing.T) {
		err := repo.Set(ctx, "sid-1", 42)
		assert.NoError(t, err)

		userID, err := repo.Get(ctx, "sid-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("Get missing session returns ErrNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete removes session", func(t *testing.T) {
		err := repo.Set(ctx, "sid-2", 7)
		assert.NoError(t, err)

		err = repo.Delete(ctx, "sid-2")
		assert.NoError(t, err)

		_, err = repo.Get(ctx, "sid-2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete absent session is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "never-set"))
	})

	t.Run("Session expires", func(t *testing.T) {
		err := repo.Set(ctx, "sid-3", 9)
		assert.NoError(t, err)

		time.Sleep(3 * time.Second)

		_, err = repo.Get(ctx, "sid-3")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
