package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-user-admin/internal/models"
)

func TestViewCacheRepository(t *testing.T) {
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewViewCacheRepository(rdb, 2*time.Second)

	t.Run("Save and get draft", func(t *testing.T) {
		draft := &models.Draft{
			ID:     "d1",
			Mode:   models.ModeUpdate,
			UserID: "42",
			Form:   models.UserForm{Name: "Ann", Languages: models.NewLanguageSet("English")},
			Errors: map[string]string{"email": "Invalid email address"},
			Image:  &models.Upload{Filename: "a.png", ContentType: "image/png", Data: []byte("PNG")},
		}
		require.NoError(t, repo.SaveDraft(ctx, draft))

		got, err := repo.GetDraft(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, draft, got)
	})

	t.Run("Missing draft", func(t *testing.T) {
		_, err := repo.GetDraft(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Submit lock is exclusive", func(t *testing.T) {
		held, err := repo.SubmitInFlight(ctx, "d2")
		require.NoError(t, err)
		assert.False(t, held)

		ok, err := repo.AcquireSubmit(ctx, "d2")
		require.NoError(t, err)
		assert.True(t, ok)

		held, err = repo.SubmitInFlight(ctx, "d2")
		require.NoError(t, err)
		assert.True(t, held)

		ok, err = repo.AcquireSubmit(ctx, "d2")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, repo.ReleaseSubmit(ctx, "d2"))
		held, err = repo.SubmitInFlight(ctx, "d2")
		require.NoError(t, err)
		assert.False(t, held)

		ok, err = repo.AcquireSubmit(ctx, "d2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Delete draft drops lock", func(t *testing.T) {
		require.NoError(t, repo.SaveDraft(ctx, &models.Draft{ID: "d3"}))
		ok, err := repo.AcquireSubmit(ctx, "d3")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, repo.DeleteDraft(ctx, "d3"))

		_, err = repo.GetDraft(ctx, "d3")
		assert.ErrorIs(t, err, ErrNotFound)
		ok, err = repo.AcquireSubmit(ctx, "d3")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Save and get list view", func(t *testing.T) {
		view := &models.ListView{ID: "v1", Users: []models.User{{ID: "1", Name: "Ann"}}, Notice: "x"}
		require.NoError(t, repo.SaveListView(ctx, view))

		got, err := repo.GetListView(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("Views expire", func(t *testing.T) {
		require.NoError(t, repo.SaveListView(ctx, &models.ListView{ID: "v2"}))

		time.Sleep(3 * time.Second)

		_, err := repo.GetListView(ctx, "v2")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
