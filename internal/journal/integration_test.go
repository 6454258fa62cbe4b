package journal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These run only against real backends: set TEST_REDIS_ADDR and/or
// TEST_POSTGRES_DSN.

func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: addr})
	store := NewRedisStore(client, time.Minute)
	defer store.Close()
	require.NoError(t, store.Ping(ctx))

	a := sampleAssessment("child-redis")
	a.ID = uuid.New().String()
	require.NoError(t, store.Set(ctx, a))

	ttl, err := client.TTL(ctx, assessmentKey(a.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	got, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ChildID, got.ChildID)

	taken, err := store.Take(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, taken.ID)
	_, err = store.Take(ctx, a.ID)
	assert.ErrorIs(t, err, ErrAssessmentNotFound)

	require.NoError(t, store.Set(ctx, a))
	require.NoError(t, store.Delete(ctx, a.ID))
	_, err = store.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestPostgresRepository_RoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	repo, err := NewPostgresRepositoryFromDSN(ctx, dsn)
	require.NoError(t, err)
	defer repo.Close()

	childID := "child-" + uuid.New().String()
	a := sampleAssessment(childID)
	a.ID = uuid.New().String()
	a.Status = StatusSaved
	a.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.Save(ctx, a))

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ZScore, got.ZScore)
	assert.Equal(t, a.Classification, got.Classification)
	assert.Nil(t, got.DecidedAt)

	list, err := repo.ListByChild(ctx, childID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, err = repo.Get(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}
