package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betabounty/betabounty-api/internal/testutil"
)

func TestRedisVelocityRepo_IncrAndCount(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.FlushTestRedis(t, client)

	repo := NewRedisVelocityRepo(client, &RealTimeProvider{})
	ctx := context.Background()
	userID := "velocity-user-a"

	count, err := repo.Count(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)

	for want := 1; want <= 3; want++ {
		got, incrErr := repo.Incr(ctx, userID)
		require.NoError(t, incrErr)
		assert.Equal(t, want, got)
	}

	count, err = repo.Count(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Counters expire with the UTC day plus slack. Every increment carries
	// the TTL, so the key is never persistent.
	key := repo.key(userID, time.Now())
	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 25*time.Hour)
}

func TestRedisVelocityRepo_TTLSetOnEveryIncrement(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.FlushTestRedis(t, client)

	repo := NewRedisVelocityRepo(client, &RealTimeProvider{})
	ctx := context.Background()
	userID := "velocity-user-c"

	_, err := repo.Incr(ctx, userID)
	require.NoError(t, err)

	// Simulate a key that lost its expiry (the failure mode a lone EXPIRE
	// call could leave behind).
	key := repo.key(userID, time.Now())
	require.NoError(t, client.Persist(ctx, key).Err())

	_, err = repo.Incr(ctx, userID)
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "second increment must restore the TTL")
}

func TestRedisVelocityRepo_KeysRollOverAtMidnight(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.FlushTestRedis(t, client)

	day := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	tp := NewFixedTimeProvider(day)
	repo := NewRedisVelocityRepo(client, tp)
	ctx := context.Background()
	userID := "velocity-user-b"

	_, err := repo.Incr(ctx, userID)
	require.NoError(t, err)

	// The next UTC day starts from zero.
	tp.AddTime(2 * time.Hour)
	count, err := repo.Count(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRedisVelocityRepo_RejectsEmptyUser(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.FlushTestRedis(t, client)

	repo := NewRedisVelocityRepo(client, &RealTimeProvider{})

	_, err := repo.Incr(context.Background(), "")
	require.Error(t, err)
	_, err = repo.Count(context.Background(), "")
	require.Error(t, err)
}
