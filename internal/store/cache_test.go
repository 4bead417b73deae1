package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo counts GetSession calls that reach the backing store.
type countingRepo struct {
	ProblemRepo
	mu   sync.Mutex
	gets int
}

func (r *countingRepo) GetSession(ctx context.Context, id string) (*ProblemSession, error) {
	r.mu.Lock()
	r.gets++
	r.mu.Unlock()
	return r.ProblemRepo.GetSession(ctx, id)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedProblemRepo_ReadThrough(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)

	mem := NewMemory()
	sess, err := mem.CreateSession(ctx, "What is 0.5 + 0.25?", 0.75)
	require.NoError(t, err)

	backing := &countingRepo{ProblemRepo: mem}
	repo := NewCachedProblemRepo(backing, client, time.Minute)

	got, err := repo.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.75, got.CorrectAnswer)
	assert.Equal(t, 1, backing.gets)

	got, err = repo.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ProblemText, got.ProblemText)
	assert.Equal(t, 1, backing.gets, "second read should be served from redis")
}

func TestCachedProblemRepo_CreateWritesThrough(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	backing := &countingRepo{ProblemRepo: NewMemory()}
	repo := NewCachedProblemRepo(backing, client, time.Minute)

	sess, err := repo.CreateSession(ctx, "x + 3 = 10. What is x?", 7)
	require.NoError(t, err)
	assert.True(t, mr.Exists(sessionKey(sess.ID)))

	ttl := mr.TTL(sessionKey(sess.ID))
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+6*time.Second)

	got, err := repo.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got.CorrectAnswer)
	assert.Equal(t, 0, backing.gets)
}

func TestCachedProblemRepo_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	repo := NewCachedProblemRepo(NewMemory(), client, time.Minute)

	_, err := repo.GetSession(ctx, "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, mr.Exists(sessionKey("nonexistent")))
}

func TestCachedProblemRepo_RedisDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	mem := NewMemory()
	sess, err := mem.CreateSession(ctx, "p", 3)
	require.NoError(t, err)

	repo := NewCachedProblemRepo(mem, client, time.Minute)
	mr.Close()

	got, err := repo.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.CorrectAnswer)
}

func TestWithCache_ReplacesProblemRepo(t *testing.T) {
	_, client := newTestRedis(t)

	s := WithCache(NewMemory(), client, time.Minute)
	_, ok := s.ProblemRepo().(*CachedProblemRepo)
	assert.True(t, ok)
	assert.NotNil(t, s.EventRepo())
}
