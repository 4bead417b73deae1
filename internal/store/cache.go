package store

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/wordmath/internal/logging"
)

// CachedProblemRepo fronts a ProblemRepo with a Redis read-through cache
// for sessions. Sessions never change after creation, so entries are only
// ever added or expired. Cache errors fall through to the inner repo.
type CachedProblemRepo struct {
	ProblemRepo
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
}

// NewCachedProblemRepo wraps inner with a Redis cache whose entries live
// for roughly ttl.
func NewCachedProblemRepo(inner ProblemRepo, client *redis.Client, ttl time.Duration) *CachedProblemRepo {
	return &CachedProblemRepo{ProblemRepo: inner, client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func (c *CachedProblemRepo) CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*ProblemSession, error) {
	sess, err := c.ProblemRepo.CreateSession(ctx, problemText, correctAnswer)
	if err != nil {
		return nil, err
	}
	c.put(ctx, sess)
	return sess, nil
}

func (c *CachedProblemRepo) GetSession(ctx context.Context, id string) (*ProblemSession, error) {
	if sess, ok := c.get(ctx, id); ok {
		return sess, nil
	}

	v, err, _ := c.sf.Do(id, func() (any, error) {
		if sess, ok := c.get(ctx, id); ok {
			return sess, nil
		}
		sess, err := c.ProblemRepo.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		c.put(ctx, sess)
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ProblemSession), nil
}

func (c *CachedProblemRepo) get(ctx context.Context, id string) (*ProblemSession, bool) {
	raw, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.FromContext(ctx).Warn("session cache read failed", "session_id", id, "error", err)
		}
		return nil, false
	}

	var sess ProblemSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		logging.FromContext(ctx).Warn("session cache entry corrupt", "session_id", id, "error", err)
		return nil, false
	}
	return &sess, true
}

func (c *CachedProblemRepo) put(ctx context.Context, sess *ProblemSession) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, sessionKey(sess.ID), raw, c.ttlWithJitter()).Err(); err != nil {
		logging.FromContext(ctx).Warn("session cache write failed", "session_id", sess.ID, "error", err)
	}
}

// ttlWithJitter spreads expiry by up to 10% so entries written together
// do not expire together.
func (c *CachedProblemRepo) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int64N(jitterMax+1))
}

func sessionKey(id string) string {
	return "wordmath:session:" + id
}

// cachedStore swaps a Store's ProblemRepo for a cached one.
type cachedStore struct {
	Store
	problems *CachedProblemRepo
	client   *redis.Client
}

// WithCache returns s with its ProblemRepo fronted by Redis. Closing the
// returned store also closes client.
func WithCache(s Store, client *redis.Client, ttl time.Duration) Store {
	return &cachedStore{
		Store:    s,
		problems: NewCachedProblemRepo(s.ProblemRepo(), client, ttl),
		client:   client,
	}
}

func (s *cachedStore) ProblemRepo() ProblemRepo { return s.problems }

func (s *cachedStore) Close() error {
	return errors.Join(s.client.Close(), s.Store.Close())
}
