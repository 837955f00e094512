package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/observability"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

const (
	backendRedis = "redis"
	redisPrefix  = "amplistack:diagram:"
)

// RedisStore keeps snapshots in Redis with an expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to redisURL and checks the connection.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse redis url")
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis")
	}
	return NewRedisStoreWithClient(client, ttl), nil
}

// NewRedisStoreWithClient creates a store from an existing client. A
// non-positive ttl falls back to [DefaultTTL].
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: redisPrefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

// Get loads the snapshot saved under id.
func (s *RedisStore) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	if err := errors.ValidateDiagramID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		observability.Store().OnStoreMiss(ctx, backendRedis)
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load snapshot")
	}
	snap, _, err := decode(data)
	if err != nil {
		return nil, err
	}
	observability.Store().OnStoreHit(ctx, backendRedis)
	return snap, nil
}

// Put saves snap under id and resets its expiry.
func (s *RedisStore) Put(ctx context.Context, id string, snap *snapshot.Snapshot) error {
	if err := errors.ValidateDiagramID(id); err != nil {
		return err
	}
	data, err := encode(id, snap, s.ttl)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save snapshot")
	}
	observability.Store().OnStorePut(ctx, backendRedis, len(data))
	return nil
}

// Delete removes id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error { return s.client.Ping(ctx).Err() }

var _ Store = (*RedisStore)(nil)
