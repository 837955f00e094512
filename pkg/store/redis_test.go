package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/amplistack/amplistack/pkg/errors"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	st, err := NewRedisStore("redis://"+s.Addr(), ttl)
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return st, s
}

func TestRedisStore(t *testing.T) {
	st, s := setupTestRedis(t, time.Hour)
	defer st.Close()

	ctx := context.Background()
	if err := st.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	id := NewID()
	if _, err := st.Get(ctx, id); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("Get missing = %v, want NOT_FOUND", err)
	}
	if err := st.Put(ctx, id, sample()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !s.Exists(redisPrefix + id) {
		t.Errorf("key %s not written", redisPrefix+id)
	}
	if ttl := s.TTL(redisPrefix + id); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	got, err := st.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(sample(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if err := st.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Get(ctx, id); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after delete = %v, want NOT_FOUND", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	st, s := setupTestRedis(t, time.Minute)
	defer st.Close()

	ctx := context.Background()
	if err := st.Put(ctx, "short", sample()); err != nil {
		t.Fatal(err)
	}
	s.FastForward(2 * time.Minute)
	if _, err := st.Get(ctx, "short"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get expired = %v, want NOT_FOUND", err)
	}
}

func TestRedisStoreCorrupt(t *testing.T) {
	st, s := setupTestRedis(t, 0)
	defer st.Close()

	if err := s.Set(redisPrefix+"bad", "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(context.Background(), "bad"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Get corrupt = %v, want INVALID_FORMAT", err)
	}
}

func TestNewRedisStoreBadURL(t *testing.T) {
	if _, err := NewRedisStore("not-a-url", 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewRedisStore = %v, want INVALID_INPUT", err)
	}
}
