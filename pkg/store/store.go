package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

// DefaultTTL is how long shared snapshots live in expiring backends.
const DefaultTTL = 30 * 24 * time.Hour

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get returns the snapshot saved under id.
	Get(ctx context.Context, id string) (*snapshot.Snapshot, error)

	// Put saves snap under id, replacing any previous snapshot.
	Put(ctx context.Context, id string, snap *snapshot.Snapshot) error

	// Delete removes id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// NewID returns a fresh diagram id.
func NewID() string { return uuid.NewString() }

// record is the stored form of a snapshot.
type record struct {
	ID        string          `json:"id"`
	State     json.RawMessage `json:"state"`
	SavedAt   time.Time       `json:"saved_at"`
	ExpiresAt time.Time       `json:"expires_at,omitzero"`
}

func encode(id string, snap *snapshot.Snapshot, ttl time.Duration) ([]byte, error) {
	if snap == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil snapshot")
	}
	state, err := snapshot.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	rec := record{ID: id, State: state, SavedAt: time.Now().UTC()}
	if ttl > 0 {
		rec.ExpiresAt = rec.SavedAt.Add(ttl)
	}
	return json.Marshal(rec)
}

func decode(data []byte) (*snapshot.Snapshot, record, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, rec, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode stored snapshot")
	}
	snap, err := snapshot.Unmarshal(rec.State)
	if err != nil {
		return nil, rec, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode stored snapshot %q", rec.ID)
	}
	return snap, rec, nil
}

func (r record) expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "no diagram stored under %q", id)
}
