package store

import (
	"context"

	"github.com/amplistack/amplistack/pkg/snapshot"
)

// NullStore never stores anything. Every Get misses.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store { return NullStore{} }

// Get always reports the id as missing.
func (NullStore) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	return nil, notFound(id)
}

// Put does nothing.
func (NullStore) Put(ctx context.Context, id string, snap *snapshot.Snapshot) error { return nil }

// Delete does nothing.
func (NullStore) Delete(ctx context.Context, id string) error { return nil }

// Close does nothing.
func (NullStore) Close() error { return nil }
