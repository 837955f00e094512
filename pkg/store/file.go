package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/observability"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

const backendFile = "file"

// FileStore keeps snapshots as JSON files in a directory. Files are spread
// over subdirectories named after the first two hex digits of the hashed id.
type FileStore struct {
	mu  sync.RWMutex
	dir string
	ttl time.Duration
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
// A positive ttl makes snapshots expire; zero keeps them forever.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir, ttl: ttl}, nil
}

// Get reads the snapshot saved under id. Expired or unreadable entries are
// removed and reported as missing.
func (s *FileStore) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	if err := errors.ValidateDiagramID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	path := s.path(id)
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if os.IsNotExist(err) {
		observability.Store().OnStoreMiss(ctx, backendFile)
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	snap, rec, err := decode(data)
	if err != nil || rec.expired(time.Now()) {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		observability.Store().OnStoreMiss(ctx, backendFile)
		return nil, notFound(id)
	}
	observability.Store().OnStoreHit(ctx, backendFile)
	return snap, nil
}

// Put writes snap under id.
func (s *FileStore) Put(ctx context.Context, id string, snap *snapshot.Snapshot) error {
	if err := errors.ValidateDiagramID(id); err != nil {
		return err
	}
	data, err := encode(id, snap, s.ttl)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path := s.path(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	observability.Store().OnStorePut(ctx, backendFile, len(data))
	return nil
}

// Delete removes id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateDiagramID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Dir returns the root directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id string) string {
	hash := Hash([]byte(id))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

var _ Store = (*FileStore)(nil)
