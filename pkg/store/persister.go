package store

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amplistack/amplistack/pkg/snapshot"
)

// persistTimeout bounds one save.
const persistTimeout = 5 * time.Second

// Persister saves every snapshot it receives under a fixed id. It satisfies
// the diagram persister interface.
type Persister struct {
	store Store
	id    string
	log   *log.Logger
}

// PersisterOption configures a [Persister].
type PersisterOption func(*Persister)

// WithPersistLogger sets the logger. Defaults to log.Default().
func WithPersistLogger(l *log.Logger) PersisterOption {
	return func(p *Persister) { p.log = l }
}

// NewPersister binds st and id.
func NewPersister(st Store, id string, opts ...PersisterOption) *Persister {
	p := &Persister{store: st, id: id}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = log.Default()
	}
	return p
}

// ID returns the diagram id snapshots are saved under.
func (p *Persister) ID() string { return p.id }

// Persist saves snap. The error is returned for the caller to log.
func (p *Persister) Persist(snap *snapshot.Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := p.store.Put(ctx, p.id, snap); err != nil {
		p.log.Debug("save failed", "id", p.id, "err", err)
		return err
	}
	p.log.Debug("saved diagram", "id", p.id)
	return nil
}
