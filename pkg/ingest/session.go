package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amplistack/amplistack/pkg/diagram"
	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/observability"
)

// Sender sends a transcript and returns the proposed graph. [Client]
// implements it.
type Sender interface {
	Send(ctx context.Context, transcript string) (*Payload, error)
}

// Session replaces the content of one diagram with AI proposals. It allows
// a single request in flight.
type Session struct {
	sender  Sender
	diagram *diagram.State
	log     *log.Logger
	busy    atomic.Bool
}

// NewSession binds sender to d. A nil logger means log.Default().
func NewSession(sender Sender, d *diagram.State, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{sender: sender, diagram: d, log: logger}
}

// Busy reports whether a request is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }

// Run sends transcript and, once a usable answer is decoded, clears the
// diagram and applies the answer. Any failure before that point leaves the
// diagram untouched. A call made while another is running fails with
// errors.ErrCodeInvalidState.
func (s *Session) Run(ctx context.Context, transcript string) (Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Result{}, errors.New(errors.ErrCodeInvalidState, "an AI request is already running")
	}
	defer s.busy.Store(false)

	start := time.Now()
	observability.Ingest().OnIngestStart(ctx, len(transcript))

	p, err := s.sender.Send(ctx, transcript)
	if err != nil {
		s.log.Error("AI assist failed", "err", err)
		observability.Ingest().OnIngestComplete(ctx, 0, 0, 0, time.Since(start), err)
		return Result{}, err
	}

	s.diagram.Clear()
	res := Apply(s.diagram, p)
	for _, sk := range res.Skipped {
		s.log.Warn("skipped AI entry", "kind", sk.Kind, "ref", sk.Ref, "err", sk.Err)
	}
	dropped := len(res.Skipped) + p.Malformed
	s.log.Info("applied AI diagram",
		"nodes", len(res.Nodes),
		"connections", len(res.Connections),
		"notes", res.Notes,
		"dropped", dropped)
	observability.Ingest().OnIngestComplete(ctx, len(res.Nodes), len(res.Connections), dropped, time.Since(start), nil)
	return res, nil
}
