package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/amplistack/amplistack/pkg/errors"
)

func TestSpinnerFinish(t *testing.T) {
	unreachable := errors.New(errors.ErrCodeNetwork, "transcript service unreachable")

	tests := []struct {
		name    string
		err     error
		want    string
		notWant string
	}{
		{"success", nil, iconSuccess + " Applied 4 nodes and 2 connections", iconError},
		{"coded error", unreachable, iconError + " transcript service unreachable", iconSuccess},
		{"plain error", stderrors.New("dial tcp: refused"), iconError + " dial tcp: refused", "Applied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var term, out bytes.Buffer
			s := newSpinner(context.Background(), &term, &out, "Reading transcript...")
			err := s.finish(tt.err, "Applied %d nodes and %d connections", 4, 2)
			if err != tt.err {
				t.Errorf("finish() = %v, want %v", err, tt.err)
			}
			if got := out.String(); !strings.Contains(got, tt.want) {
				t.Errorf("out = %q, want %q", got, tt.want)
			}
			if got := out.String(); strings.Contains(got, tt.notWant) {
				t.Errorf("out = %q, should not contain %q", got, tt.notWant)
			}
			if strings.Contains(out.String(), "Reading transcript") {
				t.Error("status message leaked into the result output")
			}
		})
	}
}

func TestSpinnerAnimatesAndClears(t *testing.T) {
	var term, out bytes.Buffer
	s := newSpinner(context.Background(), &term, &out, "Pushing diagram...")
	time.Sleep(3 * spinnerInterval)
	s.stop()

	got := term.String()
	if !strings.Contains(got, "Pushing diagram...") {
		t.Errorf("term = %q, want the status message", got)
	}
	if !strings.Contains(got, spinnerFrames[0]) {
		t.Errorf("term = %q, want the first frame", got)
	}
	blank := "\r" + strings.Repeat(" ", len("Pushing diagram...")+4) + "\r"
	if !strings.HasSuffix(got, blank) {
		t.Errorf("term should end with a blanked line, got %q", got)
	}
	if out.Len() != 0 {
		t.Errorf("stop() wrote a result line: %q", out.String())
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var term, out bytes.Buffer
	s := newSpinner(ctx, &term, &out, "Fetching diagram...")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after its context ended")
	}
	if err := s.finish(nil, "Fetched %s", "team-plan"); err != nil {
		t.Fatalf("finish() = %v", err)
	}
	if !strings.Contains(out.String(), "Fetched team-plan") {
		t.Errorf("out = %q", out.String())
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	var term, out bytes.Buffer
	s := newSpinner(context.Background(), &term, &out, "Pushing diagram...")
	s.stop()
	s.stop()
	if err := s.finish(nil, "Pushed %s", "abc"); err != nil {
		t.Fatalf("finish() = %v", err)
	}
	if got := strings.Count(out.String(), "Pushed abc"); got != 1 {
		t.Errorf("result printed %d times, want 1", got)
	}
}
