// Package cli implements the amplistack command-line interface.
//
// Every command works on one diagram file, loaded at start and written back
// after each edit. The file holds the same JSON snapshot the URL codec and
// the shared stores carry, so a diagram moves freely between them.
//
// # Commands
//
//   - catalog: list layers, items and models
//   - node, entry, conn, model, title, badge, clear: edit the diagram
//   - render, export: write the connection scene as SVG, JSON or DOT
//   - snapshot: share URLs and shared stores
//   - ingest: merge an AI reading of a transcript
//   - serve: run the transcript proxy
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled, timestamped ("14:32:01.45") lines to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step.
type progress struct {
	log   *log.Logger
	start time.Time
}

func newProgress(l *log.Logger) progress {
	return progress{log: l, start: time.Now()}
}

// done logs the outcome of the step with its elapsed time, for example
// "Rendered 3 connections took=4ms".
func (p progress) done(format string, args ...any) {
	p.log.Info(fmt.Sprintf(format, args...), "took", time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command's logger, or log.Default() outside
// a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
