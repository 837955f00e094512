package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/amplistack/amplistack/pkg/errors"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on term while a network call runs, then
// reports the call's outcome on out.
type spinner struct {
	term    io.Writer
	out     io.Writer
	message string

	once    sync.Once
	done    chan struct{}
	stopped chan struct{}
}

// newSpinner starts animating message until the call is finished or ctx
// ends.
func newSpinner(ctx context.Context, term, out io.Writer, message string) *spinner {
	s := &spinner{
		term:    term,
		out:     out,
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.term, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// stop halts the animation and blanks the status line. Safe to call more
// than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.done)
		<-s.stopped
		fmt.Fprintf(s.term, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	})
}

// finish stops the spinner and prints either the user message of err or the
// formatted success line. It returns err unchanged.
func (s *spinner) finish(err error, format string, args ...any) error {
	s.stop()
	if err != nil {
		fmt.Fprintln(s.out, errorLine(errors.UserMessage(err)))
		return err
	}
	fmt.Fprintln(s.out, successLine(fmt.Sprintf(format, args...)))
	return nil
}
