package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/pigeon/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows the current pipeline stage and the time spent so far on a
// single terminal line. It stops on its own when ctx is cancelled.
type Spinner struct {
	w       io.Writer
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	start   time.Time

	mu      sync.Mutex
	message string
	width   int // widest line written, for clearing
}

// newSpinnerWithContext creates a spinner on stderr that stops when ctx is
// cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		parent:  ctx,
		ctx:     spinnerCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.start = time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := time.Since(s.start).Truncate(100 * time.Millisecond)
	line := fmt.Sprintf("%s %s %s", frame, s.message, elapsed)
	if n := len(line); n > s.width {
		s.width = n
	}
	fmt.Fprintf(s.w, "\r%s %s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), StyleDim.Render(elapsed.String()))
}

// Stop halts the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.cancel()
	if !s.start.IsZero() {
		<-s.stopped
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// StopWithSuccess stops the spinner and shows a success message. After an
// interrupt it prints nothing and returns the context error instead.
func (s *Spinner) StopWithSuccess(message string) error {
	s.Stop()
	if s.Cancelled() {
		return s.parent.Err()
	}
	printSuccess("%s", message)
	return nil
}

// Cancelled reports whether the spinner stopped because its parent context
// was cancelled rather than through Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

// spinnerHooks moves the spinner message along with the pipeline stages.
type spinnerHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

func (h spinnerHooks) OnLoadStart(_ context.Context, graphPath string) {
	h.spinner.SetMessage("Loading " + graphPath + "...")
}

func (h spinnerHooks) OnLayoutStart(_ context.Context, algorithm string, nodeCount int) {
	h.spinner.SetMessage(fmt.Sprintf("Laying out %d nodes with %s...", nodeCount, algorithm))
}

func (h spinnerHooks) OnRenderStart(_ context.Context, output string, labelCount int) {
	h.spinner.SetMessage(fmt.Sprintf("Drawing %d labels to %s...", labelCount, output))
}
