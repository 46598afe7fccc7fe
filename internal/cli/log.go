package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// quietLogger returns a copy of l that only reports warnings and errors,
// used while a spinner owns the terminal line.
func quietLogger(l *log.Logger) *log.Logger {
	q := l.With()
	q.SetLevel(log.WarnLevel)
	return q
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Converted 1200 statements (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, graphPath string) {
	h.logger.Debug("loading inputs", "graph", graphPath)
}

func (h *logHooks) OnLoadComplete(_ context.Context, nodeCount, edgeCount int, d time.Duration, err error) {
	h.logger.Debug("inputs loaded", "nodes", nodeCount, "edges", edgeCount, "duration", d, "error", err)
}

func (h *logHooks) OnLayoutStart(_ context.Context, algorithm string, nodeCount int) {
	h.logger.Debug("layout started", "algorithm", algorithm, "nodes", nodeCount)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, algorithm string, d time.Duration, err error) {
	h.logger.Debug("layout finished", "algorithm", algorithm, "duration", d, "error", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, output string, labelCount int) {
	h.logger.Debug("render started", "output", output, "labels", labelCount)
}

func (h *logHooks) OnRenderComplete(_ context.Context, output string, d time.Duration, err error) {
	h.logger.Debug("render finished", "output", output, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logHooks) OnCacheStale(_ context.Context, key string, reason error) {
	h.logger.Debug("cache stale", "key", key, "reason", reason)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache write", "key", key, "bytes", size)
}
