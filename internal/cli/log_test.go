package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("test completed")

	output := buf.String()
	if output == "" {
		t.Error("progress.done() should produce output")
	}

	// Should contain the message
	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestQuietLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)
	quiet := quietLogger(logger)

	quiet.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote info: %q", buf.String())
	}
	quiet.Warn("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Error("quiet logger should still report warnings")
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("parent level changed to %v", logger.GetLevel())
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	h.OnLayoutStart(ctx, "fdp", 12)
	h.OnCacheStale(ctx, "preprocessed_fdp", errors.New("3 entries for 12 nodes"))

	out := buf.String()
	for _, want := range []string{"layout started", "fdp", "cache stale", "3 entries for 12 nodes"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	h = &logHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnRenderComplete(ctx, "pigeon.png", time.Second, nil)
	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level only, got %q", buf.String())
	}
}
