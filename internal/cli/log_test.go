package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		emit    func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("parsed") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("parsed") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("parsed") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("dropping unsupported type") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("wrote output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Rendered 2 symbols")

	out := buf.String()
	if !strings.Contains(out, "Rendered 2 symbols (") {
		t.Errorf("expected message with elapsed time, got %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("expected the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("expected log.Default() without an attached logger")
	}
	//nolint:staticcheck // nil context is tolerated
	if got := loggerFromContext(nil); got != log.Default() {
		t.Error("expected log.Default() for a nil context")
	}
}

func TestCommandLogLevel(t *testing.T) {
	isolate(t)
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)

	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"inspect", "--json", t.TempDir()})
	if err := root.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(buf.String(), "no HDL sources found") {
		t.Errorf("expected the empty-directory warning in the log, got %q", buf.String())
	}
}
