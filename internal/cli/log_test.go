package cli

import (
	"bytes"
	"context"
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

	time.Sleep(10 * time.Millisecond)

	prog.done("test completed")

	output := buf.String()
	if output == "" {
		t.Error("progress.done() should produce output")
	}

	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	ctxWithLogger := withLogger(ctx, logger)

	retrieved := loggerFromContext(ctxWithLogger)
	if retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	ctx := context.Background()

	logger := loggerFromContext(ctx)
	if logger == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestLoggerFromContextWithValue(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	customLogger := newLogger(&buf, log.InfoLevel)

	ctx = withLogger(ctx, customLogger)
	retrieved := loggerFromContext(ctx)

	if retrieved != customLogger {
		t.Error("loggerFromContext should return the custom logger")
	}

	retrieved.Info("test")
	if buf.Len() == 0 {
		t.Error("custom logger should write to buffer")
	}
}

func TestProgressDebug(t *testing.T) {
	var buf bytes.Buffer

	newProgress(newLogger(&buf, log.InfoLevel)).debug("parsed")
	if buf.Len() != 0 {
		t.Errorf("debug progress should be hidden at info level: %q", buf.String())
	}

	newProgress(newLogger(&buf, log.DebugLevel)).debug("parsed")
	if !bytes.Contains(buf.Bytes(), []byte("parsed")) {
		t.Errorf("debug progress missing at debug level: %q", buf.String())
	}
}

func TestLoadDocumentLogs(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))

	doc, err := loadDocument(ctx, testDoc)
	if err != nil {
		t.Fatalf("loadDocument: %v", err)
	}
	if doc.path != testDoc {
		t.Errorf("path = %q, want %q", doc.path, testDoc)
	}
	if !bytes.Contains(buf.Bytes(), []byte("2 functions")) {
		t.Errorf("load not logged: %q", buf.String())
	}
	if _, err := doc.function(2); err == nil {
		t.Error("function(2) should be out of range")
	}
}

func TestCacheLogHooks(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))

	var h cacheLogHooks
	h.OnCacheMiss(ctx, "render")
	h.OnCacheSet(ctx, "render", 42)
	h.OnCacheHit(ctx, "render")

	out := buf.String()
	for _, want := range []string{"cache miss", "cache set", "bytes=42", "cache hit", "type=render"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutLogsBackEdges(t *testing.T) {
	tests := []struct {
		name     string
		function int
		want     string
	}{
		{"branch", 0, "2 edges (0 back)"},
		{"loop", 1, "3 edges (1 back)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureStdout(t)
			var buf bytes.Buffer
			ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))
			if err := runLayout(ctx, testDoc, tt.function, "-"); err != nil {
				t.Fatalf("runLayout: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}
