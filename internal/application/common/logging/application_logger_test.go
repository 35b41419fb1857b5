package logging

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// bufferOutput extracts captured log output from a buffer-backed logger.
func bufferOutput(t *testing.T, logger ApplicationLogger) string {
	t.Helper()
	impl, ok := logger.(interface{ GetOutput() string })
	if !ok {
		t.Fatalf("logger does not expose buffered output")
	}
	return impl.GetOutput()
}

func newBufferLogger(t *testing.T, level string) ApplicationLogger {
	t.Helper()
	logger, err := NewApplicationLogger(Config{Level: level, Format: "json", Output: "buffer"})
	if err != nil {
		t.Fatalf("NewApplicationLogger() unexpected error: %v", err)
	}
	return logger
}

func TestNewApplicationLogger_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:   "valid config",
			config: Config{Level: "INFO", Format: "json", Output: "stdout"},
		},
		{
			name:   "lowercase level accepted",
			config: Config{Level: "debug", Format: "text", Output: "stderr"},
		},
		{
			name:      "invalid level",
			config:    Config{Level: "TRACE", Format: "json", Output: "stdout"},
			wantError: true,
		},
		{
			name:      "invalid format",
			config:    Config{Level: "INFO", Format: "xml", Output: "stdout"},
			wantError: true,
		},
		{
			name:      "invalid output",
			config:    Config{Level: "INFO", Format: "json", Output: "file"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewApplicationLogger(tt.config)
			if tt.wantError && err == nil {
				t.Errorf("NewApplicationLogger() expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("NewApplicationLogger() unexpected error: %v", err)
			}
		})
	}
}

func TestApplicationLogger_JSONEntry(t *testing.T) {
	logger := newBufferLogger(t, "INFO")

	logger.Info(context.Background(), "connection resolved", Fields{"endpoint": "http://localhost:9200/"})

	output := bufferOutput(t, logger)
	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v\noutput: %s", err, output)
	}

	if entry.Level != "INFO" {
		t.Errorf("Level = %q, want INFO", entry.Level)
	}
	if entry.Message != "connection resolved" {
		t.Errorf("Message = %q, want %q", entry.Message, "connection resolved")
	}
	if entry.CorrelationID == "" {
		t.Errorf("CorrelationID is empty, want generated ID")
	}
	if entry.Component != "default" {
		t.Errorf("Component = %q, want default", entry.Component)
	}
	if entry.Metadata["endpoint"] != "http://localhost:9200/" {
		t.Errorf("Metadata[endpoint] = %v, want endpoint URL", entry.Metadata["endpoint"])
	}
}

func TestApplicationLogger_LevelFiltering(t *testing.T) {
	logger := newBufferLogger(t, "WARN")

	logger.Debug(context.Background(), "debug message", nil)
	logger.Info(context.Background(), "info message", nil)
	logger.Warn(context.Background(), "warn message", nil)

	output := bufferOutput(t, logger)
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("messages below WARN were logged: %s", output)
	}
	if !strings.Contains(output, "warn message") {
		t.Errorf("WARN message was not logged: %s", output)
	}
}

func TestApplicationLogger_CorrelationIDFromContext(t *testing.T) {
	logger := newBufferLogger(t, "INFO")

	ctx := WithCorrelationID(context.Background(), "test-correlation-id")
	logger.Info(ctx, "with correlation", nil)

	output := bufferOutput(t, logger)
	if !strings.Contains(output, "test-correlation-id") {
		t.Errorf("correlation ID from context not used: %s", output)
	}
}

func TestApplicationLogger_WithComponent(t *testing.T) {
	logger := newBufferLogger(t, "INFO")

	logger.WithComponent("resolver").Info(context.Background(), "scoped", nil)

	output := bufferOutput(t, logger)
	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Component != "resolver" {
		t.Errorf("Component = %q, want resolver", entry.Component)
	}
}

func TestApplicationLogger_ErrorWithError(t *testing.T) {
	logger := newBufferLogger(t, "ERROR")

	logger.ErrorWithError(context.Background(), errors.New("boom"), "resolution failed", nil)

	output := bufferOutput(t, logger)
	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Error != "boom" {
		t.Errorf("Error = %q, want boom", entry.Error)
	}
}

func TestCorrelationIDFromContext(t *testing.T) {
	if id := CorrelationIDFromContext(context.Background()); id != "" {
		t.Errorf("CorrelationIDFromContext(empty) = %q, want empty", id)
	}

	ctx := WithCorrelationID(context.Background(), "abc")
	if id := CorrelationIDFromContext(ctx); id != "abc" {
		t.Errorf("CorrelationIDFromContext() = %q, want abc", id)
	}
}
