package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApplicationLogger defines the interface for structured application logging.
type ApplicationLogger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)
	ErrorWithError(ctx context.Context, err error, message string, fields Fields)
	WithComponent(component string) ApplicationLogger
}

// Fields represents structured logging fields.
type Fields map[string]interface{}

// Config represents logger configuration.
type Config struct {
	Level  string
	Format string // json, text
	Output string // stdout, stderr, buffer (for testing)
}

// LogEntry represents the structure of log entries.
type LogEntry struct {
	Timestamp     string                 `json:"timestamp"`
	Level         string                 `json:"level"`
	Message       string                 `json:"message"`
	CorrelationID string                 `json:"correlation_id"`
	Component     string                 `json:"component"`
	Error         string                 `json:"error,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// contextKey is the key type for correlation ID context values.
type contextKey string

// CorrelationIDKey carries the request correlation ID through a context.
const CorrelationIDKey contextKey = "correlation_id"

// applicationLoggerImpl implements ApplicationLogger.
type applicationLoggerImpl struct {
	config    Config
	component string
	buffer    *bytes.Buffer // For testing
	logger    *log.Logger
}

// NewApplicationLogger creates a new application logger.
func NewApplicationLogger(config Config) (ApplicationLogger, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	logger := &applicationLoggerImpl{config: config}

	switch config.Output {
	case "buffer":
		logger.buffer = &bytes.Buffer{}
		logger.logger = log.New(logger.buffer, "", 0)
	case "stderr":
		logger.logger = log.New(os.Stderr, "", 0)
	case "stdout":
		fallthrough
	default:
		logger.logger = log.New(os.Stdout, "", 0)
	}

	return logger, nil
}

// validateConfig validates logger configuration.
func validateConfig(config Config) error {
	validLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	levelValid := false
	for _, level := range validLevels {
		if strings.ToUpper(config.Level) == level {
			levelValid = true
			break
		}
	}
	if !levelValid {
		return fmt.Errorf("invalid log level: %s", config.Level)
	}

	validFormats := []string{"json", "text"}
	formatValid := false
	for _, format := range validFormats {
		if config.Format == format {
			formatValid = true
			break
		}
	}
	if !formatValid {
		return fmt.Errorf("invalid log format: %s", config.Format)
	}

	validOutputs := []string{"stdout", "stderr", "buffer"}
	outputValid := false
	for _, output := range validOutputs {
		if config.Output == output {
			outputValid = true
			break
		}
	}
	if !outputValid {
		return fmt.Errorf("invalid log output: %s", config.Output)
	}

	return nil
}

// shouldLog determines if a message should be logged based on level.
func (l *applicationLoggerImpl) shouldLog(level string) bool {
	levels := map[string]int{
		"DEBUG": 0,
		"INFO":  1,
		"WARN":  2,
		"ERROR": 3,
	}

	configLevel := levels[strings.ToUpper(l.config.Level)]
	messageLevel := levels[level]

	return messageLevel >= configLevel
}

// Debug logs debug messages.
func (l *applicationLoggerImpl) Debug(ctx context.Context, message string, fields Fields) {
	if l.shouldLog("DEBUG") {
		l.logEntry(ctx, "DEBUG", message, "", fields)
	}
}

// Info logs info messages.
func (l *applicationLoggerImpl) Info(ctx context.Context, message string, fields Fields) {
	if l.shouldLog("INFO") {
		l.logEntry(ctx, "INFO", message, "", fields)
	}
}

// Warn logs warning messages.
func (l *applicationLoggerImpl) Warn(ctx context.Context, message string, fields Fields) {
	if l.shouldLog("WARN") {
		l.logEntry(ctx, "WARN", message, "", fields)
	}
}

// Error logs error messages.
func (l *applicationLoggerImpl) Error(ctx context.Context, message string, fields Fields) {
	if l.shouldLog("ERROR") {
		l.logEntry(ctx, "ERROR", message, "", fields)
	}
}

// ErrorWithError logs error messages with an error object.
func (l *applicationLoggerImpl) ErrorWithError(ctx context.Context, err error, message string, fields Fields) {
	if l.shouldLog("ERROR") {
		l.logEntry(ctx, "ERROR", message, err.Error(), fields)
	}
}

// WithComponent creates a new logger instance with a specific component.
func (l *applicationLoggerImpl) WithComponent(component string) ApplicationLogger {
	return &applicationLoggerImpl{
		config:    l.config,
		component: component,
		buffer:    l.buffer,
		logger:    l.logger,
	}
}

// GetOutput returns the captured output when the logger writes to a buffer.
func (l *applicationLoggerImpl) GetOutput() string {
	if l.buffer == nil {
		return ""
	}
	return l.buffer.String()
}

// logEntry creates and logs a structured log entry.
func (l *applicationLoggerImpl) logEntry(ctx context.Context, level, message, errorStr string, fields Fields) {
	component := l.component
	if component == "" {
		component = "default"
	}

	entry := &LogEntry{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Level:         level,
		Message:       message,
		CorrelationID: getOrGenerateCorrelationID(ctx),
		Component:     component,
		Error:         errorStr,
	}
	if len(fields) > 0 {
		entry.Metadata = fields
	}

	if l.config.Format == "json" {
		jsonData, err := json.Marshal(entry)
		if err != nil {
			return
		}
		l.logger.Println(string(jsonData))
	} else {
		l.logger.Printf("[%s] %s %s: %s", entry.Timestamp, entry.Level, entry.Component, entry.Message)
	}
}

// getOrGenerateCorrelationID gets a correlation ID from context or generates a new one.
func getOrGenerateCorrelationID(ctx context.Context) string {
	if id := CorrelationIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}

// WithCorrelationID returns a context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// CorrelationIDFromContext extracts the correlation ID from a context, or ""
// when none is set.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}
