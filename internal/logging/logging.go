// Package logging provides structured JSON logging for the application.
// Every entry is a single JSON object so log aggregators can index level,
// message and event fields without custom parsing.
package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

// LogLevel represents the severity of a log entry.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
)

// Fields holds the structured key/value pairs attached to a log entry.
type Fields = map[string]interface{}

// LogEntry is the JSON structure written for every log line.
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     LogLevel               `json:"level"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger writes structured JSON log entries to an underlying log.Logger.
// The zero value is not usable; create instances with NewLogger.
type Logger struct {
	output *log.Logger
}

// NewLogger creates a logger writing JSON entries to stderr.
func NewLogger() *Logger {
	return &Logger{
		output: log.New(os.Stderr, "", 0),
	}
}

// SetOutput redirects log output, primarily for capturing entries in tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.output = log.New(w, "", 0)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.write(LogLevelInfo, message, nil, fields...)
}

// Warn logs a warning message with optional structured fields.
func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.write(LogLevelWarning, message, nil, fields...)
}

// Error logs an error message. err may be nil when the condition is
// described entirely by the message.
func (l *Logger) Error(message string, err error, fields ...map[string]interface{}) {
	l.write(LogLevelError, message, err, fields...)
}

func (l *Logger) write(level LogLevel, message string, err error, fields ...map[string]interface{}) {
	entry := LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
	}

	if err != nil {
		entry.Error = err.Error()
	}

	if len(fields) > 0 && fields[0] != nil {
		entry.Fields = fields[0]
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// Fall back to plain output rather than dropping the entry.
		l.output.Printf(`{"level":"ERROR","message":"failed to marshal log entry: %v"}`, marshalErr)
		return
	}

	l.output.Println(string(data))
}
