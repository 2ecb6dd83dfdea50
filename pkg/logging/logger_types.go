package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level represents a log level
type Level int

const (
	// DebugLevel logs per-pass detail and is usually disabled
	DebugLevel Level = iota
	// InfoLevel is the default logging priority
	InfoLevel
	// WarnLevel marks degraded results such as a cancelled run
	WarnLevel
	// ErrorLevel marks failed runs
	ErrorLevel
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, falling back to InfoLevel
func ParseLevel(s string) Level {
	level, err := LevelFromString(s)
	if err != nil {
		return InfoLevel
	}
	return level
}

// LevelFromString converts a string to a Level and rejects unknown names.
func LevelFromString(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Format selects how entries are written.
type Format string

const (
	// FormatJSON writes one JSON object per line
	FormatJSON Format = "json"
	// FormatText writes "time LEVEL msg key=value ..." lines
	FormatText Format = "text"
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logger threaded through runs, passes and the
// CLI. Implementations must be safe for concurrent use; children created
// by With share their parent's level.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// JSONLogger implements Logger with JSON or text output. Children created
// by With share the parent's writer lock.
type JSONLogger struct {
	writer io.Writer
	format Format
	level  *levelVar
	fields []Field
	mu     *sync.Mutex
}

// levelVar is shared between a logger and its children.
type levelVar struct {
	mu    sync.RWMutex
	level Level
}

func (v *levelVar) get() Level {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.level
}

func (v *levelVar) set(level Level) {
	v.mu.Lock()
	v.level = level
	v.mu.Unlock()
}

// LogEntry represents a single log entry in JSON format
type LogEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NopLogger discards everything. The progress view uses it so log lines
// never tear the terminal.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (n NopLogger) With(...Field) Logger { return n }
func (NopLogger) SetLevel(Level)         {}
func (NopLogger) GetLevel() Level        { return InfoLevel }

// NewNopLogger returns a Logger that discards all output.
func NewNopLogger() Logger { return NopLogger{} }

// TimedOperation logs one timed step, such as an analysis pass, when it ends.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}
