package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// NewJSONLogger creates a new JSON logger
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return NewLogger(writer, level, FormatJSON)
}

// NewLogger creates a logger writing entries in the given format. An
// unknown format falls back to JSON.
func NewLogger(writer io.Writer, level Level, format Format) *JSONLogger {
	if format != FormatText {
		format = FormatJSON
	}
	return &JSONLogger{
		writer: writer,
		format: format,
		level:  &levelVar{level: level},
		fields: make([]Field, 0),
		mu:     &sync.Mutex{},
	}
}

// log is the internal logging method
func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.level.get() {
		return
	}

	// Later fields override earlier ones with the same key
	fieldMap := make(map[string]any, len(l.fields)+len(fields))
	for _, f := range l.fields {
		fieldMap[f.Key] = f.Value
	}
	for _, f := range fields {
		fieldMap[f.Key] = f.Value
	}

	now := time.Now().Format(time.RFC3339Nano)
	var data []byte
	if l.format == FormatText {
		data = []byte(formatText(now, level, msg, fieldMap))
	} else {
		entry := LogEntry{
			Time:    now,
			Level:   level.String(),
			Message: msg,
		}
		if len(fieldMap) > 0 {
			entry.Fields = fieldMap
		}
		var err error
		data, err = json.Marshal(entry)
		if err != nil {
			l.mu.Lock()
			fmt.Fprintf(l.writer, "[ERROR] Failed to marshal log entry: %v\n", err)
			l.mu.Unlock()
			return
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Write(append(data, '\n'))
}

func formatText(now string, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", now, level, msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fmt.Sprint(fields[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	return b.String()
}

// Debug logs a debug-level message
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info-level message
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning-level message
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error-level message
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With creates a child logger with the given fields pre-set. The child
// shares the writer and the level of its parent.
func (l *JSONLogger) With(fields ...Field) Logger {
	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &JSONLogger{
		writer: l.writer,
		format: l.format,
		level:  l.level,
		fields: newFields,
		mu:     l.mu,
	}
}

// SetLevel sets the minimum log level
func (l *JSONLogger) SetLevel(level Level) {
	l.level.set(level)
}

// GetLevel returns the current log level
func (l *JSONLogger) GetLevel() Level {
	return l.level.get()
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// End logs the operation at debug level with its duration and returns it
func (t *TimedOperation) End(fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug(t.msg, t.with(Latency(elapsed), fields)...)
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, t.with(Latency(elapsed), []Field{Error(err)})...)
	return elapsed
}

func (t *TimedOperation) with(first Field, rest []Field) []Field {
	out := make([]Field, 0, len(t.fields)+1+len(rest))
	out = append(out, t.fields...)
	out = append(out, first)
	return append(out, rest...)
}
