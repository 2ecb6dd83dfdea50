package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeLines parses every JSON line written to buf.
func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e), "line %q", line)
		entries = append(entries, e)
	}
	return entries
}

func TestLevelNames(t *testing.T) {
	for level, name := range map[Level]string{
		DebugLevel: "DEBUG",
		InfoLevel:  "INFO",
		WarnLevel:  "WARN",
		ErrorLevel: "ERROR",
		Level(42):  "UNKNOWN",
	} {
		assert.Equal(t, name, level.String())
	}

	for in, want := range map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"Warning": WarnLevel,
		"warn":    WarnLevel,
		"error":   ErrorLevel,
	} {
		got, err := LevelFromString(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := LevelFromString("verbose")
	assert.Error(t, err)
	assert.Equal(t, InfoLevel, ParseLevel("verbose"), "unknown names fall back to info")
}

func TestFieldConstructors(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"Duration", Duration("wait", 1500*time.Millisecond), "wait", "1.5s"},
		{"Error", Error(errors.New("boom")), "error", "boom"},
		{"NilError", Error(nil), "error", nil},
		{"RunID", RunID("abc"), "run_id", "abc"},
		{"Pass", Pass("sweep"), "pass", "sweep"},
		{"Mode", Mode("directed"), "mode", "directed"},
		{"Node", Node(7), "node", 7},
		{"Nodes", Nodes(12), "nodes", 12},
		{"Edges", Edges(30), "edges", 30},
		{"Workers", Workers(4), "workers", 4},
		{"Outcome", Outcome("completed"), "outcome", "completed"},
		{"Progress", Progress(12, 100), "progress", "12/100"},
		{"Path", Path("net.sif"), "path", "net.sif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.field.Key)
			assert.Equal(t, tt.value, tt.field.Value)
		})
	}
}

func TestJSONLogger_RunLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)
	run := logger.With(Component("analysis"), RunID("r-1"))

	run.Info("analysis started", Mode("undirected+paired"), Nodes(4), Workers(2))
	run.Debug("pass finished", Pass("sweep"), Progress(4, 4))
	run.Warn("analysis cancelled", Progress(1, 4))
	run.Error("analysis failed", Error(errors.New("graph adjacency is inconsistent")))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 4)

	levels := make([]string, len(entries))
	for i, e := range entries {
		levels[i] = e.Level
		assert.Equal(t, "analysis", e.Fields["component"])
		assert.Equal(t, "r-1", e.Fields["run_id"])
		assert.NotEmpty(t, e.Time)
	}
	assert.Equal(t, []string{"INFO", "DEBUG", "WARN", "ERROR"}, levels)

	assert.Equal(t, "analysis started", entries[0].Message)
	assert.Equal(t, "undirected+paired", entries[0].Fields["mode"])
	assert.Equal(t, float64(4), entries[0].Fields["nodes"])
	assert.Equal(t, "sweep", entries[1].Fields["pass"])
	assert.Equal(t, "4/4", entries[1].Fields["progress"])
	assert.Equal(t, "graph adjacency is inconsistent", entries[3].Fields["error"])
}

func TestJSONLogger_LaterFieldsWin(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel).With(Pass("degrees"))

	logger.Info("pass finished", Pass("components"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "components", entries[0].Fields["pass"])
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)
	assert.Equal(t, WarnLevel, logger.GetLevel())

	logger.Debug("pass finished")
	logger.Info("analysis started")
	assert.Zero(t, buf.Len())

	logger.Warn("analysis cancelled")
	logger.SetLevel(ErrorLevel)
	logger.Warn("dropped")
	logger.Error("analysis failed")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "ERROR", entries[1].Level)
}

func TestJSONLogger_ChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(RunID("r1"))

	logger.SetLevel(ErrorLevel)
	child.Info("filtered")
	assert.Zero(t, buf.Len(), "child should follow parent level, got %q", buf.String())

	child.SetLevel(DebugLevel)
	assert.Equal(t, DebugLevel, logger.GetLevel())
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("results written")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.NotContains(t, raw, "fields")
	assert.Equal(t, "results written", raw["msg"])
}

func TestNewLogger_UnknownFormatIsJSON(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, InfoLevel, Format("xml")).Info("network loaded", Path("a.sif"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.sif", entries[0].Fields["path"])
}

func TestJSONLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, InfoLevel, FormatText)

	logger.Info("run finished", Mode("undirected+paired"), Int("nodes", 4), String("note", "two words"))

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{"INFO", "run finished", "mode=undirected+paired", "nodes=4", `note="two words"`} {
		assert.Contains(t, line, want)
	}
	assert.Less(t, strings.Index(line, "mode="), strings.Index(line, "nodes="), "fields sorted by key")
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored", RunID("x"))
	assert.Equal(t, InfoLevel, l.With(Pass("sweep")).GetLevel())
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	timer := StartTimer(logger, "pass finished", Pass("components"))
	assert.GreaterOrEqual(t, timer.End(Count(3)), time.Duration(0))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "DEBUG", entries[0].Level)
	assert.Equal(t, "components", entries[0].Fields["pass"])
	assert.Contains(t, entries[0].Fields, "latency")
	assert.Equal(t, float64(3), entries[0].Fields["count"])

	buf.Reset()
	StartTimer(logger, "pass failed").EndError(errors.New("boom"))
	entries = decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0].Level)
	assert.Equal(t, "boom", entries[0].Fields["error"])
}

func BenchmarkJSONLogger_Progress(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel).With(RunID("bench"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		logger.Info("sweep progress", Progress(int64(i), int64(b.N)))
	}
}

func BenchmarkJSONLogger_Filtered(b *testing.B) {
	logger := NewJSONLogger(&bytes.Buffer{}, ErrorLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("pass finished", Pass("sweep"))
	}
}
