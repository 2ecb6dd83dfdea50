package logging

import (
	"fmt"
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Analysis field helpers

func Component(name string) Field {
	return String("component", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

// Pass names the analysis pass being executed (degrees, sweep, ...).
func Pass(name string) Field {
	return String("pass", name)
}

// Mode is the interpretation in force, e.g. "undirected+paired".
func Mode(mode string) Field {
	return String("mode", mode)
}

func Node(index int) Field {
	return Int("node", index)
}

func Nodes(n int) Field {
	return Int("nodes", n)
}

func Edges(n int) Field {
	return Int("edges", n)
}

func Workers(n int) Field {
	return Int("workers", n)
}

func Outcome(state string) Field {
	return String("outcome", state)
}

// Progress renders current/max as a single "12/100" value.
func Progress(current, max int64) Field {
	return String("progress", fmt.Sprintf("%d/%d", current, max))
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
