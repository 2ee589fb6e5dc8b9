// Package diag records the recoverable anomalies of a single conversion run.
//
// A [Log] is an append-only list of timestamped entries. It is created once
// per run, threaded explicitly through every stage that can observe an anomaly
// (invalid records, dangling edges, nodes dropped by the priority cutoff), and
// flushed exactly once at the end with [Log.Flush]. Nothing in this package is
// global: two runs never share a log.
//
// Entries are never fatal. Conditions that invalidate the whole graph are
// reported as errors by the stage that detects them; the caller may record
// the abort as a final entry before flushing.
package diag

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout used when the log is written out.
const TimeFormat = "2006-01-02 15:04:05.000000"

// Level classifies an entry.
type Level int

const (
	// LevelInfo marks progress lines and informational skips (e.g. a node
	// omitted by the priority cutoff).
	LevelInfo Level = iota
	// LevelWarn marks anomalies in the input (invalid records, dangling edges).
	LevelWarn
)

// String returns the lower-case level name.
func (l Level) String() string {
	if l == LevelWarn {
		return "warn"
	}
	return "info"
}

// Entry is a single log line.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// String formats the entry as "<timestamp>: <message>".
func (e Entry) String() string {
	return e.Time.Format(TimeFormat) + ": " + e.Message
}

// Log accumulates entries for one run.
//
// A nil *Log is valid and discards everything, which keeps call sites free of
// nil checks in tests that do not care about diagnostics. Log is not safe for
// concurrent use.
type Log struct {
	entries []Entry
	clock   func() time.Time
}

// New creates an empty log stamped with the wall clock.
func New() *Log {
	return &Log{clock: time.Now}
}

// NewWithClock creates an empty log that takes timestamps from clock.
func NewWithClock(clock func() time.Time) *Log {
	if clock == nil {
		clock = time.Now
	}
	return &Log{clock: clock}
}

// Infof appends an informational entry.
func (l *Log) Infof(format string, args ...any) { l.add(LevelInfo, format, args...) }

// Warnf appends an anomaly entry.
func (l *Log) Warnf(format string, args ...any) { l.add(LevelWarn, format, args...) }

func (l *Log) add(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, Entry{
		Time:    l.clock(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

// Entries returns a copy of all entries in insertion order.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Count returns the number of entries at the given level.
func (l *Log) Count(level Level) int {
	if l == nil {
		return 0
	}
	n := 0
	for _, e := range l.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any entry message contains substr.
func (l *Log) Contains(substr string) bool {
	if l == nil {
		return false
	}
	return slices.ContainsFunc(l.entries, func(e Entry) bool {
		return strings.Contains(e.Message, substr)
	})
}

// String renders the whole log, one entry per line.
func (l *Log) String() string {
	var sb strings.Builder
	_, _ = l.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes every entry to w, one per line.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	if l == nil {
		return 0, nil
	}
	var total int64
	for _, e := range l.entries {
		n, err := io.WriteString(w, e.String()+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Echo replays every entry through logger at its level.
func (l *Log) Echo(logger *log.Logger) {
	if l == nil || logger == nil {
		return
	}
	for _, e := range l.entries {
		switch e.Level {
		case LevelWarn:
			logger.Warn(e.Message)
		default:
			logger.Info(e.Message)
		}
	}
}

// Flush persists the log to path and echoes it through logger.
// The file is closed on every return path.
func (l *Log) Flush(path string, logger *log.Logger) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := l.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	l.Echo(logger)
	return nil
}
