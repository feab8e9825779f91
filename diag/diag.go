// Package diag is a small leveled wrapper around the standard library's log
// package, matching the "LEVEL: message" prefixing the rest of this stack's
// lineage uses for request and error logging, plus a build correlation ID so
// concurrent builds' log lines can be told apart.
package diag

import (
	"fmt"
	"log"
	"os"

	"github.com/dekarrin/weir/buildid"
)

// Level is a logging severity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) tag() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

// Field is a key=value pair attached to a Logger via With, rendered into
// every subsequent line that Logger writes.
type Field struct {
	Key   string
	Value any
}

// Logger writes leveled, build-tagged lines to an underlying *log.Logger.
// It is safe for concurrent use because the embedded *log.Logger already is.
type Logger struct {
	out    *log.Logger
	level  Level
	build  buildid.ID
	fields []Field
}

// New returns a Logger that writes to stderr with the given line prefix,
// defaulting to LevelInfo and minting a fresh build ID to tag every line.
// Use AtLevel to change the threshold and BuildID to read back the minted
// correlation ID.
func New(prefix string) *Logger {
	return &Logger{out: log.New(os.Stderr, prefix, log.LstdFlags), level: LevelInfo, build: buildid.New()}
}

// AtLevel returns a derived Logger with its level threshold changed to min,
// without mutating l.
func (l *Logger) AtLevel(min Level) *Logger {
	next := *l
	next.level = min
	return &next
}

// BuildID returns the correlation ID stamping every line this Logger writes.
func (l *Logger) BuildID() buildid.ID { return l.build }

// With returns a derived Logger that prefixes every subsequent line with the
// given fields in addition to any fields already attached, without
// mutating l.
func (l *Logger) With(fields ...Field) *Logger {
	next := *l
	next.fields = append(append([]Field{}, l.fields...), fields...)
	return &next
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	var prefix string
	for _, f := range l.fields {
		prefix += fmt.Sprintf("%s=%v ", f.Key, f.Value)
	}
	l.out.Printf("%s [%s]: "+prefix+format, append([]any{level.tag(), l.build}, args...)...)
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
