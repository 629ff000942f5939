// Package log is a minimal leveled key/value logger writing to stderr.
// Calendar output goes to stdout; everything here is operator-facing.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var (
	mu       sync.Mutex
	out      io.Writer = os.Stderr
	minLevel           = LevelInfo
)

func init() {
	if os.Getenv("RECAL_DEBUG") != "" {
		minLevel = LevelDebug
	}
}

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func Debug(msg string, kv ...any) {
	write(LevelDebug, msg, kv...)
}

func Info(msg string, kv ...any) {
	write(LevelInfo, msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	write(LevelError, msg, append([]any{"err", err}, kv...)...)
}

// write emits one line: RFC3339 timestamp, level, message, then key=value
// pairs. Keys must be strings; a trailing unpaired value is dropped.
func write(level Level, msg string, kv ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(msg)

	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(fmt.Sprint(kv[i+1]))
	}

	fmt.Fprintln(out, b.String())
}
