// Package applog is almanac's levelled key/value logger. It writes one JSON
// object per line to a file and is silent until Init is called, so it never
// draws over the TUI.
package applog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

// DefaultPath is used by --debug when no log path is configured.
const DefaultPath = "almanac-debug.log"

// ParseLevel accepts any casing of debug, info or error. Empty means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO":
		return LevelInfo, nil
	case "DEBUG":
		return LevelDebug, nil
	case "ERROR":
		return LevelError, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

func rank(l Level) int {
	switch l {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	default:
		return 2
	}
}

type logger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	minLevel Level
	seq      int
}

var std = &logger{minLevel: LevelInfo}

// Init opens path for appending and starts logging at level.
func Init(path string, level Level) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	std.mu.Lock()
	std.out = f
	std.closer = f
	std.minLevel = level
	std.seq = 0
	std.mu.Unlock()

	Info("log started", "path", path, "level", string(level))
	return nil
}

// SetOutput redirects logging to w. A nil writer disables logging.
func SetOutput(w io.Writer, level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = w
	std.closer = nil
	std.minLevel = level
	std.seq = 0
}

// Close flushes and closes the log file, if any, and disables logging.
func Close() {
	Info("log closed")

	std.mu.Lock()
	defer std.mu.Unlock()
	if std.closer != nil {
		_ = std.closer.Close()
	}
	std.out = nil
	std.closer = nil
}

// Enabled reports whether a message at level would be written.
func Enabled(level Level) bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.out != nil && rank(level) >= rank(std.minLevel)
}

func Debug(msg string, kv ...any) {
	std.log(LevelDebug, msg, kv)
}

func Info(msg string, kv ...any) {
	std.log(LevelInfo, msg, kv)
}

// Error logs msg with err under the "err" key.
func Error(msg string, err error, kv ...any) {
	extended := append([]any{"err", err}, kv...)
	std.log(LevelError, msg, extended)
}

func (l *logger) log(level Level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil || rank(level) < rank(l.minLevel) {
		return
	}

	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    time.Now().Format(time.RFC3339Nano),
		"level": string(level),
		"msg":   msg,
	}
	// Pairs of key, value. A trailing odd value is dropped.
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		entry[key] = value(kv[i+1])
	}

	b, err := json.Marshal(entry)
	if err != nil {
		b, _ = json.Marshal(map[string]any{"seq": l.seq, "level": string(level), "msg": msg, "marshal_err": err.Error()})
	}
	_, _ = fmt.Fprintf(l.out, "%s\n", b)
}

func value(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return v
	}
}
