// ABOUTME: Process-wide leveled logger with printf-style helpers.
// ABOUTME: Writes to stderr until InitLogger attaches a rotating log file.

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/lumberjack.v2"
)

// LogFileName is the file created inside the directory passed to InitLogger
const LogFileName = "audio-device-manager.log"

// EnvLogLevel overrides the configured log level
const EnvLogLevel = "AUDIO_DEVICE_MANAGER_LOG_LEVEL"

// Level represents a logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns string representation of log level
func (l Level) String() string {
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
		return "UNKNOWN"
	}
}

// ParseLevel parses a string log level, falling back to info
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "info", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled messages to an output
type Logger struct {
	mu     sync.Mutex
	level  Level
	prefix string
	out    *log.Logger
	file   *lumberjack.Logger
}

var (
	std   = newLogger(os.Stderr)
	stdMu sync.Mutex
)

func newLogger(w io.Writer) *Logger {
	l := &Logger{
		level: LevelInfo,
		out:   log.New(w, "", log.LstdFlags|log.Lmicroseconds),
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		l.level = ParseLevel(lvl)
	}
	return l
}

// InitLogger attaches a rotating log file in dir to the global logger.
// Returns the log file path.
func InitLogger(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	stdMu.Lock()
	defer stdMu.Unlock()

	next := newLogger(file)
	next.level = std.level
	next.prefix = std.prefix
	next.file = file
	if std.file != nil {
		_ = std.file.Close()
	}
	std = next

	return path, nil
}

// Close flushes and closes the log file, if any, and reverts to stderr
func Close() error {
	stdMu.Lock()
	defer stdMu.Unlock()

	var err error
	if std.file != nil {
		err = std.file.Close()
	}
	level, prefix := std.level, std.prefix
	std = newLogger(os.Stderr)
	std.level = level
	std.prefix = prefix
	return err
}

// SetOutput redirects the global logger, mainly for tests
func SetOutput(w io.Writer) {
	current().setOutput(w)
}

// SetLevel sets the minimum level that is written
func SetLevel(level Level) {
	l := current()
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// GetLevel returns the minimum level that is written
func GetLevel() Level {
	l := current()
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetPrefix sets a tag written in front of every message
func SetPrefix(prefix string) {
	l := current()
	l.mu.Lock()
	l.prefix = prefix
	l.mu.Unlock()
}

func current() *Logger {
	stdMu.Lock()
	defer stdMu.Unlock()
	return std
}

func (l *Logger) setOutput(w io.Writer) {
	l.mu.Lock()
	l.out.SetOutput(w)
	l.mu.Unlock()
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		l.out.Printf("[%s] [%s] %s", level, l.prefix, msg)
		return
	}
	l.out.Printf("[%s] %s", level, msg)
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	current().logf(LevelDebug, format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	current().logf(LevelInfo, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	current().logf(LevelWarn, format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	current().logf(LevelError, format, args...)
}
