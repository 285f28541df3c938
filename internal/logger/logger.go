// Package logger is a leveled file logger with size and age based rotation.
// Console output is off by default so log lines never bleed into the TUI
// alt screen.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the string representation of the log level
func (l Level) String() string {
	if l < DEBUG || l > ERROR {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel converts a string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i)
		}
	}
	return INFO
}

// Field is a key-value pair appended to a log entry
type Field struct {
	Key   string
	Value any
}

// F is a shorthand for creating a Field
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      Level  // Minimum level written
	FilePath   string // Log file path; empty disables file output
	MaxSize    int64  // Rotate when the file reaches this many bytes
	MaxAge     int    // Rotate when the file is older than this many days
	MaxBackups int    // Numbered backups kept after rotation
	Console    bool   // Also write entries to stderr
}

// Logger writes leveled entries to a rotating file and optionally stderr.
type Logger struct {
	mu   sync.Mutex
	cfg  Config
	file *os.File
}

var (
	global *Logger
	once   sync.Once
)

// Init sets up the process-wide logger. Only the first call takes effect.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		global, err = open(cfg)
	})
	return err
}

func open(cfg Config) (*Logger, error) {
	l := &Logger{cfg: cfg}
	if cfg.FilePath == "" {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := l.openFile(); err != nil {
		return nil, err
	}
	if err := l.rotateIfNeeded(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Logger) openFile() error {
	file, err := os.OpenFile(l.cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.file = file
	return nil
}

// rotateIfNeeded rotates when the file crossed the size bound or outlived
// MaxAge. Callers hold no lock during Init; log() calls it under l.mu.
func (l *Logger) rotateIfNeeded() error {
	if l.file == nil {
		return nil
	}
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	stale := time.Since(info.ModTime()) > time.Duration(l.cfg.MaxAge)*24*time.Hour
	if info.Size() < l.cfg.MaxSize && !stale {
		return nil
	}

	l.file.Close()
	// Shift numbered backups up, dropping the oldest.
	for i := l.cfg.MaxBackups - 1; i >= 1; i-- {
		os.Rename(
			fmt.Sprintf("%s.%d", l.cfg.FilePath, i),
			fmt.Sprintf("%s.%d", l.cfg.FilePath, i+1),
		)
	}
	if err := os.Rename(l.cfg.FilePath, l.cfg.FilePath+".1"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return l.openFile()
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if level < l.cfg.Level {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s: %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, caller, msg)
	for i, f := range fields {
		if i == 0 {
			b.WriteString(" |")
		}
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	b.WriteByte('\n')
	entry := b.String()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rotateIfNeeded()
	if l.file != nil {
		l.file.WriteString(entry)
	}
	if l.cfg.Console {
		os.Stderr.WriteString(entry)
	}
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Package-level entry points on the global logger. Safe to call before Init;
// entries are dropped.

// Debug logs a debug message
func Debug(msg string, fields ...Field) {
	if global != nil {
		global.log(DEBUG, msg, fields)
	}
}

// Info logs an info message
func Info(msg string, fields ...Field) {
	if global != nil {
		global.log(INFO, msg, fields)
	}
}

// Warn logs a warning message
func Warn(msg string, fields ...Field) {
	if global != nil {
		global.log(WARN, msg, fields)
	}
}

// Error logs an error message
func Error(msg string, fields ...Field) {
	if global != nil {
		global.log(ERROR, msg, fields)
	}
}

// Close closes the global logger
func Close() error {
	if global != nil {
		return global.Close()
	}
	return nil
}
