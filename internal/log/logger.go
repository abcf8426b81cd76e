// Package log provides the application's timestamped logging helpers.
// Output goes to standard output and is optionally teed into an
// append-only log file, one line per decision or action.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	isDebug = false
	logger  = NewLogger()
)

type Logger struct {
	mu   sync.Mutex
	out  io.Writer
	file *os.File
}

func NewLogger() *Logger {
	return &Logger{
		out: os.Stdout,
	}
}

func SetDebug(debug bool) {
	isDebug = debug
}

// SetOutput redirects console output; used by tests to capture log lines.
func SetOutput(w io.Writer) {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	logger.out = w
}

// SetFile opens path in append mode and mirrors every line into it.
func SetFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()
	if logger.file != nil {
		logger.file.Close()
	}
	logger.file = f
	return nil
}

// Close closes the log file, if one was set.
func Close() {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	if logger.file != nil {
		logger.file.Close()
		logger.file = nil
	}
}

func Info(format string, args ...interface{}) {
	logger.log("INFO", format, args...)
}

// Debug logs a formatted message when debug output is enabled
func Debug(format string, args ...interface{}) {
	if isDebug {
		logger.log("DEBUG", format, args...)
	}
}

// Warn logs a formatted warning message
func Warn(format string, args ...interface{}) {
	logger.log("WARN", format, args...)
}

// Error logs a formatted error message
func Error(format string, args ...interface{}) {
	logger.log("ERROR", format, args...)
}

func (l *Logger) log(level, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s: %s\n", timestamp, level, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, line)
	if l.file != nil {
		fmt.Fprint(l.file, line)
	}
}
