// Package logger provides leveled logging for the game and its frontends.
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// Logger writes info, warn and error lines through separate prefixes.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New creates a logger writing to w.
func New(w io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		infoLogger:  log.New(w, "[INFO] ", flags),
		warnLogger:  log.New(w, "[WARN] ", flags),
		errorLogger: log.New(w, "[ERROR] ", flags),
	}
}

// NewStd logs info to stdout and warnings/errors to stderr.
func NewStd() *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		infoLogger:  log.New(os.Stdout, "[INFO] ", flags),
		warnLogger:  log.New(os.Stderr, "[WARN] ", flags),
		errorLogger: log.New(os.Stderr, "[ERROR] ", flags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard)
}

// OpenFile appends to dir/name, creating dir if needed. The caller closes the file.
func OpenFile(dir, name string) (*Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}

func (l *Logger) Info(format string, args ...any) {
	l.infoLogger.Printf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.warnLogger.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.errorLogger.Printf(format, args...)
}

// Event logs a game event with its subject and free-form details.
func (l *Logger) Event(eventType, subject, details string) {
	l.infoLogger.Printf("[EVENT:%s] %s | %s", eventType, subject, details)
}
