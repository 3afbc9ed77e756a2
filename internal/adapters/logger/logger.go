// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger on log/slog. Human-readable output goes through a
// charmbracelet/log handler; JSON output through slog.JSONHandler.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	out    io.Writer
	level  domain.LogLevel
	json   bool
}

// New creates a Logger writing human-readable info-level output to stderr.
func New() *Logger {
	l := &Logger{
		out:   os.Stderr,
		level: domain.LogLevelInfo,
	}
	l.logger = slog.New(newHandler(l.out, l.level, l.json))
	return l
}

func newHandler(w io.Writer, level domain.LogLevel, json bool) slog.Handler {
	if json {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.Level(level),
	})
}

// rebuild swaps the handler. Callers must hold the write lock.
func (l *Logger) rebuild() {
	l.logger = slog.New(newHandler(l.out, l.level, l.json))
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.rebuild()
}

// SetLevel updates the minimum level that is written.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// SetJSON switches between JSON and human-readable output.
func (l *Logger) SetJSON(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.json = enabled
	l.rebuild()
}

// Configure applies the logging section of a configuration.
func (l *Logger) Configure(cfg domain.LogConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = domain.ParseLogLevel(cfg.Level)
	l.json = cfg.JSON
	l.rebuild()
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg, args...)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err.Error())
}
