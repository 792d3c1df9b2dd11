// Package logger provides the orchestrator's structured, thread-safe status
// logging, distinct from and in addition to the match-output sink.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering.
const (
	levelTrace int = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// Logger is the interface the search engine and CLI log status through.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// ConsoleLogger logs to an io.Writer with "[HH:MM:SS] [LEVEL]" prefixes,
// guarded by its own mutex (separate from the engine's stdout sink mutex —
// see internal/search/sink.go). Level filtering defaults to "info".
type ConsoleLogger struct {
	writer   io.Writer
	level    string
	mu       sync.Mutex
	useColor bool
}

// New creates a ConsoleLogger writing to w at the given minimum level.
// An empty or unrecognized level defaults to "info". Color is enabled
// automatically when w is a TTY.
func New(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:   w,
		level:    normalizeLevel(level),
		useColor: isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	default:
		return "info"
	}
}

func levelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *ConsoleLogger) shouldLog(level string) bool {
	return levelToInt(level) >= levelToInt(l.level)
}

// LogTrace logs a trace-level message.
func (l *ConsoleLogger) LogTrace(message string) { l.logWithLevel("trace", message) }

// LogDebug logs a debug-level message.
func (l *ConsoleLogger) LogDebug(message string) { l.logWithLevel("debug", message) }

// LogInfo logs an info-level message.
func (l *ConsoleLogger) LogInfo(message string) { l.logWithLevel("info", message) }

// LogWarn logs a warn-level message.
func (l *ConsoleLogger) LogWarn(message string) { l.logWithLevel("warn", message) }

// LogError logs an error-level message.
func (l *ConsoleLogger) LogError(message string) { l.logWithLevel("error", message) }

func (l *ConsoleLogger) logWithLevel(level string, message string) {
	if !l.shouldLog(level) {
		return
	}

	tag := strings.ToUpper(level)
	if l.useColor {
		tag = colorForLevel(level).Sprint(tag)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.writer, "[%s] [%s] %s\n", time.Now().Format("15:04:05"), tag, message)
}

func colorForLevel(level string) *color.Color {
	switch level {
	case "warn":
		return color.New(color.FgYellow, color.Bold)
	case "error":
		return color.New(color.FgRed, color.Bold)
	case "debug", "trace":
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgGreen)
	}
}

// Discard is a Logger that drops every message, used when the caller wants
// no status logging at all (e.g. -quiet).
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) LogTrace(string) {}
func (discardLogger) LogDebug(string) {}
func (discardLogger) LogInfo(string)  {}
func (discardLogger) LogWarn(string)  {}
func (discardLogger) LogError(string) {}
