// Package logger provides console logging for archive runs.
//
// ConsoleLogger prefixes every line with an [HH:MM:SS] timestamp, filters by
// level and colours output when writing to a terminal. It implements
// archive.Logger so an Archiver can report scan, section, file and summary
// events through it.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/codearchive/internal/models"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs archive progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is enabled when the writer itself is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// NO_COLOR disables colors even on a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}

	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
// Format: "[HH:MM:SS] [LEVEL] <message>"
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string

	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = newColor(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = newColor(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = newColor(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = newColor(color.FgYellow).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogScanComplete logs how many files were selected under root at INFO level.
func (cl *ConsoleLogger) LogScanComplete(root string, files int) {
	cl.LogInfo(fmt.Sprintf("Scanned %s: %d %s to archive", root, files, plural(files, "file", "files")))
}

// LogSectionStart logs the start of a section at DEBUG level.
func (cl *ConsoleLogger) LogSectionStart(section models.Section, files int) {
	cl.LogDebug(fmt.Sprintf("Section %s (%s): %d %s", section.Name, section.Extension, files, plural(files, "file", "files")))
}

// LogFileArchived logs a file copied into the archive at TRACE level.
func (cl *ConsoleLogger) LogFileArchived(rec models.FileRecord, bytes int) {
	cl.LogTrace(fmt.Sprintf("Archived %s (%s)", rec.Path, formatBytes(int64(bytes))))
}

// LogFileError logs a file that could not be read at WARN level.
func (cl *ConsoleLogger) LogFileError(ferr *models.FileError) {
	cl.LogWarn(fmt.Sprintf("Error reading %s: %v", ferr.Path, ferr.Err))
}

// LogWalkError logs a non-fatal scan error at WARN level.
func (cl *ConsoleLogger) LogWalkError(err error) {
	cl.LogWarn(fmt.Sprintf("Scan: %v", err))
}

// LogSummary logs the archive summary at INFO level.
// Format: "[HH:MM:SS] === Archive Summary ===" followed by one line per metric.
func (cl *ConsoleLogger) LogSummary(result *models.ArchiveResult) {
	if cl.writer == nil || result == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var scheme *colorScheme
	if cl.colorOutput {
		scheme = newColorScheme()
	}

	var b strings.Builder
	for _, line := range formatSummaryLines(result, scheme) {
		fmt.Fprintf(&b, "[%s] %s\n", ts, line)
	}
	if cl.shouldLog("debug") {
		fmt.Fprintf(&b, "[%s] Run ID: %s\n", ts, result.RunID)
	}

	cl.writer.Write([]byte(b.String()))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration returns a compact duration such as "250ms", "42s" or "1m5s".
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// NoOpLogger is an archive.Logger that discards all messages.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogScanComplete(root string, files int)            {}
func (n *NoOpLogger) LogSectionStart(section models.Section, files int) {}
func (n *NoOpLogger) LogFileArchived(rec models.FileRecord, bytes int)  {}
func (n *NoOpLogger) LogFileError(ferr *models.FileError)               {}
func (n *NoOpLogger) LogWalkError(err error)                            {}
func (n *NoOpLogger) LogSummary(result *models.ArchiveResult)           {}
