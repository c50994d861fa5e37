package logging

// Structured logging for merlinctl

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelVerbose
	LogLevelDebug
)

// ParseLevel parses a level name. An empty name means info.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return LogLevelSilent, nil
	case "error":
		return LogLevelError, nil
	case "", "info":
		return LogLevelInfo, nil
	case "verbose":
		return LogLevelVerbose, nil
	case "debug":
		return LogLevelDebug, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger provides structured logging
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	format   string
	logEvery int
	counter  int
	file     *os.File
	fileLog  *log.Logger
	stdout   *log.Logger
	stderr   *log.Logger
}

// NewLogger creates a new text logger that writes every message.
func NewLogger(level LogLevel, logFile string) (*Logger, error) {
	return NewLoggerWithOptions(level, logFile, "text", 1)
}

// NewLoggerWithOptions creates a logger with a line format ("text" or
// "json") and console sampling: only every logEvery-th message reaches the
// console. The log file, when set, receives every message.
func NewLoggerWithOptions(level LogLevel, logFile, format string, logEvery int) (*Logger, error) {
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	if logEvery < 1 {
		logEvery = 1
	}

	l := &Logger{
		level:    level,
		format:   format,
		logEvery: logEvery,
		stdout:   log.New(os.Stdout, "", 0),
		stderr:   log.New(os.Stderr, "", 0),
	}

	// Open log file if specified
	if logFile != "" {
		file, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		l.file = file
		flags := log.LstdFlags
		if format == "json" {
			flags = 0
		}
		l.fileLog = log.New(file, "", flags)
	}

	return l, nil
}

// Close closes the logger and flushes all data
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelError {
		l.write("ERROR", fmt.Sprintf(format, v...), true)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelInfo {
		l.write("INFO", fmt.Sprintf(format, v...), false)
	}
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelVerbose {
		l.write("VERBOSE", fmt.Sprintf(format, v...), false)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelDebug {
		l.write("DEBUG", fmt.Sprintf(format, v...), false)
	}
}

// write writes a message to the appropriate outputs
func (l *Logger) write(prefix, msg string, isError bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.formatLine(prefix, msg, isError)

	// Always write to log file if available
	if l.fileLog != nil {
		l.fileLog.Println(line)
	}

	l.counter++
	if l.counter%l.logEvery != 0 {
		return
	}

	// Errors go to stderr, others to stdout (but only if verbose/debug)
	if isError {
		l.stderr.Println(line)
	} else if l.level >= LogLevelVerbose {
		l.stdout.Println(line)
	}
}

func (l *Logger) formatLine(prefix, msg string, isError bool) string {
	if l.format != "json" {
		return prefix + ": " + msg
	}

	level := levelLabel(isError)
	if !isError {
		level = strings.ToLower(prefix)
	}
	data, err := json.Marshal(struct {
		Time    string `json:"time"`
		Level   string `json:"level"`
		Message string `json:"message"`
	}{
		Time:    time.Now().UTC().Format(time.RFC3339),
		Level:   level,
		Message: msg,
	})
	if err != nil {
		return prefix + ": " + msg
	}
	return string(data)
}

func levelLabel(isError bool) string {
	if isError {
		return "error"
	}
	return "info"
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// LogLookup logs a catalog lookup. Misses are logged at info, hits at
// verbose.
func (l *Logger) LogLookup(operation, key string, found bool, err error) {
	var statusStr string
	if found {
		statusStr = "FOUND"
	} else {
		statusStr = "MISS"
	}

	var errStr string
	if err != nil {
		errStr = fmt.Sprintf(" - error: %v", err)
	}

	msg := fmt.Sprintf("%s %s %s%s", statusStr, operation, key, errStr)
	if found {
		l.Verbose("%s", msg)
	} else {
		l.Info("%s", msg)
	}
}

// LogStartup logs startup information
func (l *Logger) LogStartup(command, catalogName string, programCount int, configPath string) {
	l.Verbose("Starting merlinctl %s", command)
	l.Verbose("  Catalog: %s (%d programs)", catalogName, programCount)
	l.Verbose("  Config: %s", configPath)
}
