package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel converts a level name to a LogLevel, defaulting to INFO.
func ParseLogLevel(name string) LogLevel {
	switch strings.ToLower(name) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// LogEntry is a single structured log record.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Component string         `json:"component,omitempty"`
	Error     string         `json:"error,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Logger provides leveled structured logging for the study pipelines.
type Logger struct {
	mu        sync.Mutex
	level     LogLevel
	format    string // "json" or "text"
	output    io.Writer
	component string
}

// NewLogger creates a text logger writing to stdout at INFO level.
func NewLogger() *Logger {
	return &Logger{
		level:  INFO,
		format: "text",
		output: os.Stdout,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetFormat sets the logging format ("json" or "text")
func (l *Logger) SetFormat(format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = strings.ToLower(format)
}

// SetOutput sets the logging output destination
func (l *Logger) SetOutput(output io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = output
}

// WithComponent returns a logger that tags every entry with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		level:     l.level,
		format:    l.format,
		output:    l.output,
		component: component,
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) { l.log(DEBUG, msg, fields...) }

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) { l.log(INFO, msg, fields...) }

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) { l.log(WARN, msg, fields...) }

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Error(err))
	}
	l.log(ERROR, msg, fields...)
}

func (l *Logger) log(level LogLevel, msg string, fields ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	entry := &LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   msg,
		Component: l.component,
		Fields:    make(map[string]any),
	}
	for _, f := range fields {
		f.Apply(entry)
	}

	var line string
	if l.format == "json" {
		if b, err := json.Marshal(entry); err == nil {
			line = string(b)
		} else {
			line = fmt.Sprintf("failed to marshal log entry: %v", err)
		}
	} else {
		line = formatTextEntry(entry)
	}
	fmt.Fprintln(l.output, line)
}

func formatTextEntry(entry *LogEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", entry.Timestamp, entry.Level, entry.Message)
	if entry.Component != "" {
		fmt.Fprintf(&b, " component=%s", entry.Component)
	}
	if entry.Error != "" {
		fmt.Fprintf(&b, " error=%s", entry.Error)
	}
	for key, value := range entry.Fields {
		fmt.Fprintf(&b, " %s=%v", key, value)
	}
	return b.String()
}

// Field represents a log field
type Field interface {
	Apply(entry *LogEntry)
}

type stringField struct {
	key, value string
}

func (f stringField) Apply(entry *LogEntry) { entry.Fields[f.key] = f.value }

type intField struct {
	key   string
	value int
}

func (f intField) Apply(entry *LogEntry) { entry.Fields[f.key] = f.value }

type floatField struct {
	key   string
	value float64
}

func (f floatField) Apply(entry *LogEntry) { entry.Fields[f.key] = f.value }

type errorField struct {
	err error
}

func (f errorField) Apply(entry *LogEntry) { entry.Error = f.err.Error() }

// String creates a string field
func String(key, value string) Field { return stringField{key: key, value: value} }

// Int creates an integer field
func Int(key string, value int) Field { return intField{key: key, value: value} }

// Float creates a float field
func Float(key string, value float64) Field { return floatField{key: key, value: value} }

// Error creates an error field
func Error(err error) Field { return errorField{err: err} }
