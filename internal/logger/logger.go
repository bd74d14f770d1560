package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// LogLevel represents the severity of a log entry.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

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
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// LogEntry is one structured log line, serialized as JSON.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger emits structured JSON logs for one component. Loggers are
// immutable; WithField and friends return derived instances.
type Logger struct {
	level     LogLevel
	component string
	fields    map[string]interface{}
}

// NewLogger creates a logger for the given component. The minimum level
// defaults to INFO and can be lowered to DEBUG via LOG_LEVEL=debug.
func NewLogger(component string) *Logger {
	level := INFO
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = DEBUG
	}
	return &Logger{
		level:     level,
		component: component,
		fields:    make(map[string]interface{}),
	}
}

// SetLevel sets the minimum level this logger emits.
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Logger) clone() *Logger {
	next := &Logger{
		level:     l.level,
		component: l.component,
		fields:    make(map[string]interface{}, len(l.fields)+1),
	}
	for k, v := range l.fields {
		next.fields[k] = v
	}
	return next
}

// WithField returns a logger that includes key=value on every entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	next := l.clone()
	next.fields[key] = value
	return next
}

// WithFields returns a logger that includes all given fields on every entry.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	next := l.clone()
	for k, v := range fields {
		next.fields[k] = v
	}
	return next
}

// WithError returns a logger carrying the error message as a field.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *Logger) log(level LogLevel, message string, err error) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
	}
	if len(l.fields) > 0 {
		entry.Fields = l.fields
	}
	if err != nil {
		entry.Error = err.Error()
	}

	jsonBytes, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		// Fall back to plain logging if the entry cannot be serialized.
		log.Printf("[%s] %s: %s (JSON error: %v)", level.String(), l.component, message, jsonErr)
		return
	}

	fmt.Println(string(jsonBytes))

	if level == FATAL {
		os.Exit(1)
	}
}

func (l *Logger) Debug(message string) {
	l.log(DEBUG, message, nil)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DEBUG, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Info(message string) {
	l.log(INFO, message, nil)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Warn(message string) {
	l.log(WARN, message, nil)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Error(message string, err error) {
	l.log(ERROR, message, err)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Fatal(message string, err error) {
	l.log(FATAL, message, err)
}
