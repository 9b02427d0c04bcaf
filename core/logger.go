package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger is the minimal logging interface shared by every component.
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// NoOpLogger discards everything. Used as the default in tests and when a
// component is constructed without an explicit logger.
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Error(msg string, fields map[string]interface{}) {}
func (n *NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}

// ProductionLogger writes leveled logs to a single writer.
// Text format for local development, JSON when log aggregation wants it.
type ProductionLogger struct {
	level  string
	format string
	name   string
	output io.Writer
	mu     sync.Mutex
}

// NewProductionLogger creates a logger for the named component.
// Level and format follow the configuration; an unknown format falls back
// to text, an unknown level disables filtering.
func NewProductionLogger(name, level, format string) *ProductionLogger {
	if level == "" {
		level = "INFO"
	}
	if format != "json" {
		format = "text"
	}
	return &ProductionLogger{
		level:  strings.ToUpper(level),
		format: format,
		name:   name,
		output: os.Stderr,
	}
}

// SetOutput changes the output writer. Useful for tests.
func (l *ProductionLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

func (l *ProductionLogger) Info(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

func (l *ProductionLogger) Warn(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

func (l *ProductionLogger) Error(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}

func (l *ProductionLogger) Debug(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

func (l *ProductionLogger) log(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok1 := levelRank[l.level]
	incoming, ok2 := levelRank[level]
	if ok1 && ok2 && incoming < current {
		return
	}

	timestamp := time.Now().Format(time.RFC3339)
	if l.format == "json" {
		l.logJSON(timestamp, level, msg, fields)
		return
	}
	l.logText(timestamp, level, msg, fields)
}

func (l *ProductionLogger) logJSON(timestamp, level, msg string, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"component": l.name,
		"message":   msg,
	}
	for k, v := range fields {
		if k != "timestamp" && k != "level" && k != "component" && k != "message" {
			entry[k] = v
		}
	}
	if data, err := json.Marshal(entry); err == nil {
		fmt.Fprintln(l.output, string(data))
	}
}

func (l *ProductionLogger) logText(timestamp, level, msg string, fields map[string]interface{}) {
	var b strings.Builder
	if len(fields) > 0 {
		b.WriteString(" ")
		// Common fields first for readability.
		if op, ok := fields["operation"]; ok {
			b.WriteString(fmt.Sprintf("operation=%v ", op))
		}
		if err, ok := fields["error"]; ok {
			b.WriteString(fmt.Sprintf("error=%q ", fmt.Sprintf("%v", err)))
		}
		for k, v := range fields {
			if k == "operation" || k == "error" {
				continue
			}
			b.WriteString(fmt.Sprintf("%s=%v ", k, v))
		}
	}
	fmt.Fprintf(l.output, "%s [%s] [%s] %s%s\n", timestamp, level, l.name, msg, strings.TrimRight(b.String(), " "))
}
