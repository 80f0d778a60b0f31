package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

type Logger interface {
	Info(action, message string, details map[string]interface{})
	Debug(action, message string, details map[string]interface{})
	Error(action, message string, details map[string]interface{}, err error)
}

type jsonLogger struct {
	service  string
	hostname string
	debug    bool
	mu       sync.Mutex
	out      io.Writer
}

// New creates a JSON line logger writing to stdout.
func New(service string) Logger {
	return NewWithWriter(service, os.Stdout, false)
}

// NewWithWriter is the seam used by tests and by the dashboard, which keeps
// stdout for the UI and sends log lines elsewhere.
func NewWithWriter(service string, out io.Writer, debug bool) Logger {
	hostname, _ := os.Hostname()
	return &jsonLogger{
		service:  service,
		hostname: hostname,
		debug:    debug,
		out:      out,
	}
}

func (l *jsonLogger) Info(action, message string, details map[string]interface{}) {
	l.log("INFO", action, message, details, nil)
}

func (l *jsonLogger) Debug(action, message string, details map[string]interface{}) {
	if !l.debug {
		return
	}
	l.log("DEBUG", action, message, details, nil)
}

func (l *jsonLogger) Error(action, message string, details map[string]interface{}, err error) {
	l.log("ERROR", action, message, details, err)
}

func (l *jsonLogger) log(level, action, message string, details map[string]interface{}, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		Hostname:  l.hostname,
		Action:    action,
		Message:   message,
		Details:   details,
	}

	if err != nil {
		entry.Error = &ErrorInfo{Msg: err.Error()}
	}

	json.NewEncoder(l.out).Encode(entry)
}
