// Package output provides terminal output utilities.
package output

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// logger is the console logger; runLog mirrors every entry into the run log file.
var (
	logger *log.Logger
	runLog *log.Logger
	logMu  sync.RWMutex
)

// runLogTimeFormat is the timestamp layout written to the run log file.
const runLogTimeFormat = time.RFC3339

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig holds the resolved logging configuration.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and forces timestamps on.
	Verbose bool

	// Timestamps controls console timestamps. nil means the default (true).
	Timestamps *bool

	// File receives a timestamped, uncolored copy of every entry. Optional.
	File io.Writer
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// SetupLogging configures the console logger and the optional run log sink.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	logMu.Lock()
	defer logMu.Unlock()

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})

	runLog = nil
	if cfg.File != nil {
		runLog = log.NewWithOptions(cfg.File, log.Options{
			Level:           level,
			ReportTimestamp: true,
			TimeFormat:      runLogTimeFormat,
			Formatter:       log.LogfmtFormatter,
		})
	}
}

// loggers returns the active sinks.
func loggers() []*log.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	if runLog == nil {
		return []*log.Logger{logger}
	}
	return []*log.Logger{logger, runLog}
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	for _, l := range loggers() {
		l.Helper()
		l.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	for _, l := range loggers() {
		l.Helper()
		l.Info(msg, keyvals...)
	}
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	for _, l := range loggers() {
		l.Helper()
		l.Warn(msg, keyvals...)
	}
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	for _, l := range loggers() {
		l.Helper()
		l.Error(msg, keyvals...)
	}
}

// ComponentLog is a logger scoped to one pipeline component.
type ComponentLog struct {
	sinks []*log.Logger
}

// ComponentLogger returns a logger whose entries are prefixed with the component name.
func ComponentLogger(name string) *ComponentLog {
	base := loggers()
	sinks := make([]*log.Logger, 0, len(base))
	for _, l := range base {
		sinks = append(sinks, l.WithPrefix(name))
	}
	return &ComponentLog{sinks: sinks}
}

// Prefix returns the prefix of the console sink.
func (c *ComponentLog) Prefix() string {
	return c.sinks[0].GetPrefix()
}

// Debug logs a debug message.
func (c *ComponentLog) Debug(msg string, keyvals ...interface{}) {
	for _, l := range c.sinks {
		l.Helper()
		l.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func (c *ComponentLog) Info(msg string, keyvals ...interface{}) {
	for _, l := range c.sinks {
		l.Helper()
		l.Info(msg, keyvals...)
	}
}

// Warn logs a warning message.
func (c *ComponentLog) Warn(msg string, keyvals ...interface{}) {
	for _, l := range c.sinks {
		l.Helper()
		l.Warn(msg, keyvals...)
	}
}

// Error logs an error message.
func (c *ComponentLog) Error(msg string, keyvals ...interface{}) {
	for _, l := range c.sinks {
		l.Helper()
		l.Error(msg, keyvals...)
	}
}
