// Package logging builds the leveled console logger used by the CLI.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultPrefix is written before every log line.
const DefaultPrefix = "taskflow"

// Options holds configuration for a logger.
type Options struct {
	Level      string // debug, info, warn, error, fatal
	Format     string // text, json, logfmt
	Timestamps bool
	Caller     bool
	Prefix     string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:  "warn",
		Format: "text",
		Prefix: DefaultPrefix,
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		ReportCaller:    opts.Caller,
		Prefix:          opts.Prefix,
	})
}

// NewTest creates a debug-level logger without timestamps, prefix or caller
// so tests can assert on its output.
func NewTest(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     log.DebugLevel,
		Formatter: log.TextFormatter,
	})
}

// Levels returns the accepted level names.
func Levels() []string {
	return []string{"debug", "info", "warn", "error", "fatal"}
}

// Formats returns the accepted formatter names.
func Formats() []string {
	return []string{"text", "json", "logfmt"}
}

// ParseLevel maps a level name to a log.Level. Unknown names map to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter maps a formatter name to a log.Formatter. Unknown names map
// to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// IsLevel reports whether level names a known level.
func IsLevel(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return true
	}
	for _, l := range Levels() {
		if l == level {
			return true
		}
	}
	return false
}

// IsFormat reports whether format names a known formatter.
func IsFormat(format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}
