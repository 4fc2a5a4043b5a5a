package shared

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger returns a console logger writing to w at the given level.
// Debug output includes timestamps and caller locations.
func SetupLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: level <= log.DebugLevel,
		ReportCaller:    level <= log.DebugLevel,
		TimeFormat:      time.TimeOnly,
	})
}

// ParseLevel parses a level name, returning fallback when name is empty or
// unknown.
func ParseLevel(name string, fallback log.Level) log.Level {
	if name == "" {
		return fallback
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return fallback
	}
	return level
}
