// Package logger provides component-tagged structured logging backed by zerolog.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the logging surface shared by every component. The first
// argument names the component emitting the entry.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// ParseLevel accepts debug, info, warn/warning and error
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// LevelFromEnv reads LOG_LEVEL, with DEBUG=1 forcing debug output.
// Unknown values fall back to info.
func LevelFromEnv() zerolog.Level {
	if os.Getenv("DEBUG") == "1" {
		return zerolog.DebugLevel
	}
	level, err := ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
