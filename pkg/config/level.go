package config

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/errors"
)

// Level is a parsed LOG_LEVEL.
type Level struct {
	Level  log.Level
	Silent bool // discard all log output
}

// ParseLogLevel accepts 0|silent, 1|info, 2|debug, warn, and error,
// case-insensitively. The empty string means info.
func ParseLogLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "silent", "off":
		return Level{Level: log.FatalLevel, Silent: true}, nil
	case "", "1", "info":
		return Level{Level: log.InfoLevel}, nil
	case "2", "debug":
		return Level{Level: log.DebugLevel}, nil
	case "warn", "warning":
		return Level{Level: log.WarnLevel}, nil
	case "error":
		return Level{Level: log.ErrorLevel}, nil
	}
	return Level{}, errors.New(errors.ErrCodeInvalidConfig, "invalid log level %q", s)
}
