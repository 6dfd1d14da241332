// Package logging builds the hclog loggers used by the faixa command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Environment variables read by OptionsFromEnv.
const (
	EnvLevel = "FAIXA_LOG_LEVEL"
	EnvJSON  = "FAIXA_JSON_LOG"
)

// DefaultLevel keeps the command quiet unless something goes wrong.
const DefaultLevel = hclog.Warn

var ErrUnknownLevel = errors.New("unknown log level")

// Options selects the level, format and destination of a logger.
type Options struct {
	Level  hclog.Level
	JSON   bool
	Output io.Writer // nil = stderr
}

// ParseLevel maps a level name (trace, debug, info, warn, error, off) to an hclog level.
// An empty name is DefaultLevel.
func ParseLevel(s string) (hclog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLevel, nil
	}
	level := hclog.LevelFromString(s)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("%w %q, expected trace, debug, info, warn, error or off", ErrUnknownLevel, s)
	}
	return level, nil
}

// OptionsFromEnv builds Options from FAIXA_LOG_LEVEL and FAIXA_JSON_LOG. A non-empty
// level, usually from a flag, wins over the environment.
func OptionsFromEnv(level string) (Options, error) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	l, err := ParseLevel(level)
	if err != nil {
		return Options{}, err
	}
	jsonFormat, _ := strconv.ParseBool(os.Getenv(EnvJSON))
	return Options{Level: l, JSON: jsonFormat}, nil
}

// New creates a logger with UTC timestamps.
func New(name string, opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	level := opts.Level
	if level == hclog.NoLevel {
		level = DefaultLevel
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		JSONFormat: opts.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ForCommand returns a sub-logger named after a subcommand, carrying fields that apply
// to every line it writes (the input file, for instance).
func ForCommand(log hclog.Logger, command string, fields ...interface{}) hclog.Logger {
	named := log.Named(command)
	if len(fields) == 0 {
		return named
	}
	return named.With(fields...)
}
