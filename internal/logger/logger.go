// Package logger builds the structured logger used across goseal.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/natefinch/lumberjack"
)

// Log levels.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Log sinks.
const (
	TypeConsole = "console"
	TypeFile    = "file"
)

// ErrFilePath is returned when a file logger has no path to write to.
var ErrFilePath = errors.New("file path required for file logger")

// Settings selects the level and sink of the logger.
type Settings struct {
	Level      string `json:"level"                 label:"--log-level"       mapstructure:"log-level"       validate:"oneof=debug info warning error"` //nolint:lll // one tag
	Type       string `json:"type"                  label:"--log-type"        mapstructure:"log-type"        validate:"oneof=console file"`
	FilePath   string `json:"file,omitempty"        label:"--log-file"        mapstructure:"log-file"`
	MaxSize    int    `json:"max-size,omitempty"    label:"--log-max-size"    mapstructure:"log-max-size"    validate:"gte=0"`
	MaxBackups int    `json:"max-backups,omitempty" label:"--log-max-backups" mapstructure:"log-max-backups" validate:"gte=0"`
	MaxAge     int    `json:"max-age,omitempty"     label:"--log-max-age"     mapstructure:"log-max-age"     validate:"gte=0"`

	// Console receives console output. Defaults to os.Stderr.
	Console io.Writer `json:"-" mapstructure:"-"`
}

// Validate checks the settings against their struct tags.
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validating logger settings: %w", err)
	}

	return nil
}

// New returns a logger for the settings.
// Console loggers write text to stderr, file loggers write JSON to a rotating file.
func New(s Settings) (*slog.Logger, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(s.Level)}

	switch s.Type {
	case TypeFile:
		if s.FilePath == "" {
			return nil, ErrFilePath
		}

		writer := &lumberjack.Logger{
			Filename:   s.FilePath,
			MaxSize:    s.MaxSize,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAge,
			Compress:   true,
		}

		return slog.New(slog.NewJSONHandler(writer, opts)), nil
	default:
		console := s.Console
		if console == nil {
			console = os.Stderr
		}

		return slog.New(slog.NewTextHandler(console, opts)), nil
	}
}

// ParseLevel maps a level name to its slog level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
