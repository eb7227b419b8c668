package logger_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/goseal/internal/logger"
)

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log, err := logger.New(logger.Settings{Level: logger.LevelWarning, Type: logger.TypeConsole, Console: &buf})
	require.NoError(t, err)

	log.Info("info message")
	log.Warn("warn message", "locator", "hello")

	out := buf.String()
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "locator=hello")
}

func TestFileLogger(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "goseal.log")

	log, err := logger.New(logger.Settings{
		Level:      logger.LevelDebug,
		Type:       logger.TypeFile,
		FilePath:   logPath,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	require.NoError(t, err)

	log.Debug("debug message")
	log.Error("error message")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	assert.Contains(t, string(content), `"msg":"debug message"`)
	assert.Contains(t, string(content), `"level":"ERROR"`)
}

func TestInvalidSettings(t *testing.T) {
	t.Parallel()

	tests := map[string]logger.Settings{
		"unknown level": {Level: "critical", Type: logger.TypeConsole},
		"unknown type":  {Level: logger.LevelInfo, Type: "syslog"},
		"negative size": {Level: logger.LevelInfo, Type: logger.TypeConsole, MaxSize: -1},
	}

	for name, settings := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := logger.New(settings)
			require.Error(t, err)
		})
	}

	_, err := logger.New(logger.Settings{Level: logger.LevelInfo, Type: logger.TypeFile})
	require.ErrorIs(t, err, logger.ErrFilePath)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("bogus"))
}
