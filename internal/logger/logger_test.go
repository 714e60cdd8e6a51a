package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/wikidiff/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerBuilder_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer

	l, err := NewLoggerBuilder().
		WithFormat(FormatJSON).
		WithLevel(zerolog.InfoLevel).
		WithOutput(&buf).
		WithRunID("run-1").
		Build()
	require.NoError(t, err)

	l.GetZerolog().Debug().Msg("hidden")
	l.GetZerolog().Info().Str("component", "Test").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"visible"`)
	assert.Contains(t, out, `"run_id":"run-1"`)
	assert.Contains(t, out, `"component":"Test"`)
	assert.NoError(t, l.Close())
}

func TestLoggerBuilder_FileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wikidiff.log")

	l, err := NewLoggerBuilder().
		WithConsole(false).
		WithFormat(FormatJSON).
		WithFile(path, 1, 1).
		WithRunID("run-7").
		Build()
	require.NoError(t, err)

	l.GetZerolog().Warn().Msg("written to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "runs", "run-7", "wikidiff.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestLoggerBuilder_Errors(t *testing.T) {
	_, err := NewLoggerBuilder().WithConsole(false).Build()
	assert.Error(t, err, "no writers")

	_, err = NewLoggerBuilder().WithFile("app.log", 0, 1).Build()
	assert.Error(t, err, "non-positive max size")

	_, err = NewLoggerBuilder().WithConfig(config.LogConfig{LogLevel: "loud"}).Build()
	assert.Error(t, err, "invalid level")
}

func TestLoggerBuilder_WithConfigKeepsOutput(t *testing.T) {
	var buf bytes.Buffer

	l, err := NewLoggerBuilder().
		WithOutput(&buf).
		WithConfig(config.LogConfig{LogLevel: "debug", LogFormat: "json"}).
		Build()
	require.NoError(t, err)

	l.GetZerolog().Debug().Msg("debug entry")
	assert.Contains(t, buf.String(), "debug entry")
	assert.Equal(t, zerolog.DebugLevel, l.GetConfig().Level)
	assert.Equal(t, FormatJSON, l.GetConfig().Format)
}

func TestConfigConverter_ConvertConfig(t *testing.T) {
	cc := NewConfigConverter()

	cfg, err := cc.ConvertConfig(config.LogConfig{LogLevel: "WARN", LogFormat: "text", LogFile: "out.log"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, config.DefaultMaxLogSizeMB, cfg.MaxSizeMB)
	assert.Equal(t, config.DefaultMaxLogBackups, cfg.MaxBackups)

	cfg, err = cc.ConvertConfig(config.LogConfig{LogLevel: "nope"})
	assert.Error(t, err)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level)
	assert.False(t, cfg.EnableFile)
}

func TestLogFormatParser_ParseFormat(t *testing.T) {
	p := NewLogFormatParser()

	assert.Equal(t, FormatJSON, p.ParseFormat(" JSON "))
	assert.Equal(t, FormatText, p.ParseFormat("text"))
	assert.Equal(t, FormatConsole, p.ParseFormat(""))
	assert.Equal(t, "console", FormatConsole.String())
}

func TestBuildLogPath(t *testing.T) {
	assert.Equal(t, filepath.Join("logs", "a.log"), BuildLogPath(LoggerConfig{FilePath: filepath.Join("logs", "a.log")}))
	assert.Equal(t, filepath.Join("logs", "runs", "x", "a.log"), BuildLogPath(LoggerConfig{FilePath: filepath.Join("logs", "a.log"), RunID: "x"}))
}
