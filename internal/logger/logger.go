package logger

import (
	"io"

	"github.com/aleister1102/wikidiff/internal/common"
	"github.com/aleister1102/wikidiff/internal/config"
	"github.com/rs/zerolog"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
	closers []io.Closer
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// GetConfig returns the effective configuration
func (l *Logger) GetConfig() LoggerConfig {
	return l.config
}

// Close releases file writers
func (l *Logger) Close() error {
	collector := common.NewErrorCollector()
	for _, c := range l.closers {
		collector.Add(c.Close())
	}
	l.closers = nil
	return collector.Error()
}

// New creates a logger from the application log config with the standard
// library logger redirected to it.
func New(cfg config.LogConfig) (*Logger, error) {
	return NewLoggerBuilder().WithStandardLog(true).WithConfig(cfg).Build()
}
