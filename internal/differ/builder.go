package differ

import (
	"time"

	"github.com/aleister1102/wikidiff/internal/config"
	"github.com/aleister1102/wikidiff/internal/extractor"
	"github.com/rs/zerolog"
)

// EngineBuilder provides a fluent interface for creating Engine
type EngineBuilder struct {
	logger        zerolog.Logger
	diffConfig    config.DiffConfig
	previewConfig config.PreviewConfig
}

// NewEngineBuilder creates a new builder
func NewEngineBuilder(logger zerolog.Logger) *EngineBuilder {
	return &EngineBuilder{
		logger:        logger,
		diffConfig:    config.NewDefaultDiffConfig(),
		previewConfig: config.NewDefaultPreviewConfig(),
	}
}

// WithConfig takes the diff and preview sections of the application config
func (b *EngineBuilder) WithConfig(cfg *config.GlobalConfig) *EngineBuilder {
	if cfg != nil {
		b.diffConfig = cfg.DiffConfig
		b.previewConfig = cfg.PreviewConfig
	}
	return b
}

// WithDiffConfig sets the diff configuration
func (b *EngineBuilder) WithDiffConfig(cfg config.DiffConfig) *EngineBuilder {
	b.diffConfig = cfg
	return b
}

// WithPreviewConfig sets the preview configuration
func (b *EngineBuilder) WithPreviewConfig(cfg config.PreviewConfig) *EngineBuilder {
	b.previewConfig = cfg
	return b
}

// Build creates a new Engine instance
func (b *EngineBuilder) Build() (*Engine, error) {
	if err := NewPreviewConfigValidator().Validate(b.previewConfig); err != nil {
		return nil, err
	}

	maxCells := b.diffConfig.MaxLCSCells
	if maxCells == 0 {
		maxCells = NewMemoryBudget(b.logger, b.diffConfig.MemoryFraction, b.diffConfig.HardMaxLCSCells).MaxCells()
	}

	concurrency := b.diffConfig.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Engine{
		logger:         b.logger.With().Str("component", "DiffEngine").Logger(),
		extractor:      extractor.NewTextExtractor(b.logger),
		parser:         extractor.NewContentParser(b.logger),
		lcs:            NewLCSDiffer(b.logger, maxCells, time.Duration(b.diffConfig.FallbackTimeoutMs)*time.Millisecond),
		preview:        NewPreviewGenerator(b.logger, b.previewConfig),
		tree:           NewTreeDiffer(b.logger),
		minTextLength:  b.diffConfig.MinTextLength,
		maxConcurrency: concurrency,
	}, nil
}
