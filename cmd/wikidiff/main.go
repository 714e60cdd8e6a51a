package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/wikidiff/internal/common"
	"github.com/aleister1102/wikidiff/internal/config"
	"github.com/aleister1102/wikidiff/internal/differ"
	"github.com/aleister1102/wikidiff/internal/extractor"
	"github.com/aleister1102/wikidiff/internal/logger"
	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/aleister1102/wikidiff/internal/reporter"
	"github.com/rs/zerolog"
)

func main() {
	flags, err := ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, flags, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, flags AppFlags, stdout io.Writer) error {
	if flags.CurrentFile == "" && flags.BatchFile == "" {
		return common.NewValidationError("current", "", "either -current or -batch is required")
	}

	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootstrap)
	if err != nil {
		return common.WrapErrorf(err, "could not load global config using path '%s'", flags.GlobalConfigFile)
	}

	// Command line flags take precedence over the config file
	if flags.OutputFormat != "" {
		gCfg.ReporterConfig.OutputFormat = flags.OutputFormat
	}
	if flags.Mode != "" {
		gCfg.ReporterConfig.Mode = flags.Mode
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		return common.WrapError(err, "configuration validation failed")
	}

	appLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		return common.WrapError(err, "could not initialize logger")
	}
	defer func() {
		_ = appLogger.Close()
	}()
	zLogger := *appLogger.GetZerolog()

	engine, err := differ.NewEngineBuilder(zLogger).WithConfig(gCfg).Build()
	if err != nil {
		return common.WrapError(err, "could not build diff engine")
	}

	rep, err := reporter.NewReporter(zLogger, gCfg.ReporterConfig)
	if err != nil {
		return err
	}

	format, err := extractor.ParseFormat(flags.InputFormat)
	if err != nil {
		return err
	}

	loader := newSnapshotLoader(zLogger, gCfg.DiffConfig.MaxSnapshotSizeMB)

	var report reporter.Report
	if flags.BatchFile != "" {
		pairs, err := loader.loadBatch(flags.BatchFile)
		if err != nil {
			return err
		}
		zLogger.Info().Int("pairs", len(pairs)).Str("file", flags.BatchFile).Msg("Diffing revision batch")
		report.Batch, err = engine.GenerateTextDiffBatch(ctx, pairs)
		if err != nil {
			zLogger.Warn().Err(err).Msg("Batch interrupted, reporting completed pairs only")
			report.Batch = completed(report.Batch)
		}
	} else {
		current, err := loader.load(flags.CurrentFile, format)
		if err != nil {
			return err
		}
		var previous any
		if flags.PreviousFile != "" {
			if previous, err = loader.load(flags.PreviousFile, format); err != nil {
				return err
			}
		}

		report.Result = engine.GenerateTextDiff(current, previous)
		if gCfg.ReporterConfig.Mode == reporter.ModeTree {
			report.Tree = engine.GenerateDiffContent(current, previous)
		}
		zLogger.Debug().Int("added", report.Result.Added).Int("removed", report.Result.Removed).Msg("Diff computed")
	}

	out := stdout
	if flags.OutputFile != "" {
		file, err := os.Create(flags.OutputFile)
		if err != nil {
			return common.WrapError(err, fmt.Sprintf("failed to create output file: %s", flags.OutputFile))
		}
		defer func() {
			if err := file.Close(); err != nil {
				zLogger.Error().Err(err).Str("path", flags.OutputFile).Msg("Failed to close output file.")
			}
		}()
		out = file
	}

	return rep.Render(out, report)
}

func completed(results []differ.BatchResult) []differ.BatchResult {
	done := make([]differ.BatchResult, 0, len(results))
	for _, r := range results {
		if r.Done {
			done = append(done, r)
		}
	}
	return done
}

// snapshotLoader reads revision snapshots from disk
type snapshotLoader struct {
	logger zerolog.Logger
	reader *common.FileReader
	parser *extractor.ContentParser
	sizes  *differ.ContentSizeValidator
	opts   common.FileReadOptions
}

func newSnapshotLoader(logger zerolog.Logger, maxSizeMB int) *snapshotLoader {
	opts := common.DefaultFileReadOptions()
	if maxSizeMB > 0 {
		opts.MaxSize = int64(maxSizeMB) * 1024 * 1024
	}
	return &snapshotLoader{
		logger: logger.With().Str("component", "SnapshotLoader").Logger(),
		reader: common.NewFileReader(logger),
		parser: extractor.NewContentParser(logger),
		sizes:  differ.NewContentSizeValidator(maxSizeMB),
		opts:   opts,
	}
}

// load reads one snapshot. Blank files count as a missing revision and plain
// text is passed through unparsed so line breaks survive extraction.
func (sl *snapshotLoader) load(path string, format extractor.Format) (any, error) {
	data, err := sl.reader.ReadFile(path, sl.opts)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if format == extractor.FormatAuto {
		format = extractor.DetectFormat(data)
	}
	if format == extractor.FormatText {
		return string(data), nil
	}

	tree, err := sl.parser.ParseAuto(data, format)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to parse snapshot %s", path)
	}
	sl.logger.Debug().Str("path", path).Str("format", string(format)).Int("blocks", len(tree)).Msg("Snapshot loaded")
	return tree, nil
}

// batchEntry keeps both snapshots raw until their sizes are checked
type batchEntry struct {
	ID       string          `json:"id,omitempty"`
	Current  json.RawMessage `json:"current"`
	Previous json.RawMessage `json:"previous"`
}

// loadBatch reads a JSON array of revision pairs. The snapshot size limit
// applies to each snapshot in the batch, not to the batch file.
func (sl *snapshotLoader) loadBatch(path string) ([]models.RevisionPair, error) {
	data, err := sl.reader.ReadFile(path, common.FileReadOptions{})
	if err != nil {
		return nil, err
	}
	var entries []batchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, common.WrapErrorf(common.ErrInvalidInput, "batch file %s: %v", path, err)
	}

	pairs := make([]models.RevisionPair, 0, len(entries))
	for i, entry := range entries {
		if err := sl.sizes.ValidateSize(entry.Previous, entry.Current); err != nil {
			return nil, common.WrapErrorf(err, "batch file %s: pair %d (%s)", path, i, entry.ID)
		}
		pair := models.RevisionPair{ID: entry.ID}
		if pair.Current, err = decodeSnapshot(entry.Current); err != nil {
			return nil, common.WrapErrorf(common.ErrInvalidInput, "batch file %s: pair %d current: %v", path, i, err)
		}
		if pair.Previous, err = decodeSnapshot(entry.Previous); err != nil {
			return nil, common.WrapErrorf(common.ErrInvalidInput, "batch file %s: pair %d previous: %v", path, i, err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func decodeSnapshot(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
