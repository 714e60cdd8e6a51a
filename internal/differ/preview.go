package differ

import (
	"strings"

	"github.com/aleister1102/wikidiff/internal/config"
	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
)

// PreviewGenerator builds bounded, human-readable excerpts of a change
type PreviewGenerator struct {
	logger zerolog.Logger
	cfg    config.PreviewConfig
}

// NewPreviewGenerator creates a new preview generator
func NewPreviewGenerator(logger zerolog.Logger, cfg config.PreviewConfig) *PreviewGenerator {
	return &PreviewGenerator{
		logger: logger.With().Str("component", "PreviewGenerator").Logger(),
		cfg:    cfg,
	}
}

// GeneratePreview returns the changed region of newText relative to oldText
// with bounded context on both sides, or nil when nothing meaningful changed.
func (pg *PreviewGenerator) GeneratePreview(oldText, newText string) (preview *models.Preview) {
	defer func() {
		if r := recover(); r != nil {
			pg.logger.Warn().Interface("panic", r).Msg("Recovered while generating preview")
			preview = nil
		}
	}()

	if FirstDifferenceIndex(oldText, newText) == -1 {
		return nil
	}

	oldRunes := []rune(oldText)
	newRunes := []rune(newText)
	region := ChangedRegion(oldText, newText)

	// A net addition may also drop characters and vice versa; an equal-length
	// change is a replacement. In every case both changed spans are reported.
	added := sliceChars(newRunes, region.Start, region.NewEnd)
	removed := sliceChars(oldRunes, region.Start, region.OldEnd)

	if isBlank(added) && isBlank(removed) {
		return nil
	}

	before := sliceChars(newRunes, region.Start-pg.cfg.ContextChars, region.Start)
	after := sliceChars(newRunes, region.NewEnd, region.NewEnd+pg.cfg.ContextChars)

	return &models.Preview{
		BeforeContext: truncateStart(before, pg.cfg.DisplayContextChars, pg.cfg.Ellipsis),
		AddedText:     truncateEnd(added, pg.cfg.MaxChangeChars, pg.cfg.Ellipsis),
		RemovedText:   truncateEnd(removed, pg.cfg.MaxChangeChars, pg.cfg.Ellipsis),
		AfterContext:  truncateEnd(after, pg.cfg.DisplayContextChars, pg.cfg.Ellipsis),
		HasAdditions:  added != "",
		HasRemovals:   removed != "",
	}
}

// NewDocumentPreview describes a page with no previous revision: the opening
// characters as added text and the next few as trailing context.
func (pg *PreviewGenerator) NewDocumentPreview(text string) *models.Preview {
	if isBlank(text) {
		return nil
	}
	added, rest := headChars(text, pg.cfg.NewDocumentChars)
	after, _ := headChars(rest, pg.cfg.NewDocumentAfter)
	return &models.Preview{
		AddedText:    added,
		AfterContext: after,
		HasAdditions: true,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
