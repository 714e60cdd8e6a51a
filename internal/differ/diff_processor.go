package differ

import (
	"time"
	"unicode/utf8"

	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffProcessor runs the bounded Myers diff used when an input is too large for the exact LCS table.
type DiffProcessor struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffProcessor creates a new diff processor. A zero timeout lets the diff run to completion.
func NewDiffProcessor(timeout time.Duration) *DiffProcessor {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	return &DiffProcessor{dmp: dmp}
}

// ProcessDiff generates a character-level edit script between two texts
func (dp *DiffProcessor) ProcessDiff(text1, text2 string) []diffmatchpatch.Diff {
	return dp.dmp.DiffMain(text1, text2, false)
}

// DiffStatsCalculator calculates statistics from diff results
type DiffStatsCalculator struct{}

// NewDiffStatsCalculator creates a new diff stats calculator
func NewDiffStatsCalculator() *DiffStatsCalculator {
	return &DiffStatsCalculator{}
}

// CalculateStats counts inserted and deleted characters
func (dsc *DiffStatsCalculator) CalculateStats(diffs []diffmatchpatch.Diff) models.CharacterDiff {
	var stats models.CharacterDiff
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			stats.Added += utf8.RuneCountInString(diff.Text)
		case diffmatchpatch.DiffDelete:
			stats.Removed += utf8.RuneCountInString(diff.Text)
		}
	}
	return stats
}
