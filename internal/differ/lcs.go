package differ

import (
	"time"

	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
)

// LCSResult is the outcome of comparing two texts.
type LCSResult struct {
	OldLength int
	NewLength int
	LCSLength int
	// Approximate is set when the table would have exceeded MaxCells and the
	// counts come from the bounded Myers diff instead.
	Approximate bool
}

// CharacterDiff converts the result to added/removed counts
func (r LCSResult) CharacterDiff() models.CharacterDiff {
	return models.CharacterDiff{
		Added:   r.NewLength - r.LCSLength,
		Removed: r.OldLength - r.LCSLength,
	}
}

// LCSDiffer computes character-level longest common subsequences
type LCSDiffer struct {
	logger   zerolog.Logger
	maxCells int64
	fallback *DiffProcessor
	stats    *DiffStatsCalculator
}

// NewLCSDiffer creates a new LCS differ. maxCells <= 0 disables the size guard.
func NewLCSDiffer(logger zerolog.Logger, maxCells int64, fallbackTimeout time.Duration) *LCSDiffer {
	return &LCSDiffer{
		logger:   logger.With().Str("component", "LCSDiffer").Logger(),
		maxCells: maxCells,
		fallback: NewDiffProcessor(fallbackTimeout),
		stats:    NewDiffStatsCalculator(),
	}
}

// MaxCells returns the table size above which the differ falls back
func (ld *LCSDiffer) MaxCells() int64 {
	return ld.maxCells
}

// CalculateCharacterDiff returns how many characters were added and removed
// going from oldText to newText: each count is the text length minus the LCS length.
func (ld *LCSDiffer) CalculateCharacterDiff(oldText, newText string) models.CharacterDiff {
	return ld.Compare(oldText, newText).CharacterDiff()
}

// Compare computes the LCS length of two texts. The common prefix and suffix
// are stripped first since they are always part of an LCS.
func (ld *LCSDiffer) Compare(oldText, newText string) LCSResult {
	oldRunes := []rune(oldText)
	newRunes := []rune(newText)
	result := LCSResult{OldLength: len(oldRunes), NewLength: len(newRunes)}

	if len(oldRunes) == 0 || len(newRunes) == 0 {
		return result
	}
	if sameText(oldText, newText) {
		result.LCSLength = len(oldRunes)
		return result
	}

	region := ChangedRegion(oldText, newText)
	shared := len(oldRunes) - region.OldLen()
	oldMid := oldRunes[region.Start:region.OldEnd]
	newMid := newRunes[region.Start:region.NewEnd]

	if cells := int64(len(oldMid)+1) * int64(len(newMid)+1); ld.maxCells > 0 && cells > ld.maxCells {
		ld.logger.Warn().
			Int64("cells", cells).
			Int64("max_cells", ld.maxCells).
			Msg("Changed region too large for exact LCS, using approximate diff")
		approx := ld.stats.CalculateStats(ld.fallback.ProcessDiff(string(oldMid), string(newMid)))
		result.LCSLength = shared + len(oldMid) - approx.Removed
		result.Approximate = true
		return result
	}

	result.LCSLength = shared + len(backtrackLCS(oldMid, newMid, buildLCSTable(oldMid, newMid)))
	return result
}

// LongestCommonSubsequence returns one longest common subsequence of a and b,
// compared character by character, without any size guard.
func LongestCommonSubsequence(a, b string) string {
	if a == "" || b == "" {
		return ""
	}
	if sameText(a, b) {
		return string([]rune(a))
	}
	ra, rb := []rune(a), []rune(b)
	region := ChangedRegion(a, b)

	var out []rune
	out = append(out, ra[:region.Start]...)
	oldMid := ra[region.Start:region.OldEnd]
	newMid := rb[region.Start:region.NewEnd]
	out = append(out, backtrackLCS(oldMid, newMid, buildLCSTable(oldMid, newMid))...)
	out = append(out, ra[region.OldEnd:]...)
	return string(out)
}

// lcsTable is a flattened (m+1)x(n+1) table of prefix LCS lengths.
type lcsTable struct {
	cells []uint32
	width int
}

func (t lcsTable) at(i, j int) uint32 {
	return t.cells[i*t.width+j]
}

func buildLCSTable(a, b []rune) lcsTable {
	m, n := len(a), len(b)
	t := lcsTable{cells: make([]uint32, (m+1)*(n+1)), width: n + 1}
	for i := 1; i <= m; i++ {
		row := i * t.width
		prev := row - t.width
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				t.cells[row+j] = t.cells[prev+j-1] + 1
			case t.cells[prev+j] >= t.cells[row+j-1]:
				t.cells[row+j] = t.cells[prev+j]
			default:
				t.cells[row+j] = t.cells[row+j-1]
			}
		}
	}
	return t
}

// backtrackLCS walks the table from (m, n) back to the origin collecting matches.
func backtrackLCS(a, b []rune, t lcsTable) []rune {
	i, j := len(a), len(b)
	out := make([]rune, t.at(i, j))
	k := len(out)
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			k--
			out[k] = a[i-1]
			i--
			j--
		case t.at(i-1, j) >= t.at(i, j-1):
			i--
		default:
			j--
		}
	}
	return out
}
