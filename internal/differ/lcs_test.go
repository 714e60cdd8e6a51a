package differ

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLCSDiffer() *LCSDiffer {
	return NewLCSDiffer(zerolog.Nop(), 1<<20, 0)
}

func TestLCSDiffer_CalculateCharacterDiff(t *testing.T) {
	ld := newTestLCSDiffer()

	tests := []struct {
		name     string
		oldText  string
		newText  string
		expected models.CharacterDiff
	}{
		{name: "both empty", expected: models.CharacterDiff{}},
		{name: "new text only", newText: "abc", expected: models.CharacterDiff{Added: 3}},
		{name: "old text only", oldText: "abc", expected: models.CharacterDiff{Removed: 3}},
		{name: "identical", oldText: "héllo", newText: "héllo", expected: models.CharacterDiff{}},
		{name: "word replaced", oldText: "hello world", newText: "hello there", expected: models.CharacterDiff{Added: 4, Removed: 4}},
		{name: "single insertion", oldText: "abc", newText: "abxc", expected: models.CharacterDiff{Added: 1}},
		{name: "single deletion", oldText: "abxc", newText: "abc", expected: models.CharacterDiff{Removed: 1}},
		{name: "counts characters not bytes", oldText: "naïve", newText: "naive", expected: models.CharacterDiff{Added: 1, Removed: 1}},
		{name: "repeated characters", oldText: "aa", newText: "aaa", expected: models.CharacterDiff{Added: 1}},
		{name: "disjoint", oldText: "abc", newText: "xyz", expected: models.CharacterDiff{Added: 3, Removed: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ld.CalculateCharacterDiff(tt.oldText, tt.newText))
		})
	}
}

func TestLongestCommonSubsequence(t *testing.T) {
	assert.Equal(t, "hello r", LongestCommonSubsequence("hello world", "hello there"))
	assert.Equal(t, "", LongestCommonSubsequence("", "abc"))
	assert.Equal(t, "abc", LongestCommonSubsequence("abc", "abc"))
	assert.Equal(t, "ac", LongestCommonSubsequence("abc", "xaxc"))
	assert.Equal(t, "aa", LongestCommonSubsequence("aa", "aaa"))
}

func TestLCSDiffer_Properties(t *testing.T) {
	ld := newTestLCSDiffer()
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("ab cé")

	randomText := func() string {
		n := rng.Intn(12)
		r := make([]rune, n)
		for i := range r {
			r[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(r)
	}

	for i := 0; i < 300; i++ {
		a, b := randomText(), randomText()
		diff := ld.CalculateCharacterDiff(a, b)
		lcs := LongestCommonSubsequence(a, b)

		require.GreaterOrEqual(t, diff.Added, 0, "%q -> %q", a, b)
		require.GreaterOrEqual(t, diff.Removed, 0, "%q -> %q", a, b)
		require.Equal(t, a == b, diff.IsZero(), "%q -> %q", a, b)
		require.Equal(t, utf8.RuneCountInString(b)-utf8.RuneCountInString(a), diff.Added-diff.Removed)
		require.Equal(t, utf8.RuneCountInString(b)-utf8.RuneCountInString(lcs), diff.Added, "%q -> %q", a, b)
		require.True(t, isSubsequence(lcs, a), "%q not in %q", lcs, a)
		require.True(t, isSubsequence(lcs, b), "%q not in %q", lcs, b)
		require.Equal(t, models.CharacterDiff{}, ld.CalculateCharacterDiff(a, a))
		require.Equal(t, models.CharacterDiff{Added: diff.Removed, Removed: diff.Added}, ld.CalculateCharacterDiff(b, a))
	}
}

func TestLCSDiffer_FallsBackAboveMaxCells(t *testing.T) {
	ld := NewLCSDiffer(zerolog.Nop(), 4, 0)

	result := ld.Compare("abcdef", "azcdyf")

	assert.True(t, result.Approximate)
	assert.Equal(t, models.CharacterDiff{Added: 2, Removed: 2}, result.CharacterDiff())
	assert.Equal(t, newTestLCSDiffer().CalculateCharacterDiff("abcdef", "azcdyf"), result.CharacterDiff())
}

func TestLCSDiffer_TrimmingKeepsTableSmall(t *testing.T) {
	// Only the single changed character needs a table, so a tiny cap is enough.
	ld := NewLCSDiffer(zerolog.Nop(), 4, 0)
	prefix := strings.Repeat("p", 500)
	suffix := strings.Repeat("s", 500)

	result := ld.Compare(prefix+"a"+suffix, prefix+"b"+suffix)

	assert.False(t, result.Approximate)
	assert.Equal(t, models.CharacterDiff{Added: 1, Removed: 1}, result.CharacterDiff())
}

func isSubsequence(sub, s string) bool {
	rs := []rune(s)
	i := 0
	for _, r := range sub {
		for i < len(rs) && rs[i] != r {
			i++
		}
		if i == len(rs) {
			return false
		}
		i++
	}
	return true
}

func TestLCSDiffer_InvalidUTF8ReadsAsReplacementCharacter(t *testing.T) {
	ld := newTestLCSDiffer()
	a, b := "page \xff end", "page \xfe end"

	// Both bytes read as U+FFFD, so every component sees the same text.
	assert.Equal(t, models.CharacterDiff{}, ld.CalculateCharacterDiff(a, b))
	assert.Equal(t, -1, FirstDifferenceIndex(a, b))
	assert.Equal(t, "page \uFFFD end", LongestCommonSubsequence(a, b))

	c := "page X end"
	assert.Equal(t, models.CharacterDiff{Added: 1, Removed: 1}, ld.CalculateCharacterDiff(a, c))
	assert.Equal(t, 5, FirstDifferenceIndex(a, c))
}
