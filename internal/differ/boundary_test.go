package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstDifferenceIndex(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"abc", "abc", -1},
		{"", "", -1},
		{"abc", "abd", 2},
		{"ab", "abc", 2},
		{"abc", "ab", 2},
		{"", "a", 0},
		{"héllo", "hallo", 1},
		{"日本語", "日本人", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FirstDifferenceIndex(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestLastDifferenceIndex(t *testing.T) {
	assert.Equal(t, 11, LastDifferenceIndex("hello world", "hello there"))
	assert.Equal(t, 1, LastDifferenceIndex("xabc", "yabc"))
	assert.Equal(t, 0, LastDifferenceIndex("abc", "abc"))
	assert.Equal(t, 1, LastDifferenceIndex("xbc", "abc"))
	assert.Equal(t, 1, LastDifferenceIndex("日本", "本"))
}

func TestChangedRegion(t *testing.T) {
	tests := []struct {
		name     string
		oldText  string
		newText  string
		expected Region
	}{
		{name: "identical", oldText: "abc", newText: "abc", expected: Region{Start: 3, OldEnd: 3, NewEnd: 3}},
		{name: "replacement", oldText: "hello world", newText: "hello there", expected: Region{Start: 6, OldEnd: 11, NewEnd: 11}},
		{name: "suffix clamped to prefix", oldText: "aa", newText: "aaa", expected: Region{Start: 2, OldEnd: 2, NewEnd: 3}},
		{name: "leading change", oldText: "xabc", newText: "yabc", expected: Region{Start: 0, OldEnd: 1, NewEnd: 1}},
		{name: "insertion", oldText: "The cat", newText: "The fat cat", expected: Region{Start: 4, OldEnd: 4, NewEnd: 8}},
		{name: "from empty", oldText: "", newText: "abc", expected: Region{Start: 0, OldEnd: 0, NewEnd: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := ChangedRegion(tt.oldText, tt.newText)
			assert.Equal(t, tt.expected, region)
			assert.GreaterOrEqual(t, region.OldLen(), 0)
			assert.GreaterOrEqual(t, region.NewLen(), 0)
		})
	}
}
