package differ

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// boundaryDMP only serves the stateless prefix/suffix helpers, so sharing it is safe.
var boundaryDMP = diffmatchpatch.New()

// Region is the changed span between two texts, in character offsets.
// old[Start:OldEnd] was replaced by new[Start:NewEnd]; everything outside is shared.
type Region struct {
	Start  int
	OldEnd int
	NewEnd int
}

// OldLen returns the length of the changed span in the old text
func (r Region) OldLen() int { return r.OldEnd - r.Start }

// NewLen returns the length of the changed span in the new text
func (r Region) NewLen() int { return r.NewEnd - r.Start }

// sameText reports whether a and b read as the same characters. An invalid
// UTF-8 byte reads as U+FFFD, as it does in a []rune conversion.
func sameText(a, b string) bool {
	if a == b {
		return true
	}
	for len(a) > 0 && len(b) > 0 {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb {
			return false
		}
		a, b = a[na:], b[nb:]
	}
	return len(a) == 0 && len(b) == 0
}

// FirstDifferenceIndex returns the character index of the first mismatch
// between a and b, or -1 when they hold the same characters. When one string
// is a prefix of the other the index is the shorter length.
func FirstDifferenceIndex(a, b string) int {
	if sameText(a, b) {
		return -1
	}
	return boundaryDMP.DiffCommonPrefix(a, b)
}

// LastDifferenceIndex returns the exclusive end, within a, of the part that
// differs from b: the length of a minus the common suffix.
func LastDifferenceIndex(a, b string) int {
	return utf8.RuneCountInString(a) - boundaryDMP.DiffCommonSuffix(a, b)
}

// ChangedRegion locates the changed span of both texts. The common suffix is
// clamped so it never overlaps the common prefix, e.g. "aa" -> "aaa" yields
// Start 2, OldEnd 2, NewEnd 3.
func ChangedRegion(oldText, newText string) Region {
	oldLen := utf8.RuneCountInString(oldText)
	newLen := utf8.RuneCountInString(newText)

	prefix := boundaryDMP.DiffCommonPrefix(oldText, newText)
	suffix := boundaryDMP.DiffCommonSuffix(oldText, newText)
	if limit := min(oldLen, newLen) - prefix; suffix > limit {
		suffix = limit
	}

	return Region{
		Start:  prefix,
		OldEnd: oldLen - suffix,
		NewEnd: newLen - suffix,
	}
}
