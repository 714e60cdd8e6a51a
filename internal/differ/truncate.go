package differ

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// graphemeBoundaries returns the byte offset and character count at the end of
// every grapheme cluster in s, starting with (0, 0).
func graphemeBoundaries(s string) (bytes []int, runes []int) {
	bytes = []int{0}
	runes = []int{0}
	iter := graphemes.FromString(s)
	count := 0
	for iter.Next() {
		count += utf8.RuneCountInString(iter.Value())
		bytes = append(bytes, iter.End())
		runes = append(runes, count)
	}
	return bytes, runes
}

// headChars returns the longest prefix of s holding at most limit characters
// that ends on a grapheme boundary, and the remainder.
func headChars(s string, limit int) (head, rest string) {
	if limit <= 0 {
		return "", s
	}
	if utf8.RuneCountInString(s) <= limit {
		return s, ""
	}
	bytes, runes := graphemeBoundaries(s)
	cut := 0
	for i := range runes {
		if runes[i] > limit {
			break
		}
		cut = bytes[i]
	}
	return s[:cut], s[cut:]
}

// tailChars returns the longest suffix of s holding at most limit characters
// that starts on a grapheme boundary.
func tailChars(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	total := utf8.RuneCountInString(s)
	if total <= limit {
		return s
	}
	bytes, runes := graphemeBoundaries(s)
	for i := range runes {
		if total-runes[i] <= limit {
			return s[bytes[i]:]
		}
	}
	return ""
}

// truncateEnd keeps the first limit characters and appends ellipsis when s was longer.
func truncateEnd(s string, limit int, ellipsis string) string {
	head, rest := headChars(s, limit)
	if rest == "" {
		return head
	}
	return head + ellipsis
}

// truncateStart keeps the last limit characters and prefixes ellipsis when s was longer.
func truncateStart(s string, limit int, ellipsis string) string {
	tail := tailChars(s, limit)
	if len(tail) == len(s) {
		return tail
	}
	return ellipsis + tail
}

// sliceChars returns string(r[start:end]) with both offsets clamped.
func sliceChars(r []rune, start, end int) string {
	start = max(0, min(start, len(r)))
	end = max(start, min(end, len(r)))
	return string(r[start:end])
}
