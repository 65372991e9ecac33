package position

import (
	"strings"
	"unicode"
)

// normalizedText pairs a normalized string with a table mapping each of
// its rune offsets back to the rune offset in the original text. The
// table is what lets a match found in normalized space be translated to a
// real document range.
type normalizedText struct {
	text    string
	offsets []int
}

// runeLen returns the normalized length in runes.
func (n normalizedText) runeLen() int {
	return len(n.offsets)
}

// Normalize lowercases, straightens curly quotes, collapses whitespace
// runs to single spaces and trims. Used for search text, where no offset
// mapping is needed.
func Normalize(s string) string {
	return normalizeWithMap(s).text
}

// normalizeWithMap normalizes while recording the origin of every emitted
// rune. Collapsed whitespace maps to the first whitespace rune of the run.
func normalizeWithMap(s string) normalizedText {
	runes := []rune(s)
	var sb strings.Builder
	offsets := make([]int, 0, len(runes))

	pendingSpace := -1
	for i, r := range runes {
		if unicode.IsSpace(r) {
			if pendingSpace < 0 {
				pendingSpace = i
			}
			continue
		}
		if pendingSpace >= 0 {
			if sb.Len() > 0 {
				sb.WriteRune(' ')
				offsets = append(offsets, pendingSpace)
			}
			pendingSpace = -1
		}
		sb.WriteRune(normalizeRune(r))
		offsets = append(offsets, i)
	}

	return normalizedText{text: sb.String(), offsets: offsets}
}

// normalizeRune lowercases and straightens typographic quotes.
func normalizeRune(r rune) rune {
	switch r {
	case '‘', '’': // curly single quotes
		return '\''
	case '“', '”': // curly double quotes
		return '"'
	}
	return unicode.ToLower(r)
}
