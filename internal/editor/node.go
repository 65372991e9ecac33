package editor

// Span is a run of inline text sharing one mark set.
type Span struct {
	Text  string
	Marks []Mark
}

// runeLen returns the span length in runes.
func (s Span) runeLen() int {
	return len([]rune(s.Text))
}

// hasMark reports whether any mark on the span satisfies the predicate.
func (s Span) hasMark(pred func(Mark) bool) bool {
	for _, m := range s.Marks {
		if pred(m) {
			return true
		}
	}
	return false
}

// Block is a block-level node (paragraph, heading, list item) containing
// inline spans.
type Block struct {
	Tag   string
	Spans []Span
}

// Text returns the concatenated text of all spans in the block.
func (b Block) Text() string {
	out := ""
	for _, s := range b.Spans {
		out += s.Text
	}
	return out
}

// NodeRange maps one span's flattened-text range to its structural anchor.
// Start and End are rune offsets in flattened-text space; Anchor is the
// structural position of the span's first character.
type NodeRange struct {
	Start      int
	End        int
	Anchor     int
	BlockIndex int
	SpanIndex  int
}

// Contains reports whether the flattened offset falls inside the range.
func (nr NodeRange) Contains(offset int) bool {
	return offset >= nr.Start && offset < nr.End
}
