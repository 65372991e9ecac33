package editor

import "strings"

// Document is an in-memory rich-text document: a sequence of block nodes
// holding marked inline spans. It exposes the two coordinate systems the
// validation core needs: flattened-text rune offsets for matching, and
// structural positions for selections and marks.
//
// Structural positions count one token for each block boundary plus one
// per character, so they are deliberately distinct from flattened offsets.
type Document struct {
	Blocks    []Block
	selection Selection
}

// Selection is a structural-position range selected in the editor.
type Selection struct {
	From int
	To   int
}

// NewDocumentFromText builds a document from plain text, one block per
// non-empty paragraph.
func NewDocumentFromText(text string) *Document {
	doc := &Document{}
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		doc.Blocks = append(doc.Blocks, Block{
			Tag:   "p",
			Spans: []Span{{Text: para}},
		})
	}
	return doc
}

// FlattenedText returns the document text produced by depth-first
// traversal of text-bearing nodes, with blocks separated by newlines.
func (d *Document) FlattenedText() string {
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		parts = append(parts, b.Text())
	}
	return strings.Join(parts, "\n")
}

// NodeRanges returns, for each span, its flattened-text range together
// with its structural anchor, in traversal order.
func (d *Document) NodeRanges() []NodeRange {
	var ranges []NodeRange
	flat := 0
	pos := 0
	for bi, b := range d.Blocks {
		pos++ // block open
		for si, s := range b.Spans {
			n := s.runeLen()
			ranges = append(ranges, NodeRange{
				Start:      flat,
				End:        flat + n,
				Anchor:     pos,
				BlockIndex: bi,
				SpanIndex:  si,
			})
			flat += n
			pos += n
		}
		pos++ // block close
		if bi < len(d.Blocks)-1 {
			flat++ // newline separator in flattened space
		}
	}
	return ranges
}

// Size returns the structural position just past the last block.
func (d *Document) Size() int {
	pos := 0
	for _, b := range d.Blocks {
		pos += 2
		for _, s := range b.Spans {
			pos += s.runeLen()
		}
	}
	return pos
}

// Selection returns the current selection range.
func (d *Document) Selection() Selection {
	return d.selection
}

// SetSelection sets the selection, clamped to the document bounds.
func (d *Document) SetSelection(from, to int) {
	size := d.Size()
	d.selection = Selection{From: clamp(from, 0, size), To: clamp(to, 0, size)}
}

// addMark attaches the mark over the structural range [from, to), splitting
// spans at the range edges. Spans already carrying an equal mark are left
// untouched.
func (d *Document) addMark(from, to int, mark Mark) {
	pos := 0
	for bi := range d.Blocks {
		pos++ // block open
		var rebuilt []Span
		for _, s := range d.Blocks[bi].Spans {
			runes := []rune(s.Text)
			n := len(runes)
			lo := max(from, pos)
			hi := min(to, pos+n)
			if lo >= hi {
				rebuilt = append(rebuilt, s)
			} else {
				rebuilt = append(rebuilt, splitForMark(s, runes, lo-pos, hi-pos, mark)...)
			}
			pos += n
		}
		d.Blocks[bi].Spans = rebuilt
		pos++ // block close
	}
}

// splitForMark cuts one span at the mark edges and attaches the mark to
// the middle part.
func splitForMark(s Span, runes []rune, lo, hi int, mark Mark) []Span {
	var out []Span
	if lo > 0 {
		out = append(out, Span{Text: string(runes[:lo]), Marks: s.Marks})
	}
	middle := Span{Text: string(runes[lo:hi]), Marks: append(append([]Mark{}, s.Marks...), mark)}
	if s.hasMark(mark.Equal) {
		middle.Marks = s.Marks
	}
	out = append(out, middle)
	if hi < len(runes) {
		out = append(out, Span{Text: string(runes[hi:]), Marks: s.Marks})
	}
	return out
}

// removeMarkWhere strips every mark satisfying the predicate from every
// span, then merges spans left with identical mark sets.
func (d *Document) removeMarkWhere(pred func(Mark) bool) int {
	removed := 0
	for bi := range d.Blocks {
		for si := range d.Blocks[bi].Spans {
			s := &d.Blocks[bi].Spans[si]
			kept := s.Marks[:0:0]
			for _, m := range s.Marks {
				if pred(m) {
					removed++
				} else {
					kept = append(kept, m)
				}
			}
			s.Marks = kept
		}
	}
	if removed > 0 {
		d.normalize()
	}
	return removed
}

// FindMarkRange returns the structural range covered by spans whose marks
// satisfy the predicate. Returns ok=false when no span matches.
func (d *Document) FindMarkRange(pred func(Mark) bool) (from, to int, ok bool) {
	pos := 0
	from, to = -1, -1
	for _, b := range d.Blocks {
		pos++
		for _, s := range b.Spans {
			n := s.runeLen()
			if s.hasMark(pred) {
				if from < 0 {
					from = pos
				}
				to = pos + n
			}
			pos += n
		}
		pos++
	}
	if from < 0 {
		return 0, 0, false
	}
	return from, to, true
}

// MarksWhere returns every mark in the document satisfying the predicate.
func (d *Document) MarksWhere(pred func(Mark) bool) []Mark {
	var out []Mark
	for _, b := range d.Blocks {
		for _, s := range b.Spans {
			for _, m := range s.Marks {
				if pred(m) {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

// normalize merges adjacent spans with identical mark sets.
func (d *Document) normalize() {
	for bi := range d.Blocks {
		spans := d.Blocks[bi].Spans
		if len(spans) < 2 {
			continue
		}
		merged := []Span{spans[0]}
		for _, s := range spans[1:] {
			last := &merged[len(merged)-1]
			if marksEqual(last.Marks, s.Marks) {
				last.Text += s.Text
			} else {
				merged = append(merged, s)
			}
		}
		d.Blocks[bi].Spans = merged
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
