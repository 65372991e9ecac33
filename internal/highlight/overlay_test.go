package highlight

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdrshjr/AIDocMaster/internal/editor"
	"github.com/xdrshjr/AIDocMaster/internal/models"
	"github.com/xdrshjr/AIDocMaster/internal/position"
)

// recordingViewport captures reveal side effects for assertions.
type recordingViewport struct {
	scrolled []position.Range
	flashed  []position.Range
}

func (v *recordingViewport) ScrollTo(rng position.Range) {
	v.scrolled = append(v.scrolled, rng)
}

func (v *recordingViewport) Flash(rng position.Range, _ time.Duration) {
	v.flashed = append(v.flashed, rng)
}

func newTestOverlay(t *testing.T, doc *editor.Document, vp Viewport) *Overlay {
	t.Helper()
	o, err := NewOverlayBuilder(zerolog.Nop()).
		WithDocument(doc).
		WithViewport(vp).
		Build()
	require.NoError(t, err)
	return o
}

func TestOverlayBuilder_RequiresDocument(t *testing.T) {
	_, err := NewOverlayBuilder(zerolog.Nop()).Build()
	assert.Error(t, err)
}

func TestOverlay_ApplySetsMarkWithoutChangingText(t *testing.T) {
	doc := editor.NewDocumentFromText("hello world")
	o := newTestOverlay(t, doc, nil)

	o.Apply(position.Range{From: 7, To: 12}, "issue-1", 0, models.SeverityHigh)

	assert.Equal(t, "hello world", doc.FlattenedText())
	marks := doc.MarksWhere(func(m editor.Mark) bool { return m.Type == MarkType })
	require.Len(t, marks, 1)
	assert.Equal(t, "issue-1", marks[0].Attr(AttrIssueID))
	assert.Equal(t, "0", marks[0].Attr(AttrChunkIndex))
	assert.Equal(t, ColorHigh, marks[0].Attr(AttrColor))
}

func TestOverlay_ApplyThenRemoveLeavesNoMarks(t *testing.T) {
	doc := editor.NewDocumentFromText("hello world")
	o := newTestOverlay(t, doc, nil)

	o.Apply(position.Range{From: 7, To: 12}, "issue-1", 0, models.SeverityMedium)
	o.Remove("issue-1")

	assert.Empty(t, doc.MarksWhere(func(m editor.Mark) bool { return m.Type == MarkType }))
	require.Len(t, doc.Blocks[0].Spans, 1)
	assert.Equal(t, "hello world", doc.Blocks[0].Spans[0].Text)
}

func TestOverlay_RemoveAbsentHighlightIsNoOp(t *testing.T) {
	doc := editor.NewDocumentFromText("hello world")
	o := newTestOverlay(t, doc, nil)

	o.Remove("never-applied")

	assert.Equal(t, "hello world", doc.FlattenedText())
}

func TestOverlay_RemoveKeepsOtherHighlights(t *testing.T) {
	doc := editor.NewDocumentFromText("hello world")
	o := newTestOverlay(t, doc, nil)

	o.Apply(position.Range{From: 1, To: 6}, "issue-1", 0, models.SeverityLow)
	o.Apply(position.Range{From: 7, To: 12}, "issue-2", 1, models.SeverityLow)
	o.Remove("issue-1")

	keys := o.ActiveIssueKeys()
	require.Len(t, keys, 1)
	assert.Equal(t, models.IssueKey{ChunkIndex: 1, IssueID: "issue-2"}, keys[0])
}

func TestOverlay_ClearAllStripsEveryHighlight(t *testing.T) {
	doc := editor.NewDocumentFromText("one two three four")
	o := newTestOverlay(t, doc, nil)

	o.Apply(position.Range{From: 1, To: 4}, "issue-1", 0, models.SeverityHigh)
	o.Apply(position.Range{From: 5, To: 8}, "issue-2", 0, models.SeverityMedium)
	o.Apply(position.Range{From: 9, To: 14}, "issue-3", 2, models.SeverityLow)
	o.ClearAll()

	assert.Empty(t, o.ActiveIssueKeys())
	require.Len(t, doc.Blocks[0].Spans, 1)
	assert.Equal(t, "one two three four", doc.Blocks[0].Spans[0].Text)
}

func TestOverlay_RevealSelectsScrollsAndFlashes(t *testing.T) {
	doc := editor.NewDocumentFromText("hello world")
	vp := &recordingViewport{}
	o := newTestOverlay(t, doc, vp)

	o.Apply(position.Range{From: 7, To: 12}, "issue-1", 0, models.SeverityHigh)
	o.Reveal("issue-1")

	assert.Equal(t, editor.Selection{From: 7, To: 12}, doc.Selection())
	require.Len(t, vp.scrolled, 1)
	assert.Equal(t, position.Range{From: 7, To: 12}, vp.scrolled[0])
	require.Len(t, vp.flashed, 1)
}

func TestOverlay_RevealMissingIssueIsIgnored(t *testing.T) {
	doc := editor.NewDocumentFromText("hello world")
	vp := &recordingViewport{}
	o := newTestOverlay(t, doc, vp)

	o.Reveal("missing")

	assert.Empty(t, vp.scrolled)
	assert.Empty(t, vp.flashed)
	assert.Equal(t, editor.Selection{}, doc.Selection())
}

func TestOverlay_HandleClickDeliversEvent(t *testing.T) {
	doc := editor.NewDocumentFromText("hello world")
	o := newTestOverlay(t, doc, nil)

	o.HandleClick("issue-1", 3)

	select {
	case ev := <-o.Clicks():
		assert.Equal(t, ClickEvent{IssueID: "issue-1", ChunkIndex: 3}, ev)
	default:
		t.Fatal("expected a click event")
	}
}

func TestOverlay_HandleClickDropsWhenChannelFull(t *testing.T) {
	doc := editor.NewDocumentFromText("hello world")
	o := newTestOverlay(t, doc, nil)

	// Fill the buffer and one more; the overflow must not block.
	for i := 0; i < 100; i++ {
		o.HandleClick("issue-1", i)
	}

	assert.Len(t, o.Clicks(), 64)
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, ColorHigh, SeverityColor(models.SeverityHigh))
	assert.Equal(t, ColorMedium, SeverityColor(models.SeverityMedium))
	assert.Equal(t, ColorLow, SeverityColor(models.SeverityLow))
	assert.Equal(t, ColorDefault, SeverityColor(models.IssueSeverity("unknown")))
}
