package highlight

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/common"
	"github.com/xdrshjr/AIDocMaster/internal/editor"
	"github.com/xdrshjr/AIDocMaster/internal/models"
	"github.com/xdrshjr/AIDocMaster/internal/position"
)

// MarkType is the inline mark type carried by validation highlights.
const MarkType = "validation-highlight"

// Mark attribute names, emitted as data attributes for DOM lookup.
const (
	AttrIssueID    = "issue-id"
	AttrChunkIndex = "chunk-index"
	AttrColor      = "color"
)

// Severity highlight colors.
const (
	ColorHigh    = "#fecaca"
	ColorMedium  = "#fef3c7"
	ColorLow     = "#bfdbfe"
	ColorDefault = "#fef3c7"
)

// FlashDuration is how long the reveal pulse lasts before the mark
// reverts to its steady-state style.
const FlashDuration = 1500 * time.Millisecond

// ClickEvent is delivered when the user clicks a highlighted span,
// enabling reverse navigation from the document to the results panel.
type ClickEvent struct {
	IssueID    string
	ChunkIndex int
}

// Viewport is the UI capability the overlay needs for reveal: scrolling a
// range into view and pulsing it. Both are pure side effects.
type Viewport interface {
	ScrollTo(rng position.Range)
	Flash(rng position.Range, duration time.Duration)
}

// Overlay applies and removes validation highlight marks over a document
// and routes span clicks to an event channel.
type Overlay struct {
	doc      *editor.Document
	viewport Viewport
	logger   zerolog.Logger
	clicks   chan ClickEvent
}

// OverlayBuilder provides a fluent interface for creating an Overlay
type OverlayBuilder struct {
	doc      *editor.Document
	viewport Viewport
	logger   zerolog.Logger
}

// NewOverlayBuilder creates a new builder
func NewOverlayBuilder(logger zerolog.Logger) *OverlayBuilder {
	return &OverlayBuilder{
		logger: logger.With().Str("component", "HighlightOverlay").Logger(),
	}
}

// WithDocument sets the document the overlay operates on
func (b *OverlayBuilder) WithDocument(doc *editor.Document) *OverlayBuilder {
	b.doc = doc
	return b
}

// WithViewport sets the viewport used for reveal
func (b *OverlayBuilder) WithViewport(vp Viewport) *OverlayBuilder {
	b.viewport = vp
	return b
}

// Build creates a new Overlay instance
func (b *OverlayBuilder) Build() (*Overlay, error) {
	if b.doc == nil {
		return nil, common.NewValidationError("document", b.doc, "document cannot be nil")
	}
	return &Overlay{
		doc:      b.doc,
		viewport: b.viewport,
		logger:   b.logger,
		clicks:   make(chan ClickEvent, 64),
	}, nil
}

// Apply sets a highlight mark over the range for the given issue. The
// color follows the issue severity unless severity is empty.
func (o *Overlay) Apply(rng position.Range, issueID string, chunkIndex int, severity models.IssueSeverity) {
	mark := editor.NewMark(MarkType, map[string]string{
		AttrIssueID:    issueID,
		AttrChunkIndex: strconv.Itoa(chunkIndex),
		AttrColor:      SeverityColor(severity),
	})

	o.doc.Begin().AddMark(rng.From, rng.To, mark).Commit()
	o.logger.Debug().
		Str("issue_id", issueID).
		Int("chunk_index", chunkIndex).
		Int("from", rng.From).
		Int("to", rng.To).
		Msg("Highlight applied")
}

// Remove strips every mark carrying the issue id. Removing an absent
// highlight is a no-op, not an error.
func (o *Overlay) Remove(issueID string) {
	o.doc.Begin().RemoveMarkWhere(o.issuePredicate(issueID)).Commit()
}

// ClearAll strips every validation highlight from the whole document in
// one batched transaction.
func (o *Overlay) ClearAll() {
	o.doc.Begin().RemoveMarkWhere(func(m editor.Mark) bool {
		return m.Type == MarkType
	}).Commit()
	o.logger.Debug().Msg("All highlights cleared")
}

// Reveal selects the issue's mark range, scrolls it into view and pulses
// it. A missing mark is logged and ignored.
func (o *Overlay) Reveal(issueID string) {
	from, to, ok := o.doc.FindMarkRange(o.issuePredicate(issueID))
	if !ok {
		o.logger.Debug().Str("issue_id", issueID).Msg("Highlight not found for reveal")
		return
	}

	rng := position.Range{From: from, To: to}
	o.doc.SetSelection(from, to)
	if o.viewport != nil {
		o.viewport.ScrollTo(rng)
		o.viewport.Flash(rng, FlashDuration)
	}
}

// HandleClick routes a click on a highlighted span to the event channel.
// Events are dropped rather than blocking the UI when nobody listens.
func (o *Overlay) HandleClick(issueID string, chunkIndex int) {
	select {
	case o.clicks <- ClickEvent{IssueID: issueID, ChunkIndex: chunkIndex}:
	default:
		o.logger.Warn().Str("issue_id", issueID).Msg("Click event dropped, channel full")
	}
}

// Clicks exposes the channel of span click events.
func (o *Overlay) Clicks() <-chan ClickEvent {
	return o.clicks
}

// ActiveIssueKeys lists the issues that currently hold a mark somewhere
// in the document. Stale marks for cleared issues are expected.
func (o *Overlay) ActiveIssueKeys() []models.IssueKey {
	seen := make(map[models.IssueKey]bool)
	var keys []models.IssueKey
	for _, m := range o.doc.MarksWhere(func(m editor.Mark) bool { return m.Type == MarkType }) {
		chunkIndex, _ := strconv.Atoi(m.Attr(AttrChunkIndex))
		key := models.IssueKey{ChunkIndex: chunkIndex, IssueID: m.Attr(AttrIssueID)}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// issuePredicate matches validation marks for one issue id.
func (o *Overlay) issuePredicate(issueID string) func(editor.Mark) bool {
	return func(m editor.Mark) bool {
		return m.Type == MarkType && m.Attr(AttrIssueID) == issueID
	}
}

// SeverityColor maps an issue severity to its highlight color.
func SeverityColor(severity models.IssueSeverity) string {
	switch severity {
	case models.SeverityHigh:
		return ColorHigh
	case models.SeverityMedium:
		return ColorMedium
	case models.SeverityLow:
		return ColorLow
	default:
		return ColorDefault
	}
}
