package position

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/xdrshjr/AIDocMaster/internal/common"
	"github.com/xdrshjr/AIDocMaster/internal/editor"
)

// TextSource is the capability a rich-text engine must expose for
// position mapping: a flattened text plus the per-node offset ranges that
// anchor it back to structural positions.
type TextSource interface {
	FlattenedText() string
	NodeRanges() []editor.NodeRange
}

// Range is a structural-position range addressing document content for
// selection and marking.
type Range struct {
	From int
	To   int
}

// MapperConfig controls the matching fallback policy.
type MapperConfig struct {
	// ProbeLength is how many normalized runes of the search text the
	// fuzzy fallback uses. Kept under the bitap 32-rune pattern limit.
	ProbeLength int
	// MatchThreshold is the diffmatchpatch fuzziness (0 exact, 1 loose).
	MatchThreshold float64
}

// DefaultMapperConfig returns the default matching configuration
func DefaultMapperConfig() MapperConfig {
	return MapperConfig{
		ProbeLength:    30,
		MatchThreshold: 0.5,
	}
}

// Mapper locates a reported issue's quoted snippet inside the live
// document and translates it to structural positions. Matching policy:
// exact normalized substring, then fuzzy prefix probe, then no match,
// since a false highlight is worse than a missing one.
type Mapper struct {
	config MapperConfig
	logger zerolog.Logger
}

// MapperBuilder provides a fluent interface for creating a Mapper
type MapperBuilder struct {
	config MapperConfig
	logger zerolog.Logger
}

// NewMapperBuilder creates a new builder
func NewMapperBuilder(logger zerolog.Logger) *MapperBuilder {
	return &MapperBuilder{
		config: DefaultMapperConfig(),
		logger: logger.With().Str("component", "PositionMapper").Logger(),
	}
}

// WithConfig sets the matching configuration
func (b *MapperBuilder) WithConfig(cfg MapperConfig) *MapperBuilder {
	b.config = cfg
	return b
}

// Build creates a new Mapper instance
func (b *MapperBuilder) Build() (*Mapper, error) {
	if b.config.ProbeLength <= 0 || b.config.ProbeLength > 32 {
		return nil, common.NewValidationError("probe_length", b.config.ProbeLength, "probe length must be in 1..32")
	}
	if b.config.MatchThreshold < 0 || b.config.MatchThreshold > 1 {
		return nil, common.NewValidationError("match_threshold", b.config.MatchThreshold, "match threshold must be in 0..1")
	}
	return &Mapper{
		config: b.config,
		logger: b.logger,
	}, nil
}

// FindPosition locates searchText inside the source document and returns
// the structural range of the match, or nil when nothing matches.
func (m *Mapper) FindPosition(source TextSource, searchText string) *Range {
	docNorm := normalizeWithMap(source.FlattenedText())
	searchNorm := Normalize(searchText)
	if docNorm.text == "" || searchNorm == "" {
		return nil
	}

	start, end, ok := m.matchNormalized(docNorm.text, searchNorm)
	if !ok {
		m.logger.Debug().Str("search", truncate(searchText, 60)).Msg("No document match for search text")
		return nil
	}

	return m.toStructural(docNorm, source.NodeRanges(), start, end)
}

// matchNormalized runs the ordered fallback in normalized rune space.
func (m *Mapper) matchNormalized(docNorm, searchNorm string) (start, end int, ok bool) {
	if idx := strings.Index(docNorm, searchNorm); idx >= 0 {
		start = utf8.RuneCountInString(docNorm[:idx])
		return start, start + utf8.RuneCountInString(searchNorm), true
	}

	probe := searchNorm
	if utf8.RuneCountInString(probe) > m.config.ProbeLength {
		probe = string([]rune(probe)[:m.config.ProbeLength])
	}
	// Bitap patterns are limited to 32 bytes; multi-byte text needs a
	// shorter probe.
	for len(probe) > 32 {
		r := []rune(probe)
		probe = string(r[:len(r)-1])
	}

	dmp := diffmatchpatch.New()
	dmp.MatchThreshold = m.config.MatchThreshold
	dmp.MatchDistance = len(docNorm)
	loc := dmp.MatchMain(docNorm, probe, 0)
	if loc < 0 {
		return 0, 0, false
	}

	start = utf8.RuneCountInString(docNorm[:loc])
	return start, start + utf8.RuneCountInString(probe), true
}

// toStructural translates a normalized rune range back through the
// normalization offset table and the node range map.
func (m *Mapper) toStructural(docNorm normalizedText, ranges []editor.NodeRange, start, end int) *Range {
	if start >= docNorm.runeLen() || end <= start || end > docNorm.runeLen() {
		return nil
	}

	flatStart := docNorm.offsets[start]
	flatLast := docNorm.offsets[end-1]

	from, ok := mapOffset(ranges, flatStart)
	if !ok {
		m.logger.Debug().Int("offset", flatStart).Msg("Match start does not fall inside any text node")
		return nil
	}
	toExclusive, ok := mapOffset(ranges, flatLast)
	if !ok {
		m.logger.Debug().Int("offset", flatLast).Msg("Match end does not fall inside any text node")
		return nil
	}

	return &Range{From: from, To: toExclusive + 1}
}

// mapOffset finds the node whose flattened range contains the offset and
// adds the intra-node delta to that node's structural anchor.
func mapOffset(ranges []editor.NodeRange, offset int) (int, bool) {
	for _, nr := range ranges {
		if nr.Contains(offset) {
			return nr.Anchor + (offset - nr.Start), true
		}
	}
	return 0, false
}

// truncate shortens a string for log output.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
