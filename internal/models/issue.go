package models

// IssueCategory classifies a validation issue.
type IssueCategory string

const (
	// CategoryGrammar covers grammatical errors, tense and agreement problems.
	CategoryGrammar IssueCategory = "Grammar"
	// CategoryWordUsage covers incorrect word choice, redundancy and unclear phrasing.
	CategoryWordUsage IssueCategory = "WordUsage"
	// CategoryPunctuation covers missing or incorrect punctuation marks.
	CategoryPunctuation IssueCategory = "Punctuation"
	// CategoryLogic covers logical inconsistencies and missing transitions.
	CategoryLogic IssueCategory = "Logic"
)

// IsValid reports whether the category is one of the four known values.
func (c IssueCategory) IsValid() bool {
	switch c {
	case CategoryGrammar, CategoryWordUsage, CategoryPunctuation, CategoryLogic:
		return true
	}
	return false
}

// IssueSeverity indicates how serious a validation issue is.
type IssueSeverity string

const (
	// SeverityHigh marks issues that must be fixed.
	SeverityHigh IssueSeverity = "high"
	// SeverityMedium marks issues that should be fixed.
	SeverityMedium IssueSeverity = "medium"
	// SeverityLow marks stylistic suggestions.
	SeverityLow IssueSeverity = "low"
)

// ValidationIssue is a single flagged problem reported by the validation
// model for one chunk. Immutable after creation.
type ValidationIssue struct {
	ID         string        `json:"id"`
	Category   IssueCategory `json:"category"`
	Severity   IssueSeverity `json:"severity"`
	Location   string        `json:"location"`
	Issue      string        `json:"issue"`
	Suggestion string        `json:"suggestion"`
	ChunkIndex int           `json:"chunkIndex"`
}

// IssueKey identifies an issue across a whole validation run. The model
// generates ids per chunk ("issue-grammar-1"), so uniqueness is only
// guaranteed by the (chunk, id) composite.
type IssueKey struct {
	ChunkIndex int
	IssueID    string
}

// Key returns the composite identity of the issue.
func (i ValidationIssue) Key() IssueKey {
	return IssueKey{ChunkIndex: i.ChunkIndex, IssueID: i.ID}
}
