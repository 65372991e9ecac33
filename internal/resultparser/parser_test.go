package resultparser

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdrshjr/AIDocMaster/internal/models"
)

const sampleReport = `{
	"issues": [
		{"id": "issue-grammar-1", "category": "Grammar", "severity": "high",
		 "location": "The the cat", "issue": "Duplicated article", "suggestion": "The cat"},
		{"id": "issue-punct-1", "category": "Punctuation", "severity": "low",
		 "location": "end of line", "issue": "Missing period", "suggestion": "Add a period"}
	],
	"summary": {"totalIssues": 99, "grammarCount": 99}
}`

func TestParser_ParsesPlainJSON(t *testing.T) {
	p := NewParser(zerolog.Nop())

	result := p.Parse(sampleReport, 2)

	assert.False(t, result.HasError())
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "issue-grammar-1", result.Issues[0].ID)
	assert.Equal(t, models.CategoryGrammar, result.Issues[0].Category)
	assert.Equal(t, models.SeverityHigh, result.Issues[0].Severity)
	assert.Equal(t, 2, result.ChunkIndex)
}

func TestParser_StampsChunkIndexOnEveryIssue(t *testing.T) {
	p := NewParser(zerolog.Nop())

	result := p.Parse(sampleReport, 7)

	for _, issue := range result.Issues {
		assert.Equal(t, 7, issue.ChunkIndex)
	}
	assert.Equal(t, models.IssueKey{ChunkIndex: 7, IssueID: "issue-grammar-1"}, result.Issues[0].Key())
}

func TestParser_RecomputesSummaryIgnoringReportedCounts(t *testing.T) {
	p := NewParser(zerolog.Nop())

	result := p.Parse(sampleReport, 0)

	// The report claims 99 issues; the summary must reflect the actual array.
	assert.Equal(t, 2, result.Summary.TotalIssues)
	assert.Equal(t, 1, result.Summary.GrammarCount)
	assert.Equal(t, 1, result.Summary.PunctuationCount)
	assert.Equal(t, 0, result.Summary.WordUsageCount)
}

func TestParser_StripsJSONCodeFence(t *testing.T) {
	p := NewParser(zerolog.Nop())

	fenced := "```json\n" + sampleReport + "\n```"
	result := p.Parse(fenced, 0)

	assert.False(t, result.HasError())
	assert.Len(t, result.Issues, 2)
}

func TestParser_StripsBareCodeFence(t *testing.T) {
	p := NewParser(zerolog.Nop())

	fenced := "```\n" + sampleReport + "\n```"
	result := p.Parse(fenced, 0)

	assert.False(t, result.HasError())
	assert.Len(t, result.Issues, 2)
}

func TestParser_MalformedJSONBecomesChunkError(t *testing.T) {
	p := NewParser(zerolog.Nop())

	result := p.Parse("I found some issues: the grammar is wrong.", 3)

	assert.True(t, result.HasError())
	assert.Equal(t, 3, result.ChunkIndex)
	assert.Empty(t, result.Issues)
}

func TestParser_EmptyOutputBecomesChunkError(t *testing.T) {
	p := NewParser(zerolog.Nop())

	assert.True(t, p.Parse("", 0).HasError())
	assert.True(t, p.Parse("   \n  ", 0).HasError())
	assert.True(t, p.Parse("```json\n```", 0).HasError())
}

func TestParser_NullOrMissingIssuesMeansNoIssues(t *testing.T) {
	p := NewParser(zerolog.Nop())

	for _, raw := range []string{
		`{"issues": null}`,
		`{"summary": {"totalIssues": 0}}`,
		`{"issues": "not an array"}`,
		`{}`,
	} {
		result := p.Parse(raw, 0)
		assert.False(t, result.HasError(), "input %q", raw)
		assert.NotNil(t, result.Issues, "input %q", raw)
		assert.Empty(t, result.Issues, "input %q", raw)
		assert.Equal(t, 0, result.Summary.TotalIssues, "input %q", raw)
	}
}

func TestParser_UnknownCategoryKeptAsReported(t *testing.T) {
	p := NewParser(zerolog.Nop())

	result := p.Parse(`{"issues":[{"id":"issue-x-1","category":"Spelling","severity":"medium"}]}`, 0)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, models.IssueCategory("Spelling"), result.Issues[0].Category)
	// Unknown categories count toward the total but no category bucket.
	assert.Equal(t, 1, result.Summary.TotalIssues)
	assert.Equal(t, 0, result.Summary.GrammarCount)
}

func TestStripCodeFence(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line fence", "```json{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripCodeFence(tc.input))
		})
	}
}
