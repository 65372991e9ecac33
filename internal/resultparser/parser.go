package resultparser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/models"
)

// rawReport is the shape the validation model is asked to return. Every
// field is optional on the wire; the parser fills the gaps defensively.
type rawReport struct {
	Issues  json.RawMessage `json:"issues"`
	Summary json.RawMessage `json:"summary"`
}

// Parser extracts a structured issue report from accumulated model output.
// It never returns an error: every failure is folded into the returned
// ValidationResult so one bad chunk cannot abort a run.
type Parser struct {
	logger zerolog.Logger
}

// NewParser creates a new result parser
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{
		logger: logger.With().Str("component", "ResultParser").Logger(),
	}
}

// Parse converts the reassembled model output for one chunk into a
// ValidationResult. The summary is always recomputed from the issues, and
// every issue is stamped with the chunk index it came from.
func (p *Parser) Parse(raw string, chunkIndex int) models.ValidationResult {
	result := models.ValidationResult{
		ChunkIndex: chunkIndex,
		Issues:     []models.ValidationIssue{},
		Timestamp:  time.Now(),
	}

	cleaned := StripCodeFence(raw)
	if strings.TrimSpace(cleaned) == "" {
		result.Error = "model returned empty output"
		return result
	}

	var report rawReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		p.logger.Warn().Err(err).Int("chunk_index", chunkIndex).Msg("Validation output is not valid JSON")
		result.Error = fmt.Sprintf("failed to parse validation output as JSON: %v", err)
		return result
	}

	result.Issues = p.parseIssues(report.Issues, chunkIndex)
	result.Summary = models.ComputeSummary(result.Issues)
	return result
}

// parseIssues decodes the issues array, tolerating a missing or malformed
// field by treating it as empty.
func (p *Parser) parseIssues(raw json.RawMessage, chunkIndex int) []models.ValidationIssue {
	if len(raw) == 0 {
		p.logger.Debug().Int("chunk_index", chunkIndex).Msg("Validation output has no issues field")
		return []models.ValidationIssue{}
	}

	var issues []models.ValidationIssue
	if err := json.Unmarshal(raw, &issues); err != nil {
		p.logger.Warn().Err(err).Int("chunk_index", chunkIndex).Msg("Issues field is not an array, treating as empty")
		return []models.ValidationIssue{}
	}
	if issues == nil {
		return []models.ValidationIssue{}
	}

	for i := range issues {
		issues[i].ChunkIndex = chunkIndex
		if !issues[i].Category.IsValid() {
			p.logger.Debug().
				Str("category", string(issues[i].Category)).
				Str("issue_id", issues[i].ID).
				Msg("Unknown issue category kept as reported")
		}
	}
	return issues
}

// StripCodeFence removes a surrounding markdown code fence, accepting both
// ```json and bare ``` fences. Input without a fence passes through.
func StripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the fence-info line ("json", "JSON", or empty).
		trimmed = trimmed[idx+1:]
	} else {
		// Single-line fence: strip a possible language tag.
		trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "json"), "JSON")
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
