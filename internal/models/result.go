package models

import "time"

// ValidationSummary holds per-category issue counts for one chunk.
type ValidationSummary struct {
	TotalIssues      int `json:"totalIssues"`
	GrammarCount     int `json:"grammarCount"`
	WordUsageCount   int `json:"wordUsageCount"`
	PunctuationCount int `json:"punctuationCount"`
	LogicCount       int `json:"logicCount"`
}

// ValidationResult is the outcome of validating one chunk. Exactly one
// result exists per chunk; results accumulate in chunk-index order.
type ValidationResult struct {
	ChunkIndex int               `json:"chunkIndex"`
	Issues     []ValidationIssue `json:"issues"`
	Summary    ValidationSummary `json:"summary"`
	Timestamp  time.Time         `json:"timestamp"`
	Error      string            `json:"error,omitempty"`
}

// HasError reports whether the chunk failed validation.
func (r ValidationResult) HasError() bool {
	return r.Error != ""
}

// ComputeSummary recounts issues per category. The model's self-reported
// counts are never trusted; the summary is always derived from the issues.
func ComputeSummary(issues []ValidationIssue) ValidationSummary {
	summary := ValidationSummary{TotalIssues: len(issues)}
	for _, issue := range issues {
		switch issue.Category {
		case CategoryGrammar:
			summary.GrammarCount++
		case CategoryWordUsage:
			summary.WordUsageCount++
		case CategoryPunctuation:
			summary.PunctuationCount++
		case CategoryLogic:
			summary.LogicCount++
		}
	}
	return summary
}

// RunSummary aggregates a whole validation run for history storage.
type RunSummary struct {
	RunID       int64     `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Source      string    `json:"source"`
	TotalChunks int       `json:"total_chunks"`
	TotalIssues int       `json:"total_issues"`
	FailedCount int       `json:"failed_count"`
}
