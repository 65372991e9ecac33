package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdrshjr/AIDocMaster/internal/models"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	store, err := NewRunStore(filepath.Join(t.TempDir(), "history", "runs.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResults() []models.ValidationResult {
	return []models.ValidationResult{
		{
			ChunkIndex: 0,
			Issues: []models.ValidationIssue{
				{ID: "issue-grammar-1", Category: models.CategoryGrammar, Severity: models.SeverityHigh,
					Location: "The the cat", Issue: "Duplicated article", Suggestion: "The cat", ChunkIndex: 0},
				{ID: "issue-punct-1", Category: models.CategoryPunctuation, Severity: models.SeverityLow,
					Location: "line end", Issue: "Missing period", Suggestion: "Add one", ChunkIndex: 0},
			},
		},
		{
			ChunkIndex: 1,
			Error:      "validation stream failed: stream corrupted",
		},
		{
			ChunkIndex: 2,
			Issues: []models.ValidationIssue{
				{ID: "issue-grammar-1", Category: models.CategoryGrammar, Severity: models.SeverityMedium,
					Location: "he go", Issue: "Agreement", Suggestion: "he goes", ChunkIndex: 2},
			},
		},
	}
}

func TestRunStore_SaveAndListRuns(t *testing.T) {
	store := newTestStore(t)
	started := time.Now().Add(-time.Minute)

	runID, err := store.SaveRun("report.html", started, time.Now(), sampleResults())
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "report.html", runs[0].Source)
	assert.Equal(t, 3, runs[0].TotalChunks)
	assert.Equal(t, 3, runs[0].TotalIssues)
	assert.Equal(t, 1, runs[0].FailedCount)
}

func TestRunStore_ListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().Add(-time.Hour)

	_, err := store.SaveRun("older.html", base, base.Add(time.Minute), sampleResults())
	require.NoError(t, err)
	_, err = store.SaveRun("newer.html", base.Add(30*time.Minute), base.Add(31*time.Minute), sampleResults())
	require.NoError(t, err)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "newer.html", runs[0].Source)
	assert.Equal(t, "older.html", runs[1].Source)
}

func TestRunStore_ListRunsHonorsLimit(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		_, err := store.SaveRun("doc.html", base.Add(time.Duration(i)*time.Minute), base.Add(time.Duration(i+1)*time.Minute), nil)
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestRunStore_GetRunIssuesRoundTrips(t *testing.T) {
	store := newTestStore(t)

	runID, err := store.SaveRun("doc.html", time.Now(), time.Now(), sampleResults())
	require.NoError(t, err)

	issues, err := store.GetRunIssues(runID)
	require.NoError(t, err)
	require.Len(t, issues, 3)

	// Chunk order, failed chunk 1 contributes no issues.
	assert.Equal(t, 0, issues[0].ChunkIndex)
	assert.Equal(t, "issue-grammar-1", issues[0].ID)
	assert.Equal(t, models.CategoryGrammar, issues[0].Category)
	assert.Equal(t, models.SeverityHigh, issues[0].Severity)
	assert.Equal(t, "The the cat", issues[0].Location)
	assert.Equal(t, 2, issues[2].ChunkIndex)

	// Per-run identity stays composite across chunks reusing the same id.
	assert.NotEqual(t, issues[0].Key(), issues[2].Key())
}

func TestRunStore_EmptyHistory(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
