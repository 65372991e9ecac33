package datastore

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/xdrshjr/AIDocMaster/internal/common"
	"github.com/xdrshjr/AIDocMaster/internal/models"
)

// RunStore persists validation runs and their issues to sqlite so earlier
// passes over a document can be reviewed and compared.
type RunStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewRunStore opens (creating if needed) the history database and ensures
// the schema exists.
func NewRunStore(dataSourceName string, logger zerolog.Logger) (*RunStore, error) {
	storeLogger := logger.With().Str("component", "RunStore").Logger()
	storeLogger.Info().Str("db_path", dataSourceName).Msg("Initializing validation history database")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, common.WrapError(err, "failed to create history database directory")
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, common.WrapError(err, "failed to open history database")
	}

	store := &RunStore{
		db:     dbInstance,
		logger: storeLogger,
	}

	if err := store.initSchema(); err != nil {
		_ = store.Close()
		return nil, common.WrapError(err, "failed to initialize history schema")
	}

	return store, nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// initSchema creates the history tables if they don't already exist.
func (s *RunStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS validation_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		source TEXT NOT NULL,
		total_chunks INTEGER NOT NULL,
		total_issues INTEGER NOT NULL,
		failed_chunks INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS validation_issues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES validation_runs(id) ON DELETE CASCADE,
		chunk_index INTEGER NOT NULL,
		issue_id TEXT NOT NULL,
		category TEXT NOT NULL,
		severity TEXT NOT NULL,
		location TEXT,
		issue TEXT,
		suggestion TEXT
	);
	CREATE TABLE IF NOT EXISTS validation_chunk_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES validation_runs(id) ON DELETE CASCADE,
		chunk_index INTEGER NOT NULL,
		error TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize history schema")
		return err
	}
	return nil
}

// SaveRun records one completed validation run with all of its per-chunk
// issues and errors, atomically.
func (s *RunStore) SaveRun(source string, startedAt, finishedAt time.Time, results []models.ValidationResult) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, common.WrapError(err, "failed to begin history transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	totalIssues := 0
	failedChunks := 0
	for _, r := range results {
		totalIssues += len(r.Issues)
		if r.HasError() {
			failedChunks++
		}
	}

	res, err := tx.Exec(
		`INSERT INTO validation_runs (started_at, finished_at, source, total_chunks, total_issues, failed_chunks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		startedAt, finishedAt, source, len(results), totalIssues, failedChunks,
	)
	if err != nil {
		return 0, common.WrapError(err, "failed to insert validation run")
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, common.WrapError(err, "failed to get run id")
	}

	for _, r := range results {
		if r.HasError() {
			if _, err := tx.Exec(
				`INSERT INTO validation_chunk_errors (run_id, chunk_index, error) VALUES (?, ?, ?)`,
				runID, r.ChunkIndex, r.Error,
			); err != nil {
				return 0, common.WrapError(err, "failed to insert chunk error")
			}
			continue
		}
		for _, issue := range r.Issues {
			if _, err := tx.Exec(
				`INSERT INTO validation_issues (run_id, chunk_index, issue_id, category, severity, location, issue, suggestion)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, issue.ChunkIndex, issue.ID, string(issue.Category), string(issue.Severity),
				issue.Location, issue.Issue, issue.Suggestion,
			); err != nil {
				return 0, common.WrapError(err, "failed to insert issue")
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, common.WrapError(err, "failed to commit history transaction")
	}

	s.logger.Info().
		Int64("run_id", runID).
		Int("total_chunks", len(results)).
		Int("total_issues", totalIssues).
		Msg("Validation run recorded in history")
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]models.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, source, total_chunks, total_issues, failed_chunks
		 FROM validation_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, common.WrapError(err, "failed to query validation runs")
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var r models.RunSummary
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.FinishedAt, &r.Source, &r.TotalChunks, &r.TotalIssues, &r.FailedCount); err != nil {
			return nil, common.WrapError(err, "failed to scan validation run row")
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunIssues returns every issue recorded for a run, in chunk order.
func (s *RunStore) GetRunIssues(runID int64) ([]models.ValidationIssue, error) {
	rows, err := s.db.Query(
		`SELECT chunk_index, issue_id, category, severity, location, issue, suggestion
		 FROM validation_issues WHERE run_id = ? ORDER BY chunk_index, id`, runID)
	if err != nil {
		return nil, common.WrapError(err, "failed to query run issues")
	}
	defer rows.Close()

	var issues []models.ValidationIssue
	for rows.Next() {
		var issue models.ValidationIssue
		var category, severity string
		if err := rows.Scan(&issue.ChunkIndex, &issue.ID, &category, &severity, &issue.Location, &issue.Issue, &issue.Suggestion); err != nil {
			return nil, common.WrapError(err, "failed to scan issue row")
		}
		issue.Category = models.IssueCategory(category)
		issue.Severity = models.IssueSeverity(severity)
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}
