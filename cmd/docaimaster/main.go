package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/config"
	"github.com/xdrshjr/AIDocMaster/internal/datastore"
	"github.com/xdrshjr/AIDocMaster/internal/editor"
	"github.com/xdrshjr/AIDocMaster/internal/highlight"
	"github.com/xdrshjr/AIDocMaster/internal/httpclient"
	"github.com/xdrshjr/AIDocMaster/internal/logger"
	"github.com/xdrshjr/AIDocMaster/internal/models"
	"github.com/xdrshjr/AIDocMaster/internal/position"
	"github.com/xdrshjr/AIDocMaster/internal/validator"
)

func main() {
	fmt.Println("AIDocMaster validator starting...")

	opts := parseFlags()

	gCfg, err := config.LoadGlobalConfig(opts.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", opts.ConfigFile, err)
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Logger initialized successfully.")

	switch strings.ToLower(opts.Mode) {
	case "history":
		runHistory(gCfg, opts, zLogger)
	case "validate":
		runValidation(gCfg, opts, zLogger)
	default:
		zLogger.Fatal().Str("mode", opts.Mode).Msg("Unknown mode, expected 'validate' or 'history'")
	}
}

// runHistory lists past validation runs from the history database.
func runHistory(gCfg *config.GlobalConfig, opts cliOptions, zLogger zerolog.Logger) {
	store, err := datastore.NewRunStore(gCfg.StorageConfig.HistoryDBPath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not open history database")
	}
	defer store.Close()

	runs, err := store.ListRuns(opts.HistoryLimit)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not list validation runs")
	}
	if len(runs) == 0 {
		fmt.Println("No validation runs recorded yet.")
		return
	}

	for _, run := range runs {
		fmt.Printf("#%d  %s  source=%s  chunks=%d  issues=%d  failed=%d\n",
			run.RunID, run.StartedAt.Format(time.RFC3339), run.Source,
			run.TotalChunks, run.TotalIssues, run.FailedCount)
	}
}

// runValidation loads the document, runs the sequential validation
// pipeline, prints the results, applies highlights and persists the run.
func runValidation(gCfg *config.GlobalConfig, opts cliOptions, zLogger zerolog.Logger) {
	if opts.InputFile == "" {
		zLogger.Fatal().Msg("-input is required in validate mode")
	}

	doc, err := loadDocument(opts.InputFile)
	if err != nil {
		zLogger.Fatal().Err(err).Str("file", opts.InputFile).Msg("Could not load document")
	}
	documentText := doc.FlattenedText()

	model, err := config.ResolveModel(gCfg.Models)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not resolve LLM model configuration")
	}
	if err := model.Validate(); err != nil {
		zLogger.Fatal().Err(err).Msg("LLM model configuration is incomplete")
	}
	zLogger.Info().
		Str("model", model.ModelName).
		Str("source", model.Source).
		Msg("Resolved LLM model for validation run")

	client, err := httpclient.NewHTTPClientBuilder(zLogger).
		WithClientConfig(gCfg.ClientConfig).
		WithCustomHeaders(model.RequestHeaders()).
		Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not build HTTP client")
	}

	pipeline, err := validator.NewPipelineBuilder(zLogger).
		WithConfig(gCfg.ValidatorConfig).
		WithClient(client).
		WithResultHandler(printResult).
		Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not build validation pipeline")
	}

	// Graceful cancellation: an interrupt releases the in-flight stream
	// and keeps the partial results.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, canceling validation run...")
		cancel()
	}()

	startedAt := time.Now()
	results, runErr := pipeline.Run(ctx, documentText)
	finishedAt := time.Now()
	if runErr != nil && len(results) == 0 {
		zLogger.Fatal().Err(runErr).Msg("Validation run failed")
	}
	if runErr != nil {
		zLogger.Warn().Err(runErr).Int("completed_chunks", len(results)).Msg("Validation run ended early, keeping partial results")
	}

	if opts.OutputFile != "" {
		if err := writeAnnotatedHTML(doc, results, opts.OutputFile, zLogger); err != nil {
			zLogger.Error().Err(err).Msg("Could not write annotated output")
		}
	}

	if gCfg.StorageConfig.Enabled {
		persistRun(gCfg, opts, startedAt, finishedAt, results, zLogger)
	}
}

// loadDocument reads the input file into an editor document. HTML files
// keep their block structure; everything else is treated as plain text.
func loadDocument(path string) (*editor.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		return editor.ParseHTML(string(data))
	}
	return editor.NewDocumentFromText(string(data)), nil
}

// printResult renders one per-chunk result as it arrives, in order.
func printResult(result models.ValidationResult) {
	if result.HasError() {
		fmt.Printf("\n[chunk %d] ERROR: %s\n", result.ChunkIndex, result.Error)
		return
	}

	fmt.Printf("\n[chunk %d] %d issue(s) (grammar=%d wordUsage=%d punctuation=%d logic=%d)\n",
		result.ChunkIndex, result.Summary.TotalIssues, result.Summary.GrammarCount,
		result.Summary.WordUsageCount, result.Summary.PunctuationCount, result.Summary.LogicCount)
	for _, issue := range result.Issues {
		fmt.Printf("  - [%s/%s] %s\n      at: %s\n      fix: %s\n",
			issue.Category, issue.Severity, issue.Issue, issue.Location, issue.Suggestion)
	}
}

// writeAnnotatedHTML highlights every locatable issue in the document and
// writes the rendered HTML.
func writeAnnotatedHTML(doc *editor.Document, results []models.ValidationResult, path string, zLogger zerolog.Logger) error {
	mapper, err := position.NewMapperBuilder(zLogger).Build()
	if err != nil {
		return err
	}
	overlay, err := highlight.NewOverlayBuilder(zLogger).WithDocument(doc).Build()
	if err != nil {
		return err
	}

	located := 0
	for _, result := range results {
		for _, issue := range result.Issues {
			rng := mapper.FindPosition(doc, issue.Location)
			if rng == nil {
				continue
			}
			overlay.Apply(*rng, issue.ID, issue.ChunkIndex, issue.Severity)
			located++
		}
	}
	zLogger.Info().Int("highlighted", located).Str("path", path).Msg("Writing annotated HTML")

	return os.WriteFile(path, []byte(doc.RenderHTML()), 0644)
}

// persistRun records the finished run in the history database.
func persistRun(gCfg *config.GlobalConfig, opts cliOptions, startedAt, finishedAt time.Time, results []models.ValidationResult, zLogger zerolog.Logger) {
	store, err := datastore.NewRunStore(gCfg.StorageConfig.HistoryDBPath, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Could not open history database, skipping persistence")
		return
	}
	defer store.Close()

	if _, err := store.SaveRun(filepath.Base(opts.InputFile), startedAt, finishedAt, results); err != nil {
		zLogger.Error().Err(err).Msg("Could not record validation run")
	}
}
