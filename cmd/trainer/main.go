package main

import (
	"fmt"
	"os"
	"review-sentiment/domain"
	"review-sentiment/ingest"
	"review-sentiment/internal"
	"review-sentiment/pipeline"
	"review-sentiment/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the review table, trains one classifier and stores the run report.
// Any error aborts the run: nothing is retried and a failed run starts over.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Run log storage (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	repository := repositories.NewRunRepository(db, log, nil)

	// 3. Corpus
	corpus, err := ingest.NewLoader(log, config).LoadFile(config.InputPath)
	if err != nil {
		return err
	}
	corpus = ingest.NewLanguageFilter(log, config.LanguageCodes()).Filter(corpus)

	// 4. Encode, train, evaluate
	report, err := pipeline.NewPipeline(log, config, repository).Run(corpus)
	if err != nil {
		return err
	}

	printSummary(report)
	return nil
}

func printSummary(report domain.RunReport) {
	header := color.New(color.BgBlack, color.FgGreen).Render(" run " + report.ID.String() + " ")
	fmt.Println(header)
	fmt.Printf("reviews=%d vocabulary=%d max_len=%d batches=%d\n",
		report.Reviews, report.VocabularySize, report.MaxLen, report.Batches)
	fmt.Printf("training accuracy %g (error rate %g on the last batch)\n",
		report.Accuracy, report.ErrorRate)
	fmt.Printf("review %d predicted positive with probability %.4f\n",
		report.SampleIndex, report.SamplePrediction)
}
