// Package pipeline chains cleaning, encoding, training and evaluation of one run.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"review-sentiment/cleaner"
	"review-sentiment/domain"
	"review-sentiment/errors"
	"review-sentiment/internal"
	"review-sentiment/observability"
	"review-sentiment/repositories"
	"review-sentiment/sequence"
	"review-sentiment/training"
	"review-sentiment/vocabulary"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const topTokensLogged = 10

// Encoded is the corpus as the trainer consumes it.
// Vocabulary and MaxLen are derived once from the whole corpus.
type Encoded struct {
	Vocabulary vocabulary.Vocabulary
	Padded     sequence.Padded
	Labels     []int
}

func (e Encoded) Dataset() training.Dataset {
	return training.Dataset{Rows: e.Padded.Rows, Labels: e.Labels}
}

// WriteCSV writes one row per review: its unpadded index list, as "[2, 2, 1]",
// and its sentiment.
func (e Encoded) WriteCSV(w io.Writer) error {
	indices := make([]string, len(e.Padded.Rows))
	for i := range e.Padded.Rows {
		indices[i] = "[" + strings.Join(lo.Map(e.Padded.Unpad(i), func(index int, _ int) string {
			return strconv.Itoa(index)
		}), ", ") + "]"
	}
	df := dataframe.New(
		series.New(indices, series.String, "review"),
		series.New(e.Labels, series.Int, "sentiment"),
	)
	return df.WriteCSV(w)
}

type Pipeline struct {
	log        *slog.Logger
	config     internal.Config
	cleaner    cleaner.Cleaner
	repository repositories.IRunRepository
}

func NewPipeline(log *slog.Logger, config internal.Config, repository repositories.IRunRepository) Pipeline {
	return Pipeline{
		log:        log,
		config:     config,
		cleaner:    cleaner.NewCleaner(),
		repository: repository,
	}
}

// Encode cleans every review, builds the vocabulary over the full corpus,
// vectorizes each review with it and pads the result to the corpus max length.
func (p Pipeline) Encode(corpus domain.Corpus) (Encoded, error) {
	if corpus.Size() == 0 {
		return Encoded{}, errors.ErrEmptyCorpus
	}
	if len(corpus.Labels) != corpus.Size() {
		return Encoded{}, fmt.Errorf("%d reviews for %d labels: %w",
			corpus.Size(), len(corpus.Labels), errors.ErrShapeMismatch)
	}

	tokens := p.cleaner.CleanAll(corpus.Reviews)
	vocab, err := vocabulary.BuildFromReviews(tokens, p.config.VocabularySize)
	if err != nil {
		return Encoded{}, err
	}
	padded, err := sequence.Pad(vocab.VectorizeAll(tokens))
	if err != nil {
		return Encoded{}, err
	}

	p.log.Info("Corpus encoded",
		"reviews", corpus.Size(), "vocabulary_size", vocab.Size(), "max_len", padded.MaxLen)
	p.log.Debug("Most frequent tokens", "tokens", lo.Slice(vocab.Tokens(), 0, topTokensLogged))
	return Encoded{Vocabulary: vocab, Padded: padded, Labels: corpus.Labels}, nil
}

// Run trains a fresh classifier on the corpus, evaluates it on the last
// training batch and stores the run report.
func (p Pipeline) Run(corpus domain.Corpus) (domain.RunReport, error) {
	start := time.Now()

	encoded, err := p.Encode(corpus)
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("encoding failed: %w", err)
	}
	if p.config.EncodedOutputPath != "" {
		if err = p.export(encoded); err != nil {
			return domain.RunReport{}, fmt.Errorf("export of encoded corpus failed: %w", err)
		}
	}

	settings := training.NewSettings(p.config)
	trainer := training.NewTrainer(p.log, settings)
	if err = trainer.Init(encoded.Dataset()); err != nil {
		return domain.RunReport{}, fmt.Errorf("trainer init failed: %w", err)
	}
	result, err := trainer.Train()
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("training failed: %w", err)
	}
	evaluation, err := trainer.EvaluateLastBatch()
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("evaluation failed: %w", err)
	}
	sampleIndex := sampleIndexOf(corpus.Size())
	sample := trainer.Model().Predict([][]int{encoded.Padded.Rows[sampleIndex]})

	report := domain.RunReport{
		ID:               uuid.New(),
		At:               time.Now().UTC(),
		Duration:         time.Since(start),
		Reviews:          corpus.Size(),
		VocabularySize:   encoded.Vocabulary.Size(),
		MaxLen:           encoded.Padded.MaxLen,
		BatchSize:        settings.BatchSize,
		Batches:          result.Batches,
		Epochs:           result.Epochs,
		FinalLoss:        result.FinalLoss,
		ErrorRate:        evaluation.ErrorRate,
		Accuracy:         evaluation.Accuracy(),
		SampleIndex:      sampleIndex,
		SamplePrediction: sample[0],
	}

	stats, err := observability.CollectSelfStats()
	if err != nil {
		p.log.Warn("Failed to collect self stats", "err", err)
	} else {
		report.RSSBytes = stats.RSSBytes
		report.CPUPercent = stats.CPUPercent
		report.ProcessStatus = stats.Status
	}

	if err = p.repository.Store(report); err != nil {
		return report, fmt.Errorf("storing run %s failed: %w", report.ID, err)
	}
	p.log.Info("Run stored", "id", report.ID, "error_rate", report.ErrorRate, "accuracy", report.Accuracy)
	return report, nil
}

func (p Pipeline) export(encoded Encoded) error {
	f, err := os.Create(p.config.EncodedOutputPath)
	if err != nil {
		return err
	}
	if err = encoded.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	p.log.Info("Encoded corpus exported", "path", p.config.EncodedOutputPath, "reviews", len(encoded.Labels))
	return nil
}

// sampleIndexOf picks the second review, or the only one.
func sampleIndexOf(size int) int {
	return min(1, size-1)
}
