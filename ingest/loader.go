// Package ingest reads the review table into a domain.Corpus.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"review-sentiment/domain"
	"review-sentiment/domain/mimetypes"
	"review-sentiment/errors"
	"review-sentiment/internal"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"
)

// Loader parses a headed CSV table holding one review and one sentiment per row.
type Loader struct {
	log             *slog.Logger
	reviewColumn    string
	sentimentColumn string
}

func NewLoader(log *slog.Logger, config internal.Config) Loader {
	return Loader{
		log:             log,
		reviewColumn:    config.ReviewColumn,
		sentimentColumn: config.SentimentColumn,
	}
}

// LoadFile sniffs the file type before parsing it.
func (l Loader) LoadFile(path string) (domain.Corpus, error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.Corpus{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	if !isTable(detected) {
		return domain.Corpus{}, fmt.Errorf("%s detected as %s: %w",
			path, detected.String(), errors.ErrUnsupportedInput)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Corpus{}, err
	}
	defer f.Close()

	corpus, err := l.LoadDelimited(f, delimiterOf(detected))
	if err != nil {
		return domain.Corpus{}, fmt.Errorf("load %s: %w", path, err)
	}
	l.log.Info("Corpus loaded", "path", path, "mime", detected.String(), "reviews", corpus.Size())
	return corpus, nil
}

// Load reads a comma separated table.
func (l Loader) Load(r io.Reader) (domain.Corpus, error) {
	return l.LoadDelimited(r, ',')
}

// LoadDelimited reads every cell as a string so that review text is never reinterpreted.
// Sentiments must be integers but their range is not checked.
func (l Loader) LoadDelimited(r io.Reader, delimiter rune) (domain.Corpus, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	records, err := reader.ReadAll()
	if err != nil {
		return domain.Corpus{}, fmt.Errorf("parse table: %w", err)
	}

	var names []string
	if len(records) > 0 {
		names = records[0]
	}
	for _, column := range []string{l.reviewColumn, l.sentimentColumn} {
		if !lo.Contains(names, column) {
			return domain.Corpus{}, fmt.Errorf("column %q not in %v: %w", column, names, errors.ErrMissingColumn)
		}
	}
	if len(records) == 1 {
		return domain.Corpus{}, fmt.Errorf("header only table: %w", errors.ErrEmptyCorpus)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return domain.Corpus{}, fmt.Errorf("parse table: %w", df.Err)
	}

	reviews := df.Col(l.reviewColumn).Records()
	sentiments := df.Col(l.sentimentColumn).Records()
	labels := make([]int, len(sentiments))
	for i, raw := range sentiments {
		label, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return domain.Corpus{}, fmt.Errorf("row %d: %q: %w", i+1, raw, errors.ErrInvalidLabel)
		}
		labels[i] = label
	}
	return domain.Corpus{Reviews: reviews, Labels: labels}, nil
}

// isTable walks the detected type and its parents: text/csv descends from text/plain.
func isTable(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if mimetypes.IsTable(m.String()) {
			return true
		}
	}
	return false
}

func delimiterOf(detected *mimetype.MIME) rune {
	if _, ok := mimetypes.Matches(detected.String(), mimetypes.TextTSV); ok {
		return '\t'
	}
	return ','
}
