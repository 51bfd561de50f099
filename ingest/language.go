package ingest

import (
	"log/slog"
	"review-sentiment/domain"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

// LanguageFilter keeps the reviews written in one of the configured languages.
// With no language configured every review is kept untouched.
type LanguageFilter struct {
	log       *slog.Logger
	languages []string
}

func NewLanguageFilter(log *slog.Logger, languages []string) LanguageFilter {
	return LanguageFilter{log: log, languages: languages}
}

// Detect returns the ISO 639-1 code of the review language, "" when unknown.
func Detect(review string) string {
	return whatlanggo.Detect(review).Lang.Iso6391()
}

// Filter preserves the relative order of the kept rows.
func (f LanguageFilter) Filter(corpus domain.Corpus) domain.Corpus {
	if len(f.languages) == 0 {
		return corpus
	}

	var kept domain.Corpus
	for i, review := range corpus.Reviews {
		if lo.Contains(f.languages, Detect(review)) {
			kept.Reviews = append(kept.Reviews, review)
			kept.Labels = append(kept.Labels, corpus.Labels[i])
		}
	}
	f.log.Info("Language filter applied",
		"languages", f.languages, "kept", kept.Size(), "dropped", corpus.Size()-kept.Size())
	return kept
}
