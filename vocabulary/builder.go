// Package vocabulary ranks corpus tokens by frequency and maps tokens to indices.
package vocabulary

import (
	"review-sentiment/errors"
	"slices"

	"github.com/samber/lo"
)

// OutOfVocabulary is the index of every token absent from the vocabulary.
const OutOfVocabulary = 0

// Vocabulary maps the most frequent tokens of a corpus to dense indices 1..K.
// It is immutable once built.
type Vocabulary struct {
	index  map[string]int
	tokens []string
}

type tally struct {
	token string
	count int
}

// Build keeps the capacity-1 most frequent tokens of the stream.
// Index 1 goes to the most frequent token; equal counts keep first-seen order.
func Build(tokens []string, capacity int) Vocabulary {
	positions := make(map[string]int)
	var counts []tally
	for _, token := range tokens {
		pos, ok := positions[token]
		if !ok {
			positions[token] = len(counts)
			counts = append(counts, tally{token: token, count: 1})
			continue
		}
		counts[pos].count++
	}

	// Stable sort: ties stay in first-seen order.
	slices.SortStableFunc(counts, func(a, b tally) int {
		return b.count - a.count
	})

	limit := max(capacity-1, 0)
	if len(counts) > limit {
		counts = counts[:limit]
	}

	v := Vocabulary{
		index:  make(map[string]int, len(counts)),
		tokens: make([]string, len(counts)),
	}
	for i, t := range counts {
		v.index[t.token] = i + 1
		v.tokens[i] = t.token
	}
	return v
}

// BuildFromReviews concatenates the token lists in corpus order and builds the vocabulary.
// Reviews without tokens give an empty vocabulary; no review at all is an error.
func BuildFromReviews(reviews [][]string, capacity int) (Vocabulary, error) {
	if len(reviews) == 0 {
		return Vocabulary{}, errors.ErrEmptyCorpus
	}
	return Build(lo.Flatten(reviews), capacity), nil
}

// Index returns the index of token, or OutOfVocabulary.
func (v Vocabulary) Index(token string) (int, bool) {
	idx, ok := v.index[token]
	if !ok {
		return OutOfVocabulary, false
	}
	return idx, true
}

func (v Vocabulary) Size() int {
	return len(v.tokens)
}

// Tokens lists the vocabulary by ascending index.
func (v Vocabulary) Tokens() []string {
	return slices.Clone(v.tokens)
}

// Mapping returns a copy of the token to index mapping.
func (v Vocabulary) Mapping() map[string]int {
	return lo.Assign(v.index)
}
