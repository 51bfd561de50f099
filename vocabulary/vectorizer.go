package vocabulary

import "github.com/samber/lo"

// Vectorize replaces each token by its index, OutOfVocabulary when unknown.
// The result has the same length and order as tokens.
func (v Vocabulary) Vectorize(tokens []string) []int {
	return lo.Map(tokens, func(token string, _ int) int {
		idx, _ := v.Index(token)
		return idx
	})
}

// VectorizeAll encodes every review with the same vocabulary.
func (v Vocabulary) VectorizeAll(reviews [][]string) [][]int {
	return lo.Map(reviews, func(tokens []string, _ int) []int {
		return v.Vectorize(tokens)
	})
}
