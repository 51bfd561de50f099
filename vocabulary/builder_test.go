package vocabulary

import (
	"fmt"
	"review-sentiment/errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestBuild_RanksByFrequency(t *testing.T) {
	req := require.New(t)

	// Given the tokens of "good good bad" and "bad bad"
	tokens := []string{"good", "good", "bad", "bad", "bad"}

	// When the vocabulary is built with a capacity of 3
	v := Build(tokens, 3)

	// Then the most frequent token gets index 1
	req.Equal(map[string]int{"bad": 1, "good": 2}, v.Mapping())
	req.Equal([]string{"bad", "good"}, v.Tokens())
	req.Equal(2, v.Size())
}

func TestBuild_TiesKeepFirstSeenOrder(t *testing.T) {
	req := require.New(t)

	tokens := []string{"zeta", "alpha", "mid", "alpha", "zeta", "omega"}

	v := Build(tokens, 1000)

	// zeta and alpha both appear twice, zeta first
	req.Equal([]string{"zeta", "alpha", "mid", "omega"}, v.Tokens())
}

func TestBuild_CapacityKeepsTopTokens(t *testing.T) {
	req := require.New(t)

	tokens := []string{"a", "b", "b", "c", "c", "c", "d"}

	tests := []struct {
		name     string
		capacity int
		expected []string
	}{
		{"Capacity one reserves only the OOV index", 1, []string{}},
		{"Capacity two keeps the top token", 2, []string{"c"}},
		{"Capacity three keeps two tokens", 3, []string{"c", "b"}},
		{"Capacity larger than distinct tokens", 100, []string{"c", "b", "a", "d"}},
		{"Non positive capacity", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Build(tokens, tt.capacity)
			req.Equal(tt.expected, v.Tokens(), "test=%s", tt.name)
			req.LessOrEqual(v.Size(), min(max(tt.capacity-1, 0), len(lo.Uniq(tokens))))
		})
	}
}

func TestBuild_IndicesAreDenseAndPositive(t *testing.T) {
	req := require.New(t)

	var tokens []string
	for i := 0; i < 50; i++ {
		for j := 0; j <= i%7; j++ {
			tokens = append(tokens, fmt.Sprintf("w%d", i))
		}
	}

	v := Build(tokens, 20)

	req.Equal(19, v.Size())
	seen := make(map[int]bool)
	for _, idx := range v.Mapping() {
		req.Greater(idx, 0)
		req.LessOrEqual(idx, 19)
		req.False(seen[idx])
		seen[idx] = true
	}
}

func TestBuild_EmptyStream(t *testing.T) {
	req := require.New(t)

	v := Build(nil, 1000)

	req.Equal(0, v.Size())
	idx, ok := v.Index("anything")
	req.False(ok)
	req.Equal(OutOfVocabulary, idx)
}

func TestBuildFromReviews(t *testing.T) {
	req := require.New(t)

	// Given no review at all
	_, err := BuildFromReviews(nil, 1000)
	// Then the corpus is reported as empty
	req.ErrorIs(err, errors.ErrEmptyCorpus)

	// Given reviews without any token
	v, err := BuildFromReviews([][]string{{}, {}}, 1000)
	// Then the vocabulary is empty but valid
	req.NoError(err)
	req.Equal(0, v.Size())

	// Given the reference corpus
	v, err = BuildFromReviews([][]string{{"good", "good", "bad"}, {"bad", "bad"}}, 3)
	req.NoError(err)
	req.Equal(map[string]int{"bad": 1, "good": 2}, v.Mapping())
}

func TestVocabulary_MappingIsACopy(t *testing.T) {
	req := require.New(t)
	v := Build([]string{"a", "b"}, 10)

	m := v.Mapping()
	m["c"] = 3

	_, ok := v.Index("c")
	req.False(ok)
}
