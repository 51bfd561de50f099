// Package sequence turns encoded reviews into a fixed-width matrix and slices it into batches.
package sequence

import (
	"review-sentiment/errors"

	"github.com/samber/lo"
)

// Sentinel fills padded positions past a review's true length.
const Sentinel = -1

// Padded is the corpus after padding: every row has exactly MaxLen values.
type Padded struct {
	Rows    [][]int
	Lengths []int
	MaxLen  int
}

// MaxLen returns the longest encoded review of the corpus.
func MaxLen(encoded [][]int) (int, error) {
	if len(encoded) == 0 {
		return 0, errors.ErrEmptyCorpus
	}
	return len(lo.MaxBy(encoded, func(a, b []int) bool {
		return len(a) > len(b)
	})), nil
}

// Pad right-pads every encoded review with Sentinel up to the corpus MaxLen.
// MaxLen is computed once over the whole corpus; reviews are never truncated.
func Pad(encoded [][]int) (Padded, error) {
	maxLen, err := MaxLen(encoded)
	if err != nil {
		return Padded{}, err
	}

	rows := make([][]int, len(encoded))
	lengths := make([]int, len(encoded))
	for i, review := range encoded {
		row := make([]int, maxLen)
		copy(row, review)
		for j := len(review); j < maxLen; j++ {
			row[j] = Sentinel
		}
		rows[i] = row
		lengths[i] = len(review)
	}
	return Padded{Rows: rows, Lengths: lengths, MaxLen: maxLen}, nil
}

// Unpad returns row i without its padding.
func (p Padded) Unpad(i int) []int {
	return p.Rows[i][:p.Lengths[i]]
}
