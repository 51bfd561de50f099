package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatches(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		n        int
		size     int
		expected []Batch
	}{
		{"Exact multiple", 4, 2, []Batch{{0, 2}, {2, 4}}},
		{"Trailing rows are dropped", 5, 2, []Batch{{0, 2}, {2, 4}}},
		{"Batch size one", 2, 1, []Batch{{0, 1}, {1, 2}}},
		{"Fewer rows than a batch", 49, 50, []Batch{}},
		{"Empty dataset", 0, 50, []Batch{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := Batches(tt.n, tt.size)
			req.Equal(tt.expected, batches, "test=%s", tt.name)
			req.Len(batches, BatchCount(tt.n, tt.size))
		})
	}
}

func TestBatches_CoverAllButTheRemainder(t *testing.T) {
	req := require.New(t)
	n, size := 137, 50

	batches := Batches(n, size)

	req.Len(batches, n/size)
	covered := 0
	next := 0
	for _, b := range batches {
		req.Equal(next, b.Start)
		req.Equal(size, b.Size())
		covered += b.Size()
		next = b.End
	}
	req.Equal(n-n%size, covered)
}
