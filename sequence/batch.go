package sequence

// Batch is a contiguous, half-open range [Start, End) of dataset rows.
type Batch struct {
	Start int
	End   int
}

func (b Batch) Size() int {
	return b.End - b.Start
}

// BatchCount is floor(n/size): the trailing n%size rows never form a batch.
func BatchCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return n / size
}

// Batches slices n rows into consecutive, non-overlapping batches in corpus order.
// A final slice shorter than size is dropped.
func Batches(n, size int) []Batch {
	count := BatchCount(n, size)
	batches := make([]Batch, count)
	for i := range batches {
		batches[i] = Batch{Start: i * size, End: (i + 1) * size}
	}
	return batches
}
