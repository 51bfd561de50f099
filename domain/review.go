package domain

// Sentiment labels as found in the input table. Other integers are carried unchecked.
const (
	Negative = 0
	Positive = 1
)

// Corpus is the parsed review table: two parallel sequences in row order.
type Corpus struct {
	Reviews []string
	Labels  []int
}

func (c Corpus) Size() int {
	return len(c.Reviews)
}
