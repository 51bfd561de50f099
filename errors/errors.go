package errors

import "fmt"

var (
	ErrEmptyCorpus      = fmt.Errorf("corpus contains no review")
	ErrMissingColumn    = fmt.Errorf("expected column is missing")
	ErrShapeMismatch    = fmt.Errorf("predictions and labels have different sizes")
	ErrInvalidState     = fmt.Errorf("trainer is not in the expected state")
	ErrNoCompleteBatch  = fmt.Errorf("dataset is smaller than one batch")
	ErrUnsupportedInput = fmt.Errorf("input is not a text table")
	ErrInvalidLabel     = fmt.Errorf("sentiment is not an integer")
)
