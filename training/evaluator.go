package training

import (
	"fmt"
	"review-sentiment/errors"
)

// Evaluation compares predicted and true classes over one batch.
type Evaluation struct {
	Size       int
	Mismatches int
	ErrorRate  float64
}

func (e Evaluation) Accuracy() float64 {
	return 1 - e.ErrorRate
}

// PredictedClass is the argmax over [1-p, p]; a tie goes to class 0.
func PredictedClass(probability float64) int {
	if probability > 1-probability {
		return 1
	}
	return 0
}

// Evaluate returns the fraction of rows whose predicted class differs from the label.
// Labels are compared as given: a value outside {0,1} is simply a mismatch.
func Evaluate(probabilities []float64, labels []int) (Evaluation, error) {
	if len(probabilities) != len(labels) {
		return Evaluation{}, fmt.Errorf("%d predictions for %d labels: %w",
			len(probabilities), len(labels), errors.ErrShapeMismatch)
	}
	if len(labels) == 0 {
		return Evaluation{}, errors.ErrNoCompleteBatch
	}

	mismatches := 0
	for i, p := range probabilities {
		if PredictedClass(p) != labels[i] {
			mismatches++
		}
	}
	return Evaluation{
		Size:       len(labels),
		Mismatches: mismatches,
		ErrorRate:  float64(mismatches) / float64(len(labels)),
	}, nil
}
