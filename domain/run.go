package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunReport records what one training run saw and measured.
// It is a run log only: neither the vocabulary nor the parameters are kept.
type RunReport struct {
	ID             uuid.UUID
	At             time.Time
	Duration       time.Duration
	Reviews        int
	VocabularySize int
	MaxLen         int
	BatchSize      int
	Batches        int
	Epochs         int
	FinalLoss      float64
	ErrorRate      float64
	Accuracy       float64
	// SamplePrediction is the positive probability the trained classifier
	// gives to review SampleIndex.
	SampleIndex      int
	SamplePrediction float64
	RSSBytes         uint64
	CPUPercent       float64
	ProcessStatus    string
}
