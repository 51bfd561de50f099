// Package training drives the sequential minibatch optimization of the classifier.
package training

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"review-sentiment/errors"
	"review-sentiment/internal"
	"review-sentiment/model"
	"review-sentiment/sequence"
)

// Settings are the knobs of one training run.
// Epochs > 1 and Shuffle are opt-in departures from the single ordered pass.
type Settings struct {
	BatchSize    int
	HiddenSize   int
	LearningRate float64
	Epochs       int
	Shuffle      bool
	Seed         uint64
}

func NewSettings(config internal.Config) Settings {
	return Settings{
		BatchSize:    config.BatchSize,
		HiddenSize:   config.HiddenSize,
		LearningRate: config.LearningRate,
		Epochs:       config.Epochs,
		Shuffle:      config.Shuffle,
		Seed:         config.Seed,
	}
}

// Dataset is the padded corpus with one label per row, in corpus order.
type Dataset struct {
	Rows   [][]int
	Labels []int
}

func (d Dataset) Size() int {
	return len(d.Rows)
}

// Result summarizes a finished training pass.
type Result struct {
	Epochs    int
	Batches   int
	Sizes     []int
	Losses    []float64
	FinalLoss float64
}

// Trainer exclusively owns the classifier parameters and mutates them in place.
type Trainer struct {
	log       *slog.Logger
	settings  Settings
	state     State
	rng       *rand.Rand
	dataset   Dataset
	model     *model.Classifier
	optimizer *model.Adam
	lastRows  []int
}

func NewTrainer(log *slog.Logger, settings Settings) *Trainer {
	return &Trainer{
		log:      log,
		settings: settings,
		state:    Uninitialized,
		rng:      rand.New(rand.NewPCG(settings.Seed, settings.Seed)),
	}
}

func (t *Trainer) State() State {
	return t.state
}

// Model exposes the classifier once Init has run.
func (t *Trainer) Model() *model.Classifier {
	return t.model
}

// Init installs the dataset and fresh parameters. Labels are not range checked.
func (t *Trainer) Init(dataset Dataset) error {
	if t.state != Uninitialized {
		return fmt.Errorf("init in state %s: %w", t.state, errors.ErrInvalidState)
	}
	if dataset.Size() == 0 {
		return errors.ErrEmptyCorpus
	}
	if len(dataset.Labels) != dataset.Size() {
		return fmt.Errorf("%d rows for %d labels: %w",
			dataset.Size(), len(dataset.Labels), errors.ErrShapeMismatch)
	}
	width := len(dataset.Rows[0])
	for i, row := range dataset.Rows {
		if len(row) != width {
			return fmt.Errorf("row %d has length %d, expected %d: %w",
				i, len(row), width, errors.ErrShapeMismatch)
		}
	}

	t.dataset = dataset
	t.model = model.NewClassifier(t.settings.HiddenSize, t.rng)
	t.optimizer = model.NewAdam(t.settings.LearningRate)
	t.transition(Ready)
	return nil
}

// Train runs floor(N/B) batches per epoch, one optimizer step per batch.
// Without Shuffle batches are taken strictly in corpus order.
func (t *Trainer) Train() (Result, error) {
	if t.state != Ready {
		return Result{}, fmt.Errorf("train in state %s: %w", t.state, errors.ErrInvalidState)
	}
	batches := sequence.Batches(t.dataset.Size(), t.settings.BatchSize)
	if len(batches) == 0 {
		return Result{}, fmt.Errorf("%d rows, batch size %d: %w",
			t.dataset.Size(), t.settings.BatchSize, errors.ErrNoCompleteBatch)
	}
	epochs := max(t.settings.Epochs, 1)

	t.transition(Training)
	result := Result{Epochs: epochs}
	for epoch := 0; epoch < epochs; epoch++ {
		order := t.order()
		for n, batch := range batches {
			rows, labels := t.slice(order[batch.Start:batch.End])

			probabilities, trace := t.model.Forward(rows)
			loss := model.Loss(probabilities, labels)
			t.model.Backward(trace, probabilities, labels)
			t.optimizer.Step(t.model.Parameters())

			result.Losses = append(result.Losses, loss)
			result.Sizes = append(result.Sizes, len(labels))
			t.lastRows = order[batch.Start:batch.End]
			t.log.Debug("Batch trained", "epoch", epoch, "batch", n, "size", batch.Size(), "loss", loss)
		}
	}
	result.Batches = len(result.Losses)
	result.FinalLoss = result.Losses[len(result.Losses)-1]

	t.transition(Done)
	t.log.Info("Training done",
		"epochs", result.Epochs, "batches", result.Batches, "final_loss", result.FinalLoss)
	return result, nil
}

// EvaluateLastBatch scores the last trained batch with the final parameters.
// No held-out split exists: this measures fit on training data only.
func (t *Trainer) EvaluateLastBatch() (Evaluation, error) {
	if t.state != Done {
		return Evaluation{}, fmt.Errorf("evaluate in state %s: %w", t.state, errors.ErrInvalidState)
	}
	rows, labels := t.slice(t.lastRows)
	return Evaluate(t.model.Predict(rows), labels)
}

// order returns the row visiting order of one epoch.
func (t *Trainer) order() []int {
	order := make([]int, t.dataset.Size())
	for i := range order {
		order[i] = i
	}
	if t.settings.Shuffle {
		t.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order
}

func (t *Trainer) slice(indices []int) ([][]int, []int) {
	rows := make([][]int, len(indices))
	labels := make([]int, len(indices))
	for i, idx := range indices {
		rows[i] = t.dataset.Rows[idx]
		labels[i] = t.dataset.Labels[idx]
	}
	return rows, labels
}

func (t *Trainer) transition(next State) {
	t.log.Debug("Trainer state change", "from", t.state, "to", next)
	t.state = next
}
