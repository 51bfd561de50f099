package model

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

const (
	inputSize       = 1
	initStdDev      = 0.1
	projectionBias  = 0.1
	probabilityClip = 1e-12
)

// Classifier reads a padded index sequence with an LSTM cell, keeps the last
// hidden state and projects it to a single positive-sentiment score.
type Classifier struct {
	Cell       *LSTMCell
	Projection *Parameter
	Bias       *Parameter
}

// Trace is the forward state of one batch, consumed by Backward.
type Trace struct {
	steps []timestep
	last  *mat.Dense
}

func NewClassifier(hiddenSize int, rng *rand.Rand) *Classifier {
	return &Classifier{
		Cell:       NewLSTMCell(inputSize, hiddenSize, rng, initStdDev),
		Projection: newParameter("projection/kernel", hiddenSize, 1).truncatedNormal(rng, initStdDev),
		Bias:       newParameter("projection/bias", 1, 1).constant(projectionBias),
	}
}

func (m *Classifier) Parameters() []*Parameter {
	return append(m.Cell.Parameters(), m.Projection, m.Bias)
}

// Forward returns the positive-class probability of every row.
// Rows share the same length; each value is fed as a width-1 feature.
func (m *Classifier) Forward(rows [][]int) ([]float64, Trace) {
	batch := len(rows)
	if batch == 0 {
		return []float64{}, Trace{}
	}
	steps := len(rows[0])

	inputs := make([]*mat.Dense, steps)
	for t := range inputs {
		x := mat.NewDense(batch, inputSize, nil)
		for b, row := range rows {
			x.Set(b, 0, float64(row[t]))
		}
		inputs[t] = x
	}

	last, trace := m.Cell.Forward(inputs, batch)
	scores := affine(last, m.Projection.Value, m.Bias.Value)

	probabilities := make([]float64, batch)
	for b := range probabilities {
		probabilities[b] = sigmoid(scores.At(b, 0))
	}
	return probabilities, Trace{steps: trace, last: last}
}

// Predict scores rows without keeping any training state.
func (m *Classifier) Predict(rows [][]int) []float64 {
	probabilities, _ := m.Forward(rows)
	return probabilities
}

// Loss is the binary cross-entropy summed over the batch.
func Loss(probabilities []float64, labels []int) float64 {
	loss := 0.0
	for b, p := range probabilities {
		p = math.Min(math.Max(p, probabilityClip), 1-probabilityClip)
		y := float64(labels[b])
		loss -= y*math.Log(p) + (1-y)*math.Log(1-p)
	}
	return loss
}

// Backward resets the gradients and fills them with the gradient of Loss.
func (m *Classifier) Backward(trace Trace, probabilities []float64, labels []int) {
	for _, p := range m.Parameters() {
		p.zeroGrad()
	}
	if len(probabilities) == 0 {
		return
	}

	// d(loss)/d(score) of a sigmoid + cross-entropy pair is p - y.
	dScore := mat.NewDense(len(probabilities), 1, nil)
	for b, p := range probabilities {
		dScore.Set(b, 0, p-float64(labels[b]))
	}

	accumulate(m.Projection.Grad, trace.last, dScore)
	accumulateBias(m.Bias.Grad, dScore)

	var dh mat.Dense
	dh.Mul(dScore, m.Projection.Value.T())
	m.Cell.Backward(trace.steps, &dh)
}
