package model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClassifier(hidden int) *Classifier {
	return NewClassifier(hidden, rand.New(rand.NewPCG(7, 7)))
}

func TestClassifier_ForwardShapes(t *testing.T) {
	req := require.New(t)
	m := newTestClassifier(4)

	probabilities, trace := m.Forward([][]int{{2, 2, 1}, {1, 1, -1}})

	req.Len(probabilities, 2)
	req.Len(trace.steps, 3)
	for _, p := range probabilities {
		req.Greater(p, 0.0)
		req.Less(p, 1.0)
	}
}

func TestClassifier_EmptyInputs(t *testing.T) {
	req := require.New(t)
	m := newTestClassifier(4)

	// Given no row at all
	probabilities := m.Predict(nil)
	req.Empty(probabilities)

	// Given rows of length zero, only the projection bias speaks
	probabilities = m.Predict([][]int{{}, {}})
	req.Len(probabilities, 2)
	req.InDelta(sigmoid(projectionBias), probabilities[0], 1e-12)
	req.InDelta(probabilities[0], probabilities[1], 1e-12)
}

func TestClassifier_SameSeedSameParameters(t *testing.T) {
	req := require.New(t)

	a := newTestClassifier(5)
	b := newTestClassifier(5)

	pa, pb := a.Parameters(), b.Parameters()
	req.Len(pb, len(pa))
	for i := range pa {
		req.Equal(pa[i].Name, pb[i].Name)
		req.Equal(pa[i].Value.RawMatrix().Data, pb[i].Value.RawMatrix().Data)
	}
}

func TestClassifier_Initialization(t *testing.T) {
	req := require.New(t)
	m := newTestClassifier(6)

	for _, v := range m.Cell.Bf.Value.RawMatrix().Data {
		req.Equal(1.0, v)
	}
	for _, v := range m.Cell.Bi.Value.RawMatrix().Data {
		req.Equal(0.0, v)
	}
	req.Equal(projectionBias, m.Bias.Value.At(0, 0))
	for _, v := range m.Cell.Wf.Value.RawMatrix().Data {
		req.LessOrEqual(math.Abs(v), 2*initStdDev)
	}
}

func TestLoss(t *testing.T) {
	req := require.New(t)

	req.InDelta(-math.Log(0.8), Loss([]float64{0.8}, []int{1}), 1e-12)
	req.InDelta(-math.Log(0.2)-math.Log(0.9), Loss([]float64{0.8, 0.1}, []int{0, 0}), 1e-12)

	// A saturated probability stays finite
	req.False(math.IsInf(Loss([]float64{0}, []int{1}), 0))
}

// TestClassifier_GradientCheck compares the analytic gradient with central differences.
func TestClassifier_GradientCheck(t *testing.T) {
	req := require.New(t)
	m := newTestClassifier(3)
	rows := [][]int{{1, 0, -1}, {2, 1, 3}, {0, -1, -1}}
	labels := []int{1, 0, 1}

	probabilities, trace := m.Forward(rows)
	m.Backward(trace, probabilities, labels)

	lossOf := func() float64 {
		p, _ := m.Forward(rows)
		return Loss(p, labels)
	}

	const eps = 1e-6
	for _, p := range m.Parameters() {
		r, c := p.Value.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				original := p.Value.At(i, j)
				p.Value.Set(i, j, original+eps)
				plus := lossOf()
				p.Value.Set(i, j, original-eps)
				minus := lossOf()
				p.Value.Set(i, j, original)

				numeric := (plus - minus) / (2 * eps)
				analytic := p.Grad.At(i, j)
				tolerance := 1e-5 + 1e-4*math.Max(math.Abs(numeric), math.Abs(analytic))
				req.InDelta(numeric, analytic, tolerance, "param=%s[%d,%d]", p.Name, i, j)
			}
		}
	}
}

func TestClassifier_BackwardResetsGradients(t *testing.T) {
	req := require.New(t)
	m := newTestClassifier(2)
	rows := [][]int{{1, 2}}
	labels := []int{1}

	probabilities, trace := m.Forward(rows)
	m.Backward(trace, probabilities, labels)
	first := m.Bias.Grad.At(0, 0)

	// When the same batch is differentiated twice
	m.Backward(trace, probabilities, labels)

	// Then gradients are not accumulated across calls
	req.InDelta(first, m.Bias.Grad.At(0, 0), 1e-15)
	req.InDelta(probabilities[0]-1, first, 1e-12)
}

func TestClassifier_RepeatedStepsReduceLoss(t *testing.T) {
	req := require.New(t)
	m := newTestClassifier(4)
	optimizer := NewAdam(0.01)
	rows := [][]int{{1, 1, 1}, {5, 5, -1}, {1, 2, -1}, {6, 4, 5}}
	labels := []int{0, 1, 0, 1}

	initial := Loss(m.Predict(rows), labels)
	for i := 0; i < 100; i++ {
		probabilities, trace := m.Forward(rows)
		m.Backward(trace, probabilities, labels)
		optimizer.Step(m.Parameters())
	}

	req.Equal(100, optimizer.Steps())
	req.Less(Loss(m.Predict(rows), labels), initial)
}
