package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdam_FirstStepMovesByLearningRate(t *testing.T) {
	req := require.New(t)
	p := newParameter("w", 1, 2).constant(1)
	p.Grad.Set(0, 0, 0.5)
	p.Grad.Set(0, 1, -2)

	optimizer := NewAdam(1e-4)
	optimizer.Step([]*Parameter{p})

	// Bias-corrected moments make the first update lr * sign(g)
	req.InDelta(1-1e-4, p.Value.At(0, 0), 1e-10)
	req.InDelta(1+1e-4, p.Value.At(0, 1), 1e-10)
	req.Equal(1, optimizer.Steps())
}

func TestAdam_ZeroGradientKeepsValue(t *testing.T) {
	req := require.New(t)
	p := newParameter("w", 2, 2).constant(0.3)

	optimizer := NewAdam(1e-4)
	optimizer.Step([]*Parameter{p})
	optimizer.Step([]*Parameter{p})

	for _, v := range p.Value.RawMatrix().Data {
		req.Equal(0.3, v)
	}
}
