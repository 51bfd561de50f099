// Package model holds the recurrent sentiment classifier and its optimizer.
package model

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Parameter is a learnable matrix with its accumulated gradient.
type Parameter struct {
	Name  string
	Value *mat.Dense
	Grad  *mat.Dense
}

func newParameter(name string, rows, cols int) *Parameter {
	return &Parameter{
		Name:  name,
		Value: mat.NewDense(rows, cols, nil),
		Grad:  mat.NewDense(rows, cols, nil),
	}
}

// truncatedNormal fills p with N(0, stddev) samples, redrawing anything past two deviations.
func (p *Parameter) truncatedNormal(rng *rand.Rand, stddev float64) *Parameter {
	data := p.Value.RawMatrix().Data
	for i := range data {
		v := rng.NormFloat64()
		for math.Abs(v) > 2 {
			v = rng.NormFloat64()
		}
		data[i] = v * stddev
	}
	return p
}

func (p *Parameter) constant(value float64) *Parameter {
	data := p.Value.RawMatrix().Data
	for i := range data {
		data[i] = value
	}
	return p
}

func (p *Parameter) zeroGrad() {
	p.Grad.Zero()
}
