package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// affine computes x*w + b, b being a 1 x cols row broadcast over every row of x.
func affine(x mat.Matrix, w, b *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Mul(x, w)
	out.Apply(func(_, j int, v float64) float64 {
		return v + b.At(0, j)
	}, &out)
	return &out
}

func apply(m *mat.Dense, fn func(float64) float64) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 {
		return fn(v)
	}, m)
	return &out
}

func mulElem(a, b mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.MulElem(a, b)
	return &out
}

// concat places a and b side by side: [a | b].
func concat(a, b *mat.Dense) *mat.Dense {
	rows, ca := a.Dims()
	_, cb := b.Dims()
	out := mat.NewDense(rows, ca+cb, nil)
	out.Slice(0, rows, 0, ca).(*mat.Dense).Copy(a)
	out.Slice(0, rows, ca, ca+cb).(*mat.Dense).Copy(b)
	return out
}

// accumulate adds a^T * d to grad.
func accumulate(grad *mat.Dense, a, d mat.Matrix) {
	var g mat.Dense
	g.Mul(a.T(), d)
	grad.Add(grad, &g)
}

// accumulateBias adds the column sums of d to the 1 x cols grad.
func accumulateBias(grad *mat.Dense, d *mat.Dense) {
	rows, cols := d.Dims()
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += d.At(i, j)
		}
		grad.Set(0, j, grad.At(0, j)+sum)
	}
}
