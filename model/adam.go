package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Adam applies adaptive moment estimation updates, keeping first and second
// moments next to each parameter.
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	step int
	m    map[*Parameter]*mat.Dense
	v    map[*Parameter]*mat.Dense
}

func NewAdam(learningRate float64) *Adam {
	return &Adam{
		LearningRate: learningRate,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
		m:            make(map[*Parameter]*mat.Dense),
		v:            make(map[*Parameter]*mat.Dense),
	}
}

// Steps counts the updates applied so far.
func (a *Adam) Steps() int {
	return a.step
}

// Step updates every parameter in place from its current gradient.
func (a *Adam) Step(params []*Parameter) {
	a.step++
	correction1 := 1 - math.Pow(a.Beta1, float64(a.step))
	correction2 := 1 - math.Pow(a.Beta2, float64(a.step))

	for _, p := range params {
		rows, cols := p.Value.Dims()
		m, ok := a.m[p]
		if !ok {
			m = mat.NewDense(rows, cols, nil)
			a.m[p] = m
		}
		v, ok := a.v[p]
		if !ok {
			v = mat.NewDense(rows, cols, nil)
			a.v[p] = v
		}

		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				g := p.Grad.At(i, j)
				mi := a.Beta1*m.At(i, j) + (1-a.Beta1)*g
				vi := a.Beta2*v.At(i, j) + (1-a.Beta2)*g*g
				m.Set(i, j, mi)
				v.Set(i, j, vi)

				mHat := mi / correction1
				vHat := vi / correction2
				p.Value.Set(i, j, p.Value.At(i, j)-a.LearningRate*mHat/(math.Sqrt(vHat)+a.Epsilon))
			}
		}
	}
}
