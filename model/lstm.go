package model

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// LSTMCell is a single recurrent layer. Each gate reads [x_t | h_t-1].
type LSTMCell struct {
	InputSize  int
	HiddenSize int

	Wf, Wi, Wc, Wo *Parameter
	Bf, Bi, Bc, Bo *Parameter
}

// timestep keeps what the backward pass needs from one forward step.
type timestep struct {
	combined   *mat.Dense
	f, i, g, o *mat.Dense
	prevC, c   *mat.Dense
	tanhC      *mat.Dense
}

// NewLSTMCell draws gate weights from a truncated normal. Biases start at zero,
// except the forget gate which starts at 1 so the cell remembers by default.
func NewLSTMCell(inputSize, hiddenSize int, rng *rand.Rand, stddev float64) *LSTMCell {
	rows := inputSize + hiddenSize
	return &LSTMCell{
		InputSize:  inputSize,
		HiddenSize: hiddenSize,
		Wf:         newParameter("lstm/forget/kernel", rows, hiddenSize).truncatedNormal(rng, stddev),
		Wi:         newParameter("lstm/input/kernel", rows, hiddenSize).truncatedNormal(rng, stddev),
		Wc:         newParameter("lstm/candidate/kernel", rows, hiddenSize).truncatedNormal(rng, stddev),
		Wo:         newParameter("lstm/output/kernel", rows, hiddenSize).truncatedNormal(rng, stddev),
		Bf:         newParameter("lstm/forget/bias", 1, hiddenSize).constant(1),
		Bi:         newParameter("lstm/input/bias", 1, hiddenSize),
		Bc:         newParameter("lstm/candidate/bias", 1, hiddenSize),
		Bo:         newParameter("lstm/output/bias", 1, hiddenSize),
	}
}

// Parameters returns all learnable parameters of the cell.
func (c *LSTMCell) Parameters() []*Parameter {
	return []*Parameter{c.Wf, c.Wi, c.Wc, c.Wo, c.Bf, c.Bi, c.Bc, c.Bo}
}

// Forward runs the cell over inputs, one batch x InputSize matrix per timestep,
// from a zero state. It returns the last hidden state and the per-step trace.
func (c *LSTMCell) Forward(inputs []*mat.Dense, batch int) (*mat.Dense, []timestep) {
	h := mat.NewDense(batch, c.HiddenSize, nil)
	cell := mat.NewDense(batch, c.HiddenSize, nil)
	steps := make([]timestep, 0, len(inputs))

	for _, x := range inputs {
		combined := concat(x, h)
		f := apply(affine(combined, c.Wf.Value, c.Bf.Value), sigmoid)
		i := apply(affine(combined, c.Wi.Value, c.Bi.Value), sigmoid)
		g := apply(affine(combined, c.Wc.Value, c.Bc.Value), math.Tanh)
		o := apply(affine(combined, c.Wo.Value, c.Bo.Value), sigmoid)

		var next mat.Dense
		next.Add(mulElem(f, cell), mulElem(i, g))
		tanhC := apply(&next, math.Tanh)

		steps = append(steps, timestep{
			combined: combined,
			f:        f, i: i, g: g, o: o,
			prevC: cell, c: &next, tanhC: tanhC,
		})
		h = mulElem(o, tanhC)
		cell = &next
	}
	return h, steps
}

// Backward propagates dh, the loss gradient on the last hidden state, through
// every timestep and adds the result to the parameter gradients.
func (c *LSTMCell) Backward(steps []timestep, dh *mat.Dense) {
	rows, _ := dh.Dims()
	dc := mat.NewDense(rows, c.HiddenSize, nil)

	for t := len(steps) - 1; t >= 0; t-- {
		s := steps[t]

		// h = o * tanh(c)
		do := mulElem(dh, s.tanhC)
		var dcTotal mat.Dense
		dcTotal.Add(dc, mulElem(mulElem(dh, s.o), apply(s.tanhC, func(v float64) float64 {
			return 1 - v*v
		})))

		// c = f * prevC + i * g
		df := mulElem(&dcTotal, s.prevC)
		di := mulElem(&dcTotal, s.g)
		dg := mulElem(&dcTotal, s.i)
		dc = mulElem(&dcTotal, s.f)

		// Back through the gate non-linearities.
		dfPre := mulElem(df, apply(s.f, sigmoidGrad))
		diPre := mulElem(di, apply(s.i, sigmoidGrad))
		dgPre := mulElem(dg, apply(s.g, func(v float64) float64 { return 1 - v*v }))
		doPre := mulElem(do, apply(s.o, sigmoidGrad))

		accumulate(c.Wf.Grad, s.combined, dfPre)
		accumulate(c.Wi.Grad, s.combined, diPre)
		accumulate(c.Wc.Grad, s.combined, dgPre)
		accumulate(c.Wo.Grad, s.combined, doPre)
		accumulateBias(c.Bf.Grad, dfPre)
		accumulateBias(c.Bi.Grad, diPre)
		accumulateBias(c.Bc.Grad, dgPre)
		accumulateBias(c.Bo.Grad, doPre)

		var dCombined, tmp mat.Dense
		dCombined.Mul(dfPre, c.Wf.Value.T())
		tmp.Mul(diPre, c.Wi.Value.T())
		dCombined.Add(&dCombined, &tmp)
		tmp.Reset()
		tmp.Mul(dgPre, c.Wc.Value.T())
		dCombined.Add(&dCombined, &tmp)
		tmp.Reset()
		tmp.Mul(doPre, c.Wo.Value.T())
		dCombined.Add(&dCombined, &tmp)

		dh = mat.DenseCopyOf(dCombined.Slice(0, rows, c.InputSize, c.InputSize+c.HiddenSize))
	}
}

// sigmoidGrad takes an already activated value s = sigmoid(x) and returns ds/dx.
func sigmoidGrad(s float64) float64 {
	return s * (1 - s)
}
