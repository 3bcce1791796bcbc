package ops

import "math"

// SigmoidOp represents the sigmoid activation operation: σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct {
	nonTerminal
	noParameters
}

// NewSigmoidOp creates a new sigmoid operation.
func NewSigmoidOp() *SigmoidOp {
	return &SigmoidOp{}
}

// Kind returns KindSigmoid.
func (op *SigmoidOp) Kind() Kind { return KindSigmoid }

// Forward computes σ(x).
func (op *SigmoidOp) Forward(_ []float64, r Reader) (float64, error) {
	x, err := singleArgument(r)
	if err != nil {
		return 0, err
	}
	return sigmoid(x), nil
}

// LocalGradient computes the derivative from the cached output:
// dσ/dx = σ(x) * (1 - σ(x)).
func (op *SigmoidOp) LocalGradient(r Reader) ([]float64, error) {
	out, err := r.Output()
	if err != nil {
		return nil, err
	}
	return []float64{(1 - out) * out}, nil
}

// Bounds of the sigmoid output. In float64 the exact value rounds to 1 for
// x above about 37 and to 0 below about -745; clamping keeps the output in
// the open interval (0, 1).
var (
	sigmoidMin = math.SmallestNonzeroFloat64
	sigmoidMax = math.Nextafter(1, 0)
)

// sigmoid evaluates exp(x) / (exp(x) + 1) without overflowing for large |x|.
// The result is clamped to [sigmoidMin, sigmoidMax].
func sigmoid(x float64) float64 {
	var v float64
	if x >= 0 {
		v = 1 / (1 + math.Exp(-x))
	} else {
		e := math.Exp(x)
		v = e / (e + 1)
	}
	return min(max(v, sigmoidMin), sigmoidMax)
}
