package ops

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Local gradient:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct {
	nonTerminal
	noParameters
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp() *ReLUOp {
	return &ReLUOp{}
}

// Kind returns KindReLU.
func (op *ReLUOp) Kind() Kind { return KindReLU }

// Forward computes max(0, x).
func (op *ReLUOp) Forward(_ []float64, r Reader) (float64, error) {
	x, err := singleArgument(r)
	if err != nil {
		return 0, err
	}
	return max(0, x), nil
}

// LocalGradient returns [1] when the argument was positive, [0] otherwise.
func (op *ReLUOp) LocalGradient(r Reader) ([]float64, error) {
	x, err := singleArgument(r)
	if err != nil {
		return nil, err
	}
	if x > 0 {
		return []float64{1}, nil
	}
	return []float64{0}, nil
}
