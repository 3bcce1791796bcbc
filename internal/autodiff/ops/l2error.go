package ops

import "fmt"

// L2ErrorOp computes the squared deviation error: E = (z - y)².
//
// z is the output of its single argument (the rest of the graph) and y is
// the label cached for the current pass. It is the terminal node of a
// network, so its global gradient is dE/dE = 1.
//
// Local gradient:
//   - dE/dz = 2 * (z - y)
type L2ErrorOp struct {
	noParameters
}

// NewL2ErrorOp creates a new L2ErrorOp.
func NewL2ErrorOp() *L2ErrorOp {
	return &L2ErrorOp{}
}

// Kind returns KindL2Error.
func (op *L2ErrorOp) Kind() Kind { return KindL2Error }

// Terminal returns true.
func (op *L2ErrorOp) Terminal() bool { return true }

// Forward computes (z - y)².
func (op *L2ErrorOp) Forward(_ []float64, r Reader) (float64, error) {
	z, err := singleArgument(r)
	if err != nil {
		return 0, err
	}
	y, err := r.Label()
	if err != nil {
		return 0, err
	}
	d := z - y
	return d * d, nil
}

// LocalGradient returns [2 * (z - y)].
func (op *L2ErrorOp) LocalGradient(r Reader) ([]float64, error) {
	z, err := singleArgument(r)
	if err != nil {
		return nil, err
	}
	y, err := r.Label()
	if err != nil {
		return nil, err
	}
	return []float64{2 * (z - y)}, nil
}

// singleArgument returns the cached output of the only argument.
func singleArgument(r Reader) (float64, error) {
	if n := r.NumArguments(); n != 1 {
		return 0, fmt.Errorf("%w: want 1, got %d", ErrArity, n)
	}
	return r.ArgumentOutput(0)
}
