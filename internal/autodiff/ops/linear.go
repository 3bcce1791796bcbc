package ops

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// LinearOp represents a weighted sum: output = Σ w_i * x_i.
//
// The node owns one weight per argument. The first argument is always a
// constant node, so w_0 is the bias.
//
// Gradients:
//   - d(output)/dx_i = w_i
//   - d(output)/dw_i = x_i
type LinearOp struct {
	nonTerminal
}

// NewLinearOp creates a LinearOp.
func NewLinearOp() *LinearOp {
	return &LinearOp{}
}

// Kind returns KindLinear.
func (op *LinearOp) Kind() Kind { return KindLinear }

// Forward computes the dot product of the weights and the argument outputs.
func (op *LinearOp) Forward(_ []float64, r Reader) (float64, error) {
	xs, err := argumentOutputs(r)
	if err != nil {
		return 0, err
	}
	weights := r.Parameters()
	if len(weights) != len(xs) {
		return 0, fmt.Errorf("%w: linear has %d weights for %d arguments", ErrArity, len(weights), len(xs))
	}
	return floats.Dot(weights, xs), nil
}

// LocalGradient returns a copy of the weights.
//
// The copy pins the gradient to the weights of the current pass; a later
// in-place descent step does not change an already cached gradient.
func (op *LinearOp) LocalGradient(r Reader) ([]float64, error) {
	weights := r.Parameters()
	grad := make([]float64, len(weights))
	copy(grad, weights)
	return grad, nil
}

// LocalParameterGradient returns the argument outputs.
func (op *LinearOp) LocalParameterGradient(r Reader) ([]float64, error) {
	return argumentOutputs(r)
}

// argumentOutputs collects the cached outputs of all arguments in order.
func argumentOutputs(r Reader) ([]float64, error) {
	xs := make([]float64, r.NumArguments())
	for i := range xs {
		x, err := r.ArgumentOutput(i)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}
