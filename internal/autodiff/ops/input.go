package ops

import "fmt"

// InputOp reads a fixed slot of the input vector. It has no arguments.
type InputOp struct {
	nonTerminal
	noParameters
	index int
}

// NewInputOp creates an InputOp reading inputs[index].
func NewInputOp(index int) *InputOp {
	return &InputOp{index: index}
}

// Index returns the input slot this operation reads.
func (op *InputOp) Index() int {
	return op.index
}

// Kind returns KindInput.
func (op *InputOp) Kind() Kind { return KindInput }

// Forward returns inputs[index].
func (op *InputOp) Forward(inputs []float64, _ Reader) (float64, error) {
	if op.index < 0 || op.index >= len(inputs) {
		return 0, fmt.Errorf("%w: slot %d, got %d inputs", ErrInputIndex, op.index, len(inputs))
	}
	return inputs[op.index], nil
}

// LocalGradient returns an empty gradient (no arguments).
func (op *InputOp) LocalGradient(Reader) ([]float64, error) {
	return []float64{}, nil
}

// ConstantOp always outputs 1. It is the implicit first argument of a
// linear node, so the first weight acts as the bias.
type ConstantOp struct {
	nonTerminal
	noParameters
}

// NewConstantOp creates a ConstantOp.
func NewConstantOp() *ConstantOp {
	return &ConstantOp{}
}

// Kind returns KindConstant.
func (op *ConstantOp) Kind() Kind { return KindConstant }

// Forward returns 1.
func (op *ConstantOp) Forward([]float64, Reader) (float64, error) {
	return 1, nil
}

// LocalGradient returns an empty gradient (no arguments).
func (op *ConstantOp) LocalGradient(Reader) ([]float64, error) {
	return []float64{}, nil
}
