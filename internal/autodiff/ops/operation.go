// Package ops defines the node operations of the computation graph.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: the node's output from its arguments' cached outputs
//   - Local gradient: d(output)/d(argument_i) for every argument
//   - Local parameter gradient: d(output)/d(parameter_i) for every parameter
//
// The set of operations is closed:
//   - InputOp: reads one slot of the input vector
//   - ConstantOp: always 1, feeds the bias weight of a linear node
//   - LinearOp: weighted sum of arguments (tunable)
//   - ReLUOp: max(0, x)
//   - SigmoidOp: 1 / (1 + exp(-x))
//   - L2ErrorOp: (x - label)², the terminal loss
//
// Operations are stateless apart from configuration (the input slot of an
// InputOp). All per-pass values are read through a Reader supplied by the graph.
package ops

// Kind identifies an operation variant.
type Kind int

// Operation kinds.
const (
	KindInput Kind = iota
	KindConstant
	KindLinear
	KindReLU
	KindSigmoid
	KindL2Error
)

// String returns a human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindConstant:
		return "Constant"
	case KindLinear:
		return "Linear"
	case KindReLU:
		return "ReLU"
	case KindSigmoid:
		return "Sigmoid"
	case KindL2Error:
		return "L2Error"
	default:
		return "Unknown"
	}
}

// Reader gives an operation read-only access to the current evaluation pass
// of the node it belongs to.
//
// Every method reports an error instead of computing missing values, so an
// operation can never trigger evaluation of another node by accident.
type Reader interface {
	// NumArguments returns the number of argument nodes.
	NumArguments() int

	// ArgumentOutput returns the cached output of the i-th argument.
	ArgumentOutput(i int) (float64, error)

	// Output returns the node's own cached output.
	Output() (float64, error)

	// Label returns the label cached by the current error computation.
	Label() (float64, error)

	// Parameters returns the node's tunable parameters. The slice must not be modified.
	Parameters() []float64
}

// Operation represents one node variant of the computation graph.
type Operation interface {
	// Kind returns the variant of this operation.
	Kind() Kind

	// Forward computes the node output. All arguments have been evaluated
	// before Forward is called.
	Forward(inputs []float64, r Reader) (float64, error)

	// LocalGradient returns d(output)/d(argument_i), one entry per argument.
	LocalGradient(r Reader) ([]float64, error)

	// LocalParameterGradient returns d(output)/d(parameter_i), one entry per
	// parameter. Operations without parameters return an empty slice.
	LocalParameterGradient(r Reader) ([]float64, error)

	// Terminal reports whether the node is a loss node, whose global gradient
	// is fixed at 1 and which requires a label to evaluate.
	Terminal() bool
}

// noParameters is embedded by operations that have nothing to tune.
type noParameters struct{}

// LocalParameterGradient returns an empty gradient.
func (noParameters) LocalParameterGradient(Reader) ([]float64, error) {
	return []float64{}, nil
}

// nonTerminal is embedded by every operation except the loss.
type nonTerminal struct{}

// Terminal returns false.
func (nonTerminal) Terminal() bool { return false }
