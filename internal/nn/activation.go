package nn

import (
	"fmt"

	"github.com/born-ml/nodegraph/internal/autodiff"
)

// Activation selects the nonlinearity applied after a linear node.
type Activation int

// Supported activations.
const (
	ActivationNone Activation = iota
	ActivationReLU
	ActivationSigmoid
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case ActivationNone:
		return "None"
	case ActivationReLU:
		return "ReLU"
	case ActivationSigmoid:
		return "Sigmoid"
	default:
		return "Unknown"
	}
}

// apply adds the activation node over id, or returns id for ActivationNone.
func (a Activation) apply(g *autodiff.Graph, id autodiff.NodeID) (autodiff.NodeID, error) {
	switch a {
	case ActivationNone:
		return id, nil
	case ActivationReLU:
		return g.ReLU(id)
	case ActivationSigmoid:
		return g.Sigmoid(id)
	default:
		return 0, fmt.Errorf("%w: unknown activation %d", ErrConfiguration, int(a))
	}
}
