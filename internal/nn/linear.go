package nn

import (
	"fmt"

	"github.com/born-ml/nodegraph/internal/autodiff"
)

// Dense builds a fully connected layer of width units over args.
//
// Each unit is a linear node over all of args (plus its implicit bias)
// followed by act. Weights are drawn from the graph's random source.
//
// Example:
//
//	in := g.Inputs(784)
//	hidden, _ := nn.Dense(g, in, 10, nn.ActivationReLU)
func Dense(g *autodiff.Graph, args []autodiff.NodeID, width int, act Activation) ([]autodiff.NodeID, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: dense layer width %d", ErrConfiguration, width)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: dense layer without arguments", ErrConfiguration)
	}

	units := make([]autodiff.NodeID, width)
	for i := range units {
		lin, err := g.Linear(args, nil)
		if err != nil {
			return nil, err
		}
		if units[i], err = act.apply(g, lin); err != nil {
			return nil, err
		}
	}
	return units, nil
}
