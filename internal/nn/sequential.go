package nn

import (
	"github.com/born-ml/nodegraph/internal/autodiff"
)

// MLP chains dense layers over inputs and returns a single output node.
//
// Each entry of hidden is the width of one hidden layer using hiddenAct. The
// output is one linear node over the last layer followed by outputAct.
//
// Example:
//
//	in := g.Inputs(784)
//	out, _ := nn.MLP(g, in, []int{10, 10}, nn.ActivationReLU, nn.ActivationNone)
func MLP(
	g *autodiff.Graph,
	inputs []autodiff.NodeID,
	hidden []int,
	hiddenAct, outputAct Activation,
) (autodiff.NodeID, error) {
	layer := inputs
	for _, width := range hidden {
		next, err := Dense(g, layer, width, hiddenAct)
		if err != nil {
			return 0, err
		}
		layer = next
	}

	out, err := Dense(g, layer, 1, outputAct)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}
