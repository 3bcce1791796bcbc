// Package optim implements optimization algorithms for training computation graphs.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the global parameter gradients cached by the current pass
// and update node parameters in place.
//
// Example usage:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.05, Momentum: 0.9})
//
//	g.Reset()
//	g.ComputeError(loss, inputs, label)
//	optimizer.Step(g, parameterNodes)
package optim

import (
	"github.com/born-ml/nodegraph/internal/autodiff"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to the parameters of every listed node.
	//
	// The gradients of the current pass are used, so the error must have been
	// computed since the last reset. Nodes without parameters are skipped.
	Step(g *autodiff.Graph, nodes []autodiff.NodeID) error

	// GetLR returns the current learning rate.
	//
	// Useful for monitoring and learning rate scheduling.
	GetLR() float64
}

// paramGrad pairs a parameterized node with its global parameter gradient.
type paramGrad struct {
	id   autodiff.NodeID
	grad []float64
}

// collectGradients computes the gradient of every parameterized node before
// any parameter changes, so updates never feed into gradients of the same step.
func collectGradients(g *autodiff.Graph, nodes []autodiff.NodeID) ([]paramGrad, error) {
	out := make([]paramGrad, 0, len(nodes))
	for _, id := range nodes {
		if !g.HasParameters(id) {
			continue
		}
		grad, err := g.GlobalParameterGradient(id)
		if err != nil {
			return nil, err
		}
		out = append(out, paramGrad{id: id, grad: grad})
	}
	return out, nil
}
