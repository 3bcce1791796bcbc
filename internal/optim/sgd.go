package optim

import (
	"github.com/born-ml/nodegraph/internal/autodiff"
	"gonum.org/v1/gonum/floats"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Without momentum a step is identical to Graph.DoGradientDescentStep.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[autodiff.NodeID][]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[autodiff.NodeID][]float64),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step(g *autodiff.Graph, nodes []autodiff.NodeID) error {
	pgs, err := collectGradients(g, nodes)
	if err != nil {
		return err
	}

	for _, pg := range pgs {
		id, grad := pg.id, pg.grad
		step := grad
		if s.momentum != 0 {
			velocity, ok := s.velocities[id]
			if !ok {
				velocity = make([]float64, len(grad))
				s.velocities[id] = velocity
			}
			// velocity = momentum * velocity + grad
			floats.Scale(s.momentum, velocity)
			floats.Add(velocity, grad)
			step = velocity
		}

		if err := g.UpdateParameters(id, func(i int, w float64) float64 {
			return w - s.lr*step[i]
		}); err != nil {
			return err
		}
	}
	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Reset drops the momentum buffers.
func (s *SGD) Reset() {
	s.velocities = make(map[autodiff.NodeID][]float64)
}
