package nn

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/born-ml/nodegraph/internal/optim"
)

// Training defaults.
const (
	DefaultMaxSteps      = 10000
	DefaultCallbackEvery = 100
)

// Callback inspects the network during training. Returning ErrStopTraining
// ends training cleanly; any other error aborts it.
type Callback func(n *Network, dataset []Example) error

// TrainConfig holds configuration for Network.Train.
type TrainConfig struct {
	MaxSteps      int             // Number of single-example steps (default: 10000)
	CallbackEvery int             // Steps between callback invocations (default: 100)
	Callback      Callback        // Optional monitor / early stop hook
	Optimizer     optim.Optimizer // Optional; plain gradient descent with the network step size when nil
	Logger        *slog.Logger    // Optional progress logger; nil discards
}

// Train runs stochastic gradient descent on dataset.
//
// Each step draws one example uniformly at random, with replacement, and
// performs one backpropagation step. The callback, if any, runs on step 0 and
// every CallbackEvery steps after it, outside of any evaluation pass, so it
// may evaluate the network. Without a callback, progress is logged every
// tenth of MaxSteps.
func (n *Network) Train(dataset []Example, cfg TrainConfig) error {
	if len(dataset) == 0 {
		return ErrEmptyDataset
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.CallbackEvery <= 0 {
		cfg.CallbackEvery = DefaultCallbackEvery
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	progressEvery := max(cfg.MaxSteps/10, 1)

	for i := 0; i < cfg.MaxSteps; i++ {
		ex := dataset[n.rng.Intn(len(dataset))]

		var err error
		if cfg.Optimizer != nil {
			err = n.OptimizerStep(ex.Inputs, ex.Label, cfg.Optimizer)
		} else {
			err = n.BackpropagationStep(ex.Inputs, ex.Label, n.stepSize)
		}
		if err != nil {
			return fmt.Errorf("train step %d: %w", i, err)
		}

		if cfg.Callback != nil && i%cfg.CallbackEvery == 0 {
			if err := cfg.Callback(n, dataset); err != nil {
				if errors.Is(err, ErrStopTraining) {
					logger.Info("training stopped by callback", "step", i)
					return nil
				}
				return fmt.Errorf("train callback at step %d: %w", i, err)
			}
		} else if i%progressEvery == 0 {
			logger.Info("training",
				"step", i,
				"progress", fmt.Sprintf("%.1f%%", 100*float64(i)/float64(cfg.MaxSteps)))
		}
	}

	logger.Debug("training finished", "steps", cfg.MaxSteps)
	return nil
}
