// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides trainable networks over an autodiff graph.
//
// # Overview
//
// This package contains:
//   - Network: designated inputs, a prediction node and an error node
//   - Training: single-example stochastic gradient descent with callbacks
//   - Builders: Dense layers and MLP stacks with ReLU or Sigmoid activations
//   - Metrics: ErrorOnDataset (rounded misclassification rate), MeanError
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/nodegraph/autodiff"
//	    "github.com/born-ml/nodegraph/nn"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph(rand.New(rand.NewSource(1)))
//	    in := g.Inputs(2)
//	    out, _ := nn.MLP(g, in, []int{3}, nn.ActivationSigmoid, nn.ActivationSigmoid)
//
//	    net, _ := nn.New(g, out, in, nn.Config{StepSize: 0.5})
//	    dataset, _ := nn.Zip(
//	        [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
//	        []float64{0, 1, 1, 0},
//	    )
//	    net.Train(dataset, nn.TrainConfig{MaxSteps: 10000})
//	}
//
// # Callbacks
//
// A callback runs every CallbackEvery steps and may evaluate the network.
// Returning ErrStopTraining ends training without error:
//
//	cfg := nn.TrainConfig{
//	    Callback: func(n *nn.Network, ds []nn.Example) error {
//	        frac, err := n.ErrorOnDataset(ds)
//	        if err != nil {
//	            return err
//	        }
//	        if frac == 0 {
//	            return nn.ErrStopTraining
//	        }
//	        return nil
//	    },
//	}
//
// # Concurrency
//
// A Network admits one pass at a time; overlapping calls return
// ErrConcurrentPass.
package nn
