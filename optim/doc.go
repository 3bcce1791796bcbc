// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers that update the parameters of graph
// nodes from their global parameter gradients.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with optional momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/nodegraph/nn"
//	    "github.com/born-ml/nodegraph/optim"
//	)
//
//	func main() {
//	    // net is an *nn.Network
//	    err := net.Train(dataset, nn.TrainConfig{
//	        MaxSteps:  10000,
//	        Optimizer: optim.NewAdam(optim.AdamConfig{LR: 0.01}),
//	    })
//	}
//
// # Manual Steps
//
// Optimizers read the gradients of the current pass, so the error must be
// computed first:
//
//	g.Reset()
//	g.ComputeError(loss, inputs, label)
//	optimizer.Step(g, []autodiff.NodeID{lin})
//
// Every gradient is read before any parameter changes.
package optim
