// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/nodegraph/autodiff"
	"github.com/born-ml/nodegraph/internal/nn"
)

// Network

// Network couples a prediction node with its inputs and an error node.
type Network = nn.Network

// Config holds optional settings of a Network.
type Config = nn.Config

// DefaultStepSize is the gradient descent step used when Config.StepSize is 0.
const DefaultStepSize = nn.DefaultStepSize

// New creates a Network with a new L2 error node over terminal.
//
// Example:
//
//	net, err := nn.New(g, out, in, nn.Config{StepSize: 0.05})
func New(g *autodiff.Graph, terminal autodiff.NodeID, inputs []autodiff.NodeID, cfg Config) (*Network, error) {
	return nn.New(g, terminal, inputs, cfg)
}

// NewWithErrorNode creates a Network with a caller-built error node.
func NewWithErrorNode(
	g *autodiff.Graph,
	terminal autodiff.NodeID,
	inputs []autodiff.NodeID,
	errorNode autodiff.NodeID,
	cfg Config,
) (*Network, error) {
	return nn.NewWithErrorNode(g, terminal, inputs, errorNode, cfg)
}

// Training

// Example is one labeled training example.
type Example = nn.Example

// TrainConfig holds configuration for Network.Train.
type TrainConfig = nn.TrainConfig

// Callback inspects the network during training.
type Callback = nn.Callback

// Training defaults.
const (
	DefaultMaxSteps      = nn.DefaultMaxSteps
	DefaultCallbackEvery = nn.DefaultCallbackEvery
)

// Zip pairs input vectors with labels.
func Zip(inputs [][]float64, labels []float64) ([]Example, error) {
	return nn.Zip(inputs, labels)
}

// Layers

// Activation selects the nonlinearity applied after a linear node.
type Activation = nn.Activation

// Supported activations.
const (
	ActivationNone    = nn.ActivationNone
	ActivationReLU    = nn.ActivationReLU
	ActivationSigmoid = nn.ActivationSigmoid
)

// Dense builds width linear nodes over args, each followed by act.
//
// Example:
//
//	hidden, err := nn.Dense(g, in, 10, nn.ActivationReLU)
func Dense(g *autodiff.Graph, args []autodiff.NodeID, width int, act Activation) ([]autodiff.NodeID, error) {
	return nn.Dense(g, args, width, act)
}

// MLP chains dense layers over inputs into a single output node.
//
// Example:
//
//	out, err := nn.MLP(g, in, []int{10, 10}, nn.ActivationReLU, nn.ActivationNone)
func MLP(g *autodiff.Graph, inputs []autodiff.NodeID, hidden []int, hiddenAct, outputAct Activation) (autodiff.NodeID, error) {
	return nn.MLP(g, inputs, hidden, hiddenAct, outputAct)
}

// Errors

// Errors returned by Network methods and builders.
var (
	ErrInputSize      = nn.ErrInputSize
	ErrEmptyDataset   = nn.ErrEmptyDataset
	ErrConcurrentPass = nn.ErrConcurrentPass
	ErrStopTraining   = nn.ErrStopTraining
	ErrConfiguration  = nn.ErrConfiguration
)
