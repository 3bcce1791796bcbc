// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over a
// graph of scalar nodes.
//
// Nodes are added to a Graph and addressed by NodeID. Evaluation and
// gradients are computed lazily and cached per pass; Reset starts a new pass.
//
// Example:
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/nodegraph/autodiff"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph(rand.New(rand.NewSource(1)))
//	    in := g.Inputs(2)
//	    lin, _ := g.Linear(in, []float64{3, 2, 1})
//	    relu, _ := g.ReLU(lin)
//	    loss, _ := g.L2Error(relu)
//
//	    g.ComputeError(loss, []float64{2, -2}, 1)  // 16
//	    grad, _ := g.GlobalParameterGradient(lin) // [8, 16, -16]
//	    g.DoGradientDescentStep(lin, 0.5)         // weights [-1, -6, 9]
//	}
package autodiff

import (
	"math/rand"

	"github.com/born-ml/nodegraph/internal/autodiff"
	"github.com/born-ml/nodegraph/internal/autodiff/ops"
)

// Graph is an arena of computation nodes.
type Graph = autodiff.Graph

// NodeID addresses a node inside its Graph.
type NodeID = autodiff.NodeID

// NewGraph creates an empty graph. rng seeds default weights; nil uses a
// time-seeded source.
func NewGraph(rng *rand.Rand) *Graph {
	return autodiff.NewGraph(rng)
}

// UniformWeights draws k weights uniformly from [-1/sqrt(k), 1/sqrt(k)].
func UniformWeights(rng *rand.Rand, k int) []float64 {
	return autodiff.UniformWeights(rng, k)
}

// Cache

// Cache holds the per-pass values of one node.
type Cache = autodiff.Cache

// Optional is a value that may be absent.
type Optional[T any] = autodiff.Optional[T]

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return autodiff.Some(v)
}

// Operations

// Kind identifies the operation of a node.
type Kind = ops.Kind

// Node kinds.
const (
	KindInput    = ops.KindInput
	KindConstant = ops.KindConstant
	KindLinear   = ops.KindLinear
	KindReLU     = ops.KindReLU
	KindSigmoid  = ops.KindSigmoid
	KindL2Error  = ops.KindL2Error
)

// Errors

// Errors returned by Graph methods.
var (
	ErrConfiguration = autodiff.ErrConfiguration
	ErrCacheMiss     = autodiff.ErrCacheMiss
	ErrGraphLookup   = autodiff.ErrGraphLookup
	ErrNoSuccessors  = autodiff.ErrNoSuccessors
	ErrUnknownNode   = autodiff.ErrUnknownNode
	ErrNotTerminal   = autodiff.ErrNotTerminal
	ErrInputIndex    = autodiff.ErrInputIndex
)
