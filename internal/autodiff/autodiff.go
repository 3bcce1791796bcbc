// Package autodiff implements reverse-mode automatic differentiation over a
// computation graph of scalar nodes.
//
// Architecture:
//   - Arena: every node lives in a Graph and is addressed by its NodeID.
//     A node's arguments always have smaller IDs, so the graph is acyclic.
//   - Operation: each node delegates its forward rule and local gradients to
//     one of the operations in package ops.
//   - Cache: each node keeps the values derived during the current pass.
//     Values are computed lazily, at most once per pass, and cleared by Reset.
//   - Reverse-mode AD: a node's global gradient is the sum, over its
//     successors, of the successor's global gradient times the successor's
//     local gradient for that node.
//
// Usage:
//
//	g := autodiff.NewGraph(rand.New(rand.NewSource(1)))
//	in := g.Inputs(2)
//	lin, _ := g.Linear(in, []float64{3, 2, 1})
//	relu, _ := g.ReLU(lin)
//	loss, _ := g.L2Error(relu)
//
//	g.ComputeError(loss, []float64{2, -2}, 1) // 16
//	g.GlobalParameterGradient(lin)            // [8, 16, -16]
//
// A Graph is not safe for concurrent use: the cache is shared by every
// caller, so at most one pass may be in flight.
package autodiff

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/born-ml/nodegraph/internal/autodiff/ops"
)

// NodeID addresses a node inside its Graph.
type NodeID int

// node is one arena slot.
type node struct {
	op         ops.Operation
	args       []NodeID  // ordered arguments
	successors []NodeID  // consumers of this node, deduplicated
	params     []float64 // tunable parameters, nil for untunable kinds
	cache      Cache
}

// Graph owns the nodes of a computation graph.
type Graph struct {
	nodes []node
	rng   *rand.Rand // used for default weight initialization
}

// NewGraph creates an empty graph.
//
// rng seeds the default weights of linear nodes. A nil rng is replaced by a
// time-seeded source.
func NewGraph(rng *rand.Rand) *Graph {
	if rng == nil {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Graph{
		nodes: make([]node, 0, 64),
		rng:   rng,
	}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Input adds a node reading inputs[index].
func (g *Graph) Input(index int) NodeID {
	return g.add(ops.NewInputOp(index), nil, nil)
}

// Inputs adds count input nodes reading slots 0..count-1.
func (g *Graph) Inputs(count int) []NodeID {
	ids := make([]NodeID, count)
	for i := range ids {
		ids[i] = g.Input(i)
	}
	return ids
}

// Constant adds a node that always outputs 1.
func (g *Graph) Constant() NodeID {
	return g.add(ops.NewConstantOp(), nil, nil)
}

// Linear adds a weighted sum of args.
//
// A fresh constant node is prepended to args, so the node has len(args)+1
// weights and weights[0] is the bias. If weights is nil they are drawn
// uniformly from [-1/sqrt(k), 1/sqrt(k)] with k = len(args)+1. Otherwise
// weights must have exactly len(args)+1 entries; the slice is copied.
func (g *Graph) Linear(args []NodeID, weights []float64) (NodeID, error) {
	if err := g.checkAll(args); err != nil {
		return 0, err
	}
	k := len(args) + 1
	var params []float64
	if weights == nil {
		params = UniformWeights(g.rng, k)
	} else {
		if len(weights) != k {
			return 0, fmt.Errorf("%w: linear node with %d arguments needs %d weights, got %d",
				ErrConfiguration, len(args), k, len(weights))
		}
		params = make([]float64, k)
		copy(params, weights)
	}

	full := make([]NodeID, 0, k)
	full = append(full, g.Constant())
	full = append(full, args...)
	return g.add(ops.NewLinearOp(), full, params), nil
}

// ReLU adds max(0, arg).
func (g *Graph) ReLU(arg NodeID) (NodeID, error) {
	return g.unary(ops.NewReLUOp(), arg)
}

// Sigmoid adds 1 / (1 + exp(-arg)).
func (g *Graph) Sigmoid(arg NodeID) (NodeID, error) {
	return g.unary(ops.NewSigmoidOp(), arg)
}

// L2Error adds the terminal loss (arg - label)².
func (g *Graph) L2Error(arg NodeID) (NodeID, error) {
	return g.unary(ops.NewL2ErrorOp(), arg)
}

func (g *Graph) unary(op ops.Operation, arg NodeID) (NodeID, error) {
	if err := g.check(arg); err != nil {
		return 0, err
	}
	return g.add(op, []NodeID{arg}, nil), nil
}

// add appends a node and links it as a successor of its arguments.
// Arguments must already be validated.
func (g *Graph) add(op ops.Operation, args []NodeID, params []float64) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{
		op:     op,
		args:   args,
		params: params,
	})
	for _, a := range args {
		arg := &g.nodes[a]
		if !contains(arg.successors, id) {
			arg.successors = append(arg.successors, id)
		}
	}
	return id
}

// check validates that id names a node of this graph.
func (g *Graph) check(id NodeID) error {
	if id < 0 || int(id) >= len(g.nodes) {
		return fmt.Errorf("%w: %d (graph has %d nodes)", ErrUnknownNode, id, len(g.nodes))
	}
	return nil
}

func (g *Graph) checkAll(ids []NodeID) error {
	for _, id := range ids {
		if err := g.check(id); err != nil {
			return err
		}
	}
	return nil
}

// Kind returns the operation kind of a node.
func (g *Graph) Kind(id NodeID) (ops.Kind, error) {
	if err := g.check(id); err != nil {
		return 0, err
	}
	return g.nodes[id].op.Kind(), nil
}

// Operation returns the operation of a node.
func (g *Graph) Operation(id NodeID) (ops.Operation, error) {
	if err := g.check(id); err != nil {
		return nil, err
	}
	return g.nodes[id].op, nil
}

// Arguments returns a copy of the node's ordered arguments.
func (g *Graph) Arguments(id NodeID) ([]NodeID, error) {
	if err := g.check(id); err != nil {
		return nil, err
	}
	return append([]NodeID(nil), g.nodes[id].args...), nil
}

// Successors returns a copy of the nodes that use id as an argument.
func (g *Graph) Successors(id NodeID) ([]NodeID, error) {
	if err := g.check(id); err != nil {
		return nil, err
	}
	return append([]NodeID(nil), g.nodes[id].successors...), nil
}

// Parameters returns a copy of the node's tunable parameters.
// Untunable nodes return an empty slice.
func (g *Graph) Parameters(id NodeID) ([]float64, error) {
	if err := g.check(id); err != nil {
		return nil, err
	}
	return append([]float64{}, g.nodes[id].params...), nil
}

// HasParameters reports whether the node owns tunable parameters.
func (g *Graph) HasParameters(id NodeID) bool {
	return g.check(id) == nil && g.nodes[id].params != nil
}

// Cache returns a snapshot of the node's cache.
func (g *Graph) Cache(id NodeID) (Cache, error) {
	if err := g.check(id); err != nil {
		return Cache{}, err
	}
	return g.nodes[id].cache, nil
}

// ResetNode clears every cached value of one node.
func (g *Graph) ResetNode(id NodeID) error {
	if err := g.check(id); err != nil {
		return err
	}
	g.nodes[id].cache = Cache{}
	return nil
}

// Reset clears the cache of every node in the graph.
func (g *Graph) Reset() {
	for i := range g.nodes {
		g.nodes[i].cache = Cache{}
	}
}

func contains(ids []NodeID, id NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
