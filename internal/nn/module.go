// Package nn builds trainable networks on top of the autodiff graph.
//
// This package provides:
//   - Network: a graph with designated inputs, a prediction node and an
//     error node, plus evaluation and gradient-descent training
//   - Example: one labeled training example
//   - Dense / MLP: builders for fully connected layers
//
// A Network admits a single evaluation pass at a time. The node caches are
// shared, so overlapping calls fail with ErrConcurrentPass instead of
// corrupting each other.
package nn

import (
	"fmt"
	"math/rand"
	"slices"
	"sync/atomic"
	"time"

	"github.com/born-ml/nodegraph/internal/autodiff"
	"github.com/born-ml/nodegraph/internal/autodiff/ops"
	"github.com/born-ml/nodegraph/internal/optim"
)

// DefaultStepSize is the gradient descent step used when Config.StepSize is 0.
const DefaultStepSize = 0.01

// Config holds optional settings of a Network.
type Config struct {
	StepSize float64    // Gradient descent step (default: 0.01)
	Rand     *rand.Rand // Draws training examples (default: time-seeded)
}

// Network owns a prediction node, its input nodes and an error node over a
// shared graph.
//
// Example:
//
//	g := autodiff.NewGraph(rand.New(rand.NewSource(1)))
//	in := g.Inputs(2)
//	out, _ := nn.MLP(g, in, []int{3}, nn.ActivationSigmoid, nn.ActivationSigmoid)
//	net, _ := nn.New(g, out, in, nn.Config{StepSize: 0.5})
//	net.Train(dataset, nn.TrainConfig{MaxSteps: 10000})
type Network struct {
	graph     *autodiff.Graph
	terminal  autodiff.NodeID
	inputs    []autodiff.NodeID
	errorNode autodiff.NodeID
	stepSize  float64
	rng       *rand.Rand
	busy      atomic.Bool
}

// New creates a Network whose error node is a new L2 error node over terminal.
//
// No node the terminal depends on may feed a node outside that subgraph,
// and terminal itself must not have any successors yet.
func New(g *autodiff.Graph, terminal autodiff.NodeID, inputs []autodiff.NodeID, cfg Config) (*Network, error) {
	if err := validate(g, terminal, inputs); err != nil {
		return nil, err
	}
	if err := closed(g, terminal); err != nil {
		return nil, err
	}
	errorNode, err := g.L2Error(terminal)
	if err != nil {
		return nil, err
	}
	return NewWithErrorNode(g, terminal, inputs, errorNode, cfg)
}

// NewWithErrorNode creates a Network with a caller-built error node.
//
// errorNode must be a loss node whose arguments reach terminal, and every
// entry of inputs must be an input node. Every node the error node depends
// on must feed only nodes of that same subgraph.
func NewWithErrorNode(
	g *autodiff.Graph,
	terminal autodiff.NodeID,
	inputs []autodiff.NodeID,
	errorNode autodiff.NodeID,
	cfg Config,
) (*Network, error) {
	if cfg.StepSize == 0 {
		cfg.StepSize = DefaultStepSize
	}
	if cfg.Rand == nil {
		//nolint:gosec // Using math/rand for example sampling (not security-critical)
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if err := validate(g, terminal, inputs); err != nil {
		return nil, err
	}
	op, err := g.Operation(errorNode)
	if err != nil {
		return nil, err
	}
	if !op.Terminal() {
		return nil, fmt.Errorf("%w: error node %d of kind %s is not a loss", ErrConfiguration, errorNode, op.Kind())
	}

	n := &Network{
		graph:     g,
		terminal:  terminal,
		inputs:    append([]autodiff.NodeID(nil), inputs...),
		errorNode: errorNode,
		stepSize:  cfg.StepSize,
		rng:       cfg.Rand,
	}

	reaches := false
	n.ForEach(func(id autodiff.NodeID) {
		if id == terminal {
			reaches = true
		}
	})
	if !reaches {
		return nil, fmt.Errorf("%w: error node %d does not depend on terminal node %d", ErrConfiguration, errorNode, terminal)
	}
	if err := closed(g, errorNode); err != nil {
		return nil, err
	}
	return n, nil
}

// closed checks that every node reachable from root through arguments only
// feeds nodes that are themselves reachable from root.
func closed(g *autodiff.Graph, root autodiff.NodeID) error {
	reached := make([]bool, g.Len())
	var ids []autodiff.NodeID
	walk(g, root, func(id autodiff.NodeID) {
		reached[id] = true
		ids = append(ids, id)
	})

	for _, id := range ids {
		succs, err := g.Successors(id)
		if err != nil {
			return err
		}
		for _, s := range succs {
			if !reached[s] {
				return fmt.Errorf("%w: node %d feeds node %d outside the network", ErrConfiguration, id, s)
			}
		}
	}
	return nil
}

// walk calls fn once for every node reachable from root through arguments.
func walk(g *autodiff.Graph, root autodiff.NodeID, fn func(id autodiff.NodeID)) {
	visited := make([]bool, g.Len())
	stack := []autodiff.NodeID{root}
	visited[root] = true

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(id)

		args, _ := g.Arguments(id)
		for _, a := range args {
			if !visited[a] {
				visited[a] = true
				stack = append(stack, a)
			}
		}
	}
}

func validate(g *autodiff.Graph, terminal autodiff.NodeID, inputs []autodiff.NodeID) error {
	if _, err := g.Kind(terminal); err != nil {
		return err
	}
	for i, id := range inputs {
		kind, err := g.Kind(id)
		if err != nil {
			return err
		}
		if kind != ops.KindInput {
			return fmt.Errorf("%w: input %d is node %d of kind %s", ErrConfiguration, i, id, kind)
		}
	}
	return nil
}

// Graph returns the underlying graph.
func (n *Network) Graph() *autodiff.Graph { return n.graph }

// Terminal returns the prediction node.
func (n *Network) Terminal() autodiff.NodeID { return n.terminal }

// ErrorNode returns the loss node.
func (n *Network) ErrorNode() autodiff.NodeID { return n.errorNode }

// Inputs returns a copy of the input nodes.
func (n *Network) Inputs() []autodiff.NodeID {
	return append([]autodiff.NodeID(nil), n.inputs...)
}

// StepSize returns the default gradient descent step.
func (n *Network) StepSize() float64 { return n.stepSize }

// ForEach calls fn once for every node reachable from the error node through
// arguments. The visiting order is unspecified.
func (n *Network) ForEach(fn func(id autodiff.NodeID)) {
	walk(n.graph, n.errorNode, fn)
}

// nodes returns every reachable node in ascending ID order.
func (n *Network) nodes() []autodiff.NodeID {
	var ids []autodiff.NodeID
	n.ForEach(func(id autodiff.NodeID) {
		ids = append(ids, id)
	})
	slices.Sort(ids)
	return ids
}

// ParameterNodes returns every reachable node with tunable parameters, in
// ascending ID order.
func (n *Network) ParameterNodes() []autodiff.NodeID {
	var ids []autodiff.NodeID
	n.ForEach(func(id autodiff.NodeID) {
		if n.graph.HasParameters(id) {
			ids = append(ids, id)
		}
	})
	slices.Sort(ids)
	return ids
}

// Reset clears the cache of every node of the graph, which includes every
// reachable node. Parameters are kept.
// A consumer attached to the network after construction therefore makes
// backpropagation fail with ErrCacheMiss.
func (n *Network) Reset() {
	n.graph.Reset()
}

// begin claims the network for one pass.
func (n *Network) begin() (release func(), err error) {
	if !n.busy.CompareAndSwap(false, true) {
		return nil, ErrConcurrentPass
	}
	return func() { n.busy.Store(false) }, nil
}

func (n *Network) checkInputs(inputs []float64) error {
	if len(inputs) != len(n.inputs) {
		return fmt.Errorf("%w: got %d values for %d input nodes", ErrInputSize, len(inputs), len(n.inputs))
	}
	return nil
}

// Evaluate resets the caches and returns the prediction for inputs.
func (n *Network) Evaluate(inputs []float64) (float64, error) {
	release, err := n.begin()
	if err != nil {
		return 0, err
	}
	defer release()

	if err := n.checkInputs(inputs); err != nil {
		return 0, err
	}
	n.Reset()
	return n.graph.Evaluate(n.terminal, inputs)
}

// ComputeError resets the caches and returns the error for one labeled
// example, evaluating the whole graph.
func (n *Network) ComputeError(inputs []float64, label float64) (float64, error) {
	release, err := n.begin()
	if err != nil {
		return 0, err
	}
	defer release()

	return n.computeError(inputs, label)
}

func (n *Network) computeError(inputs []float64, label float64) (float64, error) {
	if err := n.checkInputs(inputs); err != nil {
		return 0, err
	}
	n.Reset()
	return n.graph.ComputeError(n.errorNode, inputs, label)
}

// BackpropagationStep computes the error for one example and moves every
// parameter against its gradient by stepSize.
//
// All gradients are computed before any parameter changes, so the result
// does not depend on the order in which nodes are visited.
func (n *Network) BackpropagationStep(inputs []float64, label, stepSize float64) error {
	release, err := n.begin()
	if err != nil {
		return err
	}
	defer release()

	if _, err := n.computeError(inputs, label); err != nil {
		return err
	}
	return n.descend(n.nodes(), stepSize)
}

// descend applies one gradient descent step to the given nodes.
func (n *Network) descend(order []autodiff.NodeID, stepSize float64) error {
	for _, id := range order {
		if _, err := n.graph.GlobalParameterGradient(id); err != nil {
			return err
		}
	}
	for _, id := range order {
		if err := n.graph.DoGradientDescentStep(id, stepSize); err != nil {
			return err
		}
	}
	return nil
}

// OptimizerStep computes the error for one example and lets opt update the
// parameters.
func (n *Network) OptimizerStep(inputs []float64, label float64, opt optim.Optimizer) error {
	release, err := n.begin()
	if err != nil {
		return err
	}
	defer release()

	if _, err := n.computeError(inputs, label); err != nil {
		return err
	}
	return opt.Step(n.graph, n.ParameterNodes())
}

// Describe renders the prediction subgraph with outputs, weights and
// gradients of the last pass.
func (n *Network) Describe() (string, error) {
	return n.graph.Describe(n.terminal)
}
