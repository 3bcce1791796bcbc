package autodiff

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// LocalGradient returns d(output)/d(argument_i) for every argument of the
// node, computing and caching it on first access in the pass.
func (g *Graph) LocalGradient(id NodeID) ([]float64, error) {
	if err := g.check(id); err != nil {
		return nil, err
	}
	n := &g.nodes[id]
	if v, ok := n.cache.LocalGradient.Get(); ok {
		return v, nil
	}
	v, err := n.op.LocalGradient(g.reader(id))
	if err != nil {
		return nil, fmt.Errorf("local gradient of node %d (%s): %w", id, n.op.Kind(), err)
	}
	n.cache.LocalGradient = Some(v)
	return v, nil
}

// LocalGradientForArgument returns the derivative of the node with respect to
// one of its arguments.
//
// If arg appears more than once among the arguments, the first position wins.
// Returns ErrGraphLookup if arg is not an argument of the node.
func (g *Graph) LocalGradientForArgument(id, arg NodeID) (float64, error) {
	if err := g.check(id); err != nil {
		return 0, err
	}
	for i, a := range g.nodes[id].args {
		if a != arg {
			continue
		}
		grad, err := g.LocalGradient(id)
		if err != nil {
			return 0, err
		}
		return grad[i], nil
	}
	return 0, fmt.Errorf("%w: node %d is not an argument of node %d", ErrGraphLookup, arg, id)
}

// GlobalGradient returns dE/d(output): the derivative of the network error
// with respect to the node.
//
// Loss nodes return 1. Every other node sums, over each successor s and each
// position j where s uses the node, s.GlobalGradient * s.LocalGradient[j].
// Successors are resolved with an explicit stack. A non-loss node without
// successors returns ErrNoSuccessors.
func (g *Graph) GlobalGradient(id NodeID) (float64, error) {
	if err := g.check(id); err != nil {
		return 0, err
	}
	if v, ok := g.nodes[id].cache.GlobalGradient.Get(); ok {
		return v, nil
	}

	stack := []NodeID{id}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		n := &g.nodes[top]
		if n.cache.GlobalGradient.Present() {
			stack = stack[:len(stack)-1]
			continue
		}
		if n.op.Terminal() {
			n.cache.GlobalGradient = Some(1.0)
			stack = stack[:len(stack)-1]
			continue
		}
		if len(n.successors) == 0 {
			return 0, fmt.Errorf("%w: node %d (%s)", ErrNoSuccessors, top, n.op.Kind())
		}

		pending := false
		for _, s := range n.successors {
			if !g.nodes[s].cache.GlobalGradient.Present() {
				stack = append(stack, s)
				pending = true
			}
		}
		if pending {
			continue
		}

		sum, err := g.chainRule(top)
		if err != nil {
			return 0, err
		}
		n.cache.GlobalGradient = Some(sum)
		stack = stack[:len(stack)-1]
	}

	return g.nodes[id].cache.GlobalGradient.value, nil
}

// chainRule sums the contributions of every use of id by its successors.
// All successor global gradients must already be cached.
func (g *Graph) chainRule(id NodeID) (float64, error) {
	sum := 0.0
	for _, s := range g.nodes[id].successors {
		local, err := g.LocalGradient(s)
		if err != nil {
			return 0, err
		}
		global := g.nodes[s].cache.GlobalGradient.value
		for j, a := range g.nodes[s].args {
			if a == id {
				sum += global * local[j]
			}
		}
	}
	return sum, nil
}

// LocalParameterGradient returns d(output)/d(parameter_i) for every
// parameter of the node. Untunable nodes return an empty slice.
func (g *Graph) LocalParameterGradient(id NodeID) ([]float64, error) {
	if err := g.check(id); err != nil {
		return nil, err
	}
	n := &g.nodes[id]
	if v, ok := n.cache.LocalParameterGradient.Get(); ok {
		return v, nil
	}
	v, err := n.op.LocalParameterGradient(g.reader(id))
	if err != nil {
		return nil, fmt.Errorf("local parameter gradient of node %d (%s): %w", id, n.op.Kind(), err)
	}
	n.cache.LocalParameterGradient = Some(v)
	return v, nil
}

// GlobalParameterGradient returns dE/d(parameter_i) for every parameter of
// the node: GlobalGradient * LocalParameterGradient[i]. Parameters only
// influence the node's own output, so no further composition is needed.
// Untunable nodes return an empty slice without consulting the gradient.
func (g *Graph) GlobalParameterGradient(id NodeID) ([]float64, error) {
	if err := g.check(id); err != nil {
		return nil, err
	}
	n := &g.nodes[id]
	if v, ok := n.cache.GlobalParameterGradient.Get(); ok {
		return v, nil
	}
	if n.params == nil {
		n.cache.GlobalParameterGradient = Some([]float64{})
		return []float64{}, nil
	}

	local, err := g.LocalParameterGradient(id)
	if err != nil {
		return nil, err
	}
	global, err := g.GlobalGradient(id)
	if err != nil {
		return nil, err
	}
	grad := make([]float64, len(local))
	floats.ScaleTo(grad, global, local)
	n.cache.GlobalParameterGradient = Some(grad)
	return grad, nil
}

// DoGradientDescentStep moves every parameter of the node against its
// global gradient: w_i -= stepSize * dE/dw_i. Untunable nodes are left
// untouched. This is the only operation that changes state outside the cache.
func (g *Graph) DoGradientDescentStep(id NodeID, stepSize float64) error {
	if !g.HasParameters(id) {
		return g.check(id)
	}
	grad, err := g.GlobalParameterGradient(id)
	if err != nil {
		return err
	}
	floats.AddScaled(g.nodes[id].params, -stepSize, grad)
	return nil
}

// UpdateParameters replaces every parameter w_i of the node by fn(i, w_i).
// It is the hook optimizers use to apply their own update rule.
func (g *Graph) UpdateParameters(id NodeID, fn func(i int, w float64) float64) error {
	if err := g.check(id); err != nil {
		return err
	}
	params := g.nodes[id].params
	for i, w := range params {
		params[i] = fn(i, w)
	}
	return nil
}
