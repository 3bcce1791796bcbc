package autodiff

import (
	"fmt"

	"github.com/born-ml/nodegraph/internal/autodiff/ops"
)

// Evaluate returns the node output for inputs, computing and caching it (and
// the outputs of everything it depends on) if this pass has not done so yet.
//
// Evaluation walks the arguments with an explicit stack, so deep graphs do
// not grow the goroutine stack. Inputs are only consulted by nodes whose
// output is not cached; call Reset before evaluating a new example.
func (g *Graph) Evaluate(id NodeID, inputs []float64) (float64, error) {
	if err := g.check(id); err != nil {
		return 0, err
	}
	if v, ok := g.nodes[id].cache.Output.Get(); ok {
		return v, nil
	}

	stack := []NodeID{id}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		n := &g.nodes[top]
		if n.cache.Output.Present() {
			stack = stack[:len(stack)-1]
			continue
		}

		pending := false
		for _, a := range n.args {
			if !g.nodes[a].cache.Output.Present() {
				stack = append(stack, a)
				pending = true
			}
		}
		if pending {
			continue
		}

		v, err := n.op.Forward(inputs, g.reader(top))
		if err != nil {
			return 0, fmt.Errorf("evaluate node %d (%s): %w", top, n.op.Kind(), err)
		}
		n.cache.Output = Some(v)
		stack = stack[:len(stack)-1]
	}

	return g.nodes[id].cache.Output.value, nil
}

// Output returns the cached output of a node.
//
// It never computes anything: reading a node that has not been evaluated in
// the current pass returns ErrCacheMiss.
func (g *Graph) Output(id NodeID) (float64, error) {
	if err := g.check(id); err != nil {
		return 0, err
	}
	v, ok := g.nodes[id].cache.Output.Get()
	if !ok {
		return 0, fmt.Errorf("%w: output of node %d (%s)", ErrCacheMiss, id, g.nodes[id].op.Kind())
	}
	return v, nil
}

// ComputeError caches label on a loss node and evaluates it, which forces
// evaluation of every node the loss depends on.
//
// Gradients cached elsewhere in the graph depend on the label, so a new
// label belongs in a new pass: call Reset first.
func (g *Graph) ComputeError(id NodeID, inputs []float64, label float64) (float64, error) {
	if err := g.check(id); err != nil {
		return 0, err
	}
	n := &g.nodes[id]
	if !n.op.Terminal() {
		return 0, fmt.Errorf("%w: node %d (%s)", ErrNotTerminal, id, n.op.Kind())
	}
	n.cache = Cache{Label: Some(label)}
	return g.Evaluate(id, inputs)
}

// nodeReader exposes one node's pass state to its operation.
type nodeReader struct {
	g  *Graph
	id NodeID
}

var _ ops.Reader = nodeReader{}

func (g *Graph) reader(id NodeID) nodeReader {
	return nodeReader{g: g, id: id}
}

func (r nodeReader) NumArguments() int {
	return len(r.g.nodes[r.id].args)
}

func (r nodeReader) ArgumentOutput(i int) (float64, error) {
	return r.g.Output(r.g.nodes[r.id].args[i])
}

func (r nodeReader) Output() (float64, error) {
	return r.g.Output(r.id)
}

func (r nodeReader) Label() (float64, error) {
	v, ok := r.g.nodes[r.id].cache.Label.Get()
	if !ok {
		return 0, fmt.Errorf("%w: label of node %d", ErrCacheMiss, r.id)
	}
	return v, nil
}

func (r nodeReader) Parameters() []float64 {
	return r.g.nodes[r.id].params
}
