package autodiff

import (
	"fmt"
	"strings"

	"github.com/born-ml/nodegraph/internal/autodiff/ops"
)

// Describe renders the subgraph rooted at id as indented text, one node per
// line with its arguments nested below it.
//
// Outputs (and, for linear nodes, the global parameter gradient) are read
// from the cache, so the subgraph must have been evaluated in the current
// pass; linear nodes also need an error computation. Missing values return
// ErrCacheMiss.
func (g *Graph) Describe(id NodeID) (string, error) {
	if err := g.check(id); err != nil {
		return "", err
	}
	return g.describe(id, 0)
}

func (g *Graph) describe(id NodeID, depth int) (string, error) {
	n := &g.nodes[id]
	prefix := strings.Repeat("  ", depth)

	switch op := n.op.(type) {
	case *ops.InputOp:
		out, err := g.Output(id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sInputNode(%d) output = %.2f", prefix, op.Index(), out), nil

	case *ops.ConstantOp:
		return prefix + "Constant(1)", nil

	case *ops.LinearOp:
		out, err := g.Output(id)
		if err != nil {
			return "", err
		}
		grad, err := g.GlobalParameterGradient(id)
		if err != nil {
			return "", err
		}
		args, err := g.describeArgs(id, depth)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sLinear weights=%s gradient=%s output=%.2f\n%s\n",
			prefix, joinFixed(n.params), joinFixed(grad), out, args), nil

	default:
		out, err := g.Output(id)
		if err != nil {
			return "", err
		}
		args, err := g.describeArgs(id, depth)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%s output=%.2f\n%s\n", prefix, describeName(n.op.Kind()), out, args), nil
	}
}

func (g *Graph) describeArgs(id NodeID, depth int) (string, error) {
	lines := make([]string, 0, len(g.nodes[id].args))
	for _, a := range g.nodes[id].args {
		s, err := g.describe(a, depth+1)
		if err != nil {
			return "", err
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n"), nil
}

func describeName(k ops.Kind) string {
	if k == ops.KindReLU {
		return "Relu"
	}
	return k.String()
}

func joinFixed(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return strings.Join(parts, ",")
}
