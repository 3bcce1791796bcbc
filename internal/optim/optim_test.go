package optim_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/nodegraph/internal/autodiff"
	"github.com/born-ml/nodegraph/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds Linear(w=[3,2,1]) -> ReLU -> L2Error and computes the error
// for input [2, -2] with label 1. The linear gradient is [8, 16, -16].
func chain(t *testing.T) (*autodiff.Graph, []autodiff.NodeID, autodiff.NodeID) {
	t.Helper()
	g := autodiff.NewGraph(rand.New(rand.NewSource(1)))
	lin, err := g.Linear(g.Inputs(2), []float64{3, 2, 1})
	require.NoError(t, err)
	relu, err := g.ReLU(lin)
	require.NoError(t, err)
	loss, err := g.L2Error(relu)
	require.NoError(t, err)

	_, err = g.ComputeError(loss, []float64{2, -2}, 1)
	require.NoError(t, err)
	return g, []autodiff.NodeID{lin, relu, loss}, lin
}

func recompute(t *testing.T, g *autodiff.Graph, nodes []autodiff.NodeID) {
	t.Helper()
	g.Reset()
	_, err := g.ComputeError(nodes[2], []float64{2, -2}, 1)
	require.NoError(t, err)
}

func TestSGD_Defaults(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{})
	assert.Equal(t, 0.01, sgd.GetLR())

	sgd.SetLR(0.2)
	assert.Equal(t, 0.2, sgd.GetLR())
}

func TestSGD_MatchesGradientDescentStep(t *testing.T) {
	g, nodes, lin := chain(t)

	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.5})
	require.NoError(t, sgd.Step(g, nodes))

	w, err := g.Parameters(lin)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -6, 9}, w)
}

func TestSGD_WithMomentum(t *testing.T) {
	g, nodes, lin := chain(t)
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})

	// First step: velocity = grad = [8, 16, -16]
	require.NoError(t, sgd.Step(g, nodes))
	w1, err := g.Parameters(lin)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3 - 0.08, 2 - 0.16, 1 + 0.16}, w1, 1e-12)

	// Second step with a fresh gradient: velocity = 0.9 * v1 + g2
	recompute(t, g, nodes)
	g2, err := g.GlobalParameterGradient(lin)
	require.NoError(t, err)
	require.NoError(t, sgd.Step(g, nodes))

	w2, err := g.Parameters(lin)
	require.NoError(t, err)
	v1 := []float64{8, 16, -16}
	for i := range w2 {
		v2 := 0.9*v1[i] + g2[i]
		assert.InDelta(t, w1[i]-0.01*v2, w2[i], 1e-12)
	}
}

func TestSGD_Reset(t *testing.T) {
	g, nodes, lin := chain(t)
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
	require.NoError(t, sgd.Step(g, nodes))

	sgd.Reset()
	recompute(t, g, nodes)
	before, err := g.Parameters(lin)
	require.NoError(t, err)
	grad, err := g.GlobalParameterGradient(lin)
	require.NoError(t, err)
	require.NoError(t, sgd.Step(g, nodes))

	after, err := g.Parameters(lin)
	require.NoError(t, err)
	for i := range after {
		assert.InDelta(t, before[i]-0.01*grad[i], after[i], 1e-12)
	}
}

func TestSGD_PropagatesCacheMiss(t *testing.T) {
	g, nodes, _ := chain(t)
	g.Reset()

	err := optim.NewSGD(optim.SGDConfig{}).Step(g, nodes)
	require.ErrorIs(t, err, autodiff.ErrCacheMiss)
}

func TestAdam_Defaults(t *testing.T) {
	adam := optim.NewAdam(optim.AdamConfig{})
	assert.Equal(t, 0.001, adam.GetLR())

	adam.SetLR(0.1)
	assert.Equal(t, 0.1, adam.GetLR())
}

func TestAdam_FirstStep(t *testing.T) {
	g, nodes, lin := chain(t)

	adam := optim.NewAdam(optim.AdamConfig{LR: 0.1})
	require.NoError(t, adam.Step(g, nodes))

	// After bias correction the first step moves each weight by lr * sign(grad).
	w, err := g.Parameters(lin)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.9, 1.9, 1.1}, w, 1e-6)
}

func TestAdam_ReducesError(t *testing.T) {
	g, nodes, _ := chain(t)
	adam := optim.NewAdam(optim.AdamConfig{LR: 0.05})

	first := math.Inf(1)
	last := 0.0
	for step := 0; step < 50; step++ {
		g.Reset()
		e, err := g.ComputeError(nodes[2], []float64{2, -2}, 1)
		require.NoError(t, err)
		if step == 0 {
			first = e
		}
		last = e
		require.NoError(t, adam.Step(g, nodes))
	}
	assert.Less(t, last, first)
}
