package nn_test

import (
	"testing"

	"github.com/born-ml/nodegraph/internal/autodiff"
	"github.com/born-ml/nodegraph/internal/autodiff/ops"
	"github.com/born-ml/nodegraph/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivation_String(t *testing.T) {
	assert.Equal(t, "None", nn.ActivationNone.String())
	assert.Equal(t, "ReLU", nn.ActivationReLU.String())
	assert.Equal(t, "Sigmoid", nn.ActivationSigmoid.String())
	assert.Equal(t, "Unknown", nn.Activation(42).String())
}

func TestDense(t *testing.T) {
	g := newGraph()
	in := g.Inputs(2)

	units, err := nn.Dense(g, in, 3, nn.ActivationSigmoid)
	require.NoError(t, err)
	require.Len(t, units, 3)

	for _, u := range units {
		kind, err := g.Kind(u)
		require.NoError(t, err)
		assert.Equal(t, ops.KindSigmoid, kind)

		args, err := g.Arguments(u)
		require.NoError(t, err)
		require.Len(t, args, 1)
		w, err := g.Parameters(args[0])
		require.NoError(t, err)
		assert.Len(t, w, 3)
	}
}

func TestDense_NoActivation(t *testing.T) {
	g := newGraph()
	units, err := nn.Dense(g, g.Inputs(1), 2, nn.ActivationNone)
	require.NoError(t, err)

	for _, u := range units {
		kind, err := g.Kind(u)
		require.NoError(t, err)
		assert.Equal(t, ops.KindLinear, kind)
	}
}

func TestDense_Configuration(t *testing.T) {
	g := newGraph()
	in := g.Inputs(2)

	_, err := nn.Dense(g, in, 0, nn.ActivationReLU)
	require.ErrorIs(t, err, nn.ErrConfiguration)

	_, err = nn.Dense(g, nil, 2, nn.ActivationReLU)
	require.ErrorIs(t, err, nn.ErrConfiguration)

	_, err = nn.Dense(g, in, 2, nn.Activation(42))
	require.ErrorIs(t, err, nn.ErrConfiguration)

	_, err = nn.Dense(g, []autodiff.NodeID{99}, 2, nn.ActivationReLU)
	require.ErrorIs(t, err, autodiff.ErrUnknownNode)
}

func TestMLP(t *testing.T) {
	g := newGraph()
	in := g.Inputs(2)

	out, err := nn.MLP(g, in, []int{4, 3}, nn.ActivationReLU, nn.ActivationNone)
	require.NoError(t, err)

	kind, err := g.Kind(out)
	require.NoError(t, err)
	assert.Equal(t, ops.KindLinear, kind)

	// 2 inputs, 4 and 3 units of constant+linear+relu, constant+linear output.
	assert.Equal(t, 2+4*3+3*3+2, g.Len())

	net, err := nn.New(g, out, in, nn.Config{})
	require.NoError(t, err)
	assert.Len(t, net.ParameterNodes(), 4+3+1)

	_, err = net.Evaluate([]float64{0.5, -0.5})
	require.NoError(t, err)
}

func TestMLP_NoHiddenLayers(t *testing.T) {
	g := newGraph()
	in := g.Inputs(3)

	out, err := nn.MLP(g, in, nil, nn.ActivationReLU, nn.ActivationSigmoid)
	require.NoError(t, err)

	kind, err := g.Kind(out)
	require.NoError(t, err)
	assert.Equal(t, ops.KindSigmoid, kind)
}
