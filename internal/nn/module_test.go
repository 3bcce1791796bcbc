package nn_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/nodegraph/internal/autodiff"
	"github.com/born-ml/nodegraph/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraph() *autodiff.Graph {
	return autodiff.NewGraph(rand.New(rand.NewSource(1)))
}

// reluNetwork builds ReLU(Linear(weights)) over two inputs.
func reluNetwork(t *testing.T, weights []float64, cfg nn.Config) (*nn.Network, autodiff.NodeID) {
	t.Helper()
	g := newGraph()
	in := g.Inputs(2)
	lin, err := g.Linear(in, weights)
	require.NoError(t, err)
	relu, err := g.ReLU(lin)
	require.NoError(t, err)

	net, err := nn.New(g, relu, in, cfg)
	require.NoError(t, err)
	return net, lin
}

func TestNetwork_Evaluate(t *testing.T) {
	g := newGraph()
	in := g.Inputs(3)
	lin, err := g.Linear(in, []float64{-20, 3, 2, 1})
	require.NoError(t, err)
	relu, err := g.ReLU(lin)
	require.NoError(t, err)

	net, err := nn.New(g, relu, in, nn.Config{})
	require.NoError(t, err)

	out, err := net.Evaluate([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out)
}

func TestNetwork_ComputeError(t *testing.T) {
	g := newGraph()
	in := g.Inputs(1)
	relu, err := g.ReLU(in[0])
	require.NoError(t, err)

	net, err := nn.New(g, relu, in, nn.Config{})
	require.NoError(t, err)

	out, err := net.Evaluate([]float64{-2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out)

	e, err := net.ComputeError([]float64{-2}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, e)
}

func TestNetwork_EvaluateResetsBetweenCalls(t *testing.T) {
	net, _ := reluNetwork(t, []float64{3, 2, 1}, nn.Config{})

	out, err := net.Evaluate([]float64{2, -2})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out)

	out, err = net.Evaluate([]float64{6, -2})
	require.NoError(t, err)
	assert.Equal(t, 13.0, out)
}

func TestNetwork_InputSize(t *testing.T) {
	net, _ := reluNetwork(t, []float64{3, 2, 1}, nn.Config{})

	_, err := net.Evaluate([]float64{1})
	require.ErrorIs(t, err, nn.ErrInputSize)

	_, err = net.ComputeError([]float64{1, 2, 3}, 0)
	require.ErrorIs(t, err, nn.ErrInputSize)

	err = net.BackpropagationStep(nil, 0, 0.1)
	require.ErrorIs(t, err, nn.ErrInputSize)
}

func TestNetwork_BackpropagationStep(t *testing.T) {
	net, lin := reluNetwork(t, []float64{3, 2, 1}, nn.Config{})

	require.NoError(t, net.BackpropagationStep([]float64{2, -2}, 1, 0.5))

	w, err := net.Graph().Parameters(lin)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -6, 9}, w)
}

func TestNetwork_Defaults(t *testing.T) {
	net, _ := reluNetwork(t, []float64{3, 2, 1}, nn.Config{})
	assert.Equal(t, nn.DefaultStepSize, net.StepSize())

	net, _ = reluNetwork(t, []float64{3, 2, 1}, nn.Config{StepSize: 0.25})
	assert.Equal(t, 0.25, net.StepSize())
	assert.Len(t, net.Inputs(), 2)

	kind, err := net.Graph().Kind(net.ErrorNode())
	require.NoError(t, err)
	assert.Equal(t, "L2Error", kind.String())
}

func TestNetwork_Configuration(t *testing.T) {
	g := newGraph()
	in := g.Inputs(2)
	lin, err := g.Linear(in, nil)
	require.NoError(t, err)

	t.Run("input is not an input node", func(t *testing.T) {
		_, err := nn.New(g, lin, []autodiff.NodeID{in[0], lin}, nn.Config{})
		require.ErrorIs(t, err, nn.ErrConfiguration)
	})

	t.Run("unknown terminal", func(t *testing.T) {
		_, err := nn.New(g, 1000, in, nn.Config{})
		require.ErrorIs(t, err, autodiff.ErrUnknownNode)
	})

	t.Run("error node is not a loss", func(t *testing.T) {
		relu, err := g.ReLU(lin)
		require.NoError(t, err)
		_, err = nn.NewWithErrorNode(g, lin, in, relu, nn.Config{})
		require.ErrorIs(t, err, nn.ErrConfiguration)
	})

	t.Run("error node does not reach terminal", func(t *testing.T) {
		other, err := g.Sigmoid(in[0])
		require.NoError(t, err)
		loss, err := g.L2Error(other)
		require.NoError(t, err)
		_, err = nn.NewWithErrorNode(g, lin, in, loss, nn.Config{})
		require.ErrorIs(t, err, nn.ErrConfiguration)
	})
}

func TestNetwork_NewWithErrorNode(t *testing.T) {
	g := newGraph()
	in := g.Inputs(1)
	sig, err := g.Sigmoid(in[0])
	require.NoError(t, err)
	loss, err := g.L2Error(sig)
	require.NoError(t, err)

	net, err := nn.NewWithErrorNode(g, sig, in, loss, nn.Config{})
	require.NoError(t, err)
	assert.Equal(t, loss, net.ErrorNode())

	e, err := net.ComputeError([]float64{0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, e, 1e-12)
}

func TestNetwork_ForEachVisitsOnce(t *testing.T) {
	g := newGraph()
	in := g.Inputs(2)
	a, err := g.Linear(in, nil)
	require.NoError(t, err)
	b, err := g.Linear([]autodiff.NodeID{in[0], a, a}, nil)
	require.NoError(t, err)

	net, err := nn.New(g, b, in, nn.Config{})
	require.NoError(t, err)

	seen := map[autodiff.NodeID]int{}
	net.ForEach(func(id autodiff.NodeID) { seen[id]++ })

	// inputs, two linear nodes with their constants, and the loss
	assert.Len(t, seen, 7)
	for id, count := range seen {
		assert.Equal(t, 1, count, "node %d", id)
	}
	assert.Equal(t, []autodiff.NodeID{a, b}, net.ParameterNodes())
}

func TestNetwork_Reset(t *testing.T) {
	net, lin := reluNetwork(t, []float64{3, 2, 1}, nn.Config{})
	_, err := net.Evaluate([]float64{2, -2})
	require.NoError(t, err)

	net.Reset()

	_, err = net.Graph().Output(lin)
	require.ErrorIs(t, err, autodiff.ErrCacheMiss)
	w, err := net.Graph().Parameters(lin)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 1}, w)
}

func TestNetwork_Describe(t *testing.T) {
	net, _ := reluNetwork(t, []float64{3, 2, 1}, nn.Config{})
	_, err := net.ComputeError([]float64{2, -2}, 1)
	require.NoError(t, err)

	text, err := net.Describe()
	require.NoError(t, err)
	assert.Equal(t,
		"Relu output=5.00\n"+
			"  Linear weights=3.00,2.00,1.00 gradient=8.00,16.00,-16.00 output=5.00\n"+
			"    Constant(1)\n"+
			"    InputNode(0) output = 2.00\n"+
			"    InputNode(1) output = -2.00\n"+
			"\n",
		text)
}

func TestNetwork_RejectsSharedTerminal(t *testing.T) {
	g := newGraph()
	in := g.Inputs(2)
	lin, err := g.Linear(in, []float64{3, 2, 1})
	require.NoError(t, err)

	_, err = nn.New(g, lin, in, nn.Config{})
	require.NoError(t, err)

	// A second error node on the same terminal would add to its gradient.
	_, err = nn.New(g, lin, in, nn.Config{})
	require.ErrorIs(t, err, nn.ErrConfiguration)
}

func TestNetwork_RejectsOutsideConsumer(t *testing.T) {
	g := newGraph()
	in := g.Inputs(2)
	lin, err := g.Linear(in, []float64{3, 2, 1})
	require.NoError(t, err)
	relu, err := g.ReLU(lin)
	require.NoError(t, err)
	_, err = g.Sigmoid(lin)
	require.NoError(t, err)

	_, err = nn.New(g, relu, in, nn.Config{})
	require.ErrorIs(t, err, nn.ErrConfiguration)

	loss, err := g.L2Error(relu)
	require.NoError(t, err)
	_, err = nn.NewWithErrorNode(g, relu, in, loss, nn.Config{})
	require.ErrorIs(t, err, nn.ErrConfiguration)
}

func TestNetwork_LateConsumerFailsLoudly(t *testing.T) {
	g := newGraph()
	in := g.Inputs(2)
	lin, err := g.Linear(in, []float64{3, 2, 1})
	require.NoError(t, err)
	net, err := nn.New(g, lin, in, nn.Config{})
	require.NoError(t, err)

	// A loss attached after construction, evaluated with its own label.
	other, err := g.L2Error(lin)
	require.NoError(t, err)
	_, err = g.ComputeError(other, []float64{0, 0}, 100)
	require.NoError(t, err)

	err = net.BackpropagationStep([]float64{2, -2}, 1, 0.5)
	require.ErrorIs(t, err, autodiff.ErrCacheMiss)

	w, err := g.Parameters(lin)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 1}, w)
}
