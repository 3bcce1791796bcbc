package autodiff

import (
	"errors"

	"github.com/born-ml/nodegraph/internal/autodiff/ops"
)

// Graph errors. None of them is transient: each one signals a malformed graph
// or an accessor used outside of an evaluation pass.
var (
	ErrConfiguration = errors.New("autodiff: invalid node configuration")
	ErrCacheMiss     = errors.New("autodiff: value not present in cache")
	ErrGraphLookup   = errors.New("autodiff: node is not an argument")
	ErrNoSuccessors  = errors.New("autodiff: global gradient undefined for node without successors")
	ErrUnknownNode   = errors.New("autodiff: unknown node")
	ErrNotTerminal   = errors.New("autodiff: node does not compute an error")

	// ErrInputIndex is returned when an input node reads past the input vector.
	ErrInputIndex = ops.ErrInputIndex
)
