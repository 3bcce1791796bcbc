package nn

import (
	"errors"

	"github.com/born-ml/nodegraph/internal/autodiff"
)

// Network errors.
var (
	ErrInputSize      = errors.New("nn: input vector length does not match input nodes")
	ErrEmptyDataset   = errors.New("nn: dataset is empty")
	ErrConcurrentPass = errors.New("nn: another evaluation pass is in flight on this network")

	// ErrStopTraining is returned by a training callback to end training early.
	// Train treats it as a clean stop and returns nil.
	ErrStopTraining = errors.New("nn: training stopped")

	// ErrConfiguration is returned for malformed networks and layers.
	ErrConfiguration = autodiff.ErrConfiguration
)
