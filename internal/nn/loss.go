package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Example is one labeled training example.
type Example struct {
	Inputs []float64
	Label  float64
}

// Zip pairs input vectors with labels.
func Zip(inputs [][]float64, labels []float64) ([]Example, error) {
	if len(inputs) != len(labels) {
		return nil, fmt.Errorf("%w: %d input vectors for %d labels", ErrConfiguration, len(inputs), len(labels))
	}
	dataset := make([]Example, len(inputs))
	for i := range inputs {
		dataset[i] = Example{Inputs: inputs[i], Label: labels[i]}
	}
	return dataset, nil
}

// ErrorOnDataset returns the fraction of examples whose rounded prediction
// differs from the label. It is a classification accuracy proxy and plays no
// part in training.
func (n *Network) ErrorOnDataset(dataset []Example) (float64, error) {
	if len(dataset) == 0 {
		return 0, ErrEmptyDataset
	}

	errors := 0
	for _, ex := range dataset {
		v, err := n.Evaluate(ex.Inputs)
		if err != nil {
			return 0, err
		}
		if math.Round(v) != ex.Label {
			errors++
		}
	}
	return float64(errors) / float64(len(dataset)), nil
}

// MeanError returns the mean of the error node over dataset.
func (n *Network) MeanError(dataset []Example) (float64, error) {
	if len(dataset) == 0 {
		return 0, ErrEmptyDataset
	}

	losses := make([]float64, len(dataset))
	for i, ex := range dataset {
		e, err := n.ComputeError(ex.Inputs, ex.Label)
		if err != nil {
			return 0, err
		}
		losses[i] = e
	}
	return stat.Mean(losses, nil), nil
}
