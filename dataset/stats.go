package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// Summary is the mean and range of one column.
type Summary struct {
	Mean float64
	Min  float64
	Max  float64
}

// Describe summarises values. Empty input is an error.
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, errors.WithStack(errors.ErrEmptyData)
	}
	return Summary{
		Mean: stat.Mean(values, nil),
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}, nil
}
