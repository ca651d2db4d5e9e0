package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// CheckFitInput はFitの入力（X: n×p、y: n×1）を検証し、n と p を返す
func CheckFitInput(op string, X, y mat.Matrix) (int, int, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	ry, cy := y.Dims()
	if ry != r {
		return 0, 0, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return 0, 0, errors.NewValueError(op, "y must be a column vector")
	}
	return r, c, nil
}

// CheckPredictInput はPredictの入力が学習時と同じ特徴量数か検証する
func CheckPredictInput(op string, e *BaseEstimator, name string, X mat.Matrix) (int, error) {
	if !e.IsFitted() {
		return 0, errors.NewNotFittedError(name, "Predict")
	}
	r, c := X.Dims()
	if c != e.NFeatures() {
		return 0, errors.NewDimensionError(op, e.NFeatures(), c, 1)
	}
	return r, nil
}
