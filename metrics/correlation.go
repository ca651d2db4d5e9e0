package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// PearsonCorrelation はピアソンの相関係数を計算する。
//
//	r = Σ(xᵢ-x̄)(yᵢ-ȳ) / sqrt(Σ(xᵢ-x̄)² · Σ(yᵢ-ȳ)²)
//
// どちらかの分散が0なら0を返す。結果は[-1, 1]に収める。
func PearsonCorrelation(x, y []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errors.NewValueError("PearsonCorrelation", "empty input")
	}
	if len(x) != len(y) {
		return 0, errors.NewDimensionError("PearsonCorrelation", len(x), len(y), 0)
	}

	xMean := stat.Mean(x, nil)
	yMean := stat.Mean(y, nil)

	var sxy, sxx, syy float64
	for i := range x {
		dx := x[i] - xMean
		dy := y[i] - yMean
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	denom := math.Sqrt(sxx * syy)
	if denom == 0 {
		return 0, nil
	}
	return errors.ClipValue(sxy/denom, -1, 1), nil
}
