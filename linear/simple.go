package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// FitSimple は単回帰 y = m·x + c の係数を閉形式で求める。
//
//	m = Σ(xᵢ-x̄)(yᵢ-ȳ) / Σ(xᵢ-x̄)²,  c = ȳ - m·x̄
//
// 平均を先に求めてから中心化した和をとる（2パス）。x がすべて同じ値で
// 分母が0の場合は m = 0、c = ȳ とする。
func FitSimple(x, y []float64) (slope, intercept float64, err error) {
	n := len(x)
	if n == 0 {
		return 0, 0, errors.NewValueError("FitSimple", "empty input")
	}
	if len(y) != n {
		return 0, 0, errors.NewDimensionError("FitSimple", n, len(y), 0)
	}

	var xMean, yMean float64
	for i := 0; i < n; i++ {
		xMean += x[i]
		yMean += y[i]
	}
	xMean /= float64(n)
	yMean /= float64(n)

	var num, den float64
	for i := 0; i < n; i++ {
		dx := x[i] - xMean
		num += dx * (y[i] - yMean)
		den += dx * dx
	}

	if den == 0 {
		return 0, yMean, nil
	}
	slope = num / den
	intercept = yMean - slope*xMean
	if err := errors.CheckNumericalStability("FitSimple", []float64{slope, intercept}, 0); err != nil {
		return 0, 0, err
	}
	return slope, intercept, nil
}

// SimpleLinearRegression は説明変数1つの最小二乗モデル
type SimpleLinearRegression struct {
	model.BaseEstimator
	Slope     float64
	Intercept float64
	Feature   string
}

// NewSimpleLinearRegression は新しい単回帰モデルを作成する
func NewSimpleLinearRegression(feature string) *SimpleLinearRegression {
	return &SimpleLinearRegression{Feature: feature}
}

// Fit は n×1 の X と n×1 の y で学習する
func (s *SimpleLinearRegression) Fit(X, y mat.Matrix) error {
	_, c, err := model.CheckFitInput("SimpleLinearRegression.Fit", X, y)
	if err != nil {
		return err
	}
	if c != 1 {
		return errors.NewDimensionError("SimpleLinearRegression.Fit", 1, c, 1)
	}

	slope, intercept, err := FitSimple(mat.Col(nil, 0, X), mat.Col(nil, 0, y))
	if err != nil {
		return err
	}
	s.Slope, s.Intercept = slope, intercept
	s.SetFitted(1)
	return nil
}

// Predict は各行に m·x + c を適用する
func (s *SimpleLinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, err := model.CheckPredictInput("SimpleLinearRegression.Predict", &s.BaseEstimator, "SimpleLinearRegression", X)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, s.PredictValue(X.At(i, 0)))
	}
	return out, nil
}

// PredictValue は1点の予測値 m·x + c を返す
func (s *SimpleLinearRegression) PredictValue(x float64) float64 {
	return s.Slope*x + s.Intercept
}

// Coefficients は学習済みの傾きと切片を返す
func (s *SimpleLinearRegression) Coefficients() (model.Coefficients, error) {
	if !s.IsFitted() {
		return model.Coefficients{}, errors.NewNotFittedError("SimpleLinearRegression", "Coefficients")
	}
	c := model.Coefficients{Slopes: []float64{s.Slope}, Intercept: s.Intercept}
	if s.Feature != "" {
		c.Features = []string{s.Feature}
	}
	return c, nil
}
