package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// checkPair は長さが等しく空でないことを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue.IsEmpty() || yPred.IsEmpty() {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// Residuals は残差 yTrue - yPred を返す
func Residuals(yTrue, yPred *mat.VecDense) ([]float64, error) {
	n, err := checkPair("Residuals", yTrue, yPred)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return out, nil
}

// SSR は残差平方和 Σ(yTrue - yPred)² を計算する
func SSR(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := Residuals(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, r := range res {
		sum += r * r
	}
	return sum, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	ssr, err := SSR(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return ssr / float64(yTrue.Len()), nil
}

// RMSE は平方根平均二乗誤差 sqrt(SSR/n) を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := Residuals(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, r := range res {
		sum += math.Abs(r)
	}
	return sum / float64(len(res)), nil
}

// MeanResidual は符号付き残差の平均を返す。予測の偏りの診断に使う
func MeanResidual(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := Residuals(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return stat.Mean(res, nil), nil
}

// R2Score は決定係数 1 - SSR/SST を計算する。
//
// 全変動SSTが0（yTrueが定数）の場合は1.0と定義する。このとき残差が
// 残っていればUndefinedMetricWarningを出す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var sst, ssr float64
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		sst += (yt - yMean) * (yt - yMean)
		d := yt - yPred.AtVec(i)
		ssr += d * d
	}

	if sst == 0 {
		if ssr != 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("r2", "zero variance in y_true", 1.0))
		}
		return 1.0, nil
	}
	return 1 - ssr/sst, nil
}

// R2ScoreMatrix は n×1 行列形式の入力に対してR²を計算する
func R2ScoreMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, err := columnVector("R2ScoreMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	p, err := columnVector("R2ScoreMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return R2Score(t, p)
}

func columnVector(op string, m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	if c != 1 {
		return nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	return mat.NewVecDense(r, mat.Col(nil, 0, m)), nil
}

// Report はまとめて計算した回帰指標
type Report struct {
	R2           float64
	RMSE         float64
	MAE          float64
	MeanResidual float64
}

// Evaluate はR²、RMSE、MAE、平均残差をまとめて計算する
func Evaluate(yTrue, yPred *mat.VecDense) (Report, error) {
	var r Report
	var err error
	if r.R2, err = R2Score(yTrue, yPred); err != nil {
		return Report{}, err
	}
	if r.RMSE, err = RMSE(yTrue, yPred); err != nil {
		return Report{}, err
	}
	if r.MAE, err = MAE(yTrue, yPred); err != nil {
		return Report{}, err
	}
	if r.MeanResidual, err = MeanResidual(yTrue, yPred); err != nil {
		return Report{}, err
	}
	return r, nil
}
