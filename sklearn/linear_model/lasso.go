package linear_model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/linear"
	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// Lasso はL1正則化付き線形回帰。目的関数
//
//	(1/2n)‖yc - Xc·w‖² + α‖w‖₁
//
// を巡回座標降下法で最小化する。最大反復回数に達しても収束しない場合は
// ConvergenceWarningを出し、その時点の係数を使う。
type Lasso struct {
	model.BaseEstimator
	Alpha     float64
	Weights   *mat.VecDense
	Intercept float64

	maxIter int
	tol     float64

	// NIter は実際に回した反復回数
	NIter int
	// Converged は許容誤差内で収束したかどうか
	Converged bool
}

// LassoOption はLassoの設定オプション
type LassoOption func(*Lasso)

// WithMaxIter は最大反復回数を設定する (デフォルト: 2000)
func WithMaxIter(maxIter int) LassoOption {
	return func(l *Lasso) {
		if maxIter > 0 {
			l.maxIter = maxIter
		}
	}
}

// WithTol は収束判定の許容誤差を設定する (デフォルト: 1e-4)
func WithTol(tol float64) LassoOption {
	return func(l *Lasso) {
		if tol > 0 {
			l.tol = tol
		}
	}
}

// NewLasso は新しいLassoモデルを作成する
func NewLasso(alpha float64, opts ...LassoOption) *Lasso {
	l := &Lasso{
		Alpha:   alpha,
		maxIter: 2000,
		tol:     1e-4,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fit はモデルを訓練データで学習させる
func (l *Lasso) Fit(X, y mat.Matrix) error {
	if err := checkAlpha(l.Alpha); err != nil {
		return err
	}
	n, p, err := model.CheckFitInput("Lasso.Fit", X, y)
	if err != nil {
		return err
	}

	xc, yc, xMean, yMean := linear.CenterData(X, y)

	cols := make([][]float64, p)
	normSq := make([]float64, p)
	for j := 0; j < p; j++ {
		cols[j] = mat.Col(nil, j, xc)
		for _, v := range cols[j] {
			normSq[j] += v * v
		}
	}

	w := make([]float64, p)
	resid := mat.Col(nil, 0, yc)
	gamma := float64(n) * l.Alpha

	l.Converged = false
	l.NIter = 0
	for iter := 0; iter < l.maxIter; iter++ {
		l.NIter = iter + 1
		var maxDelta, maxW float64
		for j := 0; j < p; j++ {
			if normSq[j] == 0 {
				continue
			}
			old := w[j]
			rho := normSq[j] * old
			for i, v := range cols[j] {
				rho += v * resid[i]
			}
			w[j] = errors.SoftThreshold(rho, gamma) / normSq[j]

			if d := w[j] - old; d != 0 {
				for i, v := range cols[j] {
					resid[i] -= v * d
				}
				maxDelta = math.Max(maxDelta, math.Abs(d))
			}
			maxW = math.Max(maxW, math.Abs(w[j]))
		}
		if err := errors.CheckNumericalStability("Lasso.Fit", w, iter); err != nil {
			return err
		}
		if maxW == 0 || maxDelta <= l.tol*maxW {
			l.Converged = true
			break
		}
	}

	if !l.Converged {
		errors.Warn(errors.NewConvergenceWarning("Lasso", l.NIter, "Objective did not converge. Consider increasing max_iter or alpha."))
	}

	l.Weights = mat.NewVecDense(p, w)
	l.Intercept = yMean - mat.Dot(mat.NewVecDense(p, xMean), l.Weights)
	l.SetFitted(p)
	return nil
}

// Predict は入力データに対する予測を行う
func (l *Lasso) Predict(X mat.Matrix) (mat.Matrix, error) {
	if _, err := model.CheckPredictInput("Lasso.Predict", &l.BaseEstimator, "Lasso", X); err != nil {
		return nil, err
	}
	return linear.PredictLinear(X, l.Weights, l.Intercept), nil
}

// Coefficients は学習された重みと切片を返す
func (l *Lasso) Coefficients() (model.Coefficients, error) {
	if !l.IsFitted() {
		return model.Coefficients{}, errors.NewNotFittedError("Lasso", "Coefficients")
	}
	return model.Coefficients{Slopes: mat.Col(nil, 0, l.Weights), Intercept: l.Intercept}, nil
}
