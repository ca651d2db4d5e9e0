// Package linear_model provides penalised linear regressors (ridge and
// lasso). Both centre the data so the intercept is never penalised; inputs
// are expected to be standardised by the caller, typically through
// pipeline.Pipeline.
package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/linear"
	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// Ridge はL2正則化付き線形回帰。
//
//	(XcᵀXc + αI) w = Xcᵀyc,  b = ȳ - x̄·w
//
// をCholesky分解で解く。
type Ridge struct {
	model.BaseEstimator
	Alpha     float64
	Weights   *mat.VecDense
	Intercept float64
}

// NewRidge は新しいRidgeモデルを作成する
func NewRidge(alpha float64) *Ridge {
	return &Ridge{Alpha: alpha}
}

// Fit はモデルを訓練データで学習させる
func (r *Ridge) Fit(X, y mat.Matrix) error {
	if err := checkAlpha(r.Alpha); err != nil {
		return err
	}
	_, p, err := model.CheckFitInput("Ridge.Fit", X, y)
	if err != nil {
		return err
	}

	xc, yc, xMean, yMean := linear.CenterData(X, y)

	var gram mat.SymDense
	gram.SymOuterK(1, xc.T())
	for j := 0; j < p; j++ {
		gram.SetSym(j, j, gram.At(j, j)+r.Alpha)
	}

	var xty mat.VecDense
	xty.MulVec(xc.T(), yc)

	var chol mat.Cholesky
	if ok := chol.Factorize(&gram); !ok {
		return errors.NewModelError("Ridge.Fit", "cholesky factorization failed", errors.ErrSingularMatrix)
	}
	w := mat.NewVecDense(p, nil)
	if err := chol.SolveVecTo(w, &xty); err != nil {
		return errors.NewModelError("Ridge.Fit", "cholesky solve failed", err)
	}
	if err := errors.CheckNumericalStability("Ridge.Fit", w.RawVector().Data, 0); err != nil {
		return err
	}

	r.Weights = w
	r.Intercept = yMean - mat.Dot(mat.NewVecDense(p, xMean), w)
	r.SetFitted(p)
	return nil
}

// Predict は入力データに対する予測を行う
func (r *Ridge) Predict(X mat.Matrix) (mat.Matrix, error) {
	if _, err := model.CheckPredictInput("Ridge.Predict", &r.BaseEstimator, "Ridge", X); err != nil {
		return nil, err
	}
	return linear.PredictLinear(X, r.Weights, r.Intercept), nil
}

// Coefficients は学習された重みと切片を返す
func (r *Ridge) Coefficients() (model.Coefficients, error) {
	if !r.IsFitted() {
		return model.Coefficients{}, errors.NewNotFittedError("Ridge", "Coefficients")
	}
	return model.Coefficients{Slopes: mat.Col(nil, 0, r.Weights), Intercept: r.Intercept}, nil
}

func checkAlpha(alpha float64) error {
	if !(alpha > 0) {
		return errors.NewValidationError("alpha", "must be positive", alpha)
	}
	return nil
}
