package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/pkg/log"
)

// LinearRegression は最小二乗法による重回帰モデル。
// 中心化したデータをQR分解で解き、ランク落ちの場合はSVDによる
// 最小ノルム解に切り替える。
type LinearRegression struct {
	model.BaseEstimator
	Weights   *mat.VecDense // 重み（係数）
	Intercept float64       // 切片
	Rank      int           // 中心化した X のランク

	fitIntercept bool
	rcond        float64
	features     []string
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept: true,
		rcond:        1e-12,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	n, p, err := model.CheckFitInput("LinearRegression.Fit", X, y)
	if err != nil {
		return err
	}

	var xc *mat.Dense
	var yc *mat.VecDense
	var xMean []float64
	var yMean float64
	if lr.fitIntercept {
		xc, yc, xMean, yMean = CenterData(X, y)
	} else {
		xc = mat.DenseCopyOf(X)
		yc = mat.NewVecDense(n, mat.Col(nil, 0, y))
		xMean = make([]float64, p)
	}

	w, rank, err := lr.solve(xc, yc, n, p)
	if err != nil {
		return err
	}

	lr.Weights = w
	lr.Rank = rank
	lr.Intercept = yMean - mat.Dot(mat.NewVecDense(p, xMean), w)
	if err := errors.CheckNumericalStability("LinearRegression.Fit", w.RawVector().Data, 0); err != nil {
		return err
	}
	lr.SetFitted(p)
	return nil
}

func (lr *LinearRegression) solve(xc *mat.Dense, yc *mat.VecDense, n, p int) (*mat.VecDense, int, error) {
	if n >= p {
		var qr mat.QR
		qr.Factorize(xc)
		if lr.fullRank(&qr, p) {
			w := mat.NewVecDense(p, nil)
			err := qr.SolveVecTo(w, false, yc)
			if err == nil {
				return w, p, nil
			}
			var cond mat.Condition
			if !errors.As(err, &cond) {
				return nil, 0, errors.NewModelError("LinearRegression.Fit", "QR solve failed", err)
			}
		}
	}

	// ランク落ち: SVDで最小ノルム解を求める
	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return nil, 0, errors.NewModelError("LinearRegression.Fit", "SVD factorization failed", errors.ErrSingularMatrix)
	}
	rank := svd.Rank(lr.rcond)
	if rank == 0 {
		return mat.NewVecDense(p, nil), 0, nil
	}
	var dst mat.Dense
	svd.SolveTo(&dst, yc, rank)
	log.GetLoggerWithName("linear").Debug("Rank-deficient design, using minimum-norm solution",
		log.ModelNameKey, "LinearRegression",
		log.FeaturesKey, p,
		"rank", rank,
	)
	return mat.NewVecDense(p, mat.Col(nil, 0, &dst)), rank, nil
}

// fullRank は R の対角成分が最大値に対して rcond より大きいか確認する
func (lr *LinearRegression) fullRank(qr *mat.QR, p int) bool {
	var r mat.Dense
	qr.RTo(&r)
	var maxDiag float64
	for i := 0; i < p; i++ {
		maxDiag = math.Max(maxDiag, math.Abs(r.At(i, i)))
	}
	if maxDiag == 0 {
		return false
	}
	for i := 0; i < p; i++ {
		if math.Abs(r.At(i, i)) <= lr.rcond*maxDiag {
			return false
		}
	}
	return true
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if _, err := model.CheckPredictInput("LinearRegression.Predict", &lr.BaseEstimator, "LinearRegression", X); err != nil {
		return nil, err
	}
	return PredictLinear(X, lr.Weights, lr.Intercept), nil
}

// Coefficients は学習された重みと切片を返す
func (lr *LinearRegression) Coefficients() (model.Coefficients, error) {
	if !lr.IsFitted() {
		return model.Coefficients{}, errors.NewNotFittedError("LinearRegression", "Coefficients")
	}
	return model.Coefficients{
		Features:  append([]string(nil), lr.features...),
		Slopes:    mat.Col(nil, 0, lr.Weights),
		Intercept: lr.Intercept,
	}, nil
}

// PredictLinear は X·w + b を n×1 行列で返す
func PredictLinear(X mat.Matrix, w *mat.VecDense, b float64) *mat.Dense {
	r, _ := X.Dims()
	var xw mat.VecDense
	xw.MulVec(X, w)
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, xw.AtVec(i)+b)
	}
	return out
}

// CenterData は X の各列と y から平均を引いたコピーと、その平均を返す
func CenterData(X, y mat.Matrix) (*mat.Dense, *mat.VecDense, []float64, float64) {
	n, p := X.Dims()
	xc := mat.DenseCopyOf(X)
	xMean := make([]float64, p)
	for j := 0; j < p; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += xc.At(i, j)
		}
		xMean[j] = sum / float64(n)
		for i := 0; i < n; i++ {
			xc.Set(i, j, xc.At(i, j)-xMean[j])
		}
	}

	yc := mat.NewVecDense(n, mat.Col(nil, 0, y))
	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yc.AtVec(i)
	}
	yMean /= float64(n)
	for i := 0; i < n; i++ {
		yc.SetVec(i, yc.AtVec(i)-yMean)
	}
	return xc, yc, xMean, yMean
}
