package linear_model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/linear"
	"github.com/YuminosukeSato/housefit/pkg/errors"
)

var (
	_ model.LinearModel = (*Ridge)(nil)
	_ model.LinearModel = (*Lasso)(nil)
)

// makeRegression は y = 3*x0 - 2*x1 + 0*x2 + 5 + noise の標準化済みデータを作る
func makeRegression(n int, noise float64, seed uint64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(n, 3, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0, x1, x2 := rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
		X.SetRow(i, []float64{x0, x1, x2})
		y.Set(i, 0, 3*x0-2*x1+5+rng.NormFloat64()*noise)
	}
	return X, y
}

func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var got []error
	errors.SetWarningHandler(func(w error) { got = append(got, w) })
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return &got
}

func TestRidgeMatchesOLSAtSmallAlpha(t *testing.T) {
	X, y := makeRegression(200, 0.1, 1)

	ols := linear.NewLinearRegression()
	require.NoError(t, ols.Fit(X, y))

	ridge := NewRidge(1e-8)
	require.NoError(t, ridge.Fit(X, y))

	for j := 0; j < 3; j++ {
		assert.InDelta(t, ols.Weights.AtVec(j), ridge.Weights.AtVec(j), 1e-6)
	}
	assert.InDelta(t, ols.Intercept, ridge.Intercept, 1e-6)
}

func TestRidgeShrinksWithAlpha(t *testing.T) {
	X, y := makeRegression(100, 0.5, 2)

	norm := func(alpha float64) float64 {
		r := NewRidge(alpha)
		require.NoError(t, r.Fit(X, y))
		return mat.Norm(r.Weights, 2)
	}

	small, medium, large := norm(0.1), norm(10), norm(1000)
	assert.Greater(t, small, medium)
	assert.Greater(t, medium, large)
}

func TestRidgeInterceptNotPenalised(t *testing.T) {
	// 特徴量と無関係な定数ターゲットは強い正則化でも平均を切片に残す
	X, _ := makeRegression(50, 0, 3)
	y := mat.NewDense(50, 1, nil)
	for i := 0; i < 50; i++ {
		y.Set(i, 0, 1e6)
	}

	r := NewRidge(1e6)
	require.NoError(t, r.Fit(X, y))
	assert.InDelta(t, 1e6, r.Intercept, 1e-6)

	pred, err := r.Predict(X)
	require.NoError(t, err)
	assert.InDelta(t, 1e6, pred.At(7, 0), 1e-6)
}

func TestRidgeCollinearColumns(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{1, 2, 2, 4, 3, 6, 4, 8, 5, 10})
	y := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})

	r := NewRidge(1.0)
	require.NoError(t, r.Fit(X, y))
	for j := 0; j < 2; j++ {
		assert.False(t, math.IsNaN(r.Weights.AtVec(j)))
	}
}

func TestLassoRecoversSparseWeights(t *testing.T) {
	X, y := makeRegression(300, 0.1, 4)
	warnings := captureWarnings(t)

	l := NewLasso(0.01)
	require.NoError(t, l.Fit(X, y))
	assert.True(t, l.Converged)
	assert.Empty(t, *warnings)

	coef, err := l.Coefficients()
	require.NoError(t, err)
	assert.InDelta(t, 3, coef.Slopes[0], 0.1)
	assert.InDelta(t, -2, coef.Slopes[1], 0.1)
	assert.InDelta(t, 0, coef.Slopes[2], 0.05)
	assert.InDelta(t, 5, coef.Intercept, 0.1)
}

func TestLassoLargeAlphaZeroesWeights(t *testing.T) {
	X, y := makeRegression(100, 0.1, 5)

	l := NewLasso(1e3)
	require.NoError(t, l.Fit(X, y))
	assert.True(t, l.Converged)
	for j := 0; j < 3; j++ {
		assert.Equal(t, 0.0, l.Weights.AtVec(j))
	}

	var mean float64
	for i := 0; i < 100; i++ {
		mean += y.At(i, 0)
	}
	assert.InDelta(t, mean/100, l.Intercept, 1e-9)
}

func TestLassoConvergenceWarning(t *testing.T) {
	X, y := makeRegression(100, 0.1, 6)
	warnings := captureWarnings(t)

	l := NewLasso(1e-4, WithMaxIter(1), WithTol(1e-12))
	require.NoError(t, l.Fit(X, y))
	assert.False(t, l.Converged)
	assert.Equal(t, 1, l.NIter)

	require.Len(t, *warnings, 1)
	var cw *errors.ConvergenceWarning
	require.True(t, errors.As((*warnings)[0], &cw))
	assert.Equal(t, "Lasso", cw.Algorithm)

	// 収束しなくても係数は使える
	_, err := l.Predict(X)
	assert.NoError(t, err)
}

func TestPenalisedModelsRejectBadAlpha(t *testing.T) {
	X, y := makeRegression(10, 0, 7)

	for _, alpha := range []float64{0, -1, math.NaN()} {
		var ve *errors.ValidationError
		assert.True(t, errors.As(NewRidge(alpha).Fit(X, y), &ve), "ridge alpha=%v", alpha)
		assert.True(t, errors.As(NewLasso(alpha).Fit(X, y), &ve), "lasso alpha=%v", alpha)
	}
}

func TestPenalisedModelsNotFitted(t *testing.T) {
	var nf *errors.NotFittedError

	_, err := NewRidge(1).Predict(mat.NewDense(1, 3, nil))
	assert.True(t, errors.As(err, &nf))
	_, err = NewLasso(1).Coefficients()
	assert.True(t, errors.As(err, &nf))

	X, y := makeRegression(20, 0, 8)
	r := NewRidge(1)
	require.NoError(t, r.Fit(X, y))
	_, err = r.Predict(mat.NewDense(1, 2, nil))
	var dim *errors.DimensionError
	assert.True(t, errors.As(err, &dim))
}
