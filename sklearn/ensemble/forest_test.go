package ensemble

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/metrics"
	"github.com/YuminosukeSato/housefit/pkg/errors"
)

var (
	_ model.Model              = (*RandomForestRegressor)(nil)
	_ model.ImportanceProvider = (*RandomForestRegressor)(nil)
)

// makeStepData は y が x0 の階段関数で、x1 はノイズのデータを作る
func makeStepData(n int, seed uint64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0 := rng.Float64() * 10
		X.Set(i, 0, x0)
		X.Set(i, 1, rng.Float64())
		v := 1e6
		if x0 > 5 {
			v = 5e6
		}
		y.Set(i, 0, v)
	}
	return X, y
}

func TestRegressionTreeFitsStepFunction(t *testing.T) {
	X, y := makeStepData(100, 1)
	cols := [][]float64{mat.Col(nil, 0, X), mat.Col(nil, 1, X)}
	indices := make([]int, 100)
	for i := range indices {
		indices[i] = i
	}

	tree := growTree(cols, mat.Col(nil, 0, y), indices, treeParams{minSamplesLeaf: 1, maxFeatures: 2}, rand.New(rand.NewPCG(1, 1)))

	require.False(t, tree.Nodes[0].IsLeaf())
	assert.Equal(t, 0, tree.Nodes[0].SplitFeature)
	assert.Equal(t, 2, tree.NumLeaves(), "one split separates the step")
	assert.Equal(t, 1e6, tree.Predict([]float64{1, 0.5}))
	assert.Equal(t, 5e6, tree.Predict([]float64{9, 0.5}))
	assert.Equal(t, 0.0, tree.importance[1])
}

func TestRegressionTreeMaxDepth(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	n := 64
	x := make([]float64, n)
	y := make([]float64, n)
	indices := make([]int, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = rng.NormFloat64()
		indices[i] = i
	}

	tree := growTree([][]float64{x}, y, indices, treeParams{maxDepth: 2, minSamplesLeaf: 1, maxFeatures: 1}, rng)
	assert.LessOrEqual(t, tree.NumLeaves(), 4)
}

func TestRegressionTreeConstantFeature(t *testing.T) {
	x := []float64{3, 3, 3, 3}
	y := []float64{1, 2, 3, 4}
	tree := growTree([][]float64{x}, y, []int{0, 1, 2, 3}, treeParams{minSamplesLeaf: 1, maxFeatures: 1}, rand.New(rand.NewPCG(3, 3)))

	require.Len(t, tree.Nodes, 1)
	assert.Equal(t, 2.5, tree.Predict([]float64{3}))
}

func TestRandomForestFitPredict(t *testing.T) {
	X, y := makeStepData(200, 4)

	rf := NewRandomForestRegressor(WithNEstimators(20), WithSeed(7))
	require.NoError(t, rf.Fit(X, y))
	assert.Len(t, rf.Trees, 20)

	pred, err := rf.Predict(X)
	require.NoError(t, err)
	r2, err := metrics.R2ScoreMatrix(y, pred)
	require.NoError(t, err)
	assert.Greater(t, r2, 0.95)

	imp, err := rf.FeatureImportances()
	require.NoError(t, err)
	require.Len(t, imp, 2)
	assert.InDelta(t, 1.0, floats.Sum(imp), 1e-12)
	assert.Greater(t, imp[0], imp[1])
	for _, v := range imp {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestRandomForestDeterministic(t *testing.T) {
	X, y := makeStepData(80, 5)
	test := mat.NewDense(3, 2, []float64{2, 0.1, 5.5, 0.9, 8, 0.4})

	predict := func(seed uint64) mat.Matrix {
		rf := NewRandomForestRegressor(WithNEstimators(10), WithSeed(seed), WithMaxFeatures(1))
		require.NoError(t, rf.Fit(X, y))
		pred, err := rf.Predict(test)
		require.NoError(t, err)
		return pred
	}

	assert.True(t, mat.Equal(predict(11), predict(11)))
}

func TestRandomForestUniformImportancesWithoutSplits(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 1, 2, 3})
	y := mat.NewDense(4, 1, []float64{5, 5, 5, 5})

	rf := NewRandomForestRegressor(WithNEstimators(3))
	require.NoError(t, rf.Fit(X, y))

	imp, err := rf.FeatureImportances()
	require.NoError(t, err)
	for _, v := range imp {
		assert.InDelta(t, 1.0/3, v, 1e-12)
	}
}

func TestRandomForestValidation(t *testing.T) {
	X, y := makeStepData(10, 6)
	var ve *errors.ValidationError

	assert.True(t, errors.As(NewRandomForestRegressor(WithNEstimators(0)).Fit(X, y), &ve))
	assert.True(t, errors.As(NewRandomForestRegressor(WithMinSamplesLeaf(0)).Fit(X, y), &ve))
	assert.True(t, errors.As(NewRandomForestRegressor(WithMaxDepth(-1)).Fit(X, y), &ve))

	rf := NewRandomForestRegressor()
	_, err := rf.FeatureImportances()
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	_, err = rf.Predict(X)
	assert.True(t, errors.As(err, &nf))
}
