package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/housefit/dataset"
	"github.com/YuminosukeSato/housefit/features"
	"github.com/YuminosukeSato/housefit/pkg/errors"
)

func TestVerdict(t *testing.T) {
	tests := []struct {
		r2   float64
		want Reliability
	}{
		{0.95, Reliable},
		{0.7000001, Reliable},
		{0.7, ModeratelyReliable},
		{0.51, ModeratelyReliable},
		{0.5, LessReliable},
		{-1, LessReliable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Verdict(tt.r2), "r2=%v", tt.r2)
	}
}

func TestRunSimpleExactLine(t *testing.T) {
	d, err := dataset.New([]string{"area"}, [][]float64{{1000, 2000, 3000}}, []float64{1000, 2000, 3000})
	require.NoError(t, err)

	res, err := RunSimple(d, DefaultSimpleConfig())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Coefficients.Slopes[0], 1e-12)
	assert.InDelta(t, 0.0, res.Coefficients.Intercept, 1e-9)
	assert.InDelta(t, 1.0, res.Metrics.R2, 1e-12)
	assert.InDelta(t, 0.0, res.Metrics.RMSE, 1e-9)
	assert.InDelta(t, 1.0, res.Correlation, 1e-12)
	assert.Equal(t, Reliable, res.Verdict)
	assert.InDelta(t, 1500, res.Prediction, 1e-9)
	assert.InDelta(t, 1.0, res.PricePerUnit, 1e-12)
	assert.Len(t, res.Rows, 3)
	assert.Equal(t, 2000.0, res.Feature.Mean)
	assert.Equal(t, 3000.0, res.Target.Max)
}

func TestRunSimpleConstantTarget(t *testing.T) {
	d, err := dataset.New([]string{"area"}, [][]float64{{1, 2, 3}}, []float64{5, 5, 5})
	require.NoError(t, err)

	res, err := RunSimple(d, SimpleConfig{Feature: "area", PredictAt: 10, SampleRows: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Coefficients.Slopes[0])
	assert.InDelta(t, 5.0, res.Coefficients.Intercept, 1e-12)
	assert.Equal(t, 1.0, res.Metrics.R2)
	assert.Equal(t, 0.0, res.Correlation)
	assert.InDelta(t, 5.0, res.Prediction, 1e-12)
}

func TestRunSimpleSynthetic(t *testing.T) {
	d, err := dataset.SimpleSynthetic(dataset.NewRand(dataset.DefaultSeed), 100)
	require.NoError(t, err)

	res, err := RunSimple(d, DefaultSimpleConfig())
	require.NoError(t, err)
	assert.Len(t, res.Rows, 10)
	assert.InDelta(t, dataset.TrueSlope, res.Coefficients.Slopes[0], 300)
	for _, row := range res.Rows {
		assert.InDelta(t, row.Actual-row.Predicted, row.Residual, 1e-6)
	}
}

func TestRunSimpleMissingFeature(t *testing.T) {
	d, err := dataset.New([]string{"bedrooms"}, [][]float64{{1, 2}}, []float64{1, 2})
	require.NoError(t, err)
	_, err = RunSimple(d, DefaultSimpleConfig())
	assert.Error(t, err)
}

func TestRankStable(t *testing.T) {
	in := []ModelResult{
		{Name: "a", MeanR2: 0.5},
		{Name: "b", MeanR2: 0.7},
		{Name: "c", MeanR2: 0.5},
		{Name: "d", MeanR2: 0.9},
	}
	got := Rank(in)

	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, names)
	assert.Equal(t, "a", in[0].Name, "input is not reordered")
}

func TestComputeImprovement(t *testing.T) {
	imp := ComputeImprovement(0.65, 0.25)
	assert.InDelta(t, 0.40, imp.Absolute, 1e-12)
	assert.True(t, imp.PercentDefined)
	assert.InDelta(t, 160, imp.Percent, 1e-9)

	neg := ComputeImprovement(0.1, -0.2)
	assert.InDelta(t, 150, neg.Percent, 1e-9)

	zero := ComputeImprovement(0.5, 0)
	assert.False(t, zero.PercentDefined)
	assert.Equal(t, 0.5, zero.Absolute)
}

func smallCompareConfig() CompareConfig {
	cfg := DefaultCompareConfig()
	cfg.NEstimators = 5
	return cfg
}

func TestCompareSynthetic(t *testing.T) {
	d, err := dataset.HousingSynthetic(dataset.NewRand(dataset.DefaultSeed), 120)
	require.NoError(t, err)

	res, err := Compare(d, smallCompareConfig())
	require.NoError(t, err)

	require.Len(t, res.Results, 6)
	for i := 1; i < len(res.Results); i++ {
		assert.GreaterOrEqual(t, res.Results[i-1].MeanR2, res.Results[i].MeanR2)
	}
	for _, r := range res.Results {
		assert.Len(t, r.Scores, 5, r.Name)
		switch r.Name {
		case ModelRidge, ModelLasso:
			require.NotNil(t, r.Param, r.Name)
			assert.Contains(t, []float64{0.1, 1, 10, 100}, r.Param.Value)
			assert.Equal(t, len(res.EnhancedFeatures), r.Features)
		case ModelSimple:
			assert.Equal(t, 1, r.Features)
		case ModelMultiple:
			assert.Equal(t, d.NumFeatures(), r.Features)
		}
	}

	require.NotNil(t, res.Baseline)
	assert.Equal(t, ModelSimple, res.Baseline.Name)
	require.NotNil(t, res.Improvement)
	assert.InDelta(t, res.Best().MeanR2-res.Baseline.MeanR2, res.Improvement.Absolute, 1e-12)
	assert.GreaterOrEqual(t, res.Improvement.Absolute, 0.0)

	assert.Contains(t, res.Created, features.TotalAmenities)
	assert.Len(t, res.Importances, 10)
	for i := 1; i < len(res.Importances); i++ {
		assert.GreaterOrEqual(t, res.Importances[i-1].Score, res.Importances[i].Score)
	}
}

func TestCompareDeterministic(t *testing.T) {
	d, err := dataset.HousingSynthetic(dataset.NewRand(7), 60)
	require.NoError(t, err)

	a, err := Compare(d, smallCompareConfig())
	require.NoError(t, err)
	b, err := Compare(d, smallCompareConfig())
	require.NoError(t, err)

	if diff := cmp.Diff(a.Results, b.Results); diff != "" {
		t.Errorf("results differ between identical runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, a.Importances, b.Importances)
}

func TestCompareErrors(t *testing.T) {
	d, err := dataset.HousingSynthetic(dataset.NewRand(1), 3)
	require.NoError(t, err)
	_, err = Compare(d, smallCompareConfig())
	var insufficient *errors.InsufficientDataError
	assert.True(t, errors.As(err, &insufficient))

	d, err = dataset.HousingSynthetic(dataset.NewRand(1), 30)
	require.NoError(t, err)
	cfg := smallCompareConfig()
	cfg.Alphas = []float64{1, -1}
	_, err = Compare(d, cfg)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))

	cfg = smallCompareConfig()
	cfg.Alphas = nil
	_, err = Compare(d, cfg)
	assert.True(t, errors.As(err, &ve))
}

func TestForestImportancesSumToOne(t *testing.T) {
	d, err := dataset.HousingSynthetic(dataset.NewRand(3), 80)
	require.NoError(t, err)

	cfg := smallCompareConfig()
	cfg.TopN = 0
	imps, holdout, err := ForestImportances(d, cfg)
	require.NoError(t, err)
	require.Len(t, imps, d.NumFeatures())

	scores := make([]float64, len(imps))
	for i, fi := range imps {
		scores[i] = fi.Score
		assert.GreaterOrEqual(t, fi.Score, 0.0)
	}
	assert.InDelta(t, 1.0, floats.Sum(scores), 1e-9)
	assert.LessOrEqual(t, holdout, 1.0)
}
