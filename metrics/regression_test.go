package metrics

import (
	"math"
	"math/rand/v2"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

func vec(vals ...float64) *mat.VecDense {
	return mat.NewVecDense(len(vals), vals)
}

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     vec(1, 2, 3, 4, 5),
			yPred:     vec(1, 2, 3, 4, 5),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     vec(1, 2, 3, 4),
			yPred:     vec(1.5, 2.5, 2.5, 3.5),
			want:      0.25,
			tolerance: 1e-10,
		},
		{
			name:      "larger errors",
			yTrue:     vec(10, 20, 30),
			yPred:     vec(12, 18, 33),
			want:      17.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   vec(1, 2, 3),
			yPred:   vec(1, 2),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestRMSEAndMAE(t *testing.T) {
	yTrue := vec(10, 20, 30)
	yPred := vec(12, 18, 33)

	rmse, err := RMSE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(17.0/3.0), rmse, 1e-12)

	mae, err := MAE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 7.0/3.0, mae, 1e-12)

	mr, err := MeanResidual(yTrue, yPred)
	require.NoError(t, err)
	// residuals: -2, 2, -3
	assert.InDelta(t, -1.0, mr, 1e-12)
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name  string
		yTrue *mat.VecDense
		yPred *mat.VecDense
		want  float64
	}{
		{"perfect", vec(1000, 2000, 3000), vec(1000, 2000, 3000), 1.0},
		{"mean predictor", vec(1, 2, 3), vec(2, 2, 2), 0.0},
		{"worse than mean", vec(1, 2, 3), vec(3, 2, 1), -3.0},
		{"constant target perfect", vec(5, 5, 5), vec(5, 5, 5), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestR2ScoreConstantTargetWarns(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(error) {})

	got, err := R2Score(vec(5, 5, 5), vec(4, 5, 6))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	require.Len(t, warnings, 1)
	var undefined *errors.UndefinedMetricWarning
	assert.True(t, errors.As(warnings[0], &undefined))
}

func TestR2MatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.IntN(40)
		yt := make([]float64, n)
		yp := make([]float64, n)
		for i := range yt {
			yt[i] = rng.NormFloat64() * 1e6
			yp[i] = yt[i] + rng.NormFloat64()*5e5
		}

		got, err := R2Score(vec(yt...), vec(yp...))
		require.NoError(t, err)

		var mean, sst, ssr float64
		for _, v := range yt {
			mean += v
		}
		mean /= float64(n)
		for i := range yt {
			sst += (yt[i] - mean) * (yt[i] - mean)
			ssr += (yt[i] - yp[i]) * (yt[i] - yp[i])
		}
		want := 1 - ssr/sst
		assert.InEpsilon(t, want, got, 1e-9)
	}
}

func TestR2ScoreMatrix(t *testing.T) {
	got, err := R2ScoreMatrix(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewDense(3, 1, []float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = R2ScoreMatrix(mat.NewDense(2, 2, nil), mat.NewDense(2, 1, nil))
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	r, err := Evaluate(vec(10, 20, 30), vec(12, 18, 33))
	require.NoError(t, err)
	assert.InDelta(t, 1-17.0/200.0, r.R2, 1e-12)
	assert.InDelta(t, 7.0/3.0, r.MAE, 1e-12)
	assert.InDelta(t, -1.0, r.MeanResidual, 1e-12)

	_, err = Evaluate(vec(1), vec(1, 2))
	assert.Error(t, err)
}

func TestPearsonCorrelation(t *testing.T) {
	r, err := PearsonCorrelation([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)

	r, err = PearsonCorrelation([]float64{1, 2, 3}, []float64{3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, 1e-12)

	// zero variance in either input
	r, err = PearsonCorrelation([]float64{4, 4, 4}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)
	r, err = PearsonCorrelation([]float64{1, 2, 3}, []float64{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)

	_, err = PearsonCorrelation([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
	_, err = PearsonCorrelation(nil, nil)
	assert.Error(t, err)
}

func TestPearsonSymmetricAndBounded(t *testing.T) {
	property := func(pairs [][2]float64) bool {
		if len(pairs) < 2 {
			return true
		}
		x := make([]float64, len(pairs))
		y := make([]float64, len(pairs))
		for i, p := range pairs {
			// keep magnitudes finite under squaring
			x[i] = math.Mod(p[0], 1e6)
			y[i] = math.Mod(p[1], 1e6)
		}
		rxy, err1 := PearsonCorrelation(x, y)
		ryx, err2 := PearsonCorrelation(y, x)
		if err1 != nil || err2 != nil {
			return false
		}
		return rxy == ryx && rxy >= -1 && rxy <= 1
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 500}))
}
