package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	s := NewStandardScalerDefault()
	Z, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, s.Mean[0], 1e-12)
	assert.InDelta(t, 1.118033988749895, s.Scale[0], 1e-12)
	// constant column keeps scale 1
	assert.Equal(t, 1.0, s.Scale[1])

	col := mat.Col(nil, 0, Z)
	var sum float64
	for _, v := range col {
		sum += v
	}
	assert.InDelta(t, 0, sum, 1e-12)
	assert.InDelta(t, 0, Z.At(2, 1), 1e-12)

	back, err := s.InverseTransform(Z)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-9))

	// input untouched
	assert.Equal(t, 1.0, X.At(0, 0))
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScalerDefault()

	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	assert.Error(t, err, "transform before fit")

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	assert.Error(t, err, "dimension mismatch")
}

func TestLabelEncoderFirstSeenOrder(t *testing.T) {
	labels := []string{"semi-furnished", "furnished", "semi-furnished", "unfurnished"}

	enc := NewLabelEncoder()
	codes, err := enc.FitTransform(labels)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 0, 2}, codes)
	assert.Equal(t, []string{"semi-furnished", "furnished", "unfurnished"}, enc.Classes())

	_, err = enc.Transform([]string{"luxury"})
	assert.Error(t, err)
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"yes", 1, false},
		{" YES ", 1, false},
		{"no", 0, false},
		{"No", 0, false},
		{"maybe", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseYesNo(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
