package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createBenchmarkData はベンチマーク用のデータを生成する
func createBenchmarkData(rows, cols int) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	y := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		sum := 2_000_000.0
		for j := 0; j < cols; j++ {
			v := 3000 + rng.Float64()*12000
			X.Set(i, j, v)
			sum += v * float64(1000/(j+1))
		}
		y.Set(i, 0, sum+rng.NormFloat64()*1e6)
	}
	return X, y
}

func BenchmarkFitSimple(b *testing.B) {
	X, y := createBenchmarkData(10000, 1)
	x := mat.Col(nil, 0, X)
	yy := mat.Col(nil, 0, y)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := FitSimple(x, yy); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLinearRegressionFit はFitメソッドのベンチマークを実行する
func BenchmarkLinearRegressionFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Housing_545x12", 545, 12},
		{"Housing_545x17", 545, 17},
		{"Medium_5000x17", 5000, 17},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lr := NewLinearRegression()
				if err := lr.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
