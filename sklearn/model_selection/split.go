// Package model_selection provides cross-validation splitters, scoring and a
// small generic grid search.
package model_selection

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// CVFold は1つのfoldの訓練・検証インデックス
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold はk分割交差検証の分割器
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewKFold は新しいKFoldを作成する
func NewKFold(nSplits int, shuffle bool, seed uint64) KFold {
	return KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// Split は n サンプルを NSplits 個の互いに素な検証集合に分ける。
// 各検証集合のサイズの差は高々1。同じSeedなら同じ分割になる。
func (kf KFold) Split(n int) ([]CVFold, error) {
	if kf.NSplits < 2 {
		return nil, errors.NewValidationError("n_splits", "must be at least 2", kf.NSplits)
	}
	if n < kf.NSplits {
		return nil, errors.NewInsufficientDataError("KFold.Split", n, kf.NSplits)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(kf.Seed, kf.Seed))
		r.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]CVFold, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	start := 0
	for i := range folds {
		testSize := foldSize
		if i < remainder {
			testSize++
		}
		end := start + testSize

		test := make([]int, testSize)
		copy(test, indices[start:end])
		train := make([]int, 0, n-testSize)
		train = append(train, indices[:start]...)
		train = append(train, indices[end:]...)

		folds[i] = CVFold{TrainIndices: train, TestIndices: test}
		start = end
	}
	return folds, nil
}

// TrainTestSplit は n サンプルをシャッフルして訓練と検証のインデックスに分ける。
// 検証側のサイズは ceil(n*testSize)。
func TrainTestSplit(n int, testSize float64, seed uint64) (train, test []int, err error) {
	if !(testSize > 0 && testSize < 1) {
		return nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}
	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest < 1 || n-nTest < 1 {
		return nil, nil, errors.NewInsufficientDataError("TrainTestSplit", n, 2)
	}

	r := rand.New(rand.NewPCG(seed, seed))
	perm := r.Perm(n)
	return perm[nTest:], perm[:nTest], nil
}

// TakeRows は X から指定した行を取り出した新しい行列を返す
func TakeRows(X mat.Matrix, indices []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(indices), c, nil)
	row := make([]float64, c)
	for i, idx := range indices {
		mat.Row(row, idx, X)
		out.SetRow(i, row)
	}
	return out
}
