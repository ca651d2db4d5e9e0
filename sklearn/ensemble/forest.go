// Package ensemble provides a bagged random forest of CART regression trees.
package ensemble

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/pkg/log"
)

// RandomForestRegressor はブートストラップ標本で育てた回帰木の平均で予測する。
// 乱数は全てSeedから導出されるので、同じSeedなら同じ森になる。
type RandomForestRegressor struct {
	model.BaseEstimator

	Trees []*RegressionTree

	nEstimators    int
	maxDepth       int
	minSamplesLeaf int
	maxFeatures    int // 0 なら全特徴量
	bootstrap      bool
	seed           uint64

	importances []float64
}

// ForestOption はRandomForestRegressorの設定オプション
type ForestOption func(*RandomForestRegressor)

// WithNEstimators は木の本数を設定する (デフォルト: 100)
func WithNEstimators(n int) ForestOption {
	return func(f *RandomForestRegressor) { f.nEstimators = n }
}

// WithMaxDepth は木の最大深さを設定する。0は無制限
func WithMaxDepth(depth int) ForestOption {
	return func(f *RandomForestRegressor) { f.maxDepth = depth }
}

// WithMinSamplesLeaf は葉の最小サンプル数を設定する (デフォルト: 1)
func WithMinSamplesLeaf(n int) ForestOption {
	return func(f *RandomForestRegressor) { f.minSamplesLeaf = n }
}

// WithMaxFeatures は各分岐で候補にする特徴量数を設定する。0は全特徴量
func WithMaxFeatures(n int) ForestOption {
	return func(f *RandomForestRegressor) { f.maxFeatures = n }
}

// WithBootstrap はブートストラップ標本を使うかどうかを設定する
func WithBootstrap(bootstrap bool) ForestOption {
	return func(f *RandomForestRegressor) { f.bootstrap = bootstrap }
}

// WithSeed は乱数シードを設定する
func WithSeed(seed uint64) ForestOption {
	return func(f *RandomForestRegressor) { f.seed = seed }
}

// NewRandomForestRegressor は新しいランダムフォレストを作成する
func NewRandomForestRegressor(opts ...ForestOption) *RandomForestRegressor {
	f := &RandomForestRegressor{
		nEstimators:    100,
		minSamplesLeaf: 1,
		bootstrap:      true,
		seed:           42,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *RandomForestRegressor) validate() error {
	if f.nEstimators <= 0 {
		return errors.NewValidationError("n_estimators", "must be positive", f.nEstimators)
	}
	if f.minSamplesLeaf <= 0 {
		return errors.NewValidationError("min_samples_leaf", "must be positive", f.minSamplesLeaf)
	}
	if f.maxDepth < 0 {
		return errors.NewValidationError("max_depth", "must be non-negative", f.maxDepth)
	}
	if f.maxFeatures < 0 {
		return errors.NewValidationError("max_features", "must be non-negative", f.maxFeatures)
	}
	return nil
}

// Fit はモデルを訓練データで学習させる
func (f *RandomForestRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "RandomForestRegressor.Fit")

	if err := f.validate(); err != nil {
		return err
	}
	n, p, err := model.CheckFitInput("RandomForestRegressor.Fit", X, y)
	if err != nil {
		return err
	}

	cols := make([][]float64, p)
	for j := range cols {
		cols[j] = mat.Col(nil, j, X)
	}
	target := mat.Col(nil, 0, y)

	params := treeParams{
		maxDepth:       f.maxDepth,
		minSamplesLeaf: f.minSamplesLeaf,
		maxFeatures:    p,
	}
	if f.maxFeatures > 0 && f.maxFeatures < p {
		params.maxFeatures = f.maxFeatures
	}

	rng := rand.New(rand.NewPCG(f.seed, f.seed))
	f.Trees = make([]*RegressionTree, f.nEstimators)
	indices := make([]int, n)
	for t := range f.Trees {
		if f.bootstrap {
			for i := range indices {
				indices[i] = rng.IntN(n)
			}
		} else {
			for i := range indices {
				indices[i] = i
			}
		}
		treeRng := rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
		f.Trees[t] = growTree(cols, target, indices, params, treeRng)
	}

	f.importances = aggregateImportances(f.Trees, p)
	f.SetFitted(p)

	log.GetLoggerWithName("ensemble").Debug("Random forest fitted",
		log.ModelNameKey, "RandomForestRegressor",
		log.NEstimatorsKey, f.nEstimators,
		log.SamplesKey, n,
		log.FeaturesKey, p,
		log.RandomSeedKey, f.seed,
	)
	return nil
}

// aggregateImportances は木ごとに正規化したGainを平均し、合計1に正規化する。
// どの木も分岐しなかった場合は一様分布を返す。
func aggregateImportances(trees []*RegressionTree, p int) []float64 {
	out := make([]float64, p)
	for _, t := range trees {
		total := floats.Sum(t.importance)
		if total <= 0 {
			continue
		}
		for j, g := range t.importance {
			out[j] += g / total
		}
	}
	total := floats.Sum(out)
	if total <= 0 {
		for j := range out {
			out[j] = 1 / float64(p)
		}
		return out
	}
	floats.Scale(1/total, out)
	return out
}

// Predict は全ての木の予測の平均を返す
func (f *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, err := model.CheckPredictInput("RandomForestRegressor.Predict", &f.BaseEstimator, "RandomForestRegressor", X)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(rows, 1, nil)
	row := make([]float64, f.NFeatures())
	for i := 0; i < rows; i++ {
		mat.Row(row, i, X)
		var sum float64
		for _, t := range f.Trees {
			sum += t.Predict(row)
		}
		out.Set(i, 0, sum/float64(len(f.Trees)))
	}
	return out, nil
}

// FeatureImportances はGainベースの特徴量重要度を返す。合計は1
func (f *RandomForestRegressor) FeatureImportances() ([]float64, error) {
	if !f.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "FeatureImportances")
	}
	return append([]float64(nil), f.importances...), nil
}
