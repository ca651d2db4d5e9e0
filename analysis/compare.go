package analysis

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/dataset"
	"github.com/YuminosukeSato/housefit/features"
	"github.com/YuminosukeSato/housefit/linear"
	"github.com/YuminosukeSato/housefit/metrics"
	"github.com/YuminosukeSato/housefit/pipeline"
	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/pkg/log"
	"github.com/YuminosukeSato/housefit/sklearn/ensemble"
	"github.com/YuminosukeSato/housefit/sklearn/linear_model"
	"github.com/YuminosukeSato/housefit/sklearn/model_selection"
)

// Model configuration names, in evaluation order.
const (
	ModelSimple       = "Simple (Area only)"
	ModelMultiple     = "Multiple Features"
	ModelEnhanced     = "Enhanced Features"
	ModelRidge        = "Ridge Regression"
	ModelLasso        = "Lasso Regression"
	ModelRandomForest = "Random Forest"
)

// CompareConfig は比較分析の設定
type CompareConfig struct {
	Folds        int
	Seed         uint64
	Alphas       []float64
	LassoMaxIter int
	NEstimators  int
	TestSize     float64
	TopN         int
}

// DefaultCompareConfig returns 5 folds, seed 42 and alphas {0.1, 1, 10, 100}.
func DefaultCompareConfig() CompareConfig {
	return CompareConfig{
		Folds:        5,
		Seed:         42,
		Alphas:       []float64{0.1, 1.0, 10.0, 100.0},
		LassoMaxIter: 2000,
		NEstimators:  100,
		TestSize:     0.2,
		TopN:         10,
	}
}

// Hyperparameter は選ばれたハイパーパラメータ
type Hyperparameter struct {
	Name  string
	Value float64
}

// ModelResult は1つのモデル構成の交差検証結果
type ModelResult struct {
	Name     string
	MeanR2   float64
	StdR2    float64
	Features int
	Param    *Hyperparameter
	Scores   []float64
}

// Improvement は最良モデルのベースラインに対する改善量
type Improvement struct {
	Baseline float64
	Best     float64
	Absolute float64
	// Percent は |Baseline| に対する割合。Baselineが0なら未定義
	Percent        float64
	PercentDefined bool
}

// FeatureImportance は特徴量の重要度
type FeatureImportance struct {
	Name  string
	Score float64
}

// Comparison は比較分析の結果
type Comparison struct {
	Source      string
	Samples     int
	Fingerprint uint64

	BaseFeatures     []string
	EnhancedFeatures []string
	Created          []string

	// Results はMeanR2の降順。先頭が推奨モデル
	Results     []ModelResult
	Baseline    *ModelResult
	Improvement *Improvement

	Importances []FeatureImportance
	HoldoutR2   float64
}

// Best returns the recommended configuration.
func (c *Comparison) Best() ModelResult {
	return c.Results[0]
}

// Compare engineers features and cross-validates every model configuration
// on d, then ranks them and computes forest importances on a held-out split.
func Compare(d *dataset.Dataset, cfg CompareConfig) (*Comparison, error) {
	logger := log.GetLoggerWithName("analysis")

	if d.Len() < cfg.Folds {
		return nil, errors.NewInsufficientDataError("Compare", d.Len(), cfg.Folds)
	}
	kf := model_selection.NewKFold(cfg.Folds, true, cfg.Seed)

	enhanced, created, err := features.Engineer(d)
	if err != nil {
		return nil, err
	}
	out := &Comparison{
		Source:           d.Source(),
		Samples:          d.Len(),
		Fingerprint:      d.Fingerprint(),
		BaseFeatures:     d.Names(),
		EnhancedFeatures: enhanced.Names(),
		Created:          created,
	}

	X, y := d.Matrix(), d.TargetMatrix()
	XE := enhanced.Matrix()
	nBase, nEnh := d.NumFeatures(), enhanced.NumFeatures()

	evaluate := func(name string, factory model.Factory, X mat.Matrix, nFeatures int, param *Hyperparameter) (ModelResult, error) {
		cv, err := model_selection.CrossValScore(factory, X, y, kf)
		if err != nil {
			return ModelResult{}, errors.Wrapf(err, "evaluate %s", name)
		}
		r := ModelResult{
			Name:     name,
			MeanR2:   cv.Mean(),
			StdR2:    cv.Std(),
			Features: nFeatures,
			Param:    param,
			Scores:   cv.Scores,
		}
		logger.Info("Model evaluated",
			log.ModelNameKey, name,
			log.OperationKey, log.OperationCrossValidate,
			log.CVFoldsKey, cfg.Folds,
			log.R2ScoreKey, r.MeanR2,
			log.R2StdKey, r.StdR2,
			log.FeaturesKey, nFeatures,
		)
		return r, nil
	}

	var results []ModelResult

	if d.HasColumn("area") {
		area, err := d.Select("area")
		if err != nil {
			return nil, err
		}
		r, err := evaluate(ModelSimple, func() model.Model {
			return linear.NewSimpleLinearRegression("area")
		}, area.Matrix(), 1, nil)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
		out.Baseline = &r
	}

	ols := func() model.Model { return linear.NewLinearRegression() }
	for _, c := range []struct {
		name string
		X    mat.Matrix
		p    int
	}{
		{ModelMultiple, X, nBase},
		{ModelEnhanced, XE, nEnh},
	} {
		r, err := evaluate(c.name, ols, c.X, c.p, nil)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	penalised := []struct {
		name  string
		build func(alpha float64) model.Model
	}{
		{ModelRidge, func(a float64) model.Model { return linear_model.NewRidge(a) }},
		{ModelLasso, func(a float64) model.Model {
			return linear_model.NewLasso(a, linear_model.WithMaxIter(cfg.LassoMaxIter))
		}},
	}
	for _, pc := range penalised {
		r, err := tunePenalised(pc.name, pc.build, cfg.Alphas, func(name string, f model.Factory, param *Hyperparameter) (ModelResult, error) {
			return evaluate(name, f, XE, nEnh, param)
		})
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	forest, err := evaluate(ModelRandomForest, func() model.Model {
		return newForest(cfg)
	}, XE, nEnh, nil)
	if err != nil {
		return nil, err
	}
	results = append(results, forest)

	out.Results = Rank(results)
	if out.Baseline != nil {
		imp := ComputeImprovement(out.Best().MeanR2, out.Baseline.MeanR2)
		out.Improvement = &imp
	}

	out.Importances, out.HoldoutR2, err = ForestImportances(enhanced, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Comparison completed",
		log.ModelNameKey, out.Best().Name,
		log.R2ScoreKey, out.Best().MeanR2,
		log.SamplesKey, out.Samples,
		log.FingerprintKey, out.Fingerprint,
	)
	return out, nil
}

// tunePenalised は各alphaを交差検証し、平均R²が最大のものを選ぶ。
// 標準化はPipelineの中でfoldごとに学習される。
func tunePenalised(
	name string,
	build func(alpha float64) model.Model,
	alphas []float64,
	evaluate func(string, model.Factory, *Hyperparameter) (ModelResult, error),
) (ModelResult, error) {
	for _, a := range alphas {
		if !(a > 0) {
			return ModelResult{}, errors.NewValidationError("alpha", "must be positive", a)
		}
	}

	byAlpha := make(map[float64]ModelResult, len(alphas))
	search, err := model_selection.GridSearch(alphas, func(alpha float64) (float64, error) {
		r, err := evaluate(name, func() model.Model {
			return pipeline.Scaled(build(alpha))
		}, &Hyperparameter{Name: "alpha", Value: alpha})
		if err != nil {
			return 0, err
		}
		byAlpha[alpha] = r
		return r.MeanR2, nil
	})
	if err != nil {
		return ModelResult{}, err
	}

	log.GetLoggerWithName("analysis").Debug("Hyperparameter selected",
		log.ModelNameKey, name,
		log.OperationKey, log.OperationGridSearch,
		log.RegularizationKey, search.Best,
		log.R2ScoreKey, search.BestScore,
	)
	return byAlpha[search.Best], nil
}

func newForest(cfg CompareConfig) *ensemble.RandomForestRegressor {
	return ensemble.NewRandomForestRegressor(
		ensemble.WithNEstimators(cfg.NEstimators),
		ensemble.WithSeed(cfg.Seed),
	)
}

// Rank は MeanR2 の降順に安定ソートしたコピーを返す
func Rank(results []ModelResult) []ModelResult {
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b ModelResult) int {
		return cmp.Compare(b.MeanR2, a.MeanR2)
	})
	return out
}

// ComputeImprovement returns best − baseline and its share of |baseline|.
func ComputeImprovement(best, baseline float64) Improvement {
	imp := Improvement{Baseline: baseline, Best: best, Absolute: best - baseline}
	if baseline != 0 {
		imp.Percent = imp.Absolute / math.Abs(baseline) * 100
		imp.PercentDefined = true
	}
	return imp
}

// ForestImportances fits a forest on a seeded train split of d and returns
// the top importances, sorted descending, with the forest's R² on the
// held-out rows.
func ForestImportances(d *dataset.Dataset, cfg CompareConfig) ([]FeatureImportance, float64, error) {
	train, test, err := model_selection.TrainTestSplit(d.Len(), cfg.TestSize, cfg.Seed)
	if err != nil {
		return nil, 0, err
	}
	X, y := d.Matrix(), d.TargetMatrix()

	rf := newForest(cfg)
	if err := rf.Fit(model_selection.TakeRows(X, train), model_selection.TakeRows(y, train)); err != nil {
		return nil, 0, errors.Wrap(err, "fit importance forest")
	}
	pred, err := rf.Predict(model_selection.TakeRows(X, test))
	if err != nil {
		return nil, 0, err
	}
	holdout, err := metrics.R2ScoreMatrix(model_selection.TakeRows(y, test), pred)
	if err != nil {
		return nil, 0, err
	}

	scores, err := rf.FeatureImportances()
	if err != nil {
		return nil, 0, err
	}
	names := d.Names()
	imps := make([]FeatureImportance, len(names))
	for j, name := range names {
		imps[j] = FeatureImportance{Name: name, Score: scores[j]}
	}
	slices.SortStableFunc(imps, func(a, b FeatureImportance) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if cfg.TopN > 0 && len(imps) > cfg.TopN {
		imps = imps[:cfg.TopN]
	}
	return imps, holdout, nil
}
