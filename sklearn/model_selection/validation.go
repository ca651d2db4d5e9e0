package model_selection

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/metrics"
	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/pkg/log"
)

// CVResult は交差検証のfoldごとのR²
type CVResult struct {
	Scores []float64
}

// Mean はfoldスコアの平均を返す
func (r CVResult) Mean() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	return stat.Mean(r.Scores, nil)
}

// Std はfoldスコアの母標準偏差を返す
func (r CVResult) Std() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	return stat.PopStdDev(r.Scores, nil)
}

// CrossValScore はfoldごとに新しいモデルをfactoryで作り、訓練インデックスで学習し、
// 検証インデックスのR²を記録する。
func CrossValScore(factory model.Factory, X, y mat.Matrix, kf KFold) (CVResult, error) {
	n, _ := X.Dims()
	if ry, _ := y.Dims(); ry != n {
		return CVResult{}, errors.NewDimensionError("CrossValScore", n, ry, 0)
	}

	folds, err := kf.Split(n)
	if err != nil {
		return CVResult{}, err
	}

	logger := log.GetLoggerWithName("model_selection")
	result := CVResult{Scores: make([]float64, len(folds))}
	for i, fold := range folds {
		est := factory()
		if err := est.Fit(TakeRows(X, fold.TrainIndices), TakeRows(y, fold.TrainIndices)); err != nil {
			return CVResult{}, errors.Wrapf(err, "fold %d", i)
		}
		pred, err := est.Predict(TakeRows(X, fold.TestIndices))
		if err != nil {
			return CVResult{}, errors.Wrapf(err, "fold %d", i)
		}
		score, err := metrics.R2ScoreMatrix(TakeRows(y, fold.TestIndices), pred)
		if err != nil {
			return CVResult{}, errors.Wrapf(err, "fold %d", i)
		}
		result.Scores[i] = score
		logger.Debug("Fold scored", log.FoldKey, i, log.R2ScoreKey, score)
	}
	return result, nil
}

// SearchResult はGridSearchの結果
type SearchResult[T any] struct {
	Best      T
	BestScore float64
	Scores    []float64 // candidatesと同じ順序
}

// GridSearch は各候補をscoreで評価し、最大スコアの候補を返す。
// 同点の場合は先に現れた候補を選ぶ。
func GridSearch[T any](candidates []T, score func(T) (float64, error)) (SearchResult[T], error) {
	if len(candidates) == 0 {
		return SearchResult[T]{}, errors.NewValidationError("candidates", "must not be empty", 0)
	}

	res := SearchResult[T]{Scores: make([]float64, len(candidates))}
	for i, c := range candidates {
		s, err := score(c)
		if err != nil {
			return SearchResult[T]{}, err
		}
		res.Scores[i] = s
		if i == 0 || s > res.BestScore {
			res.Best = c
			res.BestScore = s
		}
	}
	return res, nil
}
