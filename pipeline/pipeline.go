// Package pipeline chains a fitted transformer in front of an estimator so
// that preprocessing statistics come from the training rows only.
package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/preprocessing"
)

// Pipeline はTransformerとModelを直列につなぐ。
// Fit ではTransformerを訓練データだけで学習し、変換後のデータでModelを学習する。
// Predict では学習済みのTransformerをそのまま適用する。
type Pipeline struct {
	Transformer model.Transformer
	Estimator   model.Model
}

// New は新しいPipelineを作成する
func New(t model.Transformer, est model.Model) *Pipeline {
	return &Pipeline{Transformer: t, Estimator: est}
}

// Scaled はStandardScalerを前段に置いたPipelineを返す
func Scaled(est model.Model) *Pipeline {
	return New(preprocessing.NewStandardScalerDefault(), est)
}

// Fit はモデルを訓練データで学習させる
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	Xt, err := p.Transformer.FitTransform(X)
	if err != nil {
		return errors.Wrap(err, "pipeline transform")
	}
	return p.Estimator.Fit(Xt, y)
}

// Predict は入力データに対する予測を行う
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	Xt, err := p.Transformer.Transform(X)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline transform")
	}
	return p.Estimator.Predict(Xt)
}

// FeatureImportances は後段のModelが重要度を提供する場合にそれを返す
func (p *Pipeline) FeatureImportances() ([]float64, error) {
	ip, ok := p.Estimator.(model.ImportanceProvider)
	if !ok {
		return nil, errors.NewValueError("Pipeline.FeatureImportances", "estimator does not provide feature importances")
	}
	return ip.FeatureImportances()
}
