// Package analysis runs the two end-to-end analyses: the single-predictor
// area/price fit and the cross-validated comparison of model configurations.
package analysis

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/core/model"
	"github.com/YuminosukeSato/housefit/dataset"
	"github.com/YuminosukeSato/housefit/linear"
	"github.com/YuminosukeSato/housefit/metrics"
	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/pkg/log"
)

// Reliability は R² に基づく予測の信頼度
type Reliability string

const (
	Reliable           Reliability = "reliable"
	ModeratelyReliable Reliability = "moderately reliable"
	LessReliable       Reliability = "less reliable"
)

// Verdict は R² > 0.7 なら reliable、> 0.5 なら moderately reliable を返す
func Verdict(r2 float64) Reliability {
	switch {
	case r2 > 0.7:
		return Reliable
	case r2 > 0.5:
		return ModeratelyReliable
	default:
		return LessReliable
	}
}

// SimpleConfig は単回帰分析の設定
type SimpleConfig struct {
	// Feature は説明変数の列名 (デフォルト: area)
	Feature string
	// PredictAt は点予測する説明変数の値
	PredictAt float64
	// SampleRows は予測値と実測値を並べて表示する行数
	SampleRows int
}

// DefaultSimpleConfig returns area → price with a prediction at 1500 sq ft.
func DefaultSimpleConfig() SimpleConfig {
	return SimpleConfig{Feature: "area", PredictAt: 1500, SampleRows: 10}
}

// PredictionRow は1行分の実測値と予測値
type PredictionRow struct {
	X         float64
	Actual    float64
	Predicted float64
	Residual  float64
}

// SimpleResult は単回帰分析の結果
type SimpleResult struct {
	Source      string
	Samples     int
	Fingerprint uint64

	Feature     dataset.Summary
	Target      dataset.Summary
	Correlation float64

	Coefficients model.Coefficients
	Metrics      metrics.Report

	Rows []PredictionRow

	PredictAt    float64
	Prediction   float64
	PricePerUnit float64
	Verdict      Reliability
}

// RunSimple fits price against one feature with the closed-form estimator
// and evaluates the fit on the same rows.
func RunSimple(d *dataset.Dataset, cfg SimpleConfig) (*SimpleResult, error) {
	if cfg.Feature == "" {
		cfg.Feature = "area"
	}
	x, err := d.Column(cfg.Feature)
	if err != nil {
		return nil, err
	}
	y := d.Target()

	res := &SimpleResult{
		Source:      d.Source(),
		Samples:     d.Len(),
		Fingerprint: d.Fingerprint(),
		PredictAt:   cfg.PredictAt,
	}
	if res.Feature, err = dataset.Describe(x); err != nil {
		return nil, err
	}
	if res.Target, err = dataset.Describe(y); err != nil {
		return nil, err
	}
	if res.Correlation, err = metrics.PearsonCorrelation(x, y); err != nil {
		return nil, err
	}

	est := linear.NewSimpleLinearRegression(cfg.Feature)
	X := mat.NewDense(len(x), 1, x)
	if err := est.Fit(X, mat.NewDense(len(y), 1, y)); err != nil {
		return nil, errors.Wrap(err, "fit simple regression")
	}
	if res.Coefficients, err = est.Coefficients(); err != nil {
		return nil, err
	}

	pred, err := est.Predict(X)
	if err != nil {
		return nil, err
	}
	yHat := mat.Col(nil, 0, pred)
	if res.Metrics, err = metrics.Evaluate(mat.NewVecDense(len(y), y), mat.NewVecDense(len(yHat), yHat)); err != nil {
		return nil, err
	}

	n := min(cfg.SampleRows, len(x))
	res.Rows = make([]PredictionRow, n)
	for i := 0; i < n; i++ {
		res.Rows[i] = PredictionRow{X: x[i], Actual: y[i], Predicted: yHat[i], Residual: y[i] - yHat[i]}
	}

	res.Prediction = est.PredictValue(cfg.PredictAt)
	if cfg.PredictAt != 0 {
		res.PricePerUnit = res.Prediction / cfg.PredictAt
	}
	res.Verdict = Verdict(res.Metrics.R2)

	log.GetLoggerWithName("analysis").Info("Simple regression fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, res.Samples,
		log.R2ScoreKey, res.Metrics.R2,
		log.RMSEKey, res.Metrics.RMSE,
		"slope", est.Slope,
		"intercept", est.Intercept,
	)
	return res, nil
}
