package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。y は n×1 の列ベクトル
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を n×1 の行列で返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Model は学習と予測の両方を行う回帰モデル
type Model interface {
	Fitter
	Predictor
}

// Factory は交差検証の各foldで新しい未学習モデルを生成する
type Factory func() Model

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	Model
	// Coefficients は学習された係数と切片を返す
	Coefficients() (Coefficients, error)
}

// ImportanceProvider は特徴量重要度を提供するモデル
type ImportanceProvider interface {
	// FeatureImportances は各特徴量の非負の重要度を返す。合計は1
	FeatureImportances() ([]float64, error)
}
