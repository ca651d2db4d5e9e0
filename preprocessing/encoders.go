package preprocessing

import (
	"slices"
	"strings"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// LabelEncoder はカテゴリ文字列を初出順の整数コードに変換する。
// 同じ入力順なら常に同じコードになる。
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder は空のLabelEncoderを作成する
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{index: make(map[string]int)}
}

// Fit はラベルを初出順に登録する。既存のコードは変わらない
func (e *LabelEncoder) Fit(labels []string) *LabelEncoder {
	for _, l := range labels {
		if _, ok := e.index[l]; !ok {
			e.index[l] = len(e.classes)
			e.classes = append(e.classes, l)
		}
	}
	return e
}

// Transform は登録済みラベルをコードに変換する。未知のラベルはエラー
func (e *LabelEncoder) Transform(labels []string) ([]float64, error) {
	out := make([]float64, len(labels))
	for i, l := range labels {
		code, ok := e.index[l]
		if !ok {
			return nil, errors.NewValueError("LabelEncoder.Transform", "unseen label "+l)
		}
		out[i] = float64(code)
	}
	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (e *LabelEncoder) FitTransform(labels []string) ([]float64, error) {
	return e.Fit(labels).Transform(labels)
}

// Classes は登録済みラベルをコード順に返す
func (e *LabelEncoder) Classes() []string {
	return slices.Clone(e.classes)
}

// ParseYesNo は "yes"/"no"（大文字小文字・前後空白は無視）を 1/0 に変換する
func ParseYesNo(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return 1, nil
	case "no":
		return 0, nil
	default:
		return 0, errors.NewValueError("ParseYesNo", "expected yes or no, got "+s)
	}
}
