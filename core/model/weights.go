package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// Coefficients は線形モデルの学習結果（傾きベクトルと切片）
type Coefficients struct {
	// Features は各傾きに対応する特徴量名（省略可）
	Features []string

	// Slopes は特徴量ごとの傾き
	Slopes []float64

	// Intercept は切片
	Intercept float64
}

// Validate はCoefficientsの妥当性を検証
func (c Coefficients) Validate() error {
	if len(c.Slopes) == 0 {
		return errors.NewValidationError("slopes", "fitted model must have coefficients", len(c.Slopes))
	}
	if len(c.Features) > 0 && len(c.Features) != len(c.Slopes) {
		return errors.NewDimensionError("Coefficients.Validate", len(c.Slopes), len(c.Features), 1)
	}
	if err := errors.CheckNumericalStability("Coefficients.Validate", c.Slopes, 0); err != nil {
		return err
	}
	return errors.CheckScalar("Coefficients.Validate", c.Intercept, 0)
}

// Clone はCoefficientsのディープコピーを作成
func (c Coefficients) Clone() Coefficients {
	clone := Coefficients{Intercept: c.Intercept}
	if c.Features != nil {
		clone.Features = append([]string(nil), c.Features...)
	}
	if c.Slopes != nil {
		clone.Slopes = append([]float64(nil), c.Slopes...)
	}
	return clone
}

// PredictRow は1行分の入力に対する予測値を返す
func (c Coefficients) PredictRow(row []float64) (float64, error) {
	if len(row) != len(c.Slopes) {
		return math.NaN(), errors.NewDimensionError("Coefficients.PredictRow", len(c.Slopes), len(row), 1)
	}
	y := c.Intercept
	for j, w := range c.Slopes {
		y += w * row[j]
	}
	return y, nil
}

// String は "price = 1000.00 × area + 2000000.00" 形式の式を返す
func (c Coefficients) String() string {
	var b strings.Builder
	b.WriteString("price =")
	for j, w := range c.Slopes {
		name := fmt.Sprintf("x%d", j)
		if j < len(c.Features) {
			name = c.Features[j]
		}
		if j > 0 {
			b.WriteString(" +")
		}
		fmt.Fprintf(&b, " %.2f × %s", w, name)
	}
	fmt.Fprintf(&b, " + %.2f", c.Intercept)
	return b.String()
}
