// Package errors はhousefit全体で使う型付きエラーと警告を提供する。
// cockroachdb/errors の上に構築されており、コンストラクタはすべてスタックトレースを付与する。
//
// 致命的でない状況 (収束しない、行を読み飛ばした、指標が定義できない) は
// エラーとして返さず Warn で通知する。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// 呼び出し側が errors.Is で判定する番兵エラー。
var (
	ErrEmptyData      = New("empty data")
	ErrSingularMatrix = New("singular matrix")

	// ErrMissingInput: 入力ファイルが無い、または読めない。provider は合成データで回復する。
	ErrMissingInput = New("input file missing or unreadable")
)

// NotFittedError: Fit 前に Predict / Transform が呼ばれた。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("housefit: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "NotFittedError").Str("model_name", e.ModelName).Str("method", e.Method)
}

func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError: 行数または特徴量数が合わない。Axis 0 が行、1 が特徴量。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func axisLabel(axis int) string {
	if axis == 0 {
		return "rows"
	}
	return "features"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("housefit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, axisLabel(e.Axis), e.Expected, e.Got)
}

func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "DimensionError").
		Str("operation", e.Op).
		Int("axis", e.Axis).
		Str("axis_name", axisLabel(e.Axis)).
		Int("expected", e.Expected).
		Int("got", e.Got)
}

func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError: ハイパーパラメータや設定値が許容範囲外。
// ParamName は設定ファイルのキー名 (folds, alphas など) に揃える。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("housefit: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "ValidationError").
		Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value)
}

func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError: 引数の中身が不正 (長さ0、未知の列名など)。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("housefit: %s: %s", e.Op, e.Message)
}

func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ModelError: 分解の失敗などモデル内部の問題。Err に原因 (ErrSingularMatrix など) を持つ。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	msg := fmt.Sprintf("housefit: %s: %s", e.Op, e.Kind)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ModelError) Unwrap() error { return e.Err }

func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// InsufficientDataError: サンプル数が分割数に満たない。空のfoldは評価できないので致命的。
type InsufficientDataError struct {
	Op      string
	Samples int
	Folds   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("housefit: %s: cannot split %d samples into %d folds; need at least one sample per fold",
		e.Op, e.Samples, e.Folds)
}

func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "InsufficientDataError").
		Str("operation", e.Op).
		Int("samples", e.Samples).
		Int("folds", e.Folds)
}

func NewInsufficientDataError(op string, samples, folds int) error {
	return errors.WithStack(&InsufficientDataError{Op: op, Samples: samples, Folds: folds})
}

// 以下は cockroachdb/errors の薄いラッパー。呼び出し側はこのパッケージだけをimportすればよい。

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

func Wrap(err error, message string) error { return errors.Wrap(err, message) }

func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

func New(message string) error { return errors.New(message) }

func WithStack(err error) error { return errors.WithStack(err) }
