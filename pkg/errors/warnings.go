package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/rs/zerolog"
)

// 警告の出力先。pkg/log が SetZerologWarnFunc で差し替える。
var (
	sinkMu   sync.Mutex
	fallback = func(w error) { log.Printf("housefit-warning: %v\n", w) }
	zlogSink func(warning error)
)

// SetWarningHandler はzerologシンクが無いときに使われるハンドラを設定する。
// テストでは警告を捕捉するのに使う:
//
//	var got []error
//	errors.SetWarningHandler(func(w error) { got = append(got, w) })
func SetWarningHandler(handler func(w error)) {
	sinkMu.Lock()
	fallback = handler
	sinkMu.Unlock()
}

// SetZerologWarnFunc は構造化ログ用のシンクを設定する。nilで解除。
// pkg/log からの循環importを避けるため関数で受け取る。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	sinkMu.Lock()
	zlogSink = warnFunc
	sinkMu.Unlock()
}

// Warn は処理を止めずに警告を通知する。
func Warn(w error) {
	sinkMu.Lock()
	defer sinkMu.Unlock()

	switch {
	case zlogSink != nil:
		zlogSink(w)
	case fallback != nil:
		fallback(w)
	}
}

// ConvergenceWarning は反復法 (Lassoの座標降下など) が max_iter 内に収束しなかったことを表す。
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	head := fmt.Sprintf("%s failed to converge after %d iterations", w.Algorithm, w.Iterations)
	if w.Message == "" {
		return head + ". Consider increasing max_iter or adjusting alpha."
	}
	return head + ": " + w.Message
}

func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "ConvergenceWarning").
		Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message)
}

func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// MalformedRowWarning はCSVの1行を解析できず読み飛ばしたことを表す。
// Line はヘッダを1行目とした行番号。
type MalformedRowWarning struct {
	Source string
	Line   int
	Column string
	Value  string
}

func (w *MalformedRowWarning) Error() string {
	return fmt.Sprintf("%s:%d: skipping row, column %q has unparseable value %q", w.Source, w.Line, w.Column, w.Value)
}

func (w *MalformedRowWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "MalformedRowWarning").
		Str("source", w.Source).
		Int("line", w.Line).
		Str("column", w.Column).
		Str("value", w.Value)
}

func NewMalformedRowWarning(source string, line int, column, value string) *MalformedRowWarning {
	return &MalformedRowWarning{Source: source, Line: line, Column: column, Value: value}
}

// UndefinedMetricWarning は指標が定義できず既定値 Result を返したことを表す。
// 目的変数が定数なのに残差が0でないときのR²がこれにあたる。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "UndefinedMetricWarning").
		Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result)
}

func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}
