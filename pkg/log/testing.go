package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// TestLogger はレコードを1行1JSONでメモリに書き出すテスト用Logger。
// 数値フィールドはJSONを経由するため float64 として読み戻される。
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields map[string]any
}

// NewTestLogger は level 以上を記録するTestLoggerと、その出力先を返す。
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	logger.Info("Loaded dataset", log.SamplesKey, 545)
//	output := buffer.String()
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := new(bytes.Buffer)
	return &TestLogger{buffer: buffer, level: level, fields: map[string]any{}}, buffer
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.log(LevelDebug, msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.log(LevelInfo, msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.log(LevelWarn, msg, fields) }

// Error は zerologLogger と同じく、先頭の引数がerrorなら ErrorKey に入れる。
func (t *TestLogger) Error(msg string, fields ...any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrorKey, err}, fields[1:]...)
		}
	}
	t.log(LevelError, msg, fields)
}

func (t *TestLogger) With(fields ...any) Logger {
	child := &TestLogger{buffer: t.buffer, level: t.level, fields: maps.Clone(t.fields)}
	addFields(child.fields, fields)
	return child
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

func (t *TestLogger) log(level Level, msg string, fields []any) {
	if level < t.level {
		return
	}
	record := maps.Clone(t.fields)
	addFields(record, fields)
	record["level"] = level.String()
	record["message"] = msg

	// Encoder は末尾に改行を付ける
	_ = json.NewEncoder(t.buffer).Encode(record)
}

func addFields(dst map[string]any, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		value := fields[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		dst[fmt.Sprint(fields[i])] = value
	}
}

// GetLogEntries は記録済みの出力をレコードごとのmapに戻す。
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(t.buffer.Bytes()))
	for {
		var entry map[string]interface{}
		err := dec.Decode(&entry)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.buffer.String(), message)
}

// ContainsField は key が value であるレコードが1つでもあれば true。
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	return slices.ContainsFunc(entries, func(e map[string]interface{}) bool {
		v, ok := e[key]
		return ok && v == value
	})
}

func (t *TestLogger) Clear() { t.buffer.Reset() }

// TestLoggerProvider は1つのバッファを共有するLoggerProvider。
// SetProvider と組み合わせてパッケージ内部のログを捕捉する。
type TestLoggerProvider struct {
	logger *TestLogger
}

func NewTestLoggerProvider(level Level) (*TestLoggerProvider, *bytes.Buffer) {
	logger, buffer := NewTestLogger(level)
	return &TestLoggerProvider{logger: logger}, buffer
}

func (p *TestLoggerProvider) GetLogger() Logger { return p.logger }

func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

func (p *TestLoggerProvider) SetLevel(level Level) { p.logger.level = level }

// Logger はアサーション用に内部のTestLoggerを返す。
func (p *TestLoggerProvider) Logger() *TestLogger { return p.logger }
