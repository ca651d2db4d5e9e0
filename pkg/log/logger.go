package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// zerologLogger adapts zerolog.Logger to the Logger interface.
type zerologLogger struct {
	zl zerolog.Logger
}

// NewLogger returns a Logger writing to w at the given minimum level.
// Pass a zerolog.ConsoleWriter for human-readable output or any io.Writer
// for JSON lines.
func NewLogger(w io.Writer, level Level) Logger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{zl: zl}
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	e := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Err(err)
			if st := extractStacktrace(err); st != "" {
				e = e.Str(StacktraceKey, st)
			}
			fields = fields[1:]
		}
	}
	emit(e, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		ctx = ctx.Interface(fmt.Sprint(fields[i]), fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return l.zl.GetLevel() <= toZerologLevel(level)
}

// emit appends key/value pairs to a zerolog event. A nil event means the
// level is disabled; zerolog treats calls on it as no-ops.
func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			e = e.Object(key, v)
		case error:
			e = e.AnErr(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	e.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "must be one of debug, info, warn, error", s)
	}
}

// ===========================================================================
// Package-level provider
// ===========================================================================

type zerologProvider struct {
	mu     sync.RWMutex
	out    io.Writer
	level  Level
	fields []any
	logger Logger
}

// rebuild は mu を保持した状態で呼ぶ
func (p *zerologProvider) rebuild() {
	l := NewLogger(p.out, p.level)
	if len(p.fields) > 0 {
		l = l.With(p.fields...)
	}
	p.logger = l
}

func (p *zerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logger
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

func (p *zerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.rebuild()
}

func (p *zerologProvider) setOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = w
	p.rebuild()
}

func (p *zerologProvider) setFields(args []any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fields = append([]any(nil), args...)
	p.rebuild()
}

var provider LoggerProvider = newDefaultProvider()

func newDefaultProvider() *zerologProvider {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return &zerologProvider{
		out:    out,
		level:  LevelInfo,
		logger: NewLogger(out, LevelInfo),
	}
}

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	return provider.GetLogger()
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return provider.GetLoggerWithName(name)
}

// SetLevel changes the minimum level of the process-wide logger.
func SetLevel(level Level) {
	provider.SetLevel(level)
}

// SetOutput redirects the default provider. It has no effect when a
// custom provider is installed.
func SetOutput(w io.Writer) {
	if p, ok := provider.(*zerologProvider); ok {
		p.setOutput(w)
	}
}

// SetBaseFields attaches key-value pairs, such as the run id, to every
// logger handed out by the default provider.
func SetBaseFields(args ...any) {
	if p, ok := provider.(*zerologProvider); ok {
		p.setFields(args)
	}
}

// SetProvider replaces the process-wide provider, typically with a
// TestLoggerProvider. It returns the previous provider.
func SetProvider(p LoggerProvider) LoggerProvider {
	prev := provider
	provider = p
	return prev
}

// SetupLogger parses the level, applies it and routes pkg/errors warnings
// into the structured log.
func SetupLogger(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	SetLevel(lvl)
	errors.SetZerologWarnFunc(func(w error) {
		GetLoggerWithName("warnings").Warn(w.Error(), WarningKey, w)
	})
	return nil
}
