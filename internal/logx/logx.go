// Package logx wraps go.uber.org/zap into the small, nil-safe logger the
// encoder/decoder accept for optional debug traces, with file rotation
// via gopkg.in/natefinch/lumberjack.v2 when pointed at a log file. This
// generalizes the teacher's plain log.Printf call sites into structured
// fields while keeping the same "logging is optional, never load-bearing"
// posture.
package logx

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin facade so callers don't need to import zap directly;
// a nil *Logger is valid and every method becomes a no-op.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewConsole returns a Logger writing human-readable output to stderr at
// the given zap level name ("debug", "info", "warn", "error").
func NewConsole(level string) (*Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: l.Sugar()}, nil
}

// NewFile returns a Logger writing JSON lines to path, rotated by
// lumberjack once it exceeds maxSizeMB.
func NewFile(path string, maxSizeMB int) *Logger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(rotator),
		zapcore.InfoLevel,
	)
	l := zap.New(core)
	return &Logger{sugar: l.Sugar()}
}

// Debugw/Infow/Warnw/Errorw log a message with structured key/value
// pairs; all are no-ops on a nil *Logger.
func (l *Logger) Debugw(msg string, kv ...interface{}) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Debugw(msg, kv...)
}

func (l *Logger) Infow(msg string, kv ...interface{}) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Infow(msg, kv...)
}

func (l *Logger) Warnw(msg string, kv ...interface{}) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Warnw(msg, kv...)
}

func (l *Logger) Errorw(msg string, kv ...interface{}) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Errorw(msg, kv...)
}

// Sync flushes buffered log entries; safe to call on a nil *Logger.
func (l *Logger) Sync() {
	if l == nil || l.sugar == nil {
		return
	}
	_ = l.sugar.Sync()
}
