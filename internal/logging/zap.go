package logging

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ZapAdapter implements Logger on top of zap.
type ZapAdapter struct {
	logger *zap.Logger
}

// NewZapAdapter wraps a *zap.Logger.
func NewZapAdapter(logger *zap.Logger) *ZapAdapter {
	return &ZapAdapter{logger: logger}
}

// Info implements Logger.
func (z *ZapAdapter) Info(msg string, fields ...Field) {
	z.logger.Info(msg, zapFields(fields)...)
}

// Error implements Logger.
func (z *ZapAdapter) Error(msg string, err error, fields ...Field) {
	z.logger.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

// Debug implements Logger.
func (z *ZapAdapter) Debug(msg string, fields ...Field) {
	z.logger.Debug(msg, zapFields(fields)...)
}

// Printf implements Logger.
func (z *ZapAdapter) Printf(format string, args ...any) {
	z.logger.Info(fmt.Sprintf(format, args...))
}

// Println implements Logger.
func (z *ZapAdapter) Println(args ...any) {
	z.logger.Info(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Sync flushes buffered entries.
func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out = append(out, zap.String(f.Key, v))
		case int:
			out = append(out, zap.Int(f.Key, v))
		case int64:
			out = append(out, zap.Int64(f.Key, v))
		case uint64:
			out = append(out, zap.Uint64(f.Key, v))
		case float64:
			out = append(out, zap.Float64(f.Key, v))
		case bool:
			out = append(out, zap.Bool(f.Key, v))
		case time.Duration:
			out = append(out, zap.Duration(f.Key, v))
		case error:
			out = append(out, zap.NamedError(f.Key, v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}
	return out
}
