//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured logging interface used by numkit components.
type Logger interface {
	// Info logs an informational message with optional structured fields.
	Info(msg string, fields ...Field)
	// Error logs an error message with the error and optional fields.
	Error(msg string, err error, fields ...Field)
	// Debug logs a debug message with optional structured fields.
	Debug(msg string, fields ...Field)
	// Printf logs a formatted message at info level.
	Printf(format string, args ...any)
	// Println logs its arguments at info level.
	Println(args ...any)
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err creates a field holding err under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ZerologAdapter implements Logger on top of zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps a zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger returns a JSON zerolog logger writing to stderr.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "numkit")
}

// NewLogger returns a JSON zerolog logger writing to w, tagging every entry
// with component.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return NewZerologAdapter(zerolog.New(w).With().Timestamp().Str("component", component).Logger())
}

// Info implements Logger.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyZerologFields(z.logger.Info(), fields).Msg(msg)
}

// Error implements Logger.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyZerologFields(z.logger.Error().Err(err), fields).Msg(msg)
}

// Debug implements Logger.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyZerologFields(z.logger.Debug(), fields).Msg(msg)
}

// Printf implements Logger.
func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

// Println implements Logger.
func (z *ZerologAdapter) Println(args ...any) {
	z.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func applyZerologFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case time.Duration:
			event = event.Dur(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

// StdLoggerAdapter implements Logger on top of the standard log package.
// Fields are appended as key=value pairs.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a *log.Logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// Info implements Logger.
func (s *StdLoggerAdapter) Info(msg string, fields ...Field) {
	s.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error implements Logger.
func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
}

// Debug implements Logger.
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	s.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Printf implements Logger.
func (s *StdLoggerAdapter) Printf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

// Println implements Logger.
func (s *StdLoggerAdapter) Println(args ...any) {
	s.logger.Println(args...)
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(string, ...Field)         {}
func (NopLogger) Error(string, error, ...Field) {}
func (NopLogger) Debug(string, ...Field)        {}
func (NopLogger) Printf(string, ...any)         {}
func (NopLogger) Println(...any)                {}
