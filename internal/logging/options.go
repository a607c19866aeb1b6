package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatZap     = "zap"
)

// Options selects and configures a Logger backend.
type Options struct {
	// Format is FormatConsole (default), FormatJSON or FormatZap.
	Format string
	// Level is "debug", "info", "warn" or "error" (default "info").
	Level string
	// Writer receives the log output (default os.Stderr).
	Writer io.Writer
	// Component is attached to every entry when non-empty.
	Component string
}

// Levels lists the level names accepted by Options.Level.
var Levels = []string{"debug", "info", "warn", "error"}

// New builds the Logger described by opts.
func New(opts Options) (Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := strings.ToLower(opts.Level)
	if level == "" {
		level = "info"
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		zl, err := zerologLevel(level)
		if err != nil {
			return nil, err
		}
		out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
		return NewZerologAdapter(withComponent(zerolog.New(out).Level(zl).With().Timestamp(), opts.Component)), nil
	case FormatJSON:
		zl, err := zerologLevel(level)
		if err != nil {
			return nil, err
		}
		return NewZerologAdapter(withComponent(zerolog.New(w).Level(zl).With().Timestamp(), opts.Component)), nil
	case FormatZap:
		var zl zapcore.Level
		if err := zl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("unknown log level %q", opts.Level)
		}
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		logger := zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zl))
		if opts.Component != "" {
			logger = logger.With(zap.String("component", opts.Component))
		}
		return NewZapAdapter(logger), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s, %s or %s)", opts.Format, FormatConsole, FormatJSON, FormatZap)
	}
}

func zerologLevel(name string) (zerolog.Level, error) {
	switch name {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
}

func withComponent(ctx zerolog.Context, component string) zerolog.Logger {
	if component != "" {
		ctx = ctx.Str("component", component)
	}
	return ctx.Logger()
}
