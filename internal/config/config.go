// Package config resolves the numkit settings from command-line flags,
// NUMKIT_* environment variables, an optional YAML file and defaults, in
// that order of precedence.
package config

import (
	"slices"
	"time"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/ui"
)

// EnvPrefix is the prefix of every environment variable read by numkit.
const EnvPrefix = "NUMKIT_"

// Defaults.
const (
	DefaultTimeout     = 5 * time.Minute
	DefaultAlgo        = "fast"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultFormat      = "text"
	DefaultTheme       = "dark"
	DefaultServerAddr  = ":8080"
	DefaultCORSOrigins = "*"
	DefaultMaxN        = uint64(1_000_000_000)
)

// AppConfig holds the settings shared by every numkit command.
type AppConfig struct {
	// ConfigFile is the YAML file the settings were read from, if any.
	ConfigFile string `yaml:"-"`
	// Timeout bounds each calculation.
	Timeout time.Duration `yaml:"timeout"`
	// Algo is the default Fibonacci algorithm, or "all".
	Algo string `yaml:"algo"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is console, json or zap.
	LogFormat string `yaml:"log_format"`
	// NoColor disables ANSI colors.
	NoColor bool `yaml:"no_color"`
	// Quiet reduces output to bare results.
	Quiet bool `yaml:"quiet"`
	// Format is the output format of results, text, json or yaml.
	Format string `yaml:"format"`
	// Theme is the color theme name.
	Theme string `yaml:"theme"`
	// ServerAddr is the listen address of `numkit serve`.
	ServerAddr string `yaml:"server_addr"`
	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins string `yaml:"cors_origins"`
	// MaxN is the largest Fibonacci index the server accepts.
	MaxN uint64 `yaml:"max_n"`
}

// Default returns the configuration used when nothing overrides it.
func Default() AppConfig {
	return AppConfig{
		Timeout:     DefaultTimeout,
		Algo:        DefaultAlgo,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		Format:      DefaultFormat,
		Theme:       DefaultTheme,
		ServerAddr:  DefaultServerAddr,
		CORSOrigins: DefaultCORSOrigins,
		MaxN:        DefaultMaxN,
	}
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json", "zap"}
	formats    = []string{"text", "json", "yaml"}
)

// Validate checks every field and returns a ConfigError describing the
// first invalid one. Algorithm names are checked against the factory by the
// commands that use them.
func (c AppConfig) Validate() error {
	switch {
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	case c.Algo == "":
		return apperrors.NewConfigError("algo must not be empty")
	case !slices.Contains(logLevels, c.LogLevel):
		return apperrors.NewConfigError("invalid log level %q (want one of %v)", c.LogLevel, logLevels)
	case !slices.Contains(logFormats, c.LogFormat):
		return apperrors.NewConfigError("invalid log format %q (want one of %v)", c.LogFormat, logFormats)
	case !slices.Contains(formats, c.Format):
		return apperrors.NewConfigError("invalid output format %q (want one of %v)", c.Format, formats)
	case !slices.Contains(ui.ThemeNames, c.Theme):
		return apperrors.NewConfigError("invalid theme %q (want one of %v)", c.Theme, ui.ThemeNames)
	case c.ServerAddr == "":
		return apperrors.NewConfigError("server address must not be empty")
	case c.MaxN == 0:
		return apperrors.NewConfigError("max-n must be positive")
	}
	return nil
}
