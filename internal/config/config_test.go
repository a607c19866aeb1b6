package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/numkit/internal/errors"
)

// newFlagSet mimics the flags the app registers on top of cfg.
func newFlagSet(cfg *AppConfig) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVar(&cfg.ConfigFile, "config", "", "")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "")
	fs.StringVar(&cfg.Algo, "algo", cfg.Algo, "")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "")
	fs.StringVar(&cfg.ServerAddr, "addr", cfg.ServerAddr, "")
	return fs
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "numkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }},
		{"empty algo", func(c *AppConfig) { c.Algo = "" }},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "loud" }},
		{"bad log format", func(c *AppConfig) { c.LogFormat = "xml" }},
		{"bad format", func(c *AppConfig) { c.Format = "csv" }},
		{"bad theme", func(c *AppConfig) { c.Theme = "purple" }},
		{"empty addr", func(c *AppConfig) { c.ServerAddr = "" }},
		{"zero max n", func(c *AppConfig) { c.MaxN = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(&cfg)
			var configErr apperrors.ConfigError
			assert.True(t, errors.As(cfg.Validate(), &configErr))
		})
	}
}

// Resolve tests use t.Setenv and cannot run in parallel.

func TestResolve_Precedence(t *testing.T) {
	path := writeFile(t, "timeout: 30s\nalgo: matrix\nlog_level: debug\ntheme: light\n")
	t.Setenv("NUMKIT_ALGO", "iterative")
	t.Setenv("NUMKIT_LOG_LEVEL", "warn")

	cfg := Default()
	fs := newFlagSet(&cfg)
	require.NoError(t, fs.Parse([]string{"--config", path, "--log-level", "error"}))
	require.NoError(t, Resolve(&cfg, fs))

	assert.Equal(t, 30*time.Second, cfg.Timeout, "file beats default")
	assert.Equal(t, "iterative", cfg.Algo, "env beats file")
	assert.Equal(t, "error", cfg.LogLevel, "flag beats env")
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr)
}

func TestResolve_ConfigFromEnv(t *testing.T) {
	path := writeFile(t, "quiet: yes\nmax_n: 1000\n")
	t.Setenv("NUMKIT_CONFIG", path)

	cfg := Default()
	fs := newFlagSet(&cfg)
	require.NoError(t, fs.Parse(nil))
	require.NoError(t, Resolve(&cfg, fs))

	want := Default()
	want.ConfigFile = path
	want.Quiet = true
	want.MaxN = 1000
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "unknown key", file: "colour: red\n"},
		{name: "nested value", file: "algo:\n  name: fast\n"},
		{name: "bad duration in file", file: "timeout: soon\n"},
		{name: "bad env bool", env: map[string]string{"NUMKIT_NO_COLOR": "maybe"}},
		{name: "invalid after merge", env: map[string]string{"NUMKIT_FORMAT": "csv"}},
		{name: "missing file", file: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := Default()
			switch tt.file {
			case "":
			case "-":
				cfg.ConfigFile = filepath.Join(t.TempDir(), "absent.yaml")
			default:
				cfg.ConfigFile = writeFile(t, tt.file)
			}
			err := Resolve(&cfg, nil)
			var configErr apperrors.ConfigError
			assert.True(t, errors.As(err, &configErr), "got %v", err)
			assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	want := Default()
	want.Timeout = 90 * time.Second
	want.NoColor = true

	data, err := Marshal(want)
	require.NoError(t, err)

	got := Default()
	got.ConfigFile = writeFile(t, string(data))
	require.NoError(t, Resolve(&got, nil))
	got.ConfigFile = ""
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
