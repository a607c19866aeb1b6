// This file contains the override table shared by the YAML file and the
// environment, and the resolution logic applying them under the flags.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/numkit/internal/errors"
)

// override declares one setting that a file or environment variable can
// provide. key is the YAML key; the environment variable is EnvPrefix plus
// the upper-cased key.
type override struct {
	key   string
	flags []string
	apply func(*AppConfig, string) error
}

func (o override) envKey() string {
	return EnvPrefix + strings.ToUpper(o.key)
}

// overrides is the declarative table of every overridable setting.
var overrides = []override{
	// Duration overrides
	{"timeout", []string{"timeout"}, func(c *AppConfig, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = d
		return nil
	}},

	// Numeric overrides
	{"max_n", []string{"max-n"}, func(c *AppConfig, v string) error {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		c.MaxN = n
		return nil
	}},

	// String overrides
	{"algo", []string{"algo"}, setString(func(c *AppConfig) *string { return &c.Algo })},
	{"log_level", []string{"log-level"}, setString(func(c *AppConfig) *string { return &c.LogLevel })},
	{"log_format", []string{"log-format"}, setString(func(c *AppConfig) *string { return &c.LogFormat })},
	{"format", []string{"format"}, setString(func(c *AppConfig) *string { return &c.Format })},
	{"theme", []string{"theme"}, setString(func(c *AppConfig) *string { return &c.Theme })},
	{"server_addr", []string{"addr"}, setString(func(c *AppConfig) *string { return &c.ServerAddr })},
	{"cors_origins", []string{"cors-origins"}, setString(func(c *AppConfig) *string { return &c.CORSOrigins })},

	// Boolean overrides
	{"no_color", []string{"no-color"}, setBool(func(c *AppConfig) *bool { return &c.NoColor })},
	{"quiet", []string{"quiet", "q"}, setBool(func(c *AppConfig) *bool { return &c.Quiet })},
}

func setString(field func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		*field(c) = v
		return nil
	}
}

func setBool(field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// parseBool accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive).
func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}

// isFlagChanged reports whether any of names was set on the command line.
// A nil FlagSet or an unknown flag counts as unset.
func isFlagChanged(fs *pflag.FlagSet, names ...string) bool {
	if fs == nil {
		return false
	}
	for _, name := range names {
		if f := fs.Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

// Resolve layers the YAML file and the environment under the flags already
// parsed into cfg. cfg must hold flag values (or defaults for unset flags).
// The file is cfg.ConfigFile, or NUMKIT_CONFIG when that is empty.
//
// Settings whose flag was changed are left alone; otherwise an environment
// variable wins over the file, and the file over the default. The result is
// validated.
func Resolve(cfg *AppConfig, fs *pflag.FlagSet) error {
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if cfg.ConfigFile != "" {
		values, err := readFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		for _, o := range overrides {
			v, ok := values[o.key]
			if !ok || isFlagChanged(fs, o.flags...) {
				continue
			}
			if err := o.apply(cfg, v); err != nil {
				return apperrors.NewConfigError("%s: invalid %s value %q: %v", cfg.ConfigFile, o.key, v, err)
			}
		}
	}

	for _, o := range overrides {
		if isFlagChanged(fs, o.flags...) {
			continue
		}
		if v := os.Getenv(o.envKey()); v != "" {
			if err := o.apply(cfg, v); err != nil {
				return apperrors.NewConfigError("invalid %s value %q: %v", o.envKey(), v, err)
			}
		}
	}
	return cfg.Validate()
}

// readFile reads a flat YAML mapping of setting keys to scalar values.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("cannot read config file: %v", err)
	}
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewConfigError("cannot parse config file %s: %v", path, err)
	}

	known := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		known[o.key] = true
	}
	values := make(map[string]string, len(raw))
	for key, node := range raw {
		if !known[key] {
			return nil, apperrors.NewConfigError("%s: unknown setting %q", path, key)
		}
		if node.Kind != yaml.ScalarNode {
			return nil, apperrors.NewConfigError("%s: setting %q must be a scalar", path, key)
		}
		values[key] = node.Value
	}
	return values, nil
}

// Marshal renders cfg as the YAML accepted by --config.
func Marshal(cfg AppConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
