// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package config loads CLI configuration from flags and an optional YAML file.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/stagecraft/stagecraft/internal/logging"
	"github.com/stagecraft/stagecraft/internal/xdg"
)

// CodeInvalidConfig is returned for configuration that cannot be used.
const CodeInvalidConfig = "INVALID_CONFIG"

// Default values for configuration flags.
const (
	DefaultLogFormat   = logging.FormatText
	DefaultLogLevel    = "info"
	DefaultMetricsAddr = ""
)

// Config holds settings shared by every subcommand.
type Config struct {
	LogFormat    string   `koanf:"log-format"`
	LogLevel     string   `koanf:"log-level"`
	MetricsAddr  string   `koanf:"metrics-addr"`
	StrictSchema bool     `koanf:"strict-schema"`
	Animations   []string `koanf:"animations"`
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-format", DefaultLogFormat, "log format (json or text)")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.Bool("strict-schema", false, "validate scenes against the JSON schema before parsing")
	fs.StringSlice("animations", nil, "restrict animation names (empty = any)")
}

// Load layers flag defaults, the config file and explicitly set flags, in
// increasing precedence. An empty path selects the default config file,
// which may be absent; an explicit path must exist.
func Load(flags *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = xdg.ConfigFile()
	}
	if err := loadFile(k, path, explicit); err != nil {
		return nil, err
	}

	// Unchanged flags only fill keys the file did not set.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, oops.Code(CodeInvalidConfig).Wrapf(err, "loading flags")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code(CodeInvalidConfig).Wrapf(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return oops.Code(CodeInvalidConfig).With("path", path).Wrapf(err, "config file")
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return oops.Code(CodeInvalidConfig).With("path", path).Wrapf(err, "loading config file")
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.LogFormat != logging.FormatJSON && c.LogFormat != logging.FormatText {
		return oops.Code(CodeInvalidConfig).
			With("log-format", c.LogFormat).
			Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.LogLevel == "" {
		return oops.Code(CodeInvalidConfig).Errorf("log-level is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return oops.Code(CodeInvalidConfig).
			With("log-level", c.LogLevel).
			Errorf("invalid log-level %q", c.LogLevel)
	}
	return nil
}
