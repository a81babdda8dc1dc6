// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecraft/stagecraft/internal/config"
	"github.com/stagecraft/stagecraft/pkg/errutil"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load(newFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.MetricsAddr)
	assert.False(t, cfg.StrictSchema)
	assert.Empty(t, cfg.Animations)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "log-format: json\nstrict-schema: true\nanimations: [spin, pulse]\n")

	cfg, err := config.Load(newFlags(t), path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.StrictSchema)
	assert.Equal(t, []string{"spin", "pulse"}, cfg.Animations)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "unset keys keep flag defaults")
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "log-format: json\nmetrics-addr: 127.0.0.1:9100\n")

	cfg, err := config.Load(newFlags(t, "--log-format=text"), path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
}

func TestLoad_DefaultFileFromXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stagecraft"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stagecraft", "config.yaml"), []byte("log-level: debug\n"), 0o600))

	cfg, err := config.Load(newFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		args []string
	}{
		{"explicit file missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, nil},
		{"malformed yaml", func(t *testing.T) string { return writeFile(t, "log-format: [") }, nil},
		{"bad format", func(t *testing.T) string { return writeFile(t, "log-format: xml\n") }, nil},
		{"bad level", func(t *testing.T) string { return writeFile(t, "") }, []string{"--log-level=loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(newFlags(t, tt.args...), tt.path(t))
			errutil.AssertErrorCode(t, err, config.CodeInvalidConfig)
		})
	}
}
