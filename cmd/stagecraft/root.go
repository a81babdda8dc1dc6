// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/stagecraft/stagecraft/internal/config"
	"github.com/stagecraft/stagecraft/internal/logging"
	"github.com/stagecraft/stagecraft/internal/scene"
	"github.com/stagecraft/stagecraft/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the stagecraft CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stagecraft",
		Short: "Stagecraft - declarative event wiring for interactive scenes",
		Long: `Stagecraft loads scene documents that bind plugin events to
animations and commands, then plays them from trigger scripts.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/stagecraft/config.yaml)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewPlayCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// setup loads configuration and installs the default logger.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return nil, err
	}
	if err := logging.SetDefault(logging.Options{
		Service: "stagecraft",
		Version: version,
		Format:  cfg.LogFormat,
		Level:   cfg.LogLevel,
		Writer:  cmd.ErrOrStderr(),
	}); err != nil {
		return nil, oops.Code(config.CodeInvalidConfig).Wrapf(err, "setting up logging")
	}
	return cfg, nil
}

// readScene reads and parses a scene. A bare name that is not a file is
// looked up in the scenes data directory.
func readScene(path string, strict bool) (*scene.Scene, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) && !strings.ContainsRune(path, filepath.Separator) {
		name := path
		if filepath.Ext(name) == "" {
			name += ".yaml"
		}
		data, err = os.ReadFile(filepath.Join(xdg.ScenesDir(), name))
	}
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "reading scene")
	}
	return scene.Parse(data, scene.WithStrictSchema(strict))
}
