// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagecraft/stagecraft/internal/stage"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene>",
		Short: "Validate a scene document",
		Long: `Validate checks a scene against the JSON schema, parses it and
registers its events on a scratch stage without dispatching anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(cmd); err != nil {
				return err
			}
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, path string) error {
	sc, err := readScene(path, true)
	if err != nil {
		return err
	}

	st, err := stage.New()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(cmd.Context()) }()
	if err := st.Load(cmd.Context(), sc); err != nil {
		return err
	}

	events := 0
	for _, p := range sc.Plugins {
		events += len(p.Descriptors())
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d plugins, %d events, %d triggers)\n",
		displayTitle(sc.Title, path), len(sc.Plugins), events, len(sc.Triggers))
	return err
}

func displayTitle(title, path string) string {
	if title == "" {
		return path
	}
	return fmt.Sprintf("%q", title)
}
