// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/stagecraft/stagecraft/internal/animation"
	"github.com/stagecraft/stagecraft/internal/command"
	"github.com/stagecraft/stagecraft/internal/config"
	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/observability"
	"github.com/stagecraft/stagecraft/internal/stage"
	"github.com/stagecraft/stagecraft/internal/trigger"
	"github.com/stagecraft/stagecraft/pkg/errutil"
)

// playConfig holds flags for the play command.
type playConfig struct {
	script   string
	triggers []string
	hold     bool
}

// metricsShutdownTimeout bounds the observability server shutdown.
const metricsShutdownTimeout = 5 * time.Second

// NewPlayCmd creates the play subcommand.
func NewPlayCmd() *cobra.Command {
	pc := &playConfig{}

	cmd := &cobra.Command{
		Use:   "play <scene>",
		Short: "Load a scene and run trigger scripts against it",
		Long: `Play loads a scene, runs the named scene triggers and then an
optional trigger script ("-" reads stdin), and prints the resulting animation
timeline and command log.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			return runPlay(cmd, cfg, pc, args[0])
		},
	}

	cmd.Flags().StringVarP(&pc.script, "script", "s", "", "trigger script file (\"-\" for stdin)")
	cmd.Flags().StringArrayVarP(&pc.triggers, "trigger", "t", nil, "scene trigger to run (repeatable)")
	cmd.Flags().BoolVar(&pc.hold, "hold", false, "keep serving metrics after playing until interrupted")

	return cmd
}

func runPlay(cmd *cobra.Command, cfg *config.Config, pc *playConfig, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		server := observability.NewServer(cfg.MetricsAddr, nil,
			event.RegisterMetrics,
			command.RegisterMetrics,
			animation.RegisterMetrics,
		)
		if _, err := server.Start(); err != nil {
			return oops.Wrapf(err, "starting observability server")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				slog.Warn("error stopping observability server", "error", err)
			}
		}()
		metrics = server.Metrics()
	}

	opts := []stage.Option{stage.WithLogger(slog.Default())}
	if len(cfg.Animations) > 0 {
		opts = append(opts, stage.WithAnimations(cfg.Animations...))
	}
	st, err := stage.New(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(ctx) }()

	sc, err := readScene(path, cfg.StrictSchema)
	if err == nil {
		err = st.Load(ctx, sc)
	}
	if metrics != nil {
		metrics.ScenesTotal.WithLabelValues(status(err)).Inc()
	}
	if err != nil {
		return err
	}

	for _, name := range pc.triggers {
		err := st.RunTrigger(ctx, name)
		if metrics != nil {
			metrics.TriggersTotal.WithLabelValues(status(err)).Inc()
		}
		if err != nil {
			errutil.LogError(ctx, slog.Default(), "trigger failed", err)
			return err
		}
	}

	if pc.script != "" {
		ts, err := readTrigger(cmd.InOrStdin(), pc.script)
		if err == nil {
			err = st.Run(ctx, ts)
		}
		if metrics != nil {
			metrics.TriggersTotal.WithLabelValues(status(err)).Inc()
		}
		if err != nil {
			errutil.LogError(ctx, slog.Default(), "trigger script failed", err)
			return err
		}
	}

	if err := report(cmd.OutOrStdout(), st); err != nil {
		return err
	}

	if pc.hold && metrics != nil {
		slog.Info("holding for metrics scrapes, interrupt to exit", "addr", cfg.MetricsAddr)
		<-ctx.Done()
	}
	return nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func readTrigger(stdin io.Reader, path string) (*trigger.Script, error) {
	var (
		data []byte
		err  error
		name = path
	)
	if path == "-" {
		name = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "reading trigger script")
	}
	return trigger.Parse(name, string(data))
}

// report prints the animation timeline and command log.
func report(w io.Writer, st *stage.Stage) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMELINE")
	for i, tween := range st.Timeline().Tweens() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%v\n", i, tween.Plugin, tween.Name, tween.Duration, tween.Value)
	}
	fmt.Fprintln(tw, "LOG")
	for i, r := range st.Log().Records() {
		fmt.Fprintf(tw, "%d\t%s\t%v\t%s\n", i, r.Command, r.Value, fmtFields(r.Fields))
	}
	return tw.Flush()
}

func fmtFields(fields map[string]any) string {
	if msg, ok := fields["message"]; ok {
		return fmt.Sprint(msg)
	}
	return ""
}
