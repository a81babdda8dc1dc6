// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package stage wires the event manager, command dispatcher, script host and
// animation player into one playable stage.
package stage

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/stagecraft/stagecraft/internal/animation"
	"github.com/stagecraft/stagecraft/internal/command"
	"github.com/stagecraft/stagecraft/internal/command/handlers"
	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
	"github.com/stagecraft/stagecraft/internal/scene"
	"github.com/stagecraft/stagecraft/internal/script"
	"github.com/stagecraft/stagecraft/internal/trigger"
)

// Stage is a fully wired runtime for one scene.
type Stage struct {
	plugins  *plugin.Registry
	commands *command.Registry
	manager  *event.Manager
	player   *animation.Player
	scripts  *script.Host
	log      *command.Log
	scene    *scene.Scene
	logger   *slog.Logger
}

// Option configures a Stage.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	animations []string
}

// WithLogger sets the logger used by the stage and its event manager.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAnimations restricts the animation names the stage accepts.
func WithAnimations(names ...string) Option {
	return func(c *config) {
		c.animations = names
	}
}

// New builds an empty stage with the built-in commands registered.
func New(opts ...Option) (*Stage, error) {
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var playerOpts []animation.Option
	if cfg.animations != nil {
		playerOpts = append(playerOpts, animation.WithAllowed(cfg.animations...))
	}

	s := &Stage{
		plugins:  plugin.NewRegistry(),
		commands: command.NewRegistry(),
		player:   animation.NewPlayer(playerOpts...),
		scripts:  script.NewHost(),
		log:      command.NewLog(),
		logger:   cfg.logger,
	}
	handlers.RegisterAll(s.commands)

	services := &command.Services{Plugins: s.plugins, Log: s.log}
	dispatcher, err := command.NewDispatcher(s.commands, command.WithServices(services))
	if err != nil {
		return nil, err
	}
	s.manager, err = event.NewManager(s.plugins, s.player, dispatcher, event.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}
	// The manager needs the dispatcher and the event command needs the
	// manager, so the loop is closed after both exist.
	services.Events = s.manager
	return s, nil
}

// Load loads sc onto the stage. Scripts are compiled first and registered as
// commands only once every plugin has loaded, so a failed Load leaves the
// stage as it was.
func (s *Stage) Load(ctx context.Context, sc *scene.Scene) error {
	if s.scene != nil {
		return oops.Code(scene.CodeInvalidScene).Errorf("stage already holds scene %q", s.scene.Title)
	}
	if sc == nil {
		return oops.Code(scene.CodeInvalidScene).Errorf("scene is nil")
	}

	host := script.NewHost()
	if err := sc.LoadScripts(ctx, host); err != nil {
		_ = host.Close(ctx)
		return err
	}
	components, err := scene.Load(ctx, sc, s.plugins, s.manager)
	if err != nil {
		_ = host.Close(ctx)
		return err
	}
	if err := host.Register(s.commands); err != nil {
		for _, c := range components {
			s.plugins.Remove(c.ID())
		}
		_ = host.Close(ctx)
		return err
	}

	if err := s.scripts.Close(ctx); err != nil {
		s.logger.WarnContext(ctx, "closing previous script host", "error", err)
	}
	s.scripts = host
	s.scene = sc
	return nil
}

// Dispatch delivers an event to a plugin on the stage.
func (s *Stage) Dispatch(ctx context.Context, pluginID, eventType string) error {
	return s.manager.DispatchEvent(ctx, pluginID, eventType)
}

// RunTrigger runs the named trigger script of the loaded scene.
func (s *Stage) RunTrigger(ctx context.Context, name string) error {
	if s.scene == nil {
		return oops.Code(scene.CodeInvalidScene).Errorf("no scene loaded")
	}
	ts, err := s.scene.Trigger(name)
	if err != nil {
		return err
	}
	return s.Run(ctx, ts)
}

// Run executes a trigger script against the stage.
func (s *Stage) Run(ctx context.Context, ts *trigger.Script) error {
	return trigger.Run(ctx, ts, trigger.Env{Plugins: s.plugins, Events: s.manager})
}

// Plugins returns the stage's plugin registry.
func (s *Stage) Plugins() *plugin.Registry { return s.plugins }

// Commands returns the stage's command registry.
func (s *Stage) Commands() *command.Registry { return s.commands }

// Manager returns the stage's event manager.
func (s *Stage) Manager() *event.Manager { return s.manager }

// Timeline returns the scheduled animations.
func (s *Stage) Timeline() *animation.Timeline { return s.player.Timeline() }

// Log returns the command journal.
func (s *Stage) Log() *command.Log { return s.log }

// Close releases the script host.
func (s *Stage) Close(ctx context.Context) error {
	return s.scripts.Close(ctx)
}
