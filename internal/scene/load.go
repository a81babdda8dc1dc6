// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package scene

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/samber/oops"

	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
	"github.com/stagecraft/stagecraft/internal/trigger"
)

// Registry receives the components of a loaded scene.
// *plugin.Registry satisfies it.
type Registry interface {
	Add(p plugin.Plugin) error
	Remove(id string) bool
}

// EventRegistrar attaches event configurations. *event.Manager satisfies it.
type EventRegistrar interface {
	RegisterEvents(ctx context.Context, p plugin.Plugin, cfg event.Config) error
}

// ScriptLoader stores named scripts. *script.Host satisfies it.
type ScriptLoader interface {
	Load(ctx context.Context, name, code string) error
}

// Load builds the scene's components, adds them to registry and registers
// their events with events. On failure every component added by this call
// is removed again.
func Load(ctx context.Context, s *Scene, registry Registry, events EventRegistrar) (_ []*plugin.Component, err error) {
	if s == nil {
		return nil, invalid("scene is nil")
	}
	if registry == nil {
		return nil, event.ErrNilCollaborator("registry")
	}
	if events == nil {
		return nil, event.ErrNilCollaborator("events")
	}

	loaded := make([]*plugin.Component, 0, len(s.Plugins))
	defer func() {
		if err == nil {
			return
		}
		for _, c := range loaded {
			registry.Remove(c.ID())
		}
	}()

	for _, spec := range s.Plugins {
		c := spec.Component()
		if err := registry.Add(c); err != nil {
			return nil, oops.With("scene", s.Title).Wrap(err)
		}
		loaded = append(loaded, c)

		if err := events.RegisterEvents(ctx, c, spec.Config); err != nil {
			return nil, oops.With("scene", s.Title).With("plugin", spec.ID).Wrap(err)
		}
	}

	slog.InfoContext(ctx, "scene loaded",
		"scene", s.Title,
		"version", s.Version,
		"plugins", len(loaded))
	return loaded, nil
}

// LoadScripts hands the scene's named scripts to loader in name order.
func (s *Scene) LoadScripts(ctx context.Context, loader ScriptLoader) error {
	for _, name := range slices.Sorted(maps.Keys(s.Scripts)) {
		if err := loader.Load(ctx, name, s.Scripts[name]); err != nil {
			return err
		}
	}
	return nil
}

// Trigger parses the named trigger script.
func (s *Scene) Trigger(name string) (*trigger.Script, error) {
	src, ok := s.Triggers[name]
	if !ok {
		return nil, oops.Code(CodeInvalidScene).With("trigger", name).Errorf("scene has no trigger %q", name)
	}
	return trigger.Parse(name, src)
}

// TriggerNames returns the scene's trigger names in sorted order.
func (s *Scene) TriggerNames() []string {
	return slices.Sorted(maps.Keys(s.Triggers))
}
