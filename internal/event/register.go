// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event

import (
	"context"

	"github.com/samber/oops"

	"github.com/stagecraft/stagecraft/internal/channel"
	"github.com/stagecraft/stagecraft/internal/plugin"
)

// RegisterEvents attaches a listener for every descriptor in cfg, in
// declaration order. A configuration without events is a no-op. Every
// descriptor is validated before the first one is attached, so a malformed
// entry leaves the plugin untouched.
func (m *Manager) RegisterEvents(ctx context.Context, p plugin.Plugin, cfg Config) error {
	descriptors := cfg.Descriptors()
	if len(descriptors) == 0 {
		return nil
	}
	if p == nil {
		return ErrNilPlugin()
	}

	for i, d := range descriptors {
		if err := d.Validate(); err != nil {
			return oops.With("plugin", p.ID()).With("index", i).Wrap(err)
		}
	}

	for _, d := range descriptors {
		if _, err := m.RegisterEvent(ctx, d, p); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvent records d.Type in the plugin's event log and attaches a
// listener that runs d's actions. Application-level types listen on the
// plugin itself; input-level types switch the display target to the pointer
// cursor and listen there.
//
// The returned subscription may be cancelled on teardown; nothing in the
// manager cancels it.
func (m *Manager) RegisterEvent(ctx context.Context, d *Descriptor, p plugin.Plugin) (*channel.Subscription, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNilPlugin()
	}

	p.RecordEvent(d.Type)

	level := Classify(d.Type, p)
	if level == InputLevel {
		p.Display().SetCursor(plugin.CursorPointer)
	}

	sub := Route(p, level).On(d.Type, func(ctx context.Context) error {
		return m.HandleActions(ctx, d, p)
	})
	recordRegistration(level)

	m.logger.DebugContext(ctx, "event registered",
		"plugin", p.ID(),
		"event_type", d.Type,
		"level", level.String(),
		"actions", len(d.Action),
		"subscription", sub.ID().String(),
	)
	return sub, nil
}
