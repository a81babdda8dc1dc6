// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package event binds declarative event descriptors to plugins and routes
// the resulting triggers into animation and command actions.
package event

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/stagecraft/stagecraft/internal/plugin"
)

var tracer = otel.Tracer("stagecraft/event")

// Lookup resolves plugins by id.
type Lookup interface {
	Plugin(id string) (plugin.Plugin, bool)
}

// AnimationHandler plays animation actions. It receives the owning plugin.
type AnimationHandler interface {
	Handle(ctx context.Context, action *Action, p plugin.Plugin) error
}

// CommandHandler executes every non-animation action. It receives no plugin
// context.
type CommandHandler interface {
	Handle(ctx context.Context, action *Action) error
}

// AnimationFunc adapts a function to AnimationHandler.
type AnimationFunc func(ctx context.Context, action *Action, p plugin.Plugin) error

// Handle calls f(ctx, action, p).
func (f AnimationFunc) Handle(ctx context.Context, action *Action, p plugin.Plugin) error {
	return f(ctx, action, p)
}

// CommandFunc adapts a function to CommandHandler.
type CommandFunc func(ctx context.Context, action *Action) error

// Handle calls f(ctx, action).
func (f CommandFunc) Handle(ctx context.Context, action *Action) error {
	return f(ctx, action)
}

// Manager registers plugin events and dispatches their actions.
// It holds no global state; every collaborator is injected.
type Manager struct {
	lookup    Lookup
	animation AnimationHandler
	command   CommandHandler
	logger    *slog.Logger
}

// ManagerOption configures a Manager during construction.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for registration and dispatch messages.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates an event manager. Returns an error if any collaborator
// is nil.
func NewManager(lookup Lookup, animation AnimationHandler, command CommandHandler, opts ...ManagerOption) (*Manager, error) {
	if lookup == nil {
		return nil, ErrNilCollaborator("lookup")
	}
	if animation == nil {
		return nil, ErrNilCollaborator("animation handler")
	}
	if command == nil {
		return nil, ErrNilCollaborator("command handler")
	}
	m := &Manager{
		lookup:    lookup,
		animation: animation,
		command:   command,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m, nil
}
