// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package command

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stagecraft/stagecraft/internal/event"
)

var tracer = otel.Tracer("stagecraft/command")

// Compile-time interface check.
var _ event.CommandHandler = (*Dispatcher)(nil)

// Dispatcher looks up and runs the command named by an action.
type Dispatcher struct {
	registry *Registry
	services *Services
}

// DispatcherOption configures a Dispatcher during construction.
type DispatcherOption func(*Dispatcher)

// WithServices sets the collaborators passed to every handler.
func WithServices(s *Services) DispatcherOption {
	return func(d *Dispatcher) {
		if s != nil {
			d.services = s
		}
	}
}

// Services returns the dispatcher's collaborators. Fields may be set after
// construction, before the first dispatch.
func (d *Dispatcher) Services() *Services {
	return d.services
}

// NewDispatcher creates a command dispatcher over registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry()
	}
	d := &Dispatcher{registry: registry, services: &Services{}}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Handle executes the command named by action.
func (d *Dispatcher) Handle(ctx context.Context, action *event.Action) (err error) {
	if action == nil {
		return ErrInvalidArgs("", "an action")
	}
	name := NameOf(action)
	metrics := newMetricsRecorder(name)
	defer metrics.record()

	ctx, span := tracer.Start(ctx, "command.execute",
		trace.WithAttributes(
			attribute.String("command.name", name),
			attribute.String("action.type", action.Type),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	entry, ok := d.registry.Get(name)
	if !ok {
		metrics.status = StatusNotFound
		return ErrUnknownCommand(name)
	}
	metrics.source = entry.Source
	span.SetAttributes(attribute.String("command.source", entry.Source))

	exec := &Execution{Name: name, Action: action, Services: d.services}
	if err = entry.Handler(ctx, exec); err != nil {
		metrics.status = StatusError
		slog.WarnContext(ctx, "command execution failed",
			"command", name,
			"source", entry.Source,
			"error", err,
		)
		return err
	}
	return nil
}
