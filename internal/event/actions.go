// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stagecraft/stagecraft/internal/plugin"
)

// HandleActions runs the descriptor's actions in declared order. The first
// failing action aborts the rest of the sequence and its error is returned.
func (m *Manager) HandleActions(ctx context.Context, d *Descriptor, p plugin.Plugin) error {
	if d == nil {
		return nil
	}
	if p == nil {
		return ErrNilPlugin()
	}
	for i, action := range d.Action {
		if err := m.HandleAction(ctx, action, p); err != nil {
			m.logger.WarnContext(ctx, "action chain aborted",
				"plugin", p.ID(),
				"event_type", d.Type,
				"index", i,
				"skipped", len(d.Action)-i-1,
				"error", err,
			)
			return err
		}
	}
	return nil
}

// HandleAction resolves the action's parameter and hands it to its handler.
// When Param is set, Value is overwritten from the plugin's stage, or set to
// "" if the stage has no such parameter. Animation actions go to the
// animation handler together with p; every other type goes to the command
// handler on its own.
func (m *Manager) HandleAction(ctx context.Context, action *Action, p plugin.Plugin) (err error) {
	if action == nil {
		return nil
	}
	if p == nil {
		return ErrNilPlugin()
	}

	route := RouteCommand
	if action.Type == ActionAnimation {
		route = RouteAnimation
	}

	ctx, span := tracer.Start(ctx, "event.handle_action",
		trace.WithAttributes(
			attribute.String("plugin.id", p.ID()),
			attribute.String("action.type", action.Type),
			attribute.String("action.route", route),
		),
	)
	start := time.Now()
	defer func() {
		status := StatusSuccess
		if err != nil {
			status = StatusError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		recordAction(route, status, time.Since(start))
		span.End()
	}()

	if action.Param != "" {
		action.Value = ResolveParam(p.Stage(), action.Param)
	}

	if route == RouteAnimation {
		err = m.animation.Handle(ctx, action, p)
	} else {
		err = m.command.Handle(ctx, action)
	}
	if err != nil {
		return ErrDownstreamFailure(route, action.Type, p.ID(), err)
	}
	return nil
}

// ResolveParam looks name up in stage. Missing or nil parameters resolve to
// the empty string; the lookup never fails.
func ResolveParam(stage plugin.Stage, name string) any {
	if stage == nil {
		return ""
	}
	v, ok := stage.Param(name)
	if !ok || v == nil {
		return ""
	}
	return v
}
