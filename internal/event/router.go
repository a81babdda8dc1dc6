// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxDispatchDepth bounds how many DispatchEvent calls may be nested in one
// context, as happens when an action fires another event.
const MaxDispatchDepth = 32

type depthKey struct{}

// dispatchDepth returns the number of DispatchEvent calls enclosing ctx.
func dispatchDepth(ctx context.Context) int {
	depth, _ := ctx.Value(depthKey{}).(int)
	return depth
}

// DispatchEvent fires eventType on the plugin with the given id. The event
// goes to the plugin's own channel or its display target depending on
// Classify; DispatchEvent never runs actions itself, it relies on listeners
// attached by RegisterEvent. Firing a type with no listener is a no-op.
// Chains nested deeper than MaxDispatchDepth fail with
// DISPATCH_DEPTH_EXCEEDED.
func (m *Manager) DispatchEvent(ctx context.Context, id, eventType string) (err error) {
	depth := dispatchDepth(ctx) + 1
	if depth > MaxDispatchDepth {
		recordDispatch("unknown", StatusError)
		return ErrDepthExceeded(id, eventType)
	}
	ctx = context.WithValue(ctx, depthKey{}, depth)

	ctx, span := tracer.Start(ctx, "event.dispatch",
		trace.WithAttributes(
			attribute.String("plugin.id", id),
			attribute.String("event.type", eventType),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, ok := m.lookup.Plugin(id)
	if !ok || p == nil {
		recordDispatch("unknown", StatusNotFound)
		return ErrPluginNotFound(id)
	}

	level := Classify(eventType, p)
	span.SetAttributes(attribute.String("event.level", level.String()))

	m.logger.DebugContext(ctx, "dispatching event",
		"plugin", id,
		"event_type", eventType,
		"level", level.String(),
	)

	err = Route(p, level).Dispatch(ctx, eventType)
	if err != nil {
		recordDispatch(level.String(), StatusError)
		return err
	}
	recordDispatch(level.String(), StatusSuccess)
	return nil
}
