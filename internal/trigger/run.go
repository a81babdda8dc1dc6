// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package trigger

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
)

var tracer = otel.Tracer("stagecraft/trigger")

// Plugins lists and resolves registered plugins. *plugin.Registry
// satisfies it.
type Plugins interface {
	event.Lookup
	IDs() []string
}

// Dispatcher delivers events. *event.Manager satisfies it.
type Dispatcher interface {
	DispatchEvent(ctx context.Context, pluginID, eventType string) error
}

// Env is what a trigger script runs against.
type Env struct {
	Plugins Plugins
	Events  Dispatcher
}

type paramSetter interface {
	SetParam(name string, value any)
}

type appEventAdder interface {
	AddAppEvent(eventType string)
}

// Run executes the statements of script in order and stops at the first
// error.
func Run(ctx context.Context, script *Script, env Env) (err error) {
	if script == nil {
		return oops.Code(CodeInvalidScript).Errorf("trigger script is nil")
	}
	if env.Plugins == nil {
		return event.ErrNilCollaborator("plugins")
	}
	if env.Events == nil {
		return event.ErrNilCollaborator("events")
	}

	ctx, span := tracer.Start(ctx, "trigger.run",
		trace.WithAttributes(attribute.Int("trigger.statements", len(script.Statements))),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	for i, st := range script.Statements {
		if err := ctx.Err(); err != nil {
			return oops.With("statement", i).Wrap(err)
		}
		if err := runStatement(ctx, st, env); err != nil {
			return oops.With("statement", i).With("position", st.Pos.String()).Wrap(err)
		}
	}
	return nil
}

func runStatement(ctx context.Context, st *Statement, env Env) error {
	switch {
	case st.Fire != nil:
		return fire(ctx, st.Fire, env)
	case st.Set != nil:
		p, err := lookup(env, st.Set.Plugin)
		if err != nil {
			return err
		}
		setter, ok := p.Stage().(paramSetter)
		if !ok {
			return oops.Code(CodeUnsupported).With("plugin", p.ID()).Errorf("plugin %s parameters are read-only", p.ID())
		}
		setter.SetParam(st.Set.Param, st.Set.Value)
		slog.DebugContext(ctx, "trigger set param", "plugin", p.ID(), "param", st.Set.Param)
		return nil
	case st.AppEvent != nil:
		p, err := lookup(env, st.AppEvent.Plugin)
		if err != nil {
			return err
		}
		adder, ok := p.(appEventAdder)
		if !ok {
			return oops.Code(CodeUnsupported).With("plugin", p.ID()).Errorf("plugin %s cannot declare app events", p.ID())
		}
		adder.AddAppEvent(st.AppEvent.Type)
		return nil
	default:
		return nil
	}
}

// fire dispatches to every registered plugin whose id matches, in sorted id
// order.
func fire(ctx context.Context, f *Fire, env Env) error {
	g, err := glob.Compile(f.Pattern)
	if err != nil {
		return oops.Code(CodeInvalidPattern).With("pattern", f.Pattern).Wrap(err)
	}

	ids := env.Plugins.IDs()
	slices.Sort(ids)
	matched := 0
	for _, id := range ids {
		if !g.Match(id) {
			continue
		}
		matched++
		if err := env.Events.DispatchEvent(ctx, id, f.Type); err != nil {
			return err
		}
	}
	if matched == 0 {
		return oops.Code(CodeNoMatch).
			With("pattern", f.Pattern).
			With("event_type", f.Type).
			Errorf("no plugin matches %q", f.Pattern)
	}
	slog.DebugContext(ctx, "trigger fired", "pattern", f.Pattern, "event_type", f.Type, "matched", matched)
	return nil
}

func lookup(env Env, id string) (plugin.Plugin, error) {
	p, ok := env.Plugins.Plugin(id)
	if !ok {
		return nil, event.ErrPluginNotFound(id)
	}
	return p, nil
}
