// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package animation plays the animation actions fired by plugin events.
package animation

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
)

var tracer = otel.Tracer("stagecraft/animation")

// Compile-time interface check.
var _ event.AnimationHandler = (*Player)(nil)

// DefaultName is used when an action names no animation.
const DefaultName = "default"

// Error codes for animation failures.
const (
	CodeInvalidDuration  = "INVALID_DURATION"
	CodeUnknownAnimation = "UNKNOWN_ANIMATION"
)

// Tween is one scheduled animation step.
type Tween struct {
	Plugin   string
	Name     string
	Value    any
	Duration time.Duration
	At       time.Time
}

// Timeline is an ordered, concurrency-safe list of tweens.
type Timeline struct {
	mu     sync.Mutex
	tweens []Tween
}

// Add appends a tween.
func (t *Timeline) Add(tw Tween) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tweens = append(t.tweens, tw)
}

// Tweens returns a copy of the scheduled tweens in order.
func (t *Timeline) Tweens() []Tween {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.tweens)
}

// Len returns the number of scheduled tweens.
func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tweens)
}

// Total returns the summed duration of all tweens.
func (t *Timeline) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, tw := range t.tweens {
		total += tw.Duration
	}
	return total
}

// Player schedules animation actions onto a Timeline.
type Player struct {
	timeline *Timeline
	allowed  map[string]struct{} // nil allows every name
	now      func() time.Time
}

// Option configures a Player.
type Option func(*Player)

// WithAllowed restricts the animation names the player accepts.
func WithAllowed(names ...string) Option {
	return func(p *Player) {
		p.allowed = make(map[string]struct{}, len(names)+1)
		p.allowed[DefaultName] = struct{}{}
		for _, n := range names {
			p.allowed[n] = struct{}{}
		}
	}
}

// WithTimeline schedules onto an existing timeline.
func WithTimeline(t *Timeline) Option {
	return func(p *Player) {
		if t != nil {
			p.timeline = t
		}
	}
}

// NewPlayer creates a player with an empty timeline.
func NewPlayer(opts ...Option) *Player {
	p := &Player{timeline: &Timeline{}, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Timeline returns the player's timeline.
func (p *Player) Timeline() *Timeline {
	return p.timeline
}

// Handle schedules the animation described by action for plugin pl.
func (p *Player) Handle(ctx context.Context, action *event.Action, pl plugin.Plugin) error {
	if action == nil || pl == nil {
		return nil
	}
	name := action.StringField("animation")
	if name == "" {
		name = DefaultName
	}

	_, span := tracer.Start(ctx, "animation.play",
		trace.WithAttributes(
			attribute.String("animation.name", name),
			attribute.String("plugin.id", pl.ID()),
		),
	)
	defer span.End()

	if p.allowed != nil {
		if _, ok := p.allowed[name]; !ok {
			recordTween(name, StatusError)
			return oops.Code(CodeUnknownAnimation).
				With("animation", name).
				With("plugin", pl.ID()).
				Errorf("unknown animation: %s", name)
		}
	}

	var d time.Duration
	if raw := action.StringField("duration"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			recordTween(name, StatusError)
			return oops.Code(CodeInvalidDuration).
				With("duration", raw).
				With("plugin", pl.ID()).
				Errorf("invalid animation duration %q", raw)
		}
		d = parsed
	}

	p.timeline.Add(Tween{
		Plugin:   pl.ID(),
		Name:     name,
		Value:    action.Value,
		Duration: d,
		At:       p.now(),
	})
	recordTween(name, StatusSuccess)
	slog.DebugContext(ctx, "animation scheduled",
		"plugin", pl.ID(),
		"animation", name,
		"duration", d)
	return nil
}
