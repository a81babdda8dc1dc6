// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package plugin

import (
	"maps"
	"slices"

	"github.com/stagecraft/stagecraft/internal/channel"
)

// Compile-time interface checks.
var (
	_ Plugin  = (*Component)(nil)
	_ Display = (*Sprite)(nil)
	_ Stage   = (*Params)(nil)
)

// Sprite is the display target of a Component.
type Sprite struct {
	*channel.Channel
	cursor  string
	visible bool
}

// NewSprite creates a visible sprite with the default cursor.
func NewSprite() *Sprite {
	return &Sprite{
		Channel: channel.New(),
		cursor:  CursorDefault,
		visible: true,
	}
}

// Cursor returns the current cursor hint.
func (s *Sprite) Cursor() string { return s.cursor }

// SetCursor changes the cursor hint.
func (s *Sprite) SetCursor(cursor string) { s.cursor = cursor }

// Visible reports whether the sprite is shown.
func (s *Sprite) Visible() bool { return s.visible }

// SetVisible shows or hides the sprite.
func (s *Sprite) SetVisible(visible bool) { s.visible = visible }

// Params is a mutable parameter mapping.
type Params struct {
	values map[string]any
}

// NewParams creates a parameter mapping seeded with a copy of values.
func NewParams(values map[string]any) *Params {
	p := &Params{values: make(map[string]any, len(values))}
	maps.Copy(p.values, values)
	return p
}

// Param returns the value stored under name.
func (p *Params) Param(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// SetParam stores value under name.
func (p *Params) SetParam(name string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	p.values[name] = value
}

// Names returns the parameter names in sorted order.
func (p *Params) Names() []string {
	return slices.Sorted(maps.Keys(p.values))
}

// Component is the stock Plugin implementation. It is driven from a single
// UI event loop and is not safe for concurrent use.
type Component struct {
	*channel.Channel
	id        string
	events    []string
	appEvents map[string]struct{}
	sprite    *Sprite
	params    *Params
}

// Option configures a Component during construction.
type Option func(*Component)

// WithAppEvents declares extra application-level event types.
func WithAppEvents(types ...string) Option {
	return func(c *Component) {
		for _, t := range types {
			c.appEvents[t] = struct{}{}
		}
	}
}

// WithParams seeds the stage parameters.
func WithParams(values map[string]any) Option {
	return func(c *Component) {
		c.params = NewParams(values)
	}
}

// WithCursor sets the initial cursor hint of the sprite.
func WithCursor(cursor string) Option {
	return func(c *Component) {
		c.sprite.cursor = cursor
	}
}

// NewComponent creates a component with an empty event log.
func NewComponent(id string, opts ...Option) *Component {
	c := &Component{
		Channel:   channel.New(),
		id:        id,
		appEvents: make(map[string]struct{}),
		sprite:    NewSprite(),
		params:    NewParams(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the component identifier.
func (c *Component) ID() string { return c.id }

// Events returns a copy of the event audit log.
func (c *Component) Events() []string {
	return slices.Clone(c.events)
}

// RecordEvent appends eventType to the audit log.
func (c *Component) RecordEvent(eventType string) {
	c.events = append(c.events, eventType)
}

// HasAppEvent reports whether eventType was declared application-level.
func (c *Component) HasAppEvent(eventType string) bool {
	_, ok := c.appEvents[eventType]
	return ok
}

// AddAppEvent declares eventType application-level from now on. Listeners
// attached earlier keep their channel.
func (c *Component) AddAppEvent(eventType string) {
	c.appEvents[eventType] = struct{}{}
}

// AppEvents returns the declared application-level types, sorted.
func (c *Component) AppEvents() []string {
	return slices.Sorted(maps.Keys(c.appEvents))
}

// Display returns the component's sprite.
func (c *Component) Display() Display { return c.sprite }

// Sprite returns the concrete display target.
func (c *Component) Sprite() *Sprite { return c.sprite }

// Stage returns the component's parameters.
func (c *Component) Stage() Stage { return c.params }

// Params returns the concrete parameter mapping.
func (c *Component) Params() *Params { return c.params }
