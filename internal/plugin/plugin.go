// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package plugin defines the runtime UI components that declarative events
// bind to, and the registry used to look them up by id.
package plugin

import (
	"github.com/stagecraft/stagecraft/internal/channel"
)

// Cursor hints understood by display targets.
const (
	CursorDefault = "default"
	CursorPointer = "pointer"
)

// Plugin is a UI component instance. Its own channel carries
// application-level events; input-level events go to its Display.
type Plugin interface {
	channel.Target

	// ID returns the component identifier.
	ID() string

	// Events returns the audit log of every event type registered on the
	// plugin, in registration order.
	Events() []string

	// RecordEvent appends an event type to the audit log.
	RecordEvent(eventType string)

	// HasAppEvent reports whether the plugin declared eventType as an
	// additional application-level event.
	HasAppEvent(eventType string) bool

	// Display returns the visual target of the plugin.
	Display() Display

	// Stage returns the runtime parameter context of the plugin.
	Stage() Stage
}

// Display is the visual representation of a plugin. It owns a listener
// channel for pointer/touch input and an interactivity hint.
type Display interface {
	channel.Target

	Cursor() string
	SetCursor(cursor string)
}

// Stage holds the runtime parameters consulted when resolving actions.
type Stage interface {
	Param(name string) (any, bool)
	SetParam(name string, value any)
}
