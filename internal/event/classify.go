// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event

import (
	"slices"

	"github.com/stagecraft/stagecraft/internal/channel"
	"github.com/stagecraft/stagecraft/internal/plugin"
)

// Level tells which channel of a plugin an event type belongs to.
type Level uint8

const (
	// AppLevel events are lifecycle events delivered on the plugin's own
	// channel.
	AppLevel Level = iota
	// InputLevel events are pointer/touch events delivered on the plugin's
	// display target.
	InputLevel
)

func (l Level) String() string {
	switch l {
	case AppLevel:
		return "app"
	case InputLevel:
		return "input"
	default:
		return "unknown"
	}
}

// appEventTypes is the fixed set of lifecycle events that are
// application-level for every plugin.
var appEventTypes = []string{"enter", "exit", "remove", "add", "replace", "show", "hide"}

// AppEventTypes returns the fixed application-level event types.
func AppEventTypes() []string {
	return slices.Clone(appEventTypes)
}

// IsAppEventType reports whether eventType is in the fixed
// application-level set.
func IsAppEventType(eventType string) bool {
	return slices.Contains(appEventTypes, eventType)
}

// Classify decides whether eventType is application-level or input-level for
// p. It is deterministic and has no side effects.
func Classify(eventType string, p plugin.Plugin) Level {
	if IsAppEventType(eventType) {
		return AppLevel
	}
	if p != nil && p.HasAppEvent(eventType) {
		return AppLevel
	}
	return InputLevel
}

// Route returns the channel of p that carries events of the given level.
func Route(p plugin.Plugin, level Level) channel.Target {
	if level == AppLevel {
		return p
	}
	return p.Display()
}
