// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package command executes the non-animation actions fired by plugin events.
package command

import (
	"context"

	"github.com/stagecraft/stagecraft/internal/event"
)

// Sources for registered commands.
const (
	SourceCore = "core"
	SourceLua  = "lua"
)

// Handler is the function signature for command handlers.
type Handler func(ctx context.Context, exec *Execution) error

// Entry represents a registered command.
type Entry struct {
	Name    string  // canonical name (e.g., "show")
	Handler Handler // Go handler or Lua runner
	Help    string  // short description (one line)
	Usage   string  // action fields the command reads
	Source  string  // "core" or "lua"
}

// EventDispatcher delivers a named event to a registered plugin.
// *event.Manager satisfies it.
type EventDispatcher interface {
	DispatchEvent(ctx context.Context, pluginID, eventType string) error
}

// Services provides the collaborators command handlers work against.
// Fields are optional; handlers needing a missing service fail.
type Services struct {
	Plugins event.Lookup
	Events  EventDispatcher
	Log     *Log
}

// Execution provides context for one command execution.
type Execution struct {
	// Name is the resolved command name.
	Name string
	// Action is the resolved action, including its Value.
	Action *event.Action
	// Services is shared by every execution of a dispatcher.
	Services *Services
}

// NameOf returns the command an action invokes: its "command" field, or
// the action type when that field is absent.
func NameOf(a *event.Action) string {
	if name := a.StringField("command"); name != "" {
		return name
	}
	return a.Type
}
