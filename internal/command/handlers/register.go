// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package handlers provides the built-in command handlers.
package handlers

import (
	"github.com/stagecraft/stagecraft/internal/command"
)

// RegisterAll registers all core command handlers with the registry.
// Panics if any registration fails (indicates a programming error).
func RegisterAll(reg *command.Registry) {
	mustRegister := func(entry command.Entry) {
		if err := reg.Register(entry); err != nil {
			panic("failed to register core command " + entry.Name + ": " + err.Error())
		}
	}

	// Visibility commands
	mustRegister(command.Entry{
		Name:    "show",
		Handler: ShowHandler,
		Help:    "Show a plugin's display target",
		Usage:   "asset: <plugin id>",
		Source:  command.SourceCore,
	})
	mustRegister(command.Entry{
		Name:    "hide",
		Handler: HideHandler,
		Help:    "Hide a plugin's display target",
		Usage:   "asset: <plugin id>",
		Source:  command.SourceCore,
	})
	mustRegister(command.Entry{
		Name:    "toggle",
		Handler: ToggleHandler,
		Help:    "Toggle a plugin's display target",
		Usage:   "asset: <plugin id>",
		Source:  command.SourceCore,
	})

	// Event forwarding
	mustRegister(command.Entry{
		Name:    "event",
		Handler: EventHandler,
		Help:    "Dispatch an event on another plugin",
		Usage:   "asset: <plugin id>, value or event: <event type>",
		Source:  command.SourceCore,
	})

	// Journal
	mustRegister(command.Entry{
		Name:    "log",
		Handler: LogHandler,
		Help:    "Record the action in the scene log",
		Usage:   "message: <text> (optional)",
		Source:  command.SourceCore,
	})
}
