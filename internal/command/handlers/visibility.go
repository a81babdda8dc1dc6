// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package handlers

import (
	"context"
	"log/slog"

	"github.com/stagecraft/stagecraft/internal/command"
	"github.com/stagecraft/stagecraft/internal/event"
)

// visibility is implemented by display targets that can be shown or hidden.
type visibility interface {
	Visible() bool
	SetVisible(visible bool)
}

// ShowHandler makes the display target of the asset plugin visible.
func ShowHandler(ctx context.Context, exec *command.Execution) error {
	return applyVisibility(ctx, exec, func(bool) bool { return true })
}

// HideHandler hides the display target of the asset plugin.
func HideHandler(ctx context.Context, exec *command.Execution) error {
	return applyVisibility(ctx, exec, func(bool) bool { return false })
}

// ToggleHandler flips the visibility of the asset plugin's display target.
func ToggleHandler(ctx context.Context, exec *command.Execution) error {
	return applyVisibility(ctx, exec, func(v bool) bool { return !v })
}

func applyVisibility(ctx context.Context, exec *command.Execution, next func(bool) bool) error {
	id := exec.Action.StringField("asset")
	if id == "" {
		return command.ErrInvalidArgs(exec.Name, "asset: <plugin id>")
	}
	if exec.Services == nil || exec.Services.Plugins == nil {
		return command.ErrMissingService(exec.Name, "plugins")
	}

	p, ok := exec.Services.Plugins.Plugin(id)
	if !ok {
		return event.ErrPluginNotFound(id)
	}
	target, ok := p.Display().(visibility)
	if !ok {
		return command.ErrNoVisibility(id)
	}

	visible := next(target.Visible())
	target.SetVisible(visible)
	slog.DebugContext(ctx, "visibility changed",
		"plugin", id,
		"command", exec.Name,
		"visible", visible)
	return nil
}
