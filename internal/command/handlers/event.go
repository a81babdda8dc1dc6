// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package handlers

import (
	"context"
	"fmt"

	"github.com/samber/oops"

	"github.com/stagecraft/stagecraft/internal/command"
)

// EventHandler dispatches an event on the asset plugin. The event type is
// the action's resolved value, or its "event" field when the value is empty.
func EventHandler(ctx context.Context, exec *command.Execution) error {
	id := exec.Action.StringField("asset")
	eventType := valueString(exec.Action.Value)
	if eventType == "" {
		eventType = exec.Action.StringField("event")
	}
	if id == "" || eventType == "" {
		return command.ErrInvalidArgs(exec.Name, "asset: <plugin id>, value or event: <event type>")
	}
	if exec.Services == nil || exec.Services.Events == nil {
		return command.ErrMissingService(exec.Name, "events")
	}

	if err := exec.Services.Events.DispatchEvent(ctx, id, eventType); err != nil {
		return oops.With("command", exec.Name).
			With("event", eventType).
			Wrap(err)
	}
	return nil
}

func valueString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
