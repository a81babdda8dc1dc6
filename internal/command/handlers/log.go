// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package handlers

import (
	"context"
	"log/slog"

	"github.com/stagecraft/stagecraft/internal/command"
)

// LogHandler records the action into the command journal and emits it as
// an info log line.
func LogHandler(ctx context.Context, exec *command.Execution) error {
	if exec.Services == nil || exec.Services.Log == nil {
		return command.ErrMissingService(exec.Name, "log")
	}
	exec.Services.Log.Append(command.NewRecord(exec, command.SourceCore))
	slog.InfoContext(ctx, "scene log",
		"command", exec.Name,
		"value", exec.Action.Value,
		"message", exec.Action.StringField("message"))
	return nil
}
