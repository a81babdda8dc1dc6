// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package plugin

import "github.com/samber/oops"

// Error codes for plugin registry failures.
const (
	CodeInvalidPlugin   = "INVALID_PLUGIN"
	CodeDuplicatePlugin = "DUPLICATE_PLUGIN"
)

// ErrInvalidPlugin creates an error for a plugin that cannot be registered.
func ErrInvalidPlugin(reason string) error {
	return oops.Code(CodeInvalidPlugin).
		With("reason", reason).
		Errorf("invalid plugin: %s", reason)
}

// ErrDuplicatePlugin creates an error for an id that is already registered.
func ErrDuplicatePlugin(id string) error {
	return oops.Code(CodeDuplicatePlugin).
		With("plugin", id).
		Errorf("plugin %q already registered", id)
}
