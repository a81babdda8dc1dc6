// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package command

import (
	"github.com/samber/oops"
)

// Error codes for command dispatch failures.
const (
	CodeUnknownCommand = "UNKNOWN_COMMAND"
	CodeInvalidArgs    = "INVALID_ARGS"
	CodeNilRegistry    = "NIL_REGISTRY"
	CodeNoVisibility   = "NO_VISIBILITY"
	CodeMissingService = "MISSING_SERVICE"
)

// ErrUnknownCommand creates an error for an unregistered command.
func ErrUnknownCommand(cmd string) error {
	return oops.Code(CodeUnknownCommand).
		With("command", cmd).
		Errorf("unknown command: %s", cmd)
}

// ErrInvalidArgs creates an error for an action missing required fields.
func ErrInvalidArgs(cmd, usage string) error {
	return oops.Code(CodeInvalidArgs).
		With("command", cmd).
		With("usage", usage).
		Errorf("invalid arguments for %s: expected %s", cmd, usage)
}

// ErrNilRegistry is returned when a dispatcher is built without a registry.
func ErrNilRegistry() error {
	return oops.Code(CodeNilRegistry).Errorf("command registry must not be nil")
}

// ErrNoVisibility creates an error for a plugin whose display target cannot
// be shown or hidden.
func ErrNoVisibility(id string) error {
	return oops.Code(CodeNoVisibility).
		With("plugin", id).
		Errorf("plugin %s has no visibility control", id)
}

// ErrMissingService creates an error for a handler whose collaborator is
// not wired into the dispatcher's services.
func ErrMissingService(cmd, service string) error {
	return oops.Code(CodeMissingService).
		With("command", cmd).
		With("service", service).
		Errorf("%s requires the %s service", cmd, service)
}
