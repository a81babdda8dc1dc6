// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event

import (
	"github.com/samber/oops"
)

// Error codes for event binding and dispatch failures.
const (
	CodePluginNotFound      = "PLUGIN_NOT_FOUND"
	CodeMalformedDescriptor = "MALFORMED_DESCRIPTOR"
	CodeDownstreamFailure   = "DOWNSTREAM_FAILURE"
	CodeNilCollaborator     = "NIL_COLLABORATOR"
	CodeNilPlugin           = "NIL_PLUGIN"
	CodeInvalidConfig       = "INVALID_CONFIG"
	CodeDepthExceeded       = "DISPATCH_DEPTH_EXCEEDED"
)

// downstreamKey marks errors raised by the animation or command handler.
// Its value is the route the action took.
const downstreamKey = "downstream"

// ErrPluginNotFound creates an error for an unknown plugin id.
func ErrPluginNotFound(id string) error {
	return oops.Code(CodePluginNotFound).
		With("plugin", id).
		Errorf("plugin not found: %s", id)
}

// ErrMalformedDescriptor creates an error for an unusable event descriptor.
func ErrMalformedDescriptor(reason string) error {
	return oops.Code(CodeMalformedDescriptor).
		With("reason", reason).
		Errorf("malformed event descriptor: %s", reason)
}

// ErrDepthExceeded creates an error for an event chain that re-enters
// DispatchEvent more than MaxDispatchDepth times.
func ErrDepthExceeded(id, eventType string) error {
	return oops.Code(CodeDepthExceeded).
		With("plugin", id).
		With("event_type", eventType).
		With("max_depth", MaxDispatchDepth).
		Errorf("dispatch depth exceeded firing %s on %s", eventType, id)
}

// ErrNilCollaborator creates an error for a missing constructor dependency.
func ErrNilCollaborator(name string) error {
	return oops.Code(CodeNilCollaborator).
		With("collaborator", name).
		Errorf("%s must not be nil", name)
}

// ErrNilPlugin creates an error for registration against a nil plugin.
func ErrNilPlugin() error {
	return oops.Code(CodeNilPlugin).Errorf("plugin must not be nil")
}

// ErrInvalidConfig wraps a decoding failure of a declarative configuration.
func ErrInvalidConfig(cause error) error {
	return oops.Code(CodeInvalidConfig).Wrapf(cause, "invalid event configuration")
}

// ErrDownstreamFailure wraps an error returned by the animation or command
// handler. If the cause carries its own oops code, that code is the one
// reported by the chain; use IsDownstreamFailure to detect the wrapper.
func ErrDownstreamFailure(route, actionType, pluginID string, cause error) error {
	return oops.Code(CodeDownstreamFailure).
		With(downstreamKey, route).
		With("action_type", actionType).
		With("plugin", pluginID).
		Wrapf(cause, "%s handler failed", route)
}

// IsDownstreamFailure reports whether err was raised by an action handler.
func IsDownstreamFailure(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	_, ok = oopsErr.Context()[downstreamKey]
	return ok
}
