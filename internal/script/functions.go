// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

//nolint:gocritic // captLocal: L is the idiomatic name for lua.LState
package script

import (
	"log/slog"

	"github.com/oklog/ulid/v2"
	lua "github.com/yuin/gopher-lua"

	"github.com/stagecraft/stagecraft/internal/command"
	"github.com/stagecraft/stagecraft/internal/plugin"
)

// ModuleName is the Lua global holding the host functions.
const ModuleName = "stagecraft"

// paramSetter is implemented by stages whose parameters can be written.
type paramSetter interface {
	SetParam(name string, value any)
}

// functions exposes scene services to one script execution.
type functions struct {
	name     string
	services *command.Services
}

// register adds the host function module to a Lua state.
func (f *functions) register(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "log", L.NewFunction(f.logFn))
	L.SetField(mod, "new_id", L.NewFunction(newIDFn))
	L.SetField(mod, "dispatch", L.NewFunction(f.dispatchFn))
	L.SetField(mod, "param", L.NewFunction(f.paramFn))
	L.SetField(mod, "set_param", L.NewFunction(f.setParamFn))
	L.SetGlobal(ModuleName, mod)
}

// pushError pushes nil followed by an error string and returns 2.
func pushError(L *lua.LState, errMsg string) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(errMsg))
	return 2
}

// pushSuccess pushes a value followed by nil and returns 2.
func pushSuccess(L *lua.LState, value lua.LValue) int {
	L.Push(value)
	L.Push(lua.LNil)
	return 2
}

func (f *functions) logFn(L *lua.LState) int {
	level := L.CheckString(1)
	message := L.CheckString(2)

	logger := slog.Default().With("script", f.name)
	ctx := L.Context()
	switch level {
	case "debug":
		logger.DebugContext(ctx, message)
	case "warn":
		logger.WarnContext(ctx, message)
	case "error":
		logger.ErrorContext(ctx, message)
	default:
		logger.InfoContext(ctx, message)
	}
	return 0
}

func newIDFn(L *lua.LState) int {
	L.Push(lua.LString(ulid.Make().String()))
	return 1
}

// dispatchFn: stagecraft.dispatch(id, type) -> true, nil | nil, err
func (f *functions) dispatchFn(L *lua.LState) int {
	id := L.CheckString(1)
	eventType := L.CheckString(2)

	if f.services == nil || f.services.Events == nil {
		return pushError(L, "event dispatch not available")
	}
	if err := f.services.Events.DispatchEvent(L.Context(), id, eventType); err != nil {
		slog.Debug("script dispatch failed",
			"script", f.name,
			"plugin", id,
			"event_type", eventType,
			"error", err)
		return pushError(L, err.Error())
	}
	return pushSuccess(L, lua.LTrue)
}

// paramFn: stagecraft.param(id, name) -> value, nil | nil, err
func (f *functions) paramFn(L *lua.LState) int {
	p, ok := f.lookup(L)
	if !ok {
		return 2
	}
	value, _ := p.Stage().Param(L.CheckString(2))
	return pushSuccess(L, toLua(L, value))
}

// setParamFn: stagecraft.set_param(id, name, value) -> true, nil | nil, err
func (f *functions) setParamFn(L *lua.LState) int {
	p, ok := f.lookup(L)
	if !ok {
		return 2
	}
	name := L.CheckString(2)
	value := fromLua(L.Get(3))

	setter, ok := p.Stage().(paramSetter)
	if !ok {
		return pushError(L, "plugin "+p.ID()+" parameters are read-only")
	}
	setter.SetParam(name, value)
	return pushSuccess(L, lua.LTrue)
}

// lookup resolves the plugin named by argument 1. On failure it pushes the
// error pair and returns false.
func (f *functions) lookup(L *lua.LState) (plugin.Plugin, bool) {
	id := L.CheckString(1)
	if f.services == nil || f.services.Plugins == nil {
		pushError(L, "plugin lookup not available")
		return nil, false
	}
	p, ok := f.services.Plugins.Plugin(id)
	if !ok {
		pushError(L, "plugin not found: "+id)
		return nil, false
	}
	return p, true
}
