// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package script

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/stagecraft/stagecraft/internal/command"
)

// Error codes for script failures.
const (
	CodeScriptError    = "SCRIPT_ERROR"
	CodeScriptNotFound = "SCRIPT_NOT_FOUND"
	CodeHostClosed     = "HOST_CLOSED"
)

// CommandName is the command that runs inline or named scripts.
const CommandName = "script"

// entryPoint is the optional global function a script may define. It is
// called with the action table after the chunk has run.
const entryPoint = "on_action"

// Host holds named scripts and runs them as commands.
type Host struct {
	factory *StateFactory
	scripts map[string]string
	mu      sync.RWMutex
	closed  bool
}

// NewHost creates an empty script host.
func NewHost() *Host {
	return &Host{
		factory: NewStateFactory(),
		scripts: make(map[string]string),
	}
}

// Load validates code and stores it under name, replacing any previous
// script with that name.
func (h *Host) Load(ctx context.Context, name, code string) error {
	if err := command.ValidateName(name); err != nil {
		return oops.In("script").With("script", name).With("operation", "load").Wrap(err)
	}

	// Validate syntax by compiling in a throwaway state
	L, err := h.factory.NewState(ctx)
	if err != nil {
		return oops.In("script").With("script", name).With("operation", "load").Hint("failed to create validation state").Wrap(err)
	}
	defer L.Close()
	if _, err := L.LoadString(code); err != nil {
		return oops.Code(CodeScriptError).In("script").With("script", name).With("operation", "load").Hint("syntax error").Wrap(err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return oops.Code(CodeHostClosed).In("script").With("script", name).Errorf("host is closed")
	}
	h.scripts[name] = code
	return nil
}

// Scripts returns the loaded script names in sorted order.
func (h *Host) Scripts() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Sorted(maps.Keys(h.scripts))
}

// Register adds the "script" command and one command per loaded script.
func (h *Host) Register(reg *command.Registry) error {
	if err := reg.Register(command.Entry{
		Name:    CommandName,
		Handler: h.Run,
		Help:    "Run an inline or named Lua script",
		Usage:   "source: <lua> | name: <script>",
		Source:  command.SourceLua,
	}); err != nil {
		return err
	}
	for _, name := range h.Scripts() {
		if err := reg.Register(command.Entry{
			Name:    name,
			Handler: h.named(name),
			Help:    "Lua script " + name,
			Source:  command.SourceLua,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Run is the handler for the "script" command. The action's "source" field
// holds inline code; otherwise its "name" field selects a loaded script.
func (h *Host) Run(ctx context.Context, exec *command.Execution) error {
	if src := exec.Action.StringField("source"); src != "" {
		return h.execute(ctx, exec.Name, src, exec)
	}
	name := exec.Action.StringField("name")
	if name == "" {
		return command.ErrInvalidArgs(exec.Name, "source: <lua> | name: <script>")
	}
	return h.named(name)(ctx, exec)
}

func (h *Host) named(name string) command.Handler {
	return func(ctx context.Context, exec *command.Execution) error {
		h.mu.RLock()
		code, ok := h.scripts[name]
		closed := h.closed
		h.mu.RUnlock()
		if closed {
			return oops.Code(CodeHostClosed).In("script").With("script", name).Errorf("host is closed")
		}
		if !ok {
			return oops.Code(CodeScriptNotFound).In("script").With("script", name).Errorf("script not loaded: %s", name)
		}
		return h.execute(ctx, name, code, exec)
	}
}

// execute runs code in a fresh sandboxed state.
func (h *Host) execute(ctx context.Context, name, code string, exec *command.Execution) error {
	L, err := h.factory.NewState(ctx)
	if err != nil {
		return oops.In("script").With("script", name).Hint("failed to create state").Wrap(err)
	}
	defer L.Close()

	fns := &functions{name: name, services: exec.Services}
	fns.register(L)

	actionTable := buildActionTable(L, exec)
	L.SetGlobal("action", actionTable)
	L.SetGlobal("value", toLua(L, exec.Action.Value))

	if err := L.DoString(code); err != nil {
		return oops.Code(CodeScriptError).In("script").With("script", name).With("operation", "run").Wrap(err)
	}

	fn := L.GetGlobal(entryPoint)
	if fn.Type() == lua.LTNil {
		return nil
	}
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, actionTable); err != nil {
		return oops.Code(CodeScriptError).In("script").With("script", name).With("operation", entryPoint).Wrap(err)
	}
	slog.DebugContext(ctx, "script executed", "script", name, "command", exec.Name)
	return nil
}

// Close shuts down the host. Subsequent runs fail.
func (h *Host) Close(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.scripts = nil
	return nil
}

func buildActionTable(L *lua.LState, exec *command.Execution) *lua.LTable {
	t := L.NewTable()
	for _, k := range slices.Sorted(maps.Keys(exec.Action.Fields)) {
		L.SetField(t, k, toLua(L, exec.Action.Fields[k]))
	}
	L.SetField(t, "command", lua.LString(exec.Name))
	L.SetField(t, "type", lua.LString(exec.Action.Type))
	L.SetField(t, "param", lua.LString(exec.Action.Param))
	L.SetField(t, "value", toLua(L, exec.Action.Value))
	return t
}
