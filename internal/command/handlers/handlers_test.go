// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stagecraft/stagecraft/internal/command"
	"github.com/stagecraft/stagecraft/internal/command/handlers"
	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
	"github.com/stagecraft/stagecraft/pkg/errutil"
)

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) DispatchEvent(ctx context.Context, pluginID, eventType string) error {
	args := m.Called(ctx, pluginID, eventType)
	return args.Error(0)
}

type env struct {
	plugins    *plugin.Registry
	events     *mockEvents
	services   *command.Services
	dispatcher *command.Dispatcher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{plugins: plugin.NewRegistry(), events: &mockEvents{}}
	e.services = &command.Services{Plugins: e.plugins, Events: e.events, Log: command.NewLog()}
	reg := command.NewRegistry()
	handlers.RegisterAll(reg)
	d, err := command.NewDispatcher(reg, command.WithServices(e.services))
	require.NoError(t, err)
	e.dispatcher = d
	t.Cleanup(func() { e.events.AssertExpectations(t) })
	return e
}

func (e *env) run(action *event.Action) error {
	return e.dispatcher.Handle(context.Background(), action)
}

func asset(typ, id string) *event.Action {
	return &event.Action{Type: typ, Fields: map[string]any{"asset": id}}
}

func TestRegisterAll(t *testing.T) {
	reg := command.NewRegistry()
	handlers.RegisterAll(reg)
	assert.Equal(t, []string{"event", "hide", "log", "show", "toggle"}, reg.Names())
}

func TestVisibilityHandlers(t *testing.T) {
	e := newEnv(t)
	c := plugin.NewComponent("logo")
	require.NoError(t, e.plugins.Add(c))

	require.NoError(t, e.run(asset("show", "logo")))
	assert.True(t, c.Sprite().Visible())

	require.NoError(t, e.run(asset("hide", "logo")))
	assert.False(t, c.Sprite().Visible())

	require.NoError(t, e.run(asset("toggle", "logo")))
	assert.True(t, c.Sprite().Visible())
	require.NoError(t, e.run(asset("toggle", "logo")))
	assert.False(t, c.Sprite().Visible())
}

func TestVisibilityHandlers_Errors(t *testing.T) {
	e := newEnv(t)

	errutil.AssertErrorCode(t, e.run(&event.Action{Type: "show"}), command.CodeInvalidArgs)
	errutil.AssertErrorCode(t, e.run(asset("hide", "ghost")), event.CodePluginNotFound)
}

func TestVisibilityHandlers_NoLookup(t *testing.T) {
	reg := command.NewRegistry()
	handlers.RegisterAll(reg)
	d, err := command.NewDispatcher(reg)
	require.NoError(t, err)

	err = d.Handle(context.Background(), asset("show", "logo"))
	errutil.AssertErrorCode(t, err, command.CodeMissingService)
}

func TestEventHandler(t *testing.T) {
	tests := []struct {
		name      string
		action    *event.Action
		eventType string
	}{
		{
			name:      "value names the event",
			action:    &event.Action{Type: "event", Value: "reveal", Fields: map[string]any{"asset": "quiz"}},
			eventType: "reveal",
		},
		{
			name:      "event field used when value empty",
			action:    &event.Action{Type: "event", Value: "", Fields: map[string]any{"asset": "quiz", "event": "next"}},
			eventType: "next",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.events.On("DispatchEvent", mock.Anything, "quiz", tt.eventType).Return(nil).Once()
			require.NoError(t, e.run(tt.action))
		})
	}
}

func TestEventHandler_Errors(t *testing.T) {
	e := newEnv(t)
	errutil.AssertErrorCode(t, e.run(asset("event", "quiz")), command.CodeInvalidArgs)

	boom := errors.New("boom")
	e.events.On("DispatchEvent", mock.Anything, "quiz", "reveal").Return(boom).Once()
	err := e.run(&event.Action{Type: "event", Value: "reveal", Fields: map[string]any{"asset": "quiz"}})
	assert.ErrorIs(t, err, boom)
	errutil.AssertErrorContext(t, err, "event", "reveal")
}

func TestLogHandler(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.run(&event.Action{Type: "log", Value: 42, Fields: map[string]any{"message": "score"}}))

	records := e.services.Log.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "log", records[0].Command)
	assert.Equal(t, 42, records[0].Value)
	assert.Equal(t, "score", records[0].Fields["message"])
}
