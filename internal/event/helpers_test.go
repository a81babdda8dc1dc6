// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
)

type mockAnimation struct {
	mock.Mock
}

func (m *mockAnimation) Handle(ctx context.Context, action *event.Action, p plugin.Plugin) error {
	args := m.Called(ctx, action, p)
	return args.Error(0)
}

type mockCommand struct {
	mock.Mock
}

func (m *mockCommand) Handle(ctx context.Context, action *event.Action) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type fixture struct {
	mgr       *event.Manager
	plugins   *plugin.Registry
	animation *mockAnimation
	command   *mockCommand
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		plugins:   plugin.NewRegistry(),
		animation: &mockAnimation{},
		command:   &mockCommand{},
	}
	mgr, err := event.NewManager(f.plugins, f.animation, f.command)
	require.NoError(t, err)
	f.mgr = mgr
	t.Cleanup(func() {
		f.animation.AssertExpectations(t)
		f.command.AssertExpectations(t)
	})
	return f
}

func (f *fixture) component(t *testing.T, id string, opts ...plugin.Option) *plugin.Component {
	t.Helper()
	c := plugin.NewComponent(id, opts...)
	require.NoError(t, f.plugins.Add(c))
	return c
}

// recorder collects the order in which handlers saw actions.
type recorder struct {
	calls []string
}

func (r *recorder) command(fail map[string]error) event.CommandFunc {
	return func(_ context.Context, a *event.Action) error {
		r.calls = append(r.calls, "command:"+a.Type)
		return fail[a.Type]
	}
}

func (r *recorder) animation() event.AnimationFunc {
	return func(_ context.Context, a *event.Action, p plugin.Plugin) error {
		r.calls = append(r.calls, "animation:"+p.ID())
		return nil
	}
}
