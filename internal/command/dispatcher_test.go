// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/stagecraft/stagecraft/internal/command"
	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/pkg/errutil"
)

func TestNewDispatcher_NilRegistry(t *testing.T) {
	d, err := command.NewDispatcher(nil)
	assert.Nil(t, d)
	errutil.AssertErrorCode(t, err, command.CodeNilRegistry)
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, err := command.NewDispatcher(command.NewRegistry())
	require.NoError(t, err)

	err = d.Handle(context.Background(), &event.Action{Type: "nope"})
	errutil.AssertErrorCode(t, err, command.CodeUnknownCommand)
	errutil.AssertErrorContext(t, err, "command", "nope")
}

func TestDispatcher_NilAction(t *testing.T) {
	d, err := command.NewDispatcher(command.NewRegistry())
	require.NoError(t, err)
	errutil.AssertErrorCode(t, d.Handle(context.Background(), nil), command.CodeInvalidArgs)
}

func TestDispatcher_NameResolution(t *testing.T) {
	tests := []struct {
		name   string
		action *event.Action
		want   string
	}{
		{"type only", &event.Action{Type: "show"}, "show"},
		{"command field wins", &event.Action{Type: "cmd", Fields: map[string]any{"command": "hide"}}, "hide"},
		{"non-string command field ignored", &event.Action{Type: "show", Fields: map[string]any{"command": 3}}, "show"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, command.NameOf(tt.action))
		})
	}
}

func TestDispatcher_PassesExecution(t *testing.T) {
	reg := command.NewRegistry()
	services := &command.Services{Log: command.NewLog()}
	var got *command.Execution
	require.NoError(t, reg.Register(command.Entry{
		Name: "hide",
		Handler: func(_ context.Context, exec *command.Execution) error {
			got = exec
			return nil
		},
	}))
	d, err := command.NewDispatcher(reg, command.WithServices(services))
	require.NoError(t, err)

	action := &event.Action{Type: "cmd", Value: "v", Fields: map[string]any{"command": "hide"}}
	require.NoError(t, d.Handle(context.Background(), action))

	require.NotNil(t, got)
	assert.Equal(t, "hide", got.Name)
	assert.Same(t, action, got.Action)
	assert.Same(t, services, got.Services)
	assert.Same(t, services, d.Services())
}

func TestDispatcher_HandlerErrorReturned(t *testing.T) {
	reg := command.NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, reg.Register(command.Entry{
		Name:    "explode",
		Handler: func(context.Context, *command.Execution) error { return boom },
	}))
	d, err := command.NewDispatcher(reg)
	require.NoError(t, err)

	err = d.Handle(context.Background(), &event.Action{Type: "explode"})
	assert.ErrorIs(t, err, boom)
}

func TestDispatcher_Metrics(t *testing.T) {
	reg := command.NewRegistry()
	require.NoError(t, reg.Register(command.Entry{Name: "metric-ok", Handler: noop, Source: command.SourceCore}))
	d, err := command.NewDispatcher(reg)
	require.NoError(t, err)
	ctx := context.Background()

	okBefore := testutil.ToFloat64(command.CommandExecutions.WithLabelValues("metric-ok", command.SourceCore, command.StatusSuccess))
	missBefore := testutil.ToFloat64(command.CommandExecutions.WithLabelValues("metric-miss", "", command.StatusNotFound))

	require.NoError(t, d.Handle(ctx, &event.Action{Type: "metric-ok"}))
	require.Error(t, d.Handle(ctx, &event.Action{Type: "metric-miss"}))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(command.CommandExecutions.WithLabelValues("metric-ok", command.SourceCore, command.StatusSuccess)))
	assert.Equal(t, missBefore+1, testutil.ToFloat64(command.CommandExecutions.WithLabelValues("metric-miss", "", command.StatusNotFound)))
}

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() { command.RegisterMetrics(reg) })
	assert.Panics(t, func() { command.RegisterMetrics(reg) }, "double registration panics")
}

func TestLog_RecordsAreCopies(t *testing.T) {
	l := command.NewLog()
	exec := &command.Execution{
		Name:   "log",
		Action: &event.Action{Type: "log", Value: 1, Fields: map[string]any{"message": "hi"}},
	}
	l.Append(command.NewRecord(exec, command.SourceCore))
	exec.Action.Fields["message"] = "changed"

	records := l.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "hi", records[0].Fields["message"])
	assert.Equal(t, 1, records[0].Value)
	assert.Equal(t, 1, l.Len())
}

func TestDispatcher_ContextCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := command.NewRegistry()
	handlerStarted := make(chan struct{})
	require.NoError(t, reg.Register(command.Entry{
		Name: "slow",
		Handler: func(ctx context.Context, _ *command.Execution) error {
			close(handlerStarted)
			<-ctx.Done()
			return ctx.Err()
		},
	}))
	d, err := command.NewDispatcher(reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	dispatchDone := make(chan error)
	go func() {
		dispatchDone <- d.Handle(ctx, &event.Action{Type: "slow"})
	}()

	<-handlerStarted
	cancel()

	assert.ErrorIs(t, <-dispatchDone, context.Canceled)
}
