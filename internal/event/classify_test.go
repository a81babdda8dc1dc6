// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
)

func TestClassify_FixedAppEvents(t *testing.T) {
	p := plugin.NewComponent("p")
	for _, typ := range []string{"enter", "exit", "remove", "add", "replace", "show", "hide"} {
		t.Run(typ, func(t *testing.T) {
			assert.Equal(t, event.AppLevel, event.Classify(typ, p))
			assert.True(t, event.IsAppEventType(typ))
		})
	}
}

func TestClassify_InputEvents(t *testing.T) {
	p := plugin.NewComponent("p")
	for _, typ := range []string{"tap", "click", "mousedown", "Show", ""} {
		assert.Equal(t, event.InputLevel, event.Classify(typ, p), "type %q", typ)
	}
}

func TestClassify_PluginAppEvents(t *testing.T) {
	p := plugin.NewComponent("p", plugin.WithAppEvents("reveal"))
	other := plugin.NewComponent("q")

	assert.Equal(t, event.AppLevel, event.Classify("reveal", p))
	assert.Equal(t, event.InputLevel, event.Classify("reveal", other))
	assert.Equal(t, event.AppLevel, event.Classify("show", nil))
	assert.Equal(t, event.InputLevel, event.Classify("reveal", nil))
}

func TestAppEventTypes_ReturnsCopy(t *testing.T) {
	types := event.AppEventTypes()
	assert.Len(t, types, 7)
	types[0] = "tap"
	assert.False(t, event.IsAppEventType("tap"))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "app", event.AppLevel.String())
	assert.Equal(t, "input", event.InputLevel.String())
	assert.Equal(t, "unknown", event.Level(9).String())
}

func TestRoute(t *testing.T) {
	p := plugin.NewComponent("p")
	assert.Same(t, p, event.Route(p, event.AppLevel))
	assert.Same(t, p.Sprite(), event.Route(p, event.InputLevel))
}

func TestClassify_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		declared := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,8}`)).Draw(t, "declared")
		typ := rapid.OneOf(
			rapid.StringMatching(`[a-z]{1,8}`),
			rapid.SampledFrom(event.AppEventTypes()),
		).Draw(t, "type")

		p := plugin.NewComponent("p", plugin.WithAppEvents(declared...))

		want := event.InputLevel
		if event.IsAppEventType(typ) || p.HasAppEvent(typ) {
			want = event.AppLevel
		}
		assert.Equal(t, want, event.Classify(typ, p))
		// deterministic
		assert.Equal(t, event.Classify(typ, p), event.Classify(typ, p))
	})
}
