// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package plugin_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecraft/stagecraft/internal/plugin"
	"github.com/stagecraft/stagecraft/pkg/errutil"
)

func TestRegistry_AddAndLookup(t *testing.T) {
	reg := plugin.NewRegistry()
	c := plugin.NewComponent("intro")

	require.NoError(t, reg.Add(c))

	got, ok := reg.Plugin("intro")
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = reg.Plugin("missing")
	assert.False(t, ok)
}

func TestRegistry_AddRejectsDuplicates(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Add(plugin.NewComponent("intro")))

	err := reg.Add(plugin.NewComponent("intro"))
	errutil.AssertErrorCode(t, err, plugin.CodeDuplicatePlugin)
	errutil.AssertErrorContext(t, err, "plugin", "intro")
}

func TestRegistry_AddRejectsInvalid(t *testing.T) {
	reg := plugin.NewRegistry()

	errutil.AssertErrorCode(t, reg.Add(nil), plugin.CodeInvalidPlugin)
	errutil.AssertErrorCode(t, reg.Add(plugin.NewComponent("")), plugin.CodeInvalidPlugin)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_RemoveAndIDs(t *testing.T) {
	reg := plugin.NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, reg.Add(plugin.NewComponent(id)))
	}

	assert.Equal(t, []string{"a", "b", "c"}, reg.IDs())
	assert.True(t, reg.Remove("b"))
	assert.False(t, reg.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, reg.IDs())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := plugin.NewRegistry()
	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("p-%02d", i)
			assert.NoError(t, reg.Add(plugin.NewComponent(id)))
			_, ok := reg.Plugin(id)
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, reg.Len())
}
