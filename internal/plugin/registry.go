// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package plugin

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Registry maps plugin ids to live plugins.
// It is thread-safe for concurrent access.
type Registry struct {
	plugins map[string]Plugin
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Add registers p under its id. Ids must be non-empty and unique.
func (r *Registry) Add(p Plugin) error {
	if p == nil {
		return ErrInvalidPlugin("plugin is nil")
	}
	id := p.ID()
	if id == "" {
		return ErrInvalidPlugin("plugin id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[id]; ok {
		return ErrDuplicatePlugin(id)
	}
	r.plugins[id] = p
	slog.Debug("plugin registered", "plugin", id)
	return nil
}

// Plugin retrieves a plugin by id.
// Returns the plugin and true if found, or nil and false if not found.
func (r *Registry) Plugin(id string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[id]
	return p, ok
}

// Remove drops the plugin with the given id and reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[id]; !ok {
		return false
	}
	delete(r.plugins, id)
	return true
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.plugins))
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}
