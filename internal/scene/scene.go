// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package scene parses scene documents and loads them into a running stage.
package scene

import (
	"bytes"
	"errors"
	"io"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/stagecraft/stagecraft/internal/command"
	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
)

// CodeInvalidScene is returned for any scene document that cannot be used.
const CodeInvalidScene = "INVALID_SCENE"

// SupportedVersions is the range of scene format versions this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

var supported = mustConstraint(SupportedVersions)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic("invalid scene version constraint: " + err.Error())
	}
	return constraint
}

// Scene is a parsed scene document.
type Scene struct {
	Version  string            `yaml:"version" jsonschema:"description=Scene format version (semver)"`
	Title    string            `yaml:"title,omitempty" jsonschema:"description=Human readable scene title"`
	Plugins  []*PluginSpec     `yaml:"plugins" jsonschema:"description=Plugins placed on the stage"`
	Scripts  map[string]string `yaml:"scripts,omitempty" jsonschema:"description=Named Lua scripts registered as commands"`
	Triggers map[string]string `yaml:"triggers,omitempty" jsonschema:"description=Named trigger scripts"`
}

// PluginSpec declares one plugin and its event bindings.
type PluginSpec struct {
	ID        string         `yaml:"id" jsonschema:"minLength=1,description=Unique plugin id"`
	AppEvents []string       `yaml:"app-events,omitempty" jsonschema:"description=Extra application-level event types"`
	Params    map[string]any `yaml:"params,omitempty" jsonschema:"description=Initial stage parameters"`
	Cursor    string         `yaml:"cursor,omitempty" jsonschema:"description=Initial cursor hint"`
	Visible   *bool          `yaml:"visible,omitempty" jsonschema:"description=Initial visibility of the display target (default true)"`

	event.Config `yaml:",inline"`
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

type parseOptions struct {
	strict bool
}

// WithStrictSchema validates the document against the JSON schema before
// decoding it.
func WithStrictSchema(strict bool) ParseOption {
	return func(o *parseOptions) {
		o.strict = strict
	}
}

// Parse decodes and validates a scene document.
func Parse(data []byte, opts ...ParseOption) (*Scene, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, oops.Code(CodeInvalidScene).Errorf("scene document is empty")
	}
	if o.strict {
		if err := ValidateSchema(data); err != nil {
			return nil, oops.Code(CodeInvalidScene).Hint(FormatSchemaError(err)).Wrap(err)
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scene
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, oops.Code(CodeInvalidScene).Wrapf(err, "invalid YAML")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks scene constraints.
func (s *Scene) Validate() error {
	if s.Version == "" {
		return invalid("version is required")
	}
	v, err := semver.NewVersion(s.Version)
	if err != nil {
		return oops.Code(CodeInvalidScene).With("version", s.Version).Wrapf(err, "version is not a semantic version")
	}
	if !supported.Check(v) {
		return oops.Code(CodeInvalidScene).
			With("version", s.Version).
			With("supported", SupportedVersions).
			Errorf("unsupported scene version %s", s.Version)
	}

	seen := make(map[string]struct{}, len(s.Plugins))
	for i, p := range s.Plugins {
		if p == nil || p.ID == "" {
			return oops.Code(CodeInvalidScene).With("index", i).Errorf("plugin %d has no id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return oops.Code(CodeInvalidScene).With("plugin", p.ID).Errorf("duplicate plugin id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if slices.Contains(p.AppEvents, "") {
			return oops.Code(CodeInvalidScene).With("plugin", p.ID).Errorf("plugin %s declares an empty app event", p.ID)
		}
		for j, d := range p.Descriptors() {
			if err := d.Validate(); err != nil {
				return oops.Code(CodeInvalidScene).With("plugin", p.ID).With("index", j).
					Errorf("plugin %s event %d: %s", p.ID, j, err.Error())
			}
		}
	}

	for name := range s.Scripts {
		if err := command.ValidateName(name); err != nil {
			return oops.Code(CodeInvalidScene).With("script", name).
				Errorf("script %q: %s", name, err.Error())
		}
	}
	return nil
}

// Component builds the runtime component declared by spec. Events are not
// registered.
func (spec *PluginSpec) Component() *plugin.Component {
	opts := []plugin.Option{
		plugin.WithAppEvents(spec.AppEvents...),
		plugin.WithParams(spec.Params),
	}
	if spec.Cursor != "" {
		opts = append(opts, plugin.WithCursor(spec.Cursor))
	}
	c := plugin.NewComponent(spec.ID, opts...)
	if spec.Visible != nil {
		c.Sprite().SetVisible(*spec.Visible)
	}
	return c
}

func invalid(reason string) error {
	return oops.Code(CodeInvalidScene).Errorf("%s", reason)
}
