// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ActionAnimation is the action type routed to the animation handler.
// Every other action type is a command.
const ActionAnimation = "animation"

// Action is a unit of behavior triggered by an event.
type Action struct {
	Type string
	// Param names the stage parameter that Value is resolved from at
	// dispatch time.
	Param string
	Value any
	// Fields holds handler-specific keys the event manager never reads.
	Fields map[string]any
}

// Field returns a handler-specific field.
func (a *Action) Field(name string) (any, bool) {
	v, ok := a.Fields[name]
	return v, ok
}

// StringField returns a handler-specific field formatted as a string, or ""
// when it is absent or nil.
func (a *Action) StringField(name string) string {
	v, ok := a.Fields[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// UnmarshalYAML splits the reserved keys (type, param, value) from the
// handler-specific ones.
func (a *Action) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: action must be a mapping", node.Line)
	}
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*a = Action{}
	for k, v := range raw {
		switch k {
		case "type":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("line %d: action type must be a string", node.Line)
			}
			a.Type = s
		case "param":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("line %d: action param must be a string", node.Line)
			}
			a.Param = s
		case "value":
			a.Value = v
		default:
			if a.Fields == nil {
				a.Fields = make(map[string]any)
			}
			a.Fields[k] = v
		}
	}
	return nil
}

// ActionList is an ordered sequence of actions. In YAML it may be written
// as a single mapping or as a sequence of mappings.
type ActionList []*Action

// UnmarshalYAML accepts a single action or a sequence of actions.
func (l *ActionList) UnmarshalYAML(node *yaml.Node) error {
	items, err := decodeOneOrMany[Action](node, "action")
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// Descriptor binds an event type to the actions it triggers.
type Descriptor struct {
	Type   string     `yaml:"type"`
	Action ActionList `yaml:"action,omitempty"`
}

// UnmarshalYAML decodes a descriptor, rejecting keys other than type and
// action.
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: event must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		switch key.Value {
		case "type", "action":
		default:
			return fmt.Errorf("line %d: field %s not found in event descriptor", key.Line, key.Value)
		}
	}

	type plain Descriptor
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = Descriptor(p)
	return nil
}

// Validate reports a malformed descriptor.
func (d *Descriptor) Validate() error {
	if d == nil {
		return ErrMalformedDescriptor("descriptor is nil")
	}
	if d.Type == "" {
		return ErrMalformedDescriptor("descriptor has no type")
	}
	return nil
}

// DescriptorList is an ordered sequence of descriptors. In YAML it may be
// written as a single mapping or as a sequence of mappings.
type DescriptorList []*Descriptor

// UnmarshalYAML accepts a single descriptor or a sequence of descriptors.
func (l *DescriptorList) UnmarshalYAML(node *yaml.Node) error {
	items, err := decodeOneOrMany[Descriptor](node, "event")
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// EventsBlock is the nested form of Config.
type EventsBlock struct {
	Event DescriptorList `yaml:"event,omitempty"`
}

// Config is a declarative event configuration. Either shape may be used:
//
//	events: {event: <descriptor | [descriptor]>}
//	event: <descriptor | [descriptor]>
//
// When the nested block is present the flat key is ignored.
type Config struct {
	Events *EventsBlock   `yaml:"events,omitempty"`
	Event  DescriptorList `yaml:"event,omitempty"`
}

// Flat builds a Config in the flat shape.
func Flat(descriptors ...*Descriptor) Config {
	return Config{Event: descriptors}
}

// Nested builds a Config in the nested shape.
func Nested(descriptors ...*Descriptor) Config {
	return Config{Events: &EventsBlock{Event: descriptors}}
}

// Descriptors returns the normalized descriptor sequence, empty when the
// configuration carries no events.
func (c Config) Descriptors() DescriptorList {
	if c.Events != nil {
		return c.Events.Event
	}
	return c.Event
}

// ParseConfig decodes a YAML (or JSON) event configuration.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, ErrInvalidConfig(err)
	}
	return c, nil
}

func decodeOneOrMany[T any](node *yaml.Node, what string) ([]*T, error) {
	switch node.Kind {
	case yaml.MappingNode:
		item := new(T)
		if err := node.Decode(item); err != nil {
			return nil, err
		}
		return []*T{item}, nil
	case yaml.SequenceNode:
		items := make([]*T, 0, len(node.Content))
		for _, child := range node.Content {
			item := new(T)
			if err := child.Decode(item); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("line %d: %s must be a mapping or a sequence of mappings", node.Line, what)
}
