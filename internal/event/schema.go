// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event

import (
	"github.com/invopop/jsonschema"
)

// JSONSchema describes an action: reserved keys plus any handler-specific
// fields.
func (Action) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{
		Type:        "string",
		Description: "Action type; \"" + ActionAnimation + "\" plays an animation, anything else runs a command",
	})
	props.Set("param", &jsonschema.Schema{
		Type:        "string",
		Description: "Stage parameter the action value is resolved from at dispatch time",
	})
	props.Set("value", &jsonschema.Schema{
		Description: "Literal value, replaced when param is set",
	})
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             []string{"type"},
		AdditionalProperties: jsonschema.TrueSchema,
	}
}

// JSONSchema accepts a single action or a sequence of actions.
func (ActionList) JSONSchema() *jsonschema.Schema {
	return oneOrMany(Action{}.JSONSchema())
}

// JSONSchema describes an event descriptor.
func (Descriptor) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{
		Type:        "string",
		Description: "Event type the actions are bound to",
	})
	props.Set("action", ActionList{}.JSONSchema())
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             []string{"type"},
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// JSONSchema accepts a single descriptor or a sequence of descriptors.
func (DescriptorList) JSONSchema() *jsonschema.Schema {
	return oneOrMany(Descriptor{}.JSONSchema())
}

func oneOrMany(item *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			item,
			{Type: "array", Items: item},
		},
	}
}
