// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package trigger parses and runs trigger scripts: short statement lists
// that fire events, set stage parameters and mark app events.
package trigger

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// triggerLexer defines the token types for trigger scripts.
// Words cover plugin ids, event types and glob patterns.
var triggerLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Word", Pattern: `[a-zA-Z0-9_*?][\w\-.*?]*`},
	{Name: "Punct", Pattern: `[=;]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Script is a parsed trigger script.
//
// Grammar: statement*
type Script struct {
	Pos        lexer.Position `parser:""`
	Statements []*Statement   `parser:"@@*"`
}

// Statement is exactly one of the statement kinds.
type Statement struct {
	Pos      lexer.Position `parser:""`
	Fire     *Fire          `parser:"  'fire' @@ ';'"`
	Set      *Set           `parser:"| 'set' @@ ';'"`
	AppEvent *AppEvent      `parser:"| 'appevent' @@ ';'"`
}

// Fire matches: "fire" glob event_type ";"
type Fire struct {
	Pattern string `parser:"@(String | Word)"`
	Type    string `parser:"@(String | Word)"`
}

// Set matches: "set" plugin_id param "=" value ";"
type Set struct {
	Plugin string `parser:"@(String | Word)"`
	Param  string `parser:"@(String | Word)"`
	Value  string `parser:"'=' @(String | Word)"`
}

// AppEvent matches: "appevent" plugin_id event_type ";"
type AppEvent struct {
	Plugin string `parser:"@(String | Word)"`
	Type   string `parser:"@(String | Word)"`
}

// NewParser creates a new participle parser for trigger scripts.
func NewParser() (*participle.Parser[Script], error) {
	return participle.Build[Script](
		participle.Lexer(triggerLexer),
		participle.Unquote("String"),
	)
}
