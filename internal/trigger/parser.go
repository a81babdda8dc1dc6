// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package trigger

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// Error codes for trigger scripts.
const (
	CodeInvalidScript  = "INVALID_SCRIPT"
	CodeInvalidPattern = "INVALID_PATTERN"
	CodeNoMatch        = "NO_MATCH"
	CodeUnsupported    = "UNSUPPORTED"
)

// parser is the singleton participle parser instance.
var parser *participle.Parser[Script]

func init() {
	var err error
	parser, err = NewParser()
	if err != nil {
		panic(fmt.Sprintf("failed to build trigger parser: %v", err))
	}
}

// Parse parses a trigger script. name is used in error positions.
func Parse(name, src string) (*Script, error) {
	script, err := parser.ParseString(name, src)
	if err != nil {
		return nil, oops.Code(CodeInvalidScript).With("script", name).Wrapf(err, "parsing trigger script")
	}
	for _, st := range script.Statements {
		if st.Fire == nil {
			continue
		}
		if _, err := glob.Compile(st.Fire.Pattern); err != nil {
			return nil, oops.Code(CodeInvalidPattern).
				With("script", name).
				With("pattern", st.Fire.Pattern).
				With("position", st.Pos.String()).
				Wrapf(err, "invalid fire pattern")
		}
	}
	return script, nil
}
