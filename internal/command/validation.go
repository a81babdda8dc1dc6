// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package command

import (
	"regexp"

	"github.com/samber/oops"
)

// CodeInvalidName is returned for command names that cannot be registered.
const CodeInvalidName = "INVALID_NAME"

// MaxNameLength is the maximum length for command names.
const MaxNameLength = 32

// namePattern: a letter followed by letters, digits, '_', '-' or '.'.
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.\-]{0,31}$`)

// ValidateName validates a command name.
func ValidateName(name string) error {
	if name == "" {
		return oops.Code(CodeInvalidName).Errorf("command name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return oops.Code(CodeInvalidName).
			With("length", len(name)).
			With("max", MaxNameLength).
			Errorf("command name exceeds maximum length of %d", MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return oops.Code(CodeInvalidName).
			With("name", name).
			Errorf("command name must start with a letter and contain only letters, digits, or _.-")
	}
	return nil
}
