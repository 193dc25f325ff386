package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNodeName validates a node name read from a definition file.
//
// The rules are conservative:
//   - No empty names
//   - No leading or trailing whitespace
//   - No control characters or null bytes
//   - No commas, which separate tuple components on the command line
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidNode, "node name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidNode, "node name too long (max 256 characters)")
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidNode, "node name %q has surrounding whitespace", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node name contains invalid control characters")
		}
	}

	if strings.Contains(name, ",") {
		return New(ErrCodeInvalidNode, "node name %q cannot contain commas", name)
	}

	return nil
}

// methodNameRegex matches identifiers usable as multimethod names.
var methodNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateMethodName validates a multimethod name read from a definition file.
func ValidateMethodName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "method name cannot be empty")
	}
	if !methodNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid method name: %q", name)
	}
	return nil
}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
