package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// claimNameRegex matches catalog claim names such as "h1" or "lemma-2.4".
var claimNameRegex = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)

// ValidateClaimName validates a claim name taken from the command line or
// an HTTP path.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 64 characters
//   - Lowercase letters, digits, dot, dash and underscore only
//   - Must start with a letter
func ValidateClaimName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidClaim, "claim name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidClaim, "claim name too long (max 64 characters)")
	}
	if !claimNameRegex.MatchString(name) {
		return New(ErrCodeInvalidClaim, "invalid claim name: %q", name)
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateAddr validates a host:port listen address.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "address cannot be empty")
	}
	i := strings.LastIndexByte(addr, ':')
	if i < 0 || i == len(addr)-1 {
		return New(ErrCodeInvalidInput, "address %q must be host:port", addr)
	}
	for _, r := range addr[i+1:] {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidInput, "address %q has a non-numeric port", addr)
		}
	}
	return nil
}
