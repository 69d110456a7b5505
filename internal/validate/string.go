package validate

import (
	"fmt"
	"regexp"

	"github.com/opsgate/opsgate/internal/errors"
)

// Length bound defaults for BoundedString.
const (
	DefaultMinLen = 1
	DefaultMaxLen = 255
)

// NoBound disables a length bound when passed to NewBoundedString.
const NoBound = -1

// BoundedString accepts strings composed entirely of an allowed character
// class, within configured length bounds. It is the only permitted validator
// for free-form string parameters; unconstrained strings never reach a
// privileged run.
type BoundedString struct {
	pattern *regexp.Regexp
	minLen  int
	maxLen  int
}

// NewBoundedString builds a string validator for the given character class.
// allowedChars uses regexp character-class syntax without the surrounding
// brackets, e.g. "a-z0-9._-". Pass NoBound to disable a length bound.
func NewBoundedString(allowedChars string, minLen, maxLen int) (*BoundedString, error) {
	if minLen != NoBound && maxLen != NoBound && minLen > maxLen {
		return nil, errors.NewConfigError(errors.CodeBounds,
			fmt.Sprintf("minlen %d must not exceed maxlen %d", minLen, maxLen))
	}

	pattern, err := regexp.Compile("^[" + allowedChars + "]+$")
	if err != nil {
		return nil, errors.NewConfigError(errors.CodeBounds,
			fmt.Sprintf("invalid character class %q: %v", allowedChars, err))
	}

	return &BoundedString{pattern: pattern, minLen: minLen, maxLen: maxLen}, nil
}

// NewDefaultBoundedString builds a string validator with the default length
// bounds of [1, 255].
func NewDefaultBoundedString(allowedChars string) (*BoundedString, error) {
	return NewBoundedString(allowedChars, DefaultMinLen, DefaultMaxLen)
}

// Name implements Validator.
func (s *BoundedString) Name() string { return "string" }

// Validate implements Validator. The value is returned unmodified on
// success; BoundedString never normalizes.
func (s *BoundedString) Validate(raw string) (any, error) {
	if s.maxLen != NoBound && len(raw) > s.maxLen {
		return nil, errors.NewValidationError(errors.CodeTooLong,
			fmt.Sprintf("string is too long (must be <= %d)", s.maxLen))
	}
	if s.minLen != NoBound && len(raw) < s.minLen {
		return nil, errors.NewValidationError(errors.CodeTooShort,
			fmt.Sprintf("string is too short (must be >= %d)", s.minLen))
	}
	if !s.pattern.MatchString(raw) {
		return nil, errors.NewValidationError(errors.CodeInvalidCharacters, "invalid value")
	}
	return raw, nil
}
