// Package errors defines the structured error types shared by the opsgate
// validation pipeline. Every failure that can abort an invocation before the
// playbook handoff is expressed as an *Error carrying a category and a code,
// so callers can match on errors.Is without parsing messages.
package errors

import (
	"errors"
	"fmt"
)

// Type represents different categories of errors.
type Type string

const (
	// TypeValidation covers per-flag value failures. Recoverable by the
	// operator fixing their input.
	TypeValidation Type = "validation"
	// TypeConfig covers construction-time misconfiguration of validators,
	// descriptors, or script definitions. These are integrator errors and
	// must fail fast at startup.
	TypeConfig Type = "config"
	// TypeDependency covers cross-parameter dependency violations.
	TypeDependency Type = "dependency"
	// TypeArtifact covers playbook artifact path failures.
	TypeArtifact Type = "artifact"
	// TypeInternal covers everything that is a bug in opsgate itself.
	TypeInternal Type = "internal"
)

// Code identifies the exact failure within a category.
type Code string

const (
	// Validation codes.
	CodeTooLong           Code = "too_long"
	CodeTooShort          Code = "too_short"
	CodeInvalidCharacters Code = "invalid_characters"
	CodeInvalidInteger    Code = "invalid_integer"
	CodeTooSmall          Code = "too_small"
	CodeTooBig            Code = "too_big"
	CodeInvalidEncoding   Code = "invalid_encoding"
	CodeLabelTooLong      Code = "label_too_long"
	CodeDomainTooLong     Code = "domain_too_long"
	CodeInvalidShape      Code = "invalid_shape"
	CodeInvalidSuffix     Code = "invalid_suffix"
	CodeBadIdentity       Code = "bad_identity"

	// Config codes.
	CodeBounds              Code = "bounds"
	CodeUnconstrainedString Code = "unconstrained_string"
	CodeDuplicateName       Code = "duplicate_name"
	CodeUnknownDependency   Code = "unknown_dependency"
	CodeDependencyCycle     Code = "dependency_cycle"
	CodeBadDefinition       Code = "bad_definition"

	// Dependency code.
	CodeMissingDependency Code = "missing_dependency"

	// Artifact codes.
	CodeInvalidArtifact Code = "invalid_artifact"
)

// Error is a structured error with a category, code, and optional flag
// context for user-facing messages.
type Error struct {
	Type    Type
	Code    Code
	Message string
	Flag    string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Flag != "" {
		msg = fmt.Sprintf("argument --%s: %s", e.Flag, msg)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two *Error values by category and code, so sentinel-style
// comparison via errors.Is works without exported sentinels per code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithFlag attaches the long flag name the error refers to.
func (e *Error) WithFlag(flag string) *Error {
	e.Flag = flag
	return e
}

// NewValidationError creates a per-value validation error.
func NewValidationError(code Code, message string) *Error {
	return &Error{Type: TypeValidation, Code: code, Message: message}
}

// NewConfigError creates a construction-time configuration error.
func NewConfigError(code Code, message string) *Error {
	return &Error{Type: TypeConfig, Code: code, Message: message}
}

// NewDependencyError creates a cross-parameter dependency error.
func NewDependencyError(message string) *Error {
	return &Error{Type: TypeDependency, Code: CodeMissingDependency, Message: message}
}

// NewArtifactError creates a playbook artifact error.
func NewArtifactError(message string) *Error {
	return &Error{Type: TypeArtifact, Code: CodeInvalidArtifact, Message: message}
}

// NewInternalError creates an internal error wrapping its cause.
func NewInternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Code: "internal", Message: message, Cause: cause}
}

// IsValidation checks whether an error is a per-value validation failure.
func IsValidation(err error) bool {
	return isType(err, TypeValidation)
}

// IsConfig checks whether an error is construction-time misconfiguration.
func IsConfig(err error) bool {
	return isType(err, TypeConfig)
}

// IsDependency checks whether an error is a dependency violation.
func IsDependency(err error) bool {
	return isType(err, TypeDependency)
}

// IsArtifact checks whether an error is an artifact path failure.
func IsArtifact(err error) bool {
	return isType(err, TypeArtifact)
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func isType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}
