// Package validate provides the typed value validators that guard every
// free-form argument before it can reach a privileged playbook run.
//
// Validators are pure: they hold their configuration, never mutate it after
// construction, and validating a value has no side effects. All failures are
// structured *errors.Error values with TypeValidation, so the surface layer
// can render precise per-flag messages.
package validate

// Validator checks a raw command-line token and returns the validated,
// possibly coerced value. Implementations must be safe for repeated use.
type Validator interface {
	// Name returns the value-type name shown in usage text, e.g. "domain".
	Name() string
	// Validate returns the validated value or a structured validation error.
	Validate(raw string) (any, error)
}
