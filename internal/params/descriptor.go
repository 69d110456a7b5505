// Package params models the declarative parameter registry: ordered
// descriptors binding flag names to validators, constructed once at startup
// and immutable afterwards, plus the parsed parameter set produced after a
// fully successful validation pass.
package params

import (
	"github.com/opsgate/opsgate/internal/validate"
)

// Descriptor declares one operator-facing parameter.
type Descriptor struct {
	// Name is the long flag name, without leading dashes.
	Name string
	// Short is the single-character short flag name.
	Short string
	// Help is the usage text for the flag.
	Help string
	// Validator checks and coerces the raw value. Required for every
	// non-switch parameter; free-form strings must use a bounded validator.
	Validator validate.Validator
	// Required marks the parameter as mandatory.
	Required bool
	// Default is used when an optional parameter is absent.
	Default any
	// DependsOn names another parameter (by long name) that must be
	// provided whenever this one is.
	DependsOn string
	// Switch marks a boolean presence flag that takes no value and
	// therefore no validator.
	Switch bool
}

// Set is the parsed parameter set: long name to validated value (or
// default). A Set exists only after every validator succeeded and every
// dependency resolved; it is read-only for the rest of the invocation.
type Set struct {
	values   map[string]any
	provided map[string]bool
}

// Get returns the resolved value for a long name.
func (s *Set) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Value returns the resolved value for a long name, or nil.
func (s *Set) Value(name string) any {
	return s.values[name]
}

// Provided reports whether the parameter was explicitly given on the
// command line, as opposed to filled from its default.
func (s *Set) Provided(name string) bool {
	return s.provided[name]
}

// Len returns the number of resolved parameters.
func (s *Set) Len() int {
	return len(s.values)
}
