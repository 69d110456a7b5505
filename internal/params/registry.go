package params

import (
	"fmt"

	"github.com/opsgate/opsgate/internal/errors"
)

// Registry is an ordered, immutable collection of parameter descriptors.
// Order determines help and variable-mapping order, not semantics.
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry validates and freezes an ordered descriptor list. It fails
// with a config error on duplicate names, missing validators for non-switch
// parameters, unknown depends-on targets, or dependency cycles, so that
// integrator mistakes never reach an operator.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	longs := make(map[string]int, len(descriptors))
	shorts := make(map[string]int, len(descriptors))

	for i, d := range descriptors {
		if d.Name == "" {
			return nil, errors.NewConfigError(errors.CodeBadDefinition,
				fmt.Sprintf("parameter %d has no name", i))
		}
		if len(d.Short) > 1 {
			return nil, errors.NewConfigError(errors.CodeBadDefinition,
				fmt.Sprintf("parameter %q: short name %q must be a single character", d.Name, d.Short))
		}
		if _, dup := longs[d.Name]; dup {
			return nil, errors.NewConfigError(errors.CodeDuplicateName,
				fmt.Sprintf("duplicate parameter name %q", d.Name))
		}
		longs[d.Name] = i
		if d.Short != "" {
			if _, dup := shorts[d.Short]; dup {
				return nil, errors.NewConfigError(errors.CodeDuplicateName,
					fmt.Sprintf("duplicate short name %q", d.Short))
			}
			shorts[d.Short] = i
		}

		if d.Switch {
			if d.Validator != nil {
				return nil, errors.NewConfigError(errors.CodeBadDefinition,
					fmt.Sprintf("parameter %q: switch parameters take no validator", d.Name))
			}
			continue
		}
		if d.Validator == nil {
			return nil, errors.NewConfigError(errors.CodeUnconstrainedString,
				fmt.Sprintf("parameter %q: a bounded validator is required for all value arguments", d.Name))
		}
	}

	for _, d := range descriptors {
		if d.DependsOn == "" {
			continue
		}
		if _, ok := longs[d.DependsOn]; !ok {
			return nil, errors.NewConfigError(errors.CodeUnknownDependency,
				fmt.Sprintf("parameter %q depends on unknown parameter %q", d.Name, d.DependsOn))
		}
	}

	if err := checkCycles(descriptors, longs); err != nil {
		return nil, err
	}

	frozen := make([]Descriptor, len(descriptors))
	copy(frozen, descriptors)
	return &Registry{descriptors: frozen}, nil
}

// checkCycles walks every depends-on chain. Each descriptor has at most one
// outgoing edge, so a chain either terminates or revisits a node.
func checkCycles(descriptors []Descriptor, longs map[string]int) error {
	for i := range descriptors {
		seen := map[int]bool{}
		for at := i; descriptors[at].DependsOn != ""; {
			if seen[at] {
				return errors.NewConfigError(errors.CodeDependencyCycle,
					fmt.Sprintf("dependency cycle involving parameter %q", descriptors[at].Name))
			}
			seen[at] = true
			at = longs[descriptors[at].DependsOn]
		}
	}
	return nil
}

// Descriptors returns the descriptors in declaration order. The returned
// slice is a copy; the registry itself never changes after construction.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Find returns the first descriptor whose long or short name equals name.
// Matching is in declaration order: if one parameter's short name collides
// with a later parameter's long name, the earlier declaration wins.
func (r *Registry) Find(name string) (Descriptor, bool) {
	for _, d := range r.descriptors {
		if d.Name == name || (d.Short != "" && d.Short == name) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Resolve builds the parsed parameter set from per-flag validation results.
// values maps long names to validated values for flags that were present;
// provided marks flags explicitly set on the command line. Defaults are
// filled for absent optional parameters, then the dependency pass runs.
// Resolve must only be called after every individual validator succeeded.
func (r *Registry) Resolve(values map[string]any, provided map[string]bool) (*Set, error) {
	resolved := make(map[string]any, len(r.descriptors))
	marks := make(map[string]bool, len(provided))

	for _, d := range r.descriptors {
		if v, ok := values[d.Name]; ok {
			resolved[d.Name] = v
		} else {
			resolved[d.Name] = d.Default
		}
		if provided[d.Name] {
			marks[d.Name] = true
		}
	}

	if err := r.checkDependencies(marks); err != nil {
		return nil, err
	}

	return &Set{values: resolved, provided: marks}, nil
}

// checkDependencies enforces every depends-on relation: a provided
// dependent parameter requires its dependee to be provided as well. The
// error names both flags in long and short form for the usage message.
func (r *Registry) checkDependencies(provided map[string]bool) error {
	for _, d := range r.descriptors {
		if d.DependsOn == "" || !provided[d.Name] || provided[d.DependsOn] {
			continue
		}
		target, _ := r.Find(d.DependsOn)
		return errors.NewDependencyError(fmt.Sprintf(
			"argument --%s (-%s) requires --%s (-%s) to be present",
			d.Name, d.Short, target.Name, target.Short))
	}
	return nil
}
