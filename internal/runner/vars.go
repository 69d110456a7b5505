// Package runner owns the execution handoff: deriving the namespaced
// playbook variable mapping from a parsed parameter set, checking the
// playbook artifact, and delegating to an external playbook runner.
package runner

import (
	"github.com/opsgate/opsgate/internal/params"
	"github.com/opsgate/opsgate/internal/privilege"
)

// VarPrefix namespaces parameter-derived variables so they cannot collide
// with the runner's own reserved variable names.
const VarPrefix = "param_"

// Reserved variable names outside the parameter namespace.
const (
	SudoUserVar   = "sudouser"
	ScriptNameVar = "scriptname"
)

// Variable is one name/value pair handed to the playbook runner.
type Variable struct {
	Name  string
	Value any
}

// BuildVariables derives the ordered variable mapping for a run. Parameter
// variables are produced by walking the registry's descriptor list in
// declaration order and pairing each descriptor with its resolved value,
// each key prefixed with VarPrefix. When sudoUser is non-empty it is
// validated against the conservative username pattern and emitted first
// under the reserved sudouser key; an invalid identity aborts before any
// variable is built.
func BuildVariables(registry *params.Registry, set *params.Set, scriptName, sudoUser string) ([]Variable, error) {
	if sudoUser != "" {
		if err := privilege.ValidateUsername(sudoUser); err != nil {
			return nil, err
		}
	}

	vars := make([]Variable, 0, set.Len()+2)
	if sudoUser != "" {
		vars = append(vars, Variable{Name: SudoUserVar, Value: sudoUser})
	}
	vars = append(vars, Variable{Name: ScriptNameVar, Value: scriptName})

	for _, d := range registry.Descriptors() {
		vars = append(vars, Variable{Name: VarPrefix + d.Name, Value: set.Value(d.Name)})
	}
	return vars, nil
}
