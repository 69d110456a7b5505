// Package config loads YAML script definitions and translates them into
// parameter registries. A definition is the declarative description of one
// operator-facing script: the playbook it parameterizes, its success
// message, and its typed parameters.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opsgate/opsgate/internal/errors"
	"github.com/opsgate/opsgate/internal/params"
	"github.com/opsgate/opsgate/internal/validate"
)

// Definition is the YAML schema of a script definition file.
type Definition struct {
	Playbook   string      `yaml:"playbook"`
	SuccessMsg string      `yaml:"success_msg"`
	Parameters []Parameter `yaml:"parameters"`
}

// Parameter is one declared parameter. Type selects the validator; the
// remaining fields only apply to their type.
type Parameter struct {
	Name     string `yaml:"name"`
	Short    string `yaml:"short"`
	Help     string `yaml:"help"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
	Default  any    `yaml:"default"`
	Depends  string `yaml:"depends"`

	// type: str
	AllowedChars string `yaml:"allowed_chars"`
	MinLen       *int   `yaml:"minlen"`
	MaxLen       *int   `yaml:"maxlen"`

	// type: int
	Minimum *int64 `yaml:"minimum"`
	Maximum *int64 `yaml:"maximum"`

	// type: domain
	Wildcard bool `yaml:"wildcard"`
}

// Load reads and strictly decodes a definition file. Unknown fields are
// rejected so a typoed constraint can never silently weaken validation.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(errors.CodeBadDefinition,
			fmt.Sprintf("reading definition %s: %v", path, err))
	}
	return Parse(data)
}

// Parse strictly decodes definition YAML.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, errors.NewConfigError(errors.CodeBadDefinition,
			fmt.Sprintf("decoding definition: %v", err))
	}
	if def.Playbook == "" {
		return nil, errors.NewConfigError(errors.CodeBadDefinition, "definition has no playbook")
	}
	return &def, nil
}

// Descriptors translates the declared parameters into registry descriptors,
// constructing each parameter's validator. Validator construction failures
// are config errors naming the parameter.
func (d *Definition) Descriptors() ([]params.Descriptor, error) {
	descriptors := make([]params.Descriptor, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		desc := params.Descriptor{
			Name:      p.Name,
			Short:     p.Short,
			Help:      p.Help,
			Required:  p.Required,
			Default:   p.Default,
			DependsOn: p.Depends,
		}

		switch p.Type {
		case "str":
			if p.AllowedChars == "" {
				return nil, errors.NewConfigError(errors.CodeUnconstrainedString,
					fmt.Sprintf("parameter %q: str parameters must declare allowed_chars", p.Name))
			}
			minLen, maxLen := validate.DefaultMinLen, validate.DefaultMaxLen
			if p.MinLen != nil {
				minLen = *p.MinLen
			}
			if p.MaxLen != nil {
				maxLen = *p.MaxLen
			}
			v, err := validate.NewBoundedString(p.AllowedChars, minLen, maxLen)
			if err != nil {
				return nil, wrapParam(p.Name, err)
			}
			desc.Validator = v
		case "int":
			v, err := validate.NewBoundedInt(p.Minimum, p.Maximum)
			if err != nil {
				return nil, wrapParam(p.Name, err)
			}
			desc.Validator = v
		case "domain":
			desc.Validator = validate.NewDomain(p.Wildcard)
		case "switch":
			desc.Switch = true
		default:
			return nil, errors.NewConfigError(errors.CodeBadDefinition,
				fmt.Sprintf("parameter %q: unknown type %q", p.Name, p.Type))
		}

		descriptors = append(descriptors, desc)
	}
	return descriptors, nil
}

// Registry builds the full parameter registry for the definition.
func (d *Definition) Registry() (*params.Registry, error) {
	descriptors, err := d.Descriptors()
	if err != nil {
		return nil, err
	}
	return params.NewRegistry(descriptors)
}

func wrapParam(name string, err error) error {
	if e, ok := err.(*errors.Error); ok {
		e.Message = fmt.Sprintf("parameter %q: %s", name, e.Message)
		return e
	}
	return err
}
