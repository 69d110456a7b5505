package surface

import (
	"strconv"

	"github.com/opsgate/opsgate/internal/validate"
)

// flagValue adapts a validator to pflag.Value. pflag surfaces Set errors as
// `invalid argument "..." for "-x, --name" flag: ...`, which is the precise
// per-flag usage error the parse contract requires, and stops at the first
// failure.
type flagValue struct {
	validator validate.Validator
	raw       string
	value     any
	set       bool
}

func (f *flagValue) Set(raw string) error {
	v, err := f.validator.Validate(raw)
	if err != nil {
		return err
	}
	f.raw = raw
	f.value = v
	f.set = true
	return nil
}

func (f *flagValue) Type() string {
	return f.validator.Name()
}

func (f *flagValue) String() string {
	return f.raw
}

// boolValue is a minimal bool pflag.Value for switch parameters and the
// built-in help/verbose flags.
type boolValue struct {
	p *bool
}

func (b boolValue) Set(raw string) error {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return err
	}
	*b.p = v
	return nil
}

func (b boolValue) Type() string {
	return "bool"
}

func (b boolValue) String() string {
	return strconv.FormatBool(*b.p)
}
