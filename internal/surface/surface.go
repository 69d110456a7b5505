// Package surface translates a parameter registry into a command-line flag
// surface: long/short aliases, required and optional help groups, a help
// flag, and a verbose flag that is not backed by any descriptor. Parsing is
// single-stop: the first validator failure aborts with a usage-style error
// naming the offending flag.
package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/opsgate/opsgate/internal/params"
)

// ErrHelp is returned by Parse when the operator asked for help. The usage
// text has already been written to the configured output.
var ErrHelp = pflag.ErrHelp

// Surface is the built flag surface for one script invocation.
type Surface struct {
	name     string
	registry *params.Registry

	fs       *pflag.FlagSet
	required *pflag.FlagSet
	optional *pflag.FlagSet

	values   map[string]*flagValue
	switches map[string]*bool
	verbose  bool
	help     bool

	out io.Writer
}

// New builds the flag surface for a registry. name is the script name used
// in usage output; out receives help and usage text.
func New(name string, registry *params.Registry, out io.Writer) *Surface {
	s := &Surface{
		name:     name,
		registry: registry,
		fs:       pflag.NewFlagSet(name, pflag.ContinueOnError),
		required: pflag.NewFlagSet(name+".required", pflag.ContinueOnError),
		optional: pflag.NewFlagSet(name+".optional", pflag.ContinueOnError),
		values:   make(map[string]*flagValue),
		switches: make(map[string]*bool),
		out:      out,
	}

	// Help groups render in declaration order, not lexically.
	s.required.SortFlags = false
	s.optional.SortFlags = false

	// Help is registered first so it renders at the top of the optional
	// group, then parsing errors do not double-print usage.
	helpFlag := s.fs.VarPF(boolValue{&s.help}, "help", "h", "show this help message and exit")
	helpFlag.NoOptDefVal = "true"
	s.optional.AddFlag(helpFlag)
	s.fs.SetOutput(io.Discard)
	s.fs.Usage = func() {}

	for _, d := range registry.Descriptors() {
		group := s.optional
		if d.Required {
			group = s.required
		}

		if d.Switch {
			b := new(bool)
			s.switches[d.Name] = b
			f := s.fs.VarPF(boolValue{b}, d.Name, d.Short, d.Help)
			f.NoOptDefVal = "true"
			group.AddFlag(f)
			continue
		}

		fv := &flagValue{validator: d.Validator}
		s.values[d.Name] = fv
		group.AddFlag(s.fs.VarPF(fv, d.Name, d.Short, d.Help))
	}

	verboseFlag := s.fs.VarPF(boolValue{&s.verbose}, "verbose", "v", "run with a lot of debugging output")
	verboseFlag.NoOptDefVal = "true"
	s.optional.AddFlag(verboseFlag)

	return s
}

// Parse validates raw command-line tokens against the registry and returns
// the resolved parameter set. It returns ErrHelp after printing usage when
// help was requested. Any other error is terminal for the invocation and
// already names the offending flag.
func (s *Surface) Parse(args []string) (*params.Set, error) {
	if err := s.fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			s.PrintUsage()
			return nil, ErrHelp
		}
		return nil, err
	}
	if s.help {
		s.PrintUsage()
		return nil, ErrHelp
	}

	for _, d := range s.registry.Descriptors() {
		if d.Required && !s.fs.Changed(d.Name) {
			return nil, fmt.Errorf("argument --%s (-%s) is required", d.Name, d.Short)
		}
	}

	values := make(map[string]any, len(s.values))
	provided := make(map[string]bool)
	for name, fv := range s.values {
		if fv.set {
			values[name] = fv.value
			provided[name] = true
		}
	}
	for name, b := range s.switches {
		values[name] = *b
		if *b {
			provided[name] = true
		}
	}

	return s.registry.Resolve(values, provided)
}

// Verbose reports whether the diagnostic flag was set. Valid after Parse.
func (s *Surface) Verbose() bool {
	return s.verbose
}

// PrintUsage writes grouped usage text: required arguments first, then
// optional ones, preserving declaration order within each group.
func (s *Surface) PrintUsage() {
	fmt.Fprint(s.out, s.Usage())
}

// Usage renders the grouped usage text.
func (s *Surface) Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s [arguments]\n", s.name)
	if req := s.required.FlagUsages(); req != "" {
		b.WriteString("\nrequired arguments:\n")
		b.WriteString(req)
	}
	if opt := s.optional.FlagUsages(); opt != "" {
		b.WriteString("\noptional arguments:\n")
		b.WriteString(opt)
	}
	return b.String()
}
