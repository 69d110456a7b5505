// Package script ties the pipeline together: registry construction, flag
// parsing, dependency resolution, artifact checking, and the playbook
// handoff. One Script value describes one operator-facing privileged
// command.
package script

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/opsgate/opsgate/internal/params"
	"github.com/opsgate/opsgate/internal/privilege"
	"github.com/opsgate/opsgate/internal/runner"
	"github.com/opsgate/opsgate/internal/surface"
)

// Exit statuses. Usage errors follow the argparse convention of 2.
const (
	StatusOK      = 0
	StatusFailure = 1
	StatusUsage   = 2
)

// Script describes one privileged automation script.
type Script struct {
	// Playbook is the absolute path of the automation artifact.
	Playbook string
	// Parameters is the ordered descriptor list.
	Parameters []params.Descriptor
	// SuccessMsg is printed when the playbook run succeeds.
	SuccessMsg string
	// Name is the script name used in usage text and the scriptname
	// variable; defaults to the basename of os.Args[0].
	Name string
	// Runner executes the playbook; defaults to AnsibleRunner.
	Runner runner.Runner
	// Out and Err default to the process streams.
	Out io.Writer
	Err io.Writer
	// Logger receives diagnostics; defaults to a discarding logger.
	Logger *slog.Logger

	registry *params.Registry
	built    *surface.Surface
	parsed   *params.Set
	sudoUser string
	verbose  bool
}

func (s *Script) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Script) errOut() io.Writer {
	if s.Err != nil {
		return s.Err
	}
	return os.Stderr
}

func (s *Script) name() string {
	if s.Name != "" {
		return s.Name
	}
	return filepath.Base(os.Args[0])
}

func (s *Script) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Build constructs the registry and flag surface. It must be called (or is
// called implicitly by ParseArgs) before parsing; construction failures are
// integrator errors and surface as config errors.
func (s *Script) Build() error {
	if s.registry != nil {
		return nil
	}
	registry, err := params.NewRegistry(s.Parameters)
	if err != nil {
		return err
	}
	s.registry = registry
	s.built = surface.New(s.name(), registry, s.out())
	return nil
}

// ParseArgs validates the raw arguments and resolves dependencies. On
// return the parsed set is complete; any error means nothing privileged may
// run.
func (s *Script) ParseArgs(args []string) error {
	if err := s.Build(); err != nil {
		return err
	}
	set, err := s.built.Parse(args)
	if err != nil {
		return err
	}
	s.parsed = set
	s.verbose = s.built.Verbose()
	return nil
}

// Parsed returns the parameter set resolved by ParseArgs.
func (s *Script) Parsed() *params.Set {
	return s.parsed
}

// ExecutePlaybook checks the artifact, derives the variable mapping, and
// hands off to the runner. The run outcome is a boolean: true only on the
// runner's zero status.
func (s *Script) ExecutePlaybook(ctx context.Context) (bool, error) {
	if s.parsed == nil {
		return false, fmt.Errorf("arguments have not been parsed")
	}
	if err := runner.CheckArtifact(s.Playbook); err != nil {
		return false, err
	}

	vars, err := runner.BuildVariables(s.registry, s.parsed, s.name(), s.sudoUser)
	if err != nil {
		return false, err
	}

	r := s.Runner
	if r == nil {
		r = &runner.AnsibleRunner{Stdout: s.out(), Stderr: s.errOut()}
	}

	s.logger().Debug("handing off to playbook runner",
		"playbook", s.Playbook, "variables", len(vars), "verbose", s.verbose)

	status, err := r.Run(ctx, s.Playbook, vars, runner.Options{Forks: 1, Verbose: s.verbose})
	if err != nil {
		return false, err
	}
	if status != 0 {
		s.logger().Debug("playbook runner reported failure", "status", status)
		return false, nil
	}
	if s.SuccessMsg != "" {
		fmt.Fprintln(s.out(), s.SuccessMsg)
	}
	return true, nil
}

// Auto runs the whole pipeline: optional elevation, parse, dependency
// check, handoff. It returns the process exit status instead of exiting, so
// callers own os.Exit.
func (s *Script) Auto(ctx context.Context, args []string, becomeRoot bool) int {
	if becomeRoot {
		user, err := privilege.BecomeRoot()
		if err != nil {
			fmt.Fprintln(s.errOut(), err)
			return StatusFailure
		}
		s.sudoUser = user
	}

	if err := s.ParseArgs(args); err != nil {
		if stderrors.Is(err, surface.ErrHelp) {
			return StatusOK
		}
		fmt.Fprintf(s.errOut(), "%s: error: %v\n", s.name(), err)
		return StatusUsage
	}

	ok, err := s.ExecutePlaybook(ctx)
	if err != nil {
		fmt.Fprintf(s.errOut(), "%s: error: %v\n", s.name(), err)
		return StatusFailure
	}
	if !ok {
		return StatusFailure
	}
	return StatusOK
}
