package runner

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/opsgate/opsgate/internal/errors"
)

// Options configures a single playbook run. It is passed explicitly per
// call; runners hold no process-wide mutable state.
type Options struct {
	// Forks bounds the runner's internal parallelism. Values below 1 are
	// clamped to 1.
	Forks int
	// Verbose passes the diagnostic flag through to the runner.
	Verbose bool
}

// Runner executes one playbook with the given variable mapping and reports
// the runner's exit status. Status 0 is the sole success signal.
type Runner interface {
	Run(ctx context.Context, playbook string, vars []Variable, opts Options) (int, error)
}

// AnsibleRunner runs playbooks with the ansible-playbook binary against
// localhost over the local connection.
type AnsibleRunner struct {
	// Binary overrides the ansible-playbook executable path.
	Binary string
	// Stdout and Stderr receive the runner's output; defaults to the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer
}

const defaultBinary = "ansible-playbook"

// Run implements Runner. The variable mapping is passed as --extra-vars
// JSON. Retry files are disabled through the command environment rather
// than any global runner configuration.
func (r *AnsibleRunner) Run(ctx context.Context, playbook string, vars []Variable, opts Options) (int, error) {
	binary := r.Binary
	if binary == "" {
		binary = defaultBinary
	}

	extra := make(map[string]any, len(vars))
	for _, v := range vars {
		extra[v.Name] = v.Value
	}
	extraJSON, err := json.Marshal(extra)
	if err != nil {
		return -1, errors.NewInternalError("encoding playbook variables", err)
	}

	forks := opts.Forks
	if forks < 1 {
		forks = 1
	}

	args := []string{
		"--inventory", "localhost,",
		"--connection", "local",
		"--forks", strconv.Itoa(forks),
		"--extra-vars", string(extraJSON),
	}
	if opts.Verbose {
		args = append(args, "-v")
	}
	args = append(args, playbook)

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = append(os.Environ(), "ANSIBLE_RETRY_FILES_ENABLED=False")
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.NewInternalError("starting playbook runner", err)
	}
	return 0, nil
}
