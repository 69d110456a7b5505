package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsgate/opsgate/internal/errors"
	"github.com/opsgate/opsgate/internal/params"
	"github.com/opsgate/opsgate/internal/runner"
	"github.com/opsgate/opsgate/internal/validate"
)

// fakeRunner records the handoff instead of executing anything.
type fakeRunner struct {
	called   bool
	playbook string
	vars     []runner.Variable
	opts     runner.Options
	status   int
}

func (f *fakeRunner) Run(_ context.Context, playbook string, vars []runner.Variable, opts runner.Options) (int, error) {
	f.called = true
	f.playbook = playbook
	f.vars = vars
	f.opts = opts
	return f.status, nil
}

func writePlaybook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playbook.yml")
	require.NoError(t, os.WriteFile(path, []byte("---\n- hosts: localhost\n"), 0o644))
	return path
}

func domainScript(t *testing.T, playbook string, r runner.Runner, out, errOut *bytes.Buffer) *Script {
	t.Helper()
	return &Script{
		Playbook: playbook,
		Parameters: []params.Descriptor{
			{Name: "host", Short: "d", Validator: validate.NewDomain(false), Required: true},
		},
		SuccessMsg: "domain added",
		Name:       "add-domain",
		Runner:     r,
		Out:        out,
		Err:        errOut,
	}
}

func TestAutoEndToEnd(t *testing.T) {
	var out, errOut bytes.Buffer
	fake := &fakeRunner{}
	s := domainScript(t, writePlaybook(t), fake, &out, &errOut)

	status := s.Auto(context.Background(), []string{"--host", "sub.example.com"}, false)
	assert.Equal(t, StatusOK, status)

	require.True(t, fake.called)
	assert.Equal(t, "sub.example.com", s.Parsed().Value("host"))
	require.Len(t, fake.vars, 2)
	assert.Equal(t, runner.Variable{Name: "scriptname", Value: "add-domain"}, fake.vars[0])
	assert.Equal(t, runner.Variable{Name: "param_host", Value: "sub.example.com"}, fake.vars[1])
	assert.Equal(t, runner.Options{Forks: 1, Verbose: false}, fake.opts)
	assert.Contains(t, out.String(), "domain added")
}

func TestAutoValidationFailureNeverRuns(t *testing.T) {
	var out, errOut bytes.Buffer
	fake := &fakeRunner{}
	s := domainScript(t, writePlaybook(t), fake, &out, &errOut)

	status := s.Auto(context.Background(), []string{"--host", "no_good"}, false)
	assert.Equal(t, StatusUsage, status)
	assert.False(t, fake.called, "runner must not be invoked after a validation failure")
	assert.Contains(t, errOut.String(), "--host")
}

func TestAutoMissingRequiredNeverRuns(t *testing.T) {
	var out, errOut bytes.Buffer
	fake := &fakeRunner{}
	s := domainScript(t, writePlaybook(t), fake, &out, &errOut)

	status := s.Auto(context.Background(), nil, false)
	assert.Equal(t, StatusUsage, status)
	assert.False(t, fake.called)
	assert.Contains(t, errOut.String(), "argument --host (-d) is required")
}

func TestAutoHelpExitsZero(t *testing.T) {
	var out, errOut bytes.Buffer
	fake := &fakeRunner{}
	s := domainScript(t, writePlaybook(t), fake, &out, &errOut)

	status := s.Auto(context.Background(), []string{"--help"}, false)
	assert.Equal(t, StatusOK, status)
	assert.False(t, fake.called)
	assert.Contains(t, out.String(), "usage: add-domain")
}

func TestAutoRunnerFailureStatus(t *testing.T) {
	var out, errOut bytes.Buffer
	fake := &fakeRunner{status: 2}
	s := domainScript(t, writePlaybook(t), fake, &out, &errOut)

	status := s.Auto(context.Background(), []string{"--host", "example.com"}, false)
	assert.Equal(t, StatusFailure, status)
	assert.NotContains(t, out.String(), "domain added")
}

func TestExecutePlaybookRefusesBadArtifacts(t *testing.T) {
	dir := t.TempDir()
	playbook := filepath.Join(dir, "playbook.yml")
	require.NoError(t, os.WriteFile(playbook, []byte("---\n"), 0o644))
	link := filepath.Join(dir, "link.yml")
	require.NoError(t, os.Symlink(playbook, link))

	for _, path := range []string{"relative/playbook.yml", filepath.Join(dir, "missing.yml"), link} {
		var out, errOut bytes.Buffer
		fake := &fakeRunner{}
		s := domainScript(t, path, fake, &out, &errOut)
		require.NoError(t, s.ParseArgs([]string{"--host", "example.com"}))

		ok, err := s.ExecutePlaybook(context.Background())
		assert.False(t, ok)
		require.Errorf(t, err, "path %q", path)
		assert.True(t, errors.IsArtifact(err), "path %q: %v", path, err)
		assert.False(t, fake.called, "runner must not be invoked for artifact %q", path)
	}
}

func TestConstructionErrorsSurfaceBeforeParse(t *testing.T) {
	var out, errOut bytes.Buffer
	s := &Script{
		Playbook: "/opt/playbooks/x.yml",
		Parameters: []params.Descriptor{
			{Name: "comment", Short: "c"}, // no validator
		},
		Out: &out,
		Err: &errOut,
	}

	err := s.ParseArgs([]string{"-c", "hello"})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
	assert.True(t, errors.HasCode(err, errors.CodeUnconstrainedString))
}
