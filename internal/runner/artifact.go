package runner

import (
	"os"
	"path/filepath"

	"github.com/opsgate/opsgate/internal/errors"
)

// CheckArtifact verifies the playbook path before anything privileged runs:
// the path must be absolute and reference an existing regular file. Symlinks
// are rejected, so a playbook cannot be swapped out from under the elevated
// process via a link.
func CheckArtifact(path string) error {
	if path == "" {
		return errors.NewArtifactError("no playbook given")
	}
	if !filepath.IsAbs(path) {
		return errors.NewArtifactError("path to playbook must be absolute")
	}

	info, err := os.Lstat(path)
	if err != nil {
		return errors.NewArtifactError("playbook must exist and must not be a link")
	}
	if !info.Mode().IsRegular() {
		return errors.NewArtifactError("playbook must exist and must not be a link")
	}
	return nil
}
