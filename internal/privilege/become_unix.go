//go:build unix

package privilege

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/opsgate/opsgate/internal/errors"
)

// BecomeRoot ensures the process runs elevated. When it is not, the process
// replaces itself with a sudo re-invocation of the same argv and never
// returns on success. On the already-elevated side it recovers the invoking
// identity from SUDO_USER and validates it; an empty SUDO_USER means the
// process was started as root directly and there is no elevated-from
// identity.
func BecomeRoot() (string, error) {
	if !Elevated() {
		sudo, err := exec.LookPath("sudo")
		if err != nil {
			return "", errors.NewInternalError("sudo not found", err)
		}
		argv := append([]string{sudo}, os.Args...)
		if err := syscall.Exec(sudo, argv, os.Environ()); err != nil {
			return "", errors.NewInternalError("re-executing under sudo", err)
		}
		// Unreachable: Exec does not return on success.
		return "", nil
	}

	user := os.Getenv("SUDO_USER")
	if user == "" {
		return "", nil
	}
	if err := ValidateUsername(user); err != nil {
		return "", err
	}
	return user, nil
}
