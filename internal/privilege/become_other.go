//go:build !unix

package privilege

import (
	"github.com/opsgate/opsgate/internal/errors"
)

// BecomeRoot is unsupported off unix; privileged scripts are a sudo
// workflow.
func BecomeRoot() (string, error) {
	return "", errors.NewInternalError("privilege elevation is only supported on unix", nil)
}
