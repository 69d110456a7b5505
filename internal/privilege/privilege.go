// Package privilege is the elevation collaborator. The validation core only
// consumes two things from it: whether the process is already elevated, and
// the validated identity the elevation started from.
package privilege

import (
	"fmt"
	"os"
	"regexp"

	"github.com/opsgate/opsgate/internal/errors"
)

// usernamePattern is deliberately conservative: a lowercase letter followed
// by up to 20 lowercase alphanumerics. Anything else never becomes a
// playbook variable.
var usernamePattern = regexp.MustCompile(`^[a-z][a-z0-9]{0,20}$`)

// Elevated reports whether the process runs with effective UID 0.
func Elevated() bool {
	return os.Geteuid() == 0
}

// ValidateUsername checks an elevated-from identity against the
// conservative username pattern.
func ValidateUsername(name string) error {
	if !usernamePattern.MatchString(name) {
		return errors.NewValidationError(errors.CodeBadIdentity,
			fmt.Sprintf("invalid username %q", name))
	}
	return nil
}
