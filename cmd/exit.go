package cmd

import (
	stderrors "errors"
	"fmt"
)

// exitError carries a process exit status up through cobra. The script
// layer has already printed the user-facing message when one exists.
type exitError struct {
	status int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.status)
}

// ExitStatus maps an Execute error to the process exit status.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if stderrors.As(err, &ee) {
		return ee.status
	}
	return 1
}

// Quiet reports whether the error's message has already been printed and
// must not be repeated by main.
func Quiet(err error) bool {
	var ee *exitError
	return stderrors.As(err, &ee)
}
