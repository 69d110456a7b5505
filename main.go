package main

import (
	"fmt"
	"os"

	"github.com/opsgate/opsgate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cmd.Quiet(err) {
			fmt.Fprintln(os.Stderr, "opsgate: error:", err)
		}
		os.Exit(cmd.ExitStatus(err))
	}
}
