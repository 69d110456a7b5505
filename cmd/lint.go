package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsgate/opsgate/internal/config"
)

var lintCmd = &cobra.Command{
	Use:   "lint <definition.yml>...",
	Short: "Check script definitions for configuration errors",
	Long: `Lint performs the construction-time checks without running anything:
validator bounds, required character classes for string parameters,
duplicate names, unknown depends targets, and dependency cycles. These are
integrator errors, so lint is the place they should surface, not an
operator's terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false
		for _, path := range args {
			if err := lintDefinition(path); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				failed = true
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		}
		if failed {
			return &exitError{status: 1}
		}
		return nil
	},
}

// lintDefinition runs every construction-time check for one definition
// file: YAML decoding, validator construction, and registry construction.
func lintDefinition(path string) error {
	def, err := config.Load(path)
	if err != nil {
		return err
	}
	_, err = def.Registry()
	return err
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
