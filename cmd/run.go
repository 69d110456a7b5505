package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opsgate/opsgate/internal/config"
	"github.com/opsgate/opsgate/internal/logging"
	"github.com/opsgate/opsgate/internal/runner"
	"github.com/opsgate/opsgate/internal/script"
)

var noBecome bool

var runCmd = &cobra.Command{
	Use:   "run <definition.yml> [-- script arguments]",
	Short: "Validate script arguments and execute the playbook",
	Long: `Run loads a script definition, builds its validated flag surface, and
checks the given script arguments against it. Only a fully validated,
dependency-checked parameter set is handed to the playbook runner.

Unless --no-become is given, the process re-executes itself under sudo
before doing anything else.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(logging.Options{
			Level:  viper.GetString("log-level"),
			Format: viper.GetString("log-format"),
			Output: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}

		def, err := config.Load(args[0])
		if err != nil {
			return err
		}
		descriptors, err := def.Descriptors()
		if err != nil {
			return err
		}

		s := &script.Script{
			Playbook:   def.Playbook,
			Parameters: descriptors,
			SuccessMsg: def.SuccessMsg,
			Runner:     &runner.AnsibleRunner{Binary: viper.GetString("runner-binary")},
			Out:        cmd.OutOrStdout(),
			Err:        cmd.ErrOrStderr(),
			Logger:     logging.WithComponent(logger, "script"),
		}

		status := s.Auto(cmd.Context(), args[1:], !noBecome)
		if status != script.StatusOK {
			return &exitError{status: status}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&noBecome, "no-become", false, "do not re-execute under sudo (the caller is already elevated)")
	_ = viper.BindEnv("runner-binary")
	rootCmd.AddCommand(runCmd)
}
