// Package cmd provides the opsgate command-line interface.
//
// Configuration sources, in precedence order:
//  1. Command-line flags (--config, --log-level)
//  2. OPSGATE_* environment variables (OPSGATE_LOG_LEVEL, OPSGATE_RUNNER_BINARY)
//  3. Configuration file (.opsgate.yml in the current directory, or the
//     path given via --config / OPSGATE_CONFIG_FILE)
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "opsgate",
	Short: "Safely expose privileged automation scripts to operators",
	Long: `opsgate builds a validated command-line surface for privileged automation
scripts. A YAML definition declares the playbook and its typed parameters;
every free-form value must pass a bounded validator and every declared
cross-parameter dependency must resolve before anything privileged runs.

Quick start:
  opsgate lint add-domain.yml            Check a definition for config errors
  opsgate run add-domain.yml -- -d x.example.com
                                         Validate arguments and run the playbook`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .opsgate.yml, can also use OPSGATE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig wires viper: explicit --config first, then the
// OPSGATE_CONFIG_FILE environment variable, then .opsgate.yml in the
// current directory. Missing config files are not an error; env and flag
// values still apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("OPSGATE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".opsgate")
	}

	viper.SetEnvPrefix("OPSGATE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	_ = viper.ReadInConfig()
}
