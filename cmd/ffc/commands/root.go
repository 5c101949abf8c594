package commands

import (
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	baseURL   string
	envSecret string
	profile   string
	format    string
	verbose   bool
}

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ffc",
		Short: "CLI tool for feature flag evaluation payloads",
		Long: `ffc encodes and decodes the payloads exchanged between an SDK and the
feature flag evaluation backend, and can query a backend directly.

Examples:
  ffc encode --user user-1 --name Ada --prop plan=gold --flag new-ui
  ffc decode request.json
  ffc variation new-ui --user user-1 --profile prod
  ffc all --user user-1 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Base URL of the evaluation backend")
	rootCmd.PersistentFlags().StringVar(&opts.envSecret, "env-secret", "", "Environment secret for authentication")
	rootCmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "Profile from ~/.ffc/config.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log transport activity to stderr")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(opts),
		newVariationCmd(opts),
		newAllCmd(opts),
		newConfigCmd(),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
