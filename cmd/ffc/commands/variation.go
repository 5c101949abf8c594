package commands

import (
	"context"
	"fmt"

	"github.com/TimurManjosov/ffc-commons-go/internal/cli"
	"github.com/TimurManjosov/ffc-commons-go/internal/client"
	"github.com/TimurManjosov/ffc-commons-go/internal/logger"
	"github.com/TimurManjosov/ffc-commons-go/pkg/model"
	"github.com/spf13/cobra"
)

// newClient logs to the command's stderr at FFC_LOG_LEVEL; --verbose forces debug.
func newClient(cmd *cobra.Command, opts *globalOptions) (*client.Client, error) {
	cfg, _, err := cli.ResolveConfig(opts.profile, opts.baseURL, opts.envSecret)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), "ffc", level)
	return client.New(cfg, log)
}

func newVariationCmd(opts *globalOptions) *cobra.Command {
	var user userFlags

	cmd := &cobra.Command{
		Use:   "variation <flag>",
		Short: "Evaluate one flag for a user",
		Long: `Ask the backend for the value of one flag.

Examples:
  ffc variation new-ui --user user-1
  ffc variation new-ui --user user-1 --name Ada --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := user.build()
			if err != nil {
				return err
			}
			c, err := newClient(cmd, opts)
			if err != nil {
				return err
			}

			d, err := client.Variation(context.Background(), c, args[0], u, model.Value{})
			if err != nil {
				return fmt.Errorf("failed to evaluate flag: %w", err)
			}
			return cli.PrintDetail(cmd.OutOrStdout(), d, cli.OutputFormat(opts.format))
		},
	}

	user.register(cmd)
	return cmd
}

func newAllCmd(opts *globalOptions) *cobra.Command {
	var user userFlags

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Evaluate every flag for a user",
		Long: `Ask the backend for the values of all flags.

Examples:
  ffc all --user user-1
  ffc all --user user-1 --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := user.build()
			if err != nil {
				return err
			}
			c, err := newClient(cmd, opts)
			if err != nil {
				return err
			}

			states := client.AllFlags[model.Value](context.Background(), c, u)
			if err := cli.PrintAllFlags(cmd.OutOrStdout(), states, cli.OutputFormat(opts.format)); err != nil {
				return err
			}
			if !states.Success() {
				return fmt.Errorf("failed to get all flags: %s", states.Message())
			}
			return nil
		},
	}

	user.register(cmd)
	return cmd
}
