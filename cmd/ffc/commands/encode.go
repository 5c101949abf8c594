package commands

import (
	"fmt"

	"github.com/TimurManjosov/ffc-commons-go/pkg/model"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var (
		user    userFlags
		flagKey string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the evaluation request for a user",
		Long: `Build a user from flags and print the evaluation request the SDK sends.
Without --flag the request asks for every flag.

Examples:
  ffc encode --user user-1
  ffc encode --user user-1 --name Ada --email ada@example.com --flag new-ui
  ffc encode --user user-1 --prop plan=gold --prop tier=2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := user.build()
			if err != nil {
				return err
			}
			params, err := model.NewVariationParams(flagKey, &u)
			if err != nil {
				return err
			}
			out, err := params.Jsonfy()
			if err != nil {
				return fmt.Errorf("failed to encode request: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	user.register(cmd)
	cmd.Flags().StringVar(&flagKey, "flag", "", "Flag key to evaluate (omit for all flags)")
	return cmd
}
