package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/TimurManjosov/ffc-commons-go/internal/cli"
	"github.com/TimurManjosov/ffc-commons-go/pkg/model"
	"github.com/spf13/cobra"
)

func newDecodeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file|->",
		Short: "Decode an evaluation request",
		Long: `Decode an evaluation request payload and print the user it describes.
Use - to read from stdin.

Examples:
  ffc decode request.json
  echo '{"userKeyId":"user-1"}' | ffc decode - --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			params, err := model.DecodeVariationParams(string(data))
			if err != nil {
				return fmt.Errorf("failed to decode request: %w", err)
			}

			out := cmd.OutOrStdout()
			if params.NeedAll() {
				fmt.Fprintln(out, "Flag: (all flags)")
			} else {
				fmt.Fprintf(out, "Flag: %s\n", params.FeatureFlagKeyName())
			}
			return cli.PrintUser(out, params.User(), cli.OutputFormat(opts.format))
		},
	}
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
