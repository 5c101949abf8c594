package commands

import (
	"fmt"
	"os"

	"github.com/TimurManjosov/ffc-commons-go/internal/cli"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the CLI profile file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default profile file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.GetConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}
			if err := cli.InitConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Default profile: %s\n", cfg.DefaultProfile)
			for name, p := range cfg.Profiles {
				fmt.Fprintf(out, "  %s: %s\n", name, p.BaseURL)
			}
			return nil
		},
	})

	return configCmd
}
