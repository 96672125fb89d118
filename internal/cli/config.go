package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration as TOML.

The output merges the config file (--config or $DASHGRID_CONFIG) over the
built-in profile and preset tables and can be used as a starting point for a
custom config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if !defaults {
				loaded, err := c.loadConfig()
				if err != nil {
					return err
				}
				cfg = loaded
			}
			return cfg.WriteTOML(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "ignore the config file and print the built-in defaults")
	return cmd
}
