package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/internal/server"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// presetsCommand creates the presets command.
func (c *CLI) presetsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the named row presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			presets := cfg.Presets.List()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), presets)
			}
			fmt.Fprintln(cmd.OutOrStdout(), presetTable(presets))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// typesCommand creates the types command.
func (c *CLI) typesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List widget types with their size bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			types := server.WidgetTypes(cfg.Profiles, widget.DefaultPolicy())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), types)
			}
			fmt.Fprintln(cmd.OutOrStdout(), widgetTypeTable(types))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
