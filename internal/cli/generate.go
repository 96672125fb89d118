package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// presetCommand creates the preset command.
func (c *CLI) presetCommand() *cobra.Command {
	var (
		out      outputOptions
		pattern  string
		minWidth int
		seed     uint64
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "preset [name]",
		Short: "Generate a layout from a named preset or row pattern",
		Long: `Generate a layout from a named preset or row pattern.

A pattern lists the widget count of each row, e.g. "4+2+1". Each row splits
the 12 columns evenly and widgets are drawn at random from the profiles whose
minimum width fits. Pass --seed for a reproducible, cacheable layout.

Run "dashgrid presets" to list the named presets.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			var names []string
			for _, p := range cfg.Presets.List() {
				names = append(names, p.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Kind:         pipeline.KindPreset,
				MinWidthCols: minWidth,
				Seed:         seed,
				Refresh:      refresh,
			}
			if len(args) == 1 {
				opts.Preset = args[0]
			}
			if pattern != "" {
				p, err := generate.ParsePattern(pattern)
				if err != nil {
					return err
				}
				opts.Pattern = p
			}

			res, err := c.execute(cmd.Context(), noCache, opts)
			if err != nil {
				return err
			}
			return out.write(cmd, res)
		},
	}

	out.register(cmd)
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", `row pattern such as "3+1" (overrides the preset name)`)
	cmd.Flags().IntVar(&minWidth, "min-width", 1, "minimum widget width in columns")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 draws a fresh layout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite the cached result")

	return cmd
}

// binPackCommand creates the binpack command.
func (c *CLI) binPackCommand() *cobra.Command {
	var (
		out     outputOptions
		count   int
		seed    uint64
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "binpack",
		Short: "Generate a random bin-packed layout",
		Long: `Generate a random bin-packed layout.

Widgets are drawn at random from the available profiles with random sizes
within their bounds and placed first-fit, scanning rows top to bottom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.execute(cmd.Context(), noCache, pipeline.Options{
				Kind:    pipeline.KindBinPack,
				Count:   count,
				Seed:    seed,
				Refresh: refresh,
			})
			if err != nil {
				return err
			}
			return out.write(cmd, res)
		},
	}

	out.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", pipeline.DefaultCount, "number of widgets")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 draws a fresh layout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite the cached result")

	return cmd
}
