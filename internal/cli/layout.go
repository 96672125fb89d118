package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// =============================================================================
// Output Handling
// =============================================================================

// outputOptions controls how a finished layout is written.
type outputOptions struct {
	path      string
	itemsOnly bool
	table     bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&o.itemsOnly, "items", false, "write only the item array instead of the layout envelope")
	cmd.Flags().BoolVar(&o.table, "table", false, "print the items as a table")
}

// write emits res. JSON goes to stdout unless a path is given; with a path
// a summary goes to stderr, and --table prints the items to stdout instead.
func (o *outputOptions) write(cmd *cobra.Command, res *pipeline.Result) error {
	w := cmd.OutOrStdout()
	data, err := o.encode(res.Layout)
	if err != nil {
		return err
	}

	if o.path == "" && !o.table {
		_, err := w.Write(data)
		return err
	}

	if o.path != "" {
		if err := os.WriteFile(o.path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", o.path, err)
		}
		st := newStatus(cmd)
		st.success("Layout complete")
		st.file(o.path)
		st.layoutSummary(res)
	}
	if o.table {
		fmt.Fprintln(w, itemTable(res.Layout.Items))
		if len(res.Layout.Corrections) > 0 {
			fmt.Fprintln(w, StyleTitle.Render("Corrections"))
			fmt.Fprintln(w, correctionTable(res.Layout.Corrections))
		}
	}
	return nil
}

func (o *outputOptions) encode(l layout.Layout) ([]byte, error) {
	if o.itemsOnly {
		return layout.MarshalItems(l.Items)
	}
	data, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// defaultLayoutPath derives "<input>.layout.json" from an input path.
func defaultLayoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}

// =============================================================================
// Commands
// =============================================================================

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		out     outputOptions
		noCache bool
		refresh bool
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "convert [analysis.json]",
		Short: "Convert an analysis result into a display layout",
		Long: `Convert an analysis result into a display layout.

The input is the JSON produced by screenshot analysis: widgets positioned on a
20-column by 30-row grid. Positions are corrected, mapped to the 12-column
display grid and made overlap-free. Every correction is logged as a warning.

Use "-" to read from stdin. Results are cached by input content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if save && out.path == "" && args[0] != "-" {
				out.path = defaultLayoutPath(args[0])
			}
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			res, err := c.execute(cmd.Context(), noCache, pipeline.Options{
				Kind:    pipeline.KindAnalysis,
				Input:   data,
				Refresh: refresh,
			})
			if err != nil {
				return err
			}
			if err := out.write(cmd, res); err != nil {
				return err
			}
			if out.path != "" && !out.itemsOnly {
				newStatus(cmd).nextStep("Re-check overlaps", appName+" resolve "+out.path)
			}
			return nil
		},
	}

	out.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "write to <input>.layout.json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite the cached result")

	return cmd
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "resolve [items.json]",
		Short: "Remove overlaps from display-grid items",
		Long: `Remove overlaps from display-grid items.

The input is either an item array or a layout envelope written by another
command. Items keep their order; each one that collides with an earlier item
moves to the first free spot scanning rows top to bottom.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			items, err := decodeItems(data)
			if err != nil {
				return err
			}
			res, err := c.execute(cmd.Context(), true, pipeline.Options{
				Kind:  pipeline.KindResolve,
				Items: items,
			})
			if err != nil {
				return err
			}
			return out.write(cmd, res)
		},
	}

	out.register(cmd)
	return cmd
}

// decodeItems accepts a bare item array or a layout envelope.
func decodeItems(data []byte) ([]layout.Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		l, err := layout.UnmarshalLayout(trimmed)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
		}
		return l.Items, nil
	}
	return layout.ReadItems(bytes.NewReader(trimmed))
}

// execute runs one job on a fresh runner.
func (c *CLI) execute(ctx context.Context, noCache bool, opts pipeline.Options) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	return runner.Execute(ctx, opts)
}
