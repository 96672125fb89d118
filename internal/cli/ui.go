package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/internal/server"
	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// status writes human-readable progress lines. Commands bind it to stderr
// so stdout carries only layout data.
type status struct {
	w io.Writer
}

func newStatus(cmd *cobra.Command) status {
	return status{w: cmd.ErrOrStderr()}
}

func (s status) line(icon lipgloss.Style, mark, msg string) {
	fmt.Fprintln(s.w, icon.Render(mark)+" "+msg)
}

func (s status) success(format string, args ...any) {
	s.line(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func (s status) warning(format string, args ...any) {
	s.line(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (s status) info(format string, args ...any) {
	s.line(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (s status) file(path string) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// layoutSummary prints item and correction counts and whether the layout
// came from the cache, e.g. "12 items · 3 corrections · cached".
func (s status) layoutSummary(res *pipeline.Result) {
	source, sourceStyle := iconFresh, styleComputed
	if res.CacheHit {
		source, sourceStyle = iconCached, styleCached
	}
	corrections := StyleDim
	if res.Stats.Corrections > 0 {
		corrections = StyleWarning
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d items", res.Stats.Items)),
		corrections.Render(fmt.Sprintf("%d corrections", res.Stats.Corrections)),
		sourceStyle.Render(source),
	}
	fmt.Fprintln(s.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func (s status) nextStep(description, command string) {
	fmt.Fprintln(s.w)
	fmt.Fprintln(s.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
}

// itemTable renders items with their rectangles and bounds.
func itemTable(items []layout.Item) string {
	t := newTable("ID", "COMPONENT", "X", "Y", "W", "H", "MIN", "MAX W")
	for _, it := range items {
		maxW := "-"
		if it.MaxW > 0 {
			maxW = strconv.Itoa(it.MaxW)
		}
		t.Row(it.I, string(it.Component),
			strconv.Itoa(it.X), strconv.Itoa(it.Y), strconv.Itoa(it.W), strconv.Itoa(it.H),
			fmt.Sprintf("%dx%d", it.MinW, it.MinH), maxW)
	}
	return t.String()
}

// correctionTable renders the corrections made while building a layout.
func correctionTable(corrections []layout.Correction) string {
	t := newTable("ID", "RULE", "SPACE", "BEFORE", "AFTER")
	for _, c := range corrections {
		t.Row(c.ID, c.Rule, c.Space, c.Before.String(), c.After.String())
	}
	return t.String()
}

func presetTable(presets []generate.Preset) string {
	t := newTable("NAME", "PATTERN", "ROWS", "WIDGETS")
	for _, p := range presets {
		total := 0
		for _, n := range p.Pattern {
			total += n
		}
		t.Row(p.Name, generate.FormatPattern(p.Pattern), strconv.Itoa(len(p.Pattern)), strconv.Itoa(total))
	}
	return t.String()
}

func widgetTypeTable(types []server.WidgetType) string {
	t := newTable("COMPONENT", "CATEGORY", "MIN", "MAX W", "RANDOM")
	for _, wt := range types {
		maxW := "-"
		if wt.MaxW > 0 {
			maxW = strconv.Itoa(wt.MaxW)
		}
		random := "-"
		if wt.Profile != nil {
			random = strconv.FormatBool(wt.Profile.Available())
		}
		t.Row(wt.Component, string(wt.Category), fmt.Sprintf("%dx%d", wt.MinW, wt.MinH), maxW, random)
	}
	return t.String()
}
