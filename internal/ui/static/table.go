// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as tables and
// formatted text displays.
package static

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/cfgpair/internal/config"
)

var (
	overrideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	localStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	globalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// SourceLabel renders a resolution tier name in its color.
func SourceLabel(s config.Source) string {
	switch s {
	case config.SourceOverride:
		return overrideStyle.Render(string(s))
	case config.SourceLocal:
		return localStyle.Render(string(s))
	case config.SourceGlobal:
		return globalStyle.Render(string(s))
	default:
		return mutedStyle.Render(string(s))
	}
}

// ExplainHeaders are the columns of ExplainRows.
var ExplainHeaders = []string{"TIER", "FILE", "VALUE", ""}

// ExplainRows renders one row per tier of a trace, marking the tier that
// answered the lookup.
func ExplainRows(tr config.Trace) [][]string {
	rows := make([][]string, 0, len(tr.Tiers))
	for _, tier := range tr.Tiers {
		file := tier.Path
		if file == "" {
			file = "-"
		}

		value := mutedStyle.Render("(not set)")
		switch {
		case !tier.Available:
			value = mutedStyle.Render("(no file)")
		case tier.Found:
			value = formatValue(tier.Value)
		}

		mark := ""
		if tier.Source == tr.Source {
			mark = "<-"
		}
		rows = append(rows, []string{SourceLabel(tier.Source), file, value, mark})
	}
	return rows
}

// EffectiveHeaders are the columns of EffectiveRows.
var EffectiveHeaders = []string{"SECTION", "KEY", "VALUE", "SOURCE"}

// EffectiveRows renders merged entries. Keys whose global value is
// shadowed by the local file are annotated.
func EffectiveRows(entries []config.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		src := SourceLabel(e.Source)
		if e.Shadowed {
			src += " " + mutedStyle.Render("(overrides global)")
		}
		rows = append(rows, []string{e.Section, e.Key, formatValue(e.Value), src})
	}
	return rows
}

// DiffHeaders are the columns of DiffRows.
var DiffHeaders = []string{"ONLY IN", "KIND", "NAME"}

// DiffRows renders both directions of a comparison, local first.
func DiffRows(c config.Comparison) [][]string {
	var rows [][]string
	for _, d := range []config.DiffResult{c.LocalOnly, c.TrackedOnly} {
		for _, u := range d.UniqueSections {
			rows = append(rows, []string{u.Origin, "section", u.Name})
		}
		for _, u := range d.UniqueKeys {
			rows = append(rows, []string{u.Origin, "key", u.Name})
		}
	}
	return rows
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return mutedStyle.Render("(nil)")
	case string:
		if v == "" {
			return mutedStyle.Render(`""`)
		}
		return strings.ReplaceAll(v, "\n", `\n`)
	default:
		return fmt.Sprint(v)
	}
}
