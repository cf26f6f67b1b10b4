package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/output"
	"github.com/raphi011/cfgpair/internal/ui/static"
)

// Output formats accepted by show --format.
const (
	FormatTable = "table"
	FormatCfg   = "cfg"
	FormatJSON  = "json"
	FormatTOML  = "toml"
)

var showFormats = []string{FormatTable, FormatCfg, FormatJSON, FormatTOML}

func newShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Show the effective merged configuration",
		Aliases: []string{"dump"},
		GroupID: GroupQuery,
		Args:    cobra.NoArgs,
		Long: `Show every key of the tracked and local files with the value a lookup
would return and where it came from.

The default format is a table on a terminal and cfg otherwise. The cfg
format can be read back as a tracked file; keys coming from the local file
are preceded by a "# local" comment.`,
		Example: `  cfgpair show                 # Table with sources
  cfgpair show --format cfg    # Merged file
  cfgpair show --format toml   # Merged config as TOML
  cfgpair show --format json   # Entries with sources as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if format == "" {
				format = FormatCfg
				if out.IsTerminal() {
					format = FormatTable
				}
			}

			r, err := loadResolver(ctx)
			if err != nil {
				return err
			}
			entries := r.Effective()

			switch format {
			case FormatTable:
				out.Print(static.RenderTable(static.EffectiveHeaders, static.EffectiveRows(entries)))
				return nil
			case FormatCfg:
				return writeCfg(out.Writer(), entries)
			case FormatJSON:
				if entries == nil {
					entries = []config.Entry{}
				}
				return out.JSON(entries)
			case FormatTOML:
				if err := toml.NewEncoder(out.Writer()).Encode(config.Sections(entries)); err != nil {
					return fmt.Errorf("encode toml: %w", err)
				}
				return nil
			}
			return fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(showFormats, ", "))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, cfg, json, toml")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return showFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// writeCfg writes entries in the .cfg format, escaping "$" so the output
// reads back to the same values.
func writeCfg(w io.Writer, entries []config.Entry) error {
	section := ""
	for i, e := range entries {
		if i == 0 || e.Section != section {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			section = e.Section
			if _, err := fmt.Fprintf(w, "[%s]\n", section); err != nil {
				return err
			}
		}

		if e.Source == config.SourceLocal {
			if _, err := fmt.Fprintln(w, "# local"); err != nil {
				return err
			}
		}

		value := strings.ReplaceAll(e.Value, "$", "$$")
		value = strings.ReplaceAll(value, "\n", "\n    ")
		line := e.Key + " = " + value
		if value == "" {
			line = e.Key + " ="
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
