package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/log"
	"github.com/raphi011/cfgpair/internal/output"
	"github.com/raphi011/cfgpair/internal/ui/static"
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

func newGetCmd() *cobra.Command {
	var (
		override        string
		def             string
		explain         bool
		copyToClipboard bool
		jsonOutput      bool
	)

	cmd := &cobra.Command{
		Use:     "get <section> <key>",
		Short:   "Resolve a single option",
		GroupID: GroupQuery,
		Args:    cobra.ExactArgs(2),
		Long: `Resolve section.key through override, local file, tracked file and default.

Prints the resolved value. A key found in no tier prints nothing unless
--default is given; with -v, similar keys are suggested.`,
		Example: `  cfgpair get DB host                    # Value from local or tracked file
  cfgpair get DB port --default 5432     # Fallback when neither file has it
  cfgpair get DB host --override db.test # Force a value (debugging)
  cfgpair get DB host --explain          # Show every tier
  cfgpair get DB host --json             # Value and source as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			r, err := loadResolver(ctx)
			if err != nil {
				return err
			}

			section, key := args[0], args[1]

			ov := config.Unset
			if cmd.Flags().Changed("override") {
				ov = config.Set(override)
			}
			var defValue any
			if cmd.Flags().Changed("default") {
				defValue = def
			}

			tr := r.Explain(section, key, ov, defValue)
			l.Debug("resolved", "section", section, "key", key, "source", tr.Source)

			if tr.Source == config.SourceDefault && l.IsVerbose() {
				if hints := suggestKeys(r, section, key); len(hints) > 0 {
					l.Printf("%s.%s not found in either file; did you mean: %s\n", section, key, strings.Join(hints, ", "))
				}
			}

			if copyToClipboard && tr.Value != nil {
				if err := clipboard.WriteAll(fmt.Sprint(tr.Value)); err != nil {
					l.Warn("failed to copy to clipboard", "error", err)
				}
			}

			switch {
			case jsonOutput:
				return out.JSON(tr)
			case explain:
				out.Print(static.RenderTable(static.ExplainHeaders, static.ExplainRows(tr)))
			case tr.Value != nil:
				out.Println(tr.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&override, "override", "", "Value that wins over both files")
	cmd.Flags().StringVar(&def, "default", "", "Value used when neither file has the key")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show what every tier holds")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the value to the clipboard")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the resolution trace as JSON")
	cmd.MarkFlagsMutuallyExclusive("explain", "json")

	cmd.ValidArgsFunction = completeSectionKey

	return cmd
}

// suggestKeys returns keys close to section.key across both documents,
// best match first.
func suggestKeys(r *config.Resolver, section, key string) []string {
	entries := r.Effective()
	candidates := make([]string, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, e.Section+"."+e.Key)
	}

	matches := fuzzy.Find(section+"."+strings.ToLower(key), candidates)
	var hints []string
	for _, m := range matches {
		if len(hints) == maxSuggestions {
			break
		}
		hints = append(hints, m.Str)
	}
	return hints
}

// completeSectionKey completes section names, then keys of that section.
func completeSectionKey(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	r, err := loadResolver(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	seen := make(map[string]bool)
	var out []string
	for _, e := range r.Effective() {
		var c string
		switch len(args) {
		case 0:
			c = e.Section
		case 1:
			if e.Section != args[0] {
				continue
			}
			c = e.Key
		default:
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if !seen[c] && strings.HasPrefix(c, toComplete) {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
