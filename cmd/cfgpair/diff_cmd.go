package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/log"
	"github.com/raphi011/cfgpair/internal/output"
	"github.com/raphi011/cfgpair/internal/ui/static"
)

// errOutOfSync is returned by diff when the files differ.
var errOutOfSync = errors.New("local and tracked config are out of sync")

func newDiffCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "diff",
		Short:   "Compare the local file's structure with the tracked file",
		GroupID: GroupQuery,
		Args:    cobra.NoArgs,
		Long: `Compare the sections and keys of the local override file with the tracked
file in both directions. Values are not compared.

Exits with an error when either file has a section or key the other lacks.
Without a local file there is nothing to compare; a warning is printed and
the command succeeds.`,
		Example: `  cfgpair diff                    # Report differences
  cfgpair diff --json             # Report as JSON
  cfgpair diff -c conf/app.cfg    # Compare conf/app_local.cfg with conf/app.cfg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var (
				c   config.Comparison
				err error
			)
			if primary, local := configPaths(ctx); local == "" {
				c, err = config.CompareFiles(primary)
			} else {
				var pair *config.Pair
				pair, err = loadPair(ctx)
				if err != nil {
					return err
				}
				c, err = config.ComparePair(pair)
			}
			if errors.Is(err, config.ErrNoLocal) {
				l.Warn("nothing to compare", "error", err)
				return nil
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := out.JSON(c); err != nil {
					return err
				}
			} else if !c.InSync() {
				out.Print(static.RenderTable(static.DiffHeaders, static.DiffRows(c)))
			} else {
				out.Printf("%s and %s are in sync\n", c.LocalPath, c.TrackedPath)
			}

			if !c.InSync() {
				n := len(c.LocalOnly.UniqueSections) + len(c.LocalOnly.UniqueKeys) +
					len(c.TrackedOnly.UniqueSections) + len(c.TrackedOnly.UniqueKeys)
				return fmt.Errorf("%w: %d difference(s)", errOutOfSync, n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
