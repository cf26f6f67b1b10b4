package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/output"
)

func newPathCmd() *cobra.Command {
	var forceLocal bool

	cmd := &cobra.Command{
		Use:     "path",
		Short:   "Print the file a single-file loader would read",
		GroupID: GroupFiles,
		Args:    cobra.NoArgs,
		Long: `Print the local sibling of the tracked file when it exists, otherwise the
tracked file itself. With --force-local the sibling path is printed even if
the file does not exist yet.`,
		Example: `  cfgpair path                    # app_local.cfg if present, else app.cfg
  cfgpair path --force-local      # Always app_local.cfg
  $EDITOR "$(cfgpair path -L)"    # Edit the local overrides`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			primary, _ := configPaths(ctx)
			out.Println(config.LocalSiblingPath(primary, forceLocal))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&forceLocal, "force-local", "L", false, "Print the local path even if it does not exist")

	return cmd
}
