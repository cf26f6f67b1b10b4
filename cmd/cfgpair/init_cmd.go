package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/log"
	"github.com/raphi011/cfgpair/internal/output"
)

func newInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Create a starter config file",
		GroupID: GroupFiles,
		Args:    cobra.NoArgs,
		Long: `Create a starter config file.

Without flags, writes the tracked file given by -c (default app.cfg).
With --local, writes the local override file next to it instead.`,
		Example: `  cfgpair init              # Create app.cfg
  cfgpair init --local      # Create app_local.cfg
  cfgpair init -f           # Overwrite existing file
  cfgpair init -s           # Print template to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			content := config.DefaultTrackedConfig()
			path, _ := configPaths(ctx)
			if local {
				content = config.DefaultLocalConfig()
				path = localPath(ctx)
			}

			if stdout {
				out.Print(content)
				return nil
			}

			if err := config.Init(path, content, force); err != nil {
				return err
			}

			l.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing file")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print template to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create the local override file instead")

	return cmd
}
