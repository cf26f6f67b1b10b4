package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/log"
	"github.com/raphi011/cfgpair/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// settings holds the config and local paths bound from flags and
	// CFGPAIR_* environment variables.
	settings = newSettings()
)

// Command group IDs for organizing help output
const (
	GroupQuery   = "query"
	GroupFiles   = "files"
	GroupUtility = "utility"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cfgpair",
	Short: "Layered config lookups over a tracked file and its local override",
	Long: `cfgpair resolves options from a tracked .cfg file and its untracked
_local sibling.

Every lookup walks the same chain and stops at the first tier that has the key:

  override (--override)  ->  local file  ->  tracked file  ->  default (--default)

The tracked file is given with -c (default app.cfg, env CFGPAIR_CONFIG). The
local file is derived from it (app.cfg -> app_local.cfg) unless --local or
CFGPAIR_LOCAL names one explicitly.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are parsed now, so the logger sees -v and -q.
		ctx := cmd.Context()
		ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
		ctx = withSettings(ctx, settings)
		cmd.SetContext(ctx)
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Primary output goes to stdout, styling stripped on pipes
	ctx = output.WithStyledPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'cfgpair -h' for help")
		os.Exit(1)
	}
}

// newSettings creates the viper instance backing -c and --local.
func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CFGPAIR")
	v.AutomaticEnv()
	return v
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output and key suggestions")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigFile, "Tracked config file (env CFGPAIR_CONFIG)")
	rootCmd.PersistentFlags().String("local", "", "Local override file (default: <config>_local.<ext>, env CFGPAIR_LOCAL)")
	_ = settings.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = settings.BindPFlag("local", rootCmd.PersistentFlags().Lookup("local"))

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupQuery, Title: "Query Commands:"},
		&cobra.Group{ID: GroupFiles, Title: "File Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	// Query commands
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newDiffCmd())

	// File commands
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newInitCmd())

	// Utility commands
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
