package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/cfgpair/internal/log"
	"github.com/raphi011/cfgpair/internal/logsetup"
	"github.com/raphi011/cfgpair/internal/notify"
)

func newLogCmd() *cobra.Command {
	var (
		name     string
		level    string
		logLevel string
		relay    string
		attrs    []string
	)

	cmd := &cobra.Command{
		Use:     "log <message>...",
		Short:   "Write a record through the configured application logger",
		GroupID: GroupUtility,
		Args:    cobra.MinimumNArgs(1),
		Long: `Build the application logger from the [LOGGING] section and write one
record to it. Useful for checking log_path, rotation and alert delivery.

The logger reads log_level, log_freq, log_total and log_path, forwards
records at or above discord_level when discord_webhook is set, and mails
CRITICAL records when the email_* keys are set. A failed delivery makes
the command fail.`,
		Example: `  cfgpair log deploy finished                   # INFO record to logs/cfgpair.log
  cfgpair log --level ERROR disk full           # Also forwarded to the webhook
  cfgpair log --log-level DEBUG -a step=3 hello # Echo to stderr as well`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			recordLevel, err := logsetup.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("--level: %w", err)
			}

			kv := make([]any, 0, 2*len(attrs))
			for _, a := range attrs {
				k, v, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("invalid attribute %q: expected key=value", a)
				}
				kv = append(kv, k, v)
			}

			r, err := loadResolver(ctx)
			if err != nil {
				return err
			}

			var notifyOpts []notify.Option
			if relay != "" {
				notifyOpts = append(notifyOpts, notify.WithEndpoint(relay))
			}

			logger, err := logsetup.New(r, logsetup.Options{
				Name:          name,
				LevelOverride: logLevel,
				Console:       l.Writer(),
				NotifyOptions: notifyOpts,
			})
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			defer logger.Close()

			l.Debug("logger ready", "file", logger.File, "level", logsetup.LevelName(logger.Level),
				"webhook", logger.Webhook != nil, "email", logger.Mailer != nil)

			if err := logger.Emit(ctx, recordLevel, strings.Join(args, " "), kv...); err != nil {
				return fmt.Errorf("deliver record: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "cfgpair", "Log file base name")
	cmd.Flags().StringVarP(&level, "level", "l", "INFO", "Level of the record")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override log_level (DEBUG also echoes to stderr)")
	cmd.Flags().StringVar(&relay, "relay", "", "Post webhook messages to this URL instead of discord_webhook")
	cmd.Flags().StringArrayVarP(&attrs, "attr", "a", nil, "Attribute key=value (repeatable)")

	return cmd
}
