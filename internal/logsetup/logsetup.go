// Package logsetup builds an application *slog.Logger from the [LOGGING]
// section of a config pair.
//
// Recognised keys (all optional):
//
//	log_level        DEBUG, INFO, WARNING, ERROR or CRITICAL (default INFO)
//	log_freq         rotation interval: S, M, H, D or MIDNIGHT (default MIDNIGHT)
//	log_total        rotated files to keep (default 7)
//	log_path         directory for <name>.log (default "logs")
//	discord_webhook  webhook URL; enables forwarding when set
//	discord_level    minimum level forwarded to the webhook (default ERROR)
//	webhook_retries  delivery retries (default 3)
//
// CRITICAL records are also mailed when every one of email_source,
// email_recipients (comma separated), email_username, email_secret,
// email_server and email_port is set.
package logsetup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/wneessen/go-mail"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/notify"
)

// Section is the config section read by New.
const Section = "LOGGING"

// Defaults for keys missing from both config files.
const (
	DefaultLevel        = "INFO"
	DefaultFreq         = "MIDNIGHT"
	DefaultTotal        = 7
	DefaultPath         = "logs"
	DefaultWebhookLevel = "ERROR"
)

// Options configures New.
type Options struct {
	// Name is the log file base name; records go to <log_path>/<Name>.log.
	Name string
	// LevelOverride, when set, wins over log_level. "DEBUG" additionally
	// echoes every record to Console.
	LevelOverride string
	// Console receives the DEBUG echo. Defaults to os.Stderr.
	Console io.Writer
	// NotifyOptions are passed to the webhook client.
	NotifyOptions []notify.Option
	// MailOptions are passed to the SMTP client of alert mail.
	MailOptions []mail.Option

	clock rotatelogs.Clock
}

// Logger is a configured *slog.Logger that owns its log file.
type Logger struct {
	*slog.Logger
	Level   slog.Level
	File    string
	Webhook *notify.Client // nil unless discord_webhook is set
	Mailer  *notify.Mailer // nil unless every email_* key is set

	out *RotatingFile
}

// Emit writes one record like Log and returns what the handlers report,
// such as a failed webhook delivery.
func (l *Logger) Emit(ctx context.Context, level slog.Level, msg string, args ...any) error {
	if !l.Enabled(ctx, level) {
		return nil
	}
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) // skip Callers and Emit
	rec := slog.NewRecord(time.Now(), level, msg, pcs[0])
	rec.Add(args...)
	return l.Handler().Handle(ctx, rec)
}

// Close closes the log file.
func (l *Logger) Close() error {
	return l.out.Close()
}

// New builds a Logger from the [LOGGING] section resolved through r.
func New(r *config.Resolver, opts Options) (*Logger, error) {
	if opts.Name == "" {
		return nil, errors.New("logsetup: log name is required")
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.clock == nil {
		opts.clock = rotatelogs.Local
	}

	override := config.Unset
	if opts.LevelOverride != "" {
		override = config.Set(opts.LevelOverride)
	}
	levelName := fmt.Sprint(r.GetOption(Section, "log_level", override, DefaultLevel))
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("%s.log_level: %w", Section, err)
	}

	total, err := r.Int(Section, "log_total", DefaultTotal)
	if err != nil {
		return nil, err
	}

	dir := r.String(Section, "log_path", DefaultPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file := filepath.Join(dir, opts.Name+".log")
	out, err := openRotating(file, r.String(Section, "log_freq", DefaultFreq), total, opts.clock)
	if err != nil {
		return nil, fmt.Errorf("%s.log_freq: %w", Section, err)
	}

	handlers := fanout{
		slog.NewTextHandler(out, &slog.HandlerOptions{
			Level:       level,
			AddSource:   true,
			ReplaceAttr: replaceLevel,
		}),
	}

	if strings.EqualFold(opts.LevelOverride, "DEBUG") {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, &slog.HandlerOptions{
			Level:       slog.LevelDebug,
			ReplaceAttr: dropTime,
		}))
	}

	l := &Logger{Level: level, File: file, out: out}

	if url := r.String(Section, "discord_webhook", ""); url != "" {
		client, minLevel, err := webhookClient(r, url, opts.NotifyOptions)
		if err != nil {
			out.Close()
			return nil, err
		}
		handlers = append(handlers, notify.NewHandler(client, minLevel).WithLevelNames(LevelName))
		l.Webhook = client
	}

	mailCfg, missing, err := emailSettings(r)
	if err != nil {
		out.Close()
		return nil, err
	}
	if len(missing) == 0 {
		l.Mailer = notify.NewMailer(mailCfg, opts.Name+" alert", opts.MailOptions...)
		handlers = append(handlers, notify.NewHandler(l.Mailer, LevelCritical).WithLevelNames(LevelName))
	}

	l.Logger = slog.New(handlers)

	// Report a half-configured mailer; no email keys at all stays quiet.
	if len(missing) > 0 && len(missing) < len(emailKeys) {
		l.Error("email alerts disabled: missing settings", "section", Section, "missing", strings.Join(missing, ","))
	}
	return l, nil
}

var emailKeys = []string{"email_source", "email_recipients", "email_username", "email_secret", "email_server", "email_port"}

// emailSettings reads the email_* keys and names those left blank.
func emailSettings(r *config.Resolver) (notify.Email, []string, error) {
	var port int
	if strings.TrimSpace(r.String(Section, "email_port", "")) != "" {
		p, err := r.Int(Section, "email_port", 0)
		if err != nil {
			return notify.Email{}, nil, err
		}
		port = p
	}

	cfg := notify.Email{
		Source:   strings.TrimSpace(r.String(Section, "email_source", "")),
		Username: strings.TrimSpace(r.String(Section, "email_username", "")),
		Secret:   strings.TrimSpace(r.String(Section, "email_secret", "")),
		Server:   strings.TrimSpace(r.String(Section, "email_server", "")),
		Port:     port,
	}
	for _, rcpt := range strings.Split(r.String(Section, "email_recipients", ""), ",") {
		if rcpt = strings.TrimSpace(rcpt); rcpt != "" {
			cfg.Recipients = append(cfg.Recipients, rcpt)
		}
	}

	var missing []string
	for i, blank := range []bool{
		cfg.Source == "",
		len(cfg.Recipients) == 0,
		cfg.Username == "",
		cfg.Secret == "",
		cfg.Server == "",
		cfg.Port <= 0,
	} {
		if blank {
			missing = append(missing, emailKeys[i])
		}
	}
	return cfg, missing, nil
}

func webhookClient(r *config.Resolver, url string, extra []notify.Option) (*notify.Client, slog.Level, error) {
	hook, err := notify.ParseWebhook(url)
	if err != nil {
		return nil, 0, fmt.Errorf("%s.discord_webhook: %w", Section, err)
	}

	minLevel, err := ParseLevel(r.String(Section, "discord_level", DefaultWebhookLevel))
	if err != nil {
		return nil, 0, fmt.Errorf("%s.discord_level: %w", Section, err)
	}

	retries, err := r.Int(Section, "webhook_retries", notify.DefaultRetries)
	if err != nil {
		return nil, 0, err
	}

	opts := append([]notify.Option{notify.WithRetries(retries)}, extra...)
	return notify.NewClient(hook, opts...), minLevel, nil
}

// dropTime removes the timestamp from console echo lines.
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return replaceLevel(groups, a)
}
