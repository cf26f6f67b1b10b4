package notify

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// Email holds the SMTP settings for alert mail.
type Email struct {
	Source     string
	Recipients []string
	Username   string
	Secret     string
	Server     string
	Port       int
}

// Mailer sends each message as an alert email. It implements Sender.
type Mailer struct {
	cfg     Email
	subject string
	opts    []mail.Option
	now     func() time.Time
}

// NewMailer creates a Mailer for cfg. Subjects read "<subject>: <first line>".
// opts are applied after the defaults, which authenticate with PLAIN and use
// STARTTLS when the server offers it.
func NewMailer(cfg Email, subject string, opts ...mail.Option) *Mailer {
	return &Mailer{cfg: cfg, subject: subject, opts: opts, now: time.Now}
}

// Send mails content to every recipient.
func (m *Mailer) Send(ctx context.Context, content string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Source); err != nil {
		return fmt.Errorf("email source %q: %w", m.cfg.Source, err)
	}
	if err := msg.To(m.cfg.Recipients...); err != nil {
		return fmt.Errorf("email recipients: %w", err)
	}

	first, _, _ := strings.Cut(content, "\n")
	msg.Subject(m.subject + ": " + first)
	msg.SetDate()

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("%s\n\nalert time: %s\nraised by: %s\n",
		content, m.now().Format("2006-01-02 15:04:05"), host))

	opts := append([]mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Secret),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(15 * time.Second),
	}, m.opts...)

	client, err := mail.NewClient(m.cfg.Server, opts...)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
