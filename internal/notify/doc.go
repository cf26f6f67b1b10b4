// Package notify delivers log records to a Discord-style webhook or by mail.
//
// A webhook is identified by a server id and an API key, which can be parsed
// from or assembled into the webhook URL:
//
//	https://discordapp.com/api/webhooks/<id>/<key>
//
// [Client] posts messages with retries and [Mailer] sends them over SMTP.
// [Handler] adapts either to log/slog so that records at or above a level
// are forwarded.
package notify
