package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender delivers a message. *Client and *Mailer implement it.
type Sender interface {
	Send(ctx context.Context, content string) error
}

// Handler is a slog.Handler that sends records at or above a level through
// a Sender, one message per record.
type Handler struct {
	sender Sender
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
	// levelName renders a level; set by callers that use custom levels.
	levelName func(slog.Level) string
}

// NewHandler creates a Handler forwarding records at or above level.
func NewHandler(s Sender, level slog.Leveler) *Handler {
	return &Handler{sender: s, level: level, levelName: slog.Level.String}
}

// WithLevelNames returns a copy of h that renders levels with fn.
func (h *Handler) WithLevelNames(fn func(slog.Level) string) *Handler {
	h2 := *h
	h2.levelName = fn
	return &h2
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", h.levelName(r.Level), r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})

	return h.sender.Send(ctx, b.String())
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	h2.attrs = append(h2.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h.group != "" {
		h2.group = h.group + "." + name
	} else {
		h2.group = name
	}
	return &h2
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		prefix := key
		if a.Key == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, prefix, ga)
		}
		return
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Any())
}
