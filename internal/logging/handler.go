// Package logging provides a custom slog handler that keeps recent
// WARN-and-above records in memory so the admin dashboard can show what
// went wrong without access to server logs.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Event is one retained log record.
type Event struct {
	Time     time.Time         `json:"time"`
	Level    string            `json:"level"`
	Category string            `json:"category"`
	Message  string            `json:"message"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// Event categories inferred from log records.
const (
	CategoryAuth    = "auth"
	CategoryContent = "content"
	CategoryCache   = "cache"
	CategoryMedia   = "media"
	CategorySystem  = "system"
)

// RecentHandler is a slog.Handler that forwards every record to an inner
// handler and additionally retains records at or above a threshold level in
// a fixed-size ring buffer.
type RecentHandler struct {
	inner slog.Handler
	level slog.Level

	mu     sync.Mutex
	events []Event
	next   int
	filled bool
}

// DefaultCapacity is the number of events retained by NewRecentHandler.
const DefaultCapacity = 256

// NewRecentHandler creates a RecentHandler retaining WARN and above.
func NewRecentHandler(inner slog.Handler) *RecentHandler {
	return NewRecentHandlerWithLevel(inner, slog.LevelWarn, DefaultCapacity)
}

// NewRecentHandlerWithLevel creates a RecentHandler with a custom threshold
// and capacity.
func NewRecentHandlerWithLevel(inner slog.Handler, level slog.Level, capacity int) *RecentHandler {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RecentHandler{
		inner:  inner,
		level:  level,
		events: make([]Event, capacity),
	}
}

// Enabled implements slog.Handler.
func (h *RecentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RecentHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.retain(r, nil)
	}
	return nil
}

// WithAttrs implements slog.Handler. The returned handler shares the ring
// buffer so retained events stay in one place; the attrs are carried so
// derived loggers retain them alongside call-site attrs.
func (h *RecentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &shareHandler{parent: h, inner: h.inner.WithAttrs(attrs), attrs: attrs}
}

// WithGroup implements slog.Handler.
func (h *RecentHandler) WithGroup(name string) slog.Handler {
	return &shareHandler{parent: h, inner: h.inner.WithGroup(name)}
}

// shareHandler forwards to a derived inner handler while retaining events
// in the parent's ring buffer.
type shareHandler struct {
	parent *RecentHandler
	inner  slog.Handler
	attrs  []slog.Attr
}

func (h *shareHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *shareHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.parent.level {
		h.parent.retain(r, h.attrs)
	}
	return nil
}

func (h *shareHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &shareHandler{parent: h.parent, inner: h.inner.WithAttrs(attrs), attrs: merged}
}

func (h *shareHandler) WithGroup(name string) slog.Handler {
	return &shareHandler{parent: h.parent, inner: h.inner.WithGroup(name), attrs: h.attrs}
}

// retain appends a record to the ring buffer. extra holds attrs baked in
// by WithAttrs, which do not appear on the record itself.
func (h *RecentHandler) retain(r slog.Record, extra []slog.Attr) {
	ev := Event{
		Time:     r.Time,
		Level:    levelName(r.Level),
		Category: extractCategory(r),
		Message:  r.Message,
	}
	keep := func(a slog.Attr) bool {
		if a.Key == "category" {
			return true
		}
		if ev.Attrs == nil {
			ev.Attrs = make(map[string]string)
		}
		ev.Attrs[a.Key] = a.Value.String()
		return true
	}
	for _, a := range extra {
		keep(a)
	}
	r.Attrs(keep)

	h.mu.Lock()
	h.events[h.next] = ev
	h.next++
	if h.next == len(h.events) {
		h.next = 0
		h.filled = true
	}
	h.mu.Unlock()
}

// Recent returns retained events, newest first.
func (h *RecentHandler) Recent() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []Event
	for i := h.next - 1; i >= 0; i-- {
		out = append(out, h.events[i])
	}
	if h.filled {
		for i := len(h.events) - 1; i >= h.next; i-- {
			out = append(out, h.events[i])
		}
	}
	return out
}

// levelName maps a slog level to its event name.
func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return "info"
	}
}

// extractCategory returns the record's "category" attribute, or infers one
// from the message.
func extractCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") || strings.Contains(msg, "logout"):
		return CategoryAuth
	case strings.Contains(msg, "document") || strings.Contains(msg, "section") || strings.Contains(msg, "item"):
		return CategoryContent
	case strings.Contains(msg, "cache"):
		return CategoryCache
	case strings.Contains(msg, "media") || strings.Contains(msg, "upload"):
		return CategoryMedia
	default:
		return CategorySystem
	}
}
