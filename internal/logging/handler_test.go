package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(capacity int) (*slog.Logger, *RecentHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h := NewRecentHandlerWithLevel(inner, slog.LevelWarn, capacity)
	return slog.New(h), h, &buf
}

func TestForwardsToInner(t *testing.T) {
	logger, _, buf := newTestLogger(8)

	logger.Info("hello inner")
	if !strings.Contains(buf.String(), "hello inner") {
		t.Error("record not forwarded to inner handler")
	}
}

func TestRetainsWarnAndAbove(t *testing.T) {
	logger, h, _ := newTestLogger(8)

	logger.Debug("too low")
	logger.Info("still too low")
	logger.Warn("kept warning")
	logger.Error("kept error")

	events := h.Recent()
	if len(events) != 2 {
		t.Fatalf("expected 2 retained events, got %d", len(events))
	}
	// Newest first.
	if events[0].Message != "kept error" || events[0].Level != "error" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Message != "kept warning" || events[1].Level != "warning" {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestRingBufferWrapAround(t *testing.T) {
	logger, h, _ := newTestLogger(3)

	for i := 0; i < 5; i++ {
		logger.Warn(fmt.Sprintf("event %d", i))
	}

	events := h.Recent()
	if len(events) != 3 {
		t.Fatalf("expected 3 retained events, got %d", len(events))
	}
	want := []string{"event 4", "event 3", "event 2"}
	for i, w := range want {
		if events[i].Message != w {
			t.Errorf("event %d: got %q, want %q", i, events[i].Message, w)
		}
	}
}

func TestCategoryExtraction(t *testing.T) {
	tests := []struct {
		name string
		log  func(*slog.Logger)
		want string
	}{
		{
			name: "explicit category attr",
			log:  func(l *slog.Logger) { l.Warn("anything", "category", CategoryMedia) },
			want: CategoryMedia,
		},
		{
			name: "inferred auth",
			log:  func(l *slog.Logger) { l.Warn("login failed") },
			want: CategoryAuth,
		},
		{
			name: "inferred content",
			log:  func(l *slog.Logger) { l.Warn("item save failed") },
			want: CategoryContent,
		},
		{
			name: "fallback system",
			log:  func(l *slog.Logger) { l.Warn("unexpected condition") },
			want: CategorySystem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, h, _ := newTestLogger(8)
			tt.log(logger)

			events := h.Recent()
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}

func TestWithAttrsSharesBuffer(t *testing.T) {
	logger, h, _ := newTestLogger(8)

	derived := logger.With("request_id", "abc123")
	derived.Warn("derived warning")

	events := h.Recent()
	if len(events) != 1 {
		t.Fatalf("expected derived logger to retain into parent buffer, got %d events", len(events))
	}
	if events[0].Attrs["request_id"] != "abc123" {
		t.Errorf("expected request_id attr, got %+v", events[0].Attrs)
	}
}
