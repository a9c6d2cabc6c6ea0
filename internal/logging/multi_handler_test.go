package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

type countingHandler struct {
	level slog.Level
	count int
}

func (h *countingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *countingHandler) Handle(_ context.Context, _ slog.Record) error {
	h.count++
	return nil
}

func (h *countingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(_ string) slog.Handler      { return h }

func TestMultiHandlerRespectsChildLevels(t *testing.T) {
	t.Parallel()

	stdout := &countingHandler{level: slog.LevelInfo}
	db := &countingHandler{level: slog.LevelError}
	m := NewMultiHandler(stdout, db)

	ctx := context.Background()
	info := slog.NewRecord(time.Now(), slog.LevelInfo, "connected", 0)
	errRec := slog.NewRecord(time.Now(), slog.LevelError, "query failed", 0)

	if !m.Enabled(ctx, slog.LevelInfo) {
		t.Fatal("Enabled(info) = false, want true while any child accepts it")
	}

	if err := m.Handle(ctx, info); err != nil {
		t.Fatalf("Handle(info) error: %v", err)
	}
	if err := m.Handle(ctx, errRec); err != nil {
		t.Fatalf("Handle(error) error: %v", err)
	}

	if stdout.count != 2 {
		t.Errorf("stdout handler saw %d records, want 2", stdout.count)
	}
	if db.count != 1 {
		t.Errorf("db handler saw %d records, want 1 (info gated out)", db.count)
	}
}
