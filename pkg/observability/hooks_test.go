package observability

import (
	"context"
	"testing"
	"time"
)

type recordingLayoutHooks struct {
	NoopLayoutHooks
	arranges int
	capHits  int
}

func (h *recordingLayoutHooks) OnArrangeStart(context.Context, int) { h.arranges++ }
func (h *recordingLayoutHooks) OnCollisionCapHit(context.Context, int) {
	h.capHits++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Layout().OnArrangeStart(ctx, 3)
	Layout().OnArrangeComplete(ctx, 3, time.Millisecond, false)
	Layout().OnCollisionCapHit(ctx, 300)
	Cache().OnCacheHit(ctx, "layout")
	Store().OnSave(ctx, "b1", 3, time.Millisecond, nil)
}

func TestSetLayoutHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)

	Layout().OnArrangeStart(context.Background(), 5)
	Layout().OnCollisionCapHit(context.Background(), 300)

	if rec.arranges != 1 {
		t.Errorf("arranges = %d, want 1", rec.arranges)
	}
	if rec.capHits != 1 {
		t.Errorf("capHits = %d, want 1", rec.capHits)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)
	SetLayoutHooks(nil)

	Layout().OnArrangeStart(context.Background(), 1)
	if rec.arranges != 1 {
		t.Error("nil registration replaced the installed hooks")
	}
}
