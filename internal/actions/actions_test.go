package actions

import (
	"context"
	"testing"
	"time"
)

func TestBeginConfirm(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	a, ctx := r.Begin(context.Background(), "owner-1", KindAddToCart, 7)
	if a.State != StatePending {
		t.Fatalf("State = %q, want pending", a.State)
	}
	if ctx.Err() != nil {
		t.Fatalf("action context already done")
	}

	confirmed, ok := r.Confirm(a.ID, "Item added to cart")
	if !ok || confirmed.State != StateConfirmed || confirmed.ResolvedAt == nil {
		t.Fatalf("Confirm() = %+v, %v", confirmed, ok)
	}
	if _, ok := r.Fail(a.ID, "late"); ok {
		t.Fatalf("Fail() after Confirm() resolved again")
	}
	got, _ := r.Get(a.ID)
	if got.State != StateConfirmed || got.Message != "Item added to cart" {
		t.Fatalf("Get() = %+v", got)
	}
}

func TestReleaseCancelsContext(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	a, ctx := r.Begin(context.Background(), "owner-1", KindAddToCart, 7)
	if !r.Release(a.ID) {
		t.Fatalf("Release() = false")
	}
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("context not canceled by Release")
	}
	if _, ok := r.Confirm(a.ID, "too late"); ok {
		t.Fatalf("response after release must be discarded")
	}
	if _, ok := r.Get(a.ID); ok {
		t.Fatalf("released action still registered")
	}
}

func TestReleaseOwnerOnlyTouchesOwner(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	_, ctxA := r.Begin(context.Background(), "a", KindAddToCart, 1)
	_, ctxA2 := r.Begin(context.Background(), "a", KindAddToCart, 2)
	b, ctxB := r.Begin(context.Background(), "b", KindAddToCart, 3)

	if n := r.ReleaseOwner("a"); n != 2 {
		t.Fatalf("ReleaseOwner() = %d, want 2", n)
	}
	if ctxA.Err() == nil || ctxA2.Err() == nil {
		t.Fatalf("owner a contexts not canceled")
	}
	if ctxB.Err() != nil {
		t.Fatalf("owner b context canceled")
	}
	if list := r.List("b"); len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("List(b) = %+v", list)
	}
}

func TestConcurrentActionsResolveIndependently(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	first, _ := r.Begin(context.Background(), "o", KindAddToCart, 1)
	second, _ := r.Begin(context.Background(), "o", KindAddToCart, 2)

	r.Fail(second.ID, "Item not found")
	r.Confirm(first.ID, "ok")

	list := r.List("o")
	if len(list) != 2 {
		t.Fatalf("List() len = %d", len(list))
	}
	states := map[string]State{}
	for _, a := range list {
		states[a.ID] = a.State
	}
	if states[first.ID] != StateConfirmed || states[second.ID] != StateFailed {
		t.Fatalf("states = %+v", states)
	}
}

func TestSubscribeReceivesResolutionAndCartCount(t *testing.T) {
	t.Parallel()

	r := NewRegistry(NewLocalNotifier())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, stop := r.Subscribe(ctx, "o")
	defer stop()

	a, _ := r.Begin(context.Background(), "o", KindAddToCart, 9)
	r.Confirm(a.ID, "ok")
	r.PublishCartCount("o", 3)

	want := []string{"pending", "confirmed", "cart"}
	for i, w := range want {
		select {
		case ev := <-events:
			got := ev.Type
			if ev.Action != nil {
				got = string(ev.Action.State)
			}
			if got != w {
				t.Fatalf("event %d = %q, want %q", i, got, w)
			}
			if w == "cart" && (ev.Count == nil || *ev.Count != 3) {
				t.Fatalf("cart event count = %v", ev.Count)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d (%s)", i, w)
		}
	}
}

func TestPruneDropsOldResolvedActions(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	done, _ := r.Begin(context.Background(), "o", KindAddToCart, 1)
	r.Confirm(done.ID, "ok")
	pending, _ := r.Begin(context.Background(), "o", KindAddToCart, 2)

	r.now = func() time.Time { return base.Add(10 * time.Minute) }
	if n := r.Prune(5 * time.Minute); n != 1 {
		t.Fatalf("Prune() = %d, want 1", n)
	}
	if _, ok := r.Get(done.ID); ok {
		t.Fatalf("resolved action not pruned")
	}
	if _, ok := r.Get(pending.ID); !ok {
		t.Fatalf("pending action pruned")
	}
}
