package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"plank-cli/internal/model"
)

// memGateway counts saves and can simulate failures and slow writes.
type memGateway struct {
	mu          sync.Mutex
	saves       int
	inFlight    int
	maxInFlight int
	last        model.Snapshot
	failWith    error
	delay       time.Duration
}

func (g *memGateway) Save(ctx context.Context, key string, snapshot model.Snapshot) error {
	g.mu.Lock()
	g.inFlight++
	if g.inFlight > g.maxInFlight {
		g.maxInFlight = g.inFlight
	}
	delay := g.delay
	fail := g.failWith
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.inFlight--
		g.mu.Unlock()
	}()
	if delay > 0 {
		time.Sleep(delay)
	}
	if fail != nil {
		return fail
	}
	g.mu.Lock()
	g.saves++
	g.last = snapshot
	g.mu.Unlock()
	return nil
}

func (g *memGateway) Load(ctx context.Context, key string) (model.Snapshot, bool, error) {
	return model.Snapshot{}, false, nil
}

func (g *memGateway) Remove(ctx context.Context, key string) error { return nil }

func (g *memGateway) Size(ctx context.Context) (Usage, error) { return Usage{}, ErrSizeUnavailable }

func (g *memGateway) saveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func snapshotWithVersion(v int) model.Snapshot {
	return model.Snapshot{FormatVersion: v, Sections: map[string]model.Section{}, Columns: [][]string{{}}}
}

func TestAutosave_CoalescesRapidNotifies(t *testing.T) {
	gw := &memGateway{}
	a := NewAutosave(AutosaveOpts{Gateway: gw, Key: "board", Debounce: 30 * time.Millisecond})

	for i := 1; i <= 10; i++ {
		a.Notify(snapshotWithVersion(i))
		time.Sleep(2 * time.Millisecond)
	}
	waitFor(t, "debounced save", func() bool { return gw.saveCount() >= 1 })
	// Quiet period after the burst: exactly one write, carrying the latest state.
	time.Sleep(80 * time.Millisecond)
	if got := gw.saveCount(); got != 1 {
		t.Fatalf("saves = %d, want 1 (burst must coalesce)", got)
	}
	gw.mu.Lock()
	last := gw.last.FormatVersion
	gw.mu.Unlock()
	if last != 10 {
		t.Fatalf("saved snapshot version = %d, want the latest (10)", last)
	}
}

func TestAutosave_FlushBypassesDebounce(t *testing.T) {
	gw := &memGateway{}
	a := NewAutosave(AutosaveOpts{Gateway: gw, Key: "board", Debounce: time.Hour})

	a.Notify(snapshotWithVersion(1))
	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if gw.saveCount() != 1 {
		t.Fatalf("saves = %d, want 1", gw.saveCount())
	}
	// Nothing pending: flush is a no-op.
	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("idle flush: %v", err)
	}
	if gw.saveCount() != 1 {
		t.Fatalf("idle flush wrote again")
	}
}

func TestAutosave_ErrorReportedNotSwallowed(t *testing.T) {
	gw := &memGateway{failWith: ErrQuotaExceeded}
	a := NewAutosave(AutosaveOpts{Gateway: gw, Key: "board", Debounce: 10 * time.Millisecond})

	var mu sync.Mutex
	var got error
	a.OnError = func(err error) {
		mu.Lock()
		got = err
		mu.Unlock()
	}
	a.Notify(snapshotWithVersion(1))
	waitFor(t, "error callback", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil
	})
	mu.Lock()
	defer mu.Unlock()
	if !errors.Is(got, ErrQuotaExceeded) {
		t.Fatalf("got %v, want ErrQuotaExceeded", got)
	}
}

func TestAutosave_FlushWaitsOutInFlightSave(t *testing.T) {
	gw := &memGateway{delay: 50 * time.Millisecond}
	a := NewAutosave(AutosaveOpts{Gateway: gw, Key: "board", Debounce: 10 * time.Millisecond})

	a.Notify(snapshotWithVersion(1))
	// Let the debounced save get in flight, then mutate and force-save.
	time.Sleep(30 * time.Millisecond)
	a.Notify(snapshotWithVersion(2))
	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	gw.mu.Lock()
	maxInFlight := gw.maxInFlight
	last := gw.last.FormatVersion
	gw.mu.Unlock()
	if maxInFlight != 1 {
		t.Fatalf("max concurrent saves = %d, want 1", maxInFlight)
	}
	if last != 2 {
		t.Fatalf("final saved version = %d, want 2 (flushed state must land last)", last)
	}
	// No stale write may land after the flush returns.
	time.Sleep(80 * time.Millisecond)
	gw.mu.Lock()
	last = gw.last.FormatVersion
	gw.mu.Unlock()
	if last != 2 {
		t.Fatalf("flushed state overwritten afterwards, saved version = %d", last)
	}
}

func TestAutosave_NotifyDuringSaveSchedulesFollowUp(t *testing.T) {
	gw := &memGateway{delay: 50 * time.Millisecond}
	a := NewAutosave(AutosaveOpts{Gateway: gw, Key: "board", Debounce: 10 * time.Millisecond})

	a.Notify(snapshotWithVersion(1))
	// Wait until the first save is in flight, then notify again.
	time.Sleep(30 * time.Millisecond)
	a.Notify(snapshotWithVersion(2))

	waitFor(t, "both saves", func() bool { return gw.saveCount() >= 2 })
	gw.mu.Lock()
	last := gw.last.FormatVersion
	gw.mu.Unlock()
	if last != 2 {
		t.Fatalf("final saved version = %d, want 2", last)
	}
}
