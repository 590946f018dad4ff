package store

import (
	"context"
	"sync"
	"time"

	"plank-cli/internal/model"
)

// Autosave coalesces rapid successive mutations into one debounced write.
// Notify resets the quiet-period timer; at most one save runs at a time, and
// a mutation arriving mid-save schedules a follow-up run after the current
// one settles instead of writing concurrently.
type Autosave struct {
	gateway  Gateway
	key      string
	debounce time.Duration

	// OnError receives save failures. Saving is best effort: a failed write
	// never blocks further editing, the in-memory board stays authoritative.
	OnError func(error)
	// OnSaved fires after each successful write.
	OnSaved func()

	mu      sync.Mutex
	settled *sync.Cond
	timer   *time.Timer
	pending bool
	running bool
	latest  model.Snapshot
}

type AutosaveOpts struct {
	Gateway  Gateway
	Key      string
	Debounce time.Duration
}

func NewAutosave(opts AutosaveOpts) *Autosave {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	a := &Autosave{
		gateway:  opts.Gateway,
		key:      opts.Key,
		debounce: debounce,
	}
	a.settled = sync.NewCond(&a.mu)
	return a
}

// Notify records the latest snapshot and (re)starts the debounce timer.
func (a *Autosave) Notify(snapshot model.Snapshot) {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.pending = true
	a.latest = snapshot
	if a.timer == nil {
		a.timer = time.AfterFunc(a.debounce, a.onTimer)
		a.mu.Unlock()
		return
	}
	a.timer.Reset(a.debounce)
	a.mu.Unlock()
}

// Flush cancels any pending timer and saves immediately, if anything is
// pending. It blocks until the write settles. An in-flight debounced save is
// waited out first, so at most one save runs at a time and the flushed
// snapshot is the one that lands last.
func (a *Autosave) Flush(ctx context.Context) error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	for a.running {
		a.settled.Wait()
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	if !a.pending {
		a.mu.Unlock()
		return nil
	}
	a.pending = false
	a.running = true
	snap := a.latest
	a.mu.Unlock()

	err := a.gateway.Save(ctx, a.key, snap)
	a.settle(err)
	return err
}

func (a *Autosave) onTimer() {
	a.mu.Lock()
	if a.running {
		// A save is in-flight; run again once it settles.
		if a.timer != nil {
			a.timer.Reset(a.debounce)
		}
		a.mu.Unlock()
		return
	}
	if !a.pending {
		a.mu.Unlock()
		return
	}
	a.pending = false
	a.running = true
	snap := a.latest
	a.mu.Unlock()

	err := a.gateway.Save(context.Background(), a.key, snap)
	a.settle(err)
}

func (a *Autosave) settle(err error) {
	if err != nil {
		if a.OnError != nil {
			a.OnError(err)
		}
	} else if a.OnSaved != nil {
		a.OnSaved()
	}

	a.mu.Lock()
	a.running = false
	// If another Notify happened while saving, schedule another run.
	if a.pending && a.timer != nil {
		a.timer.Reset(a.debounce)
	}
	a.settled.Broadcast()
	a.mu.Unlock()
}
