// Package session wires one board's planner, history, drag controller and
// debounced persistence together. It owns the commit discipline: every
// committed mutation lands in history and schedules an autosave, and only
// session (or the drag controller it constructs) mutates the planner.
package session

import (
	"context"
	"time"

	"plank-cli/internal/drag"
	"plank-cli/internal/history"
	"plank-cli/internal/placement"
	"plank-cli/internal/planner"
	"plank-cli/internal/store"
)

const DefaultKey = "board"

type Opts struct {
	Gateway store.SQLiteGateway
	Key     string
	// Debounce is the autosave quiet period; zero picks the store default.
	Debounce     time.Duration
	HistoryBound int

	// Notifier receives drag lifecycle signals (optional).
	Notifier drag.Notifier
	// OnHistoryChanged fires after every commit, undo and redo.
	OnHistoryChanged func(undoSize, redoSize int)
	// OnSaveError receives autosave failures; editing continues regardless.
	OnSaveError func(error)
}

type Session struct {
	opts     Opts
	board    *planner.Planner
	hist     *history.Manager
	ctrl     *drag.Controller
	autosave *store.Autosave
}

// Open loads the board (or starts an empty one) plus its persisted history.
func Open(ctx context.Context, opts Opts) (*Session, error) {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}

	var board *planner.Planner
	snap, found, err := opts.Gateway.Load(ctx, opts.Key)
	if err != nil {
		return nil, err
	}
	if found {
		board, err = planner.FromSnapshot(snap)
		if err != nil {
			return nil, err
		}
	} else {
		board = planner.New()
	}

	stacks, err := opts.Gateway.LoadHistory(ctx, opts.Key)
	if err != nil {
		return nil, err
	}
	hist := history.Restore(board.ToSnapshot(), opts.HistoryBound,
		entriesFromRows(stacks.Undo), entriesFromRows(stacks.Redo))

	s := &Session{
		opts:  opts,
		board: board,
		hist:  hist,
	}
	s.autosave = store.NewAutosave(store.AutosaveOpts{
		Gateway:  opts.Gateway,
		Key:      opts.Key,
		Debounce: opts.Debounce,
	})
	s.autosave.OnError = opts.OnSaveError

	// The session listens on its own drag notifier so committed drops feed
	// autosave; the caller's notifier (if any) sees the same signals.
	notify := drag.Notifier(commitListener{s: s})
	if opts.Notifier != nil {
		notify = drag.MultiNotifier{commitListener{s: s}, opts.Notifier}
	}
	s.ctrl = drag.NewController(board, hist, notify)
	return s, nil
}

func (s *Session) Board() *planner.Planner { return s.board }

func (s *Session) History() *history.Manager { return s.hist }

func (s *Session) Drag() *drag.Controller { return s.ctrl }

// Commit records the board's current state after a direct (non-drag)
// mutation and schedules an autosave.
func (s *Session) Commit(label string) {
	s.hist.Commit(s.board.ToSnapshot(), label)
	s.afterHistoryChange()
}

// Undo steps the live board back one history entry. Entries loaded from disk
// may fail to restore; the step is rolled back then so board and history
// never diverge.
func (s *Session) Undo() bool {
	if !s.hist.Undo() {
		return false
	}
	if err := s.board.Restore(s.hist.Current()); err != nil {
		s.hist.Redo()
		return false
	}
	s.afterHistoryChange()
	return true
}

// Redo reapplies the most recently undone entry.
func (s *Session) Redo() bool {
	if !s.hist.Redo() {
		return false
	}
	if err := s.board.Restore(s.hist.Current()); err != nil {
		s.hist.Undo()
		return false
	}
	s.afterHistoryChange()
	return true
}

func (s *Session) afterHistoryChange() {
	s.autosave.Notify(s.board.ToSnapshot())
	if s.opts.OnHistoryChanged != nil {
		s.opts.OnHistoryChanged(s.hist.UndoSize(), s.hist.RedoSize())
	}
}

// ForceSave writes the current board state immediately, with no history
// commit: the user asked for durability, not a new undo step.
func (s *Session) ForceSave(ctx context.Context) error {
	s.autosave.Notify(s.board.ToSnapshot())
	return s.Flush(ctx)
}

// Flush forces the pending save out now and persists the history stacks.
func (s *Session) Flush(ctx context.Context) error {
	if err := s.autosave.Flush(ctx); err != nil {
		return err
	}
	undo, redo := s.hist.Stacks()
	return s.opts.Gateway.SaveHistory(ctx, s.opts.Key, store.HistoryStacks{
		Undo: rowsFromEntries(undo),
		Redo: rowsFromEntries(redo),
	})
}

// commitListener turns committed drops into autosave/history signals.
type commitListener struct{ s *Session }

func (l commitListener) DragStarted(drag.Kind, string, string)       {}
func (l commitListener) DragMoved(drag.Kind, string, placement.Slot) {}
func (l commitListener) DragEnded(drag.Kind, string)                 {}
func (l commitListener) DragCancelled(drag.Kind, string)             {}

func (l commitListener) ItemMoved(string, string, string) { l.s.afterHistoryChange() }
func (l commitListener) SectionMoved(string, string)      { l.s.afterHistoryChange() }

func entriesFromRows(rows []store.HistoryEntryRow) []history.Entry {
	out := make([]history.Entry, len(rows))
	for i, r := range rows {
		out[i] = history.Entry{Snapshot: r.Snapshot, At: r.At, Label: r.Label}
	}
	return out
}

func rowsFromEntries(entries []history.Entry) []store.HistoryEntryRow {
	out := make([]store.HistoryEntryRow, len(entries))
	for i, e := range entries {
		out[i] = store.HistoryEntryRow{Snapshot: e.Snapshot, At: e.At, Label: e.Label}
	}
	return out
}
