// Package history keeps a bounded undo/redo stack pair of board snapshots.
// It is a pure in-memory structure: persistence reacts to history changes
// elsewhere, never from here.
package history

import (
	"time"

	"plank-cli/internal/model"
)

const DefaultBound = 50

// Entry is one undoable state. Immutable once pushed.
type Entry struct {
	Snapshot model.Snapshot
	At       time.Time
	Label    string
}

// Manager holds the current snapshot plus undo/redo stacks. The undo stack
// is bounded: pushing past the bound evicts the oldest entry, so the newest
// states always survive.
type Manager struct {
	bound   int
	current model.Snapshot
	undo    []Entry
	redo    []Entry
}

// New starts history at the given snapshot. bound <= 0 falls back to
// DefaultBound.
func New(initial model.Snapshot, bound int) *Manager {
	if bound <= 0 {
		bound = DefaultBound
	}
	return &Manager{
		bound:   bound,
		current: model.CloneSnapshot(initial),
	}
}

// Restore rebuilds a manager from persisted stacks (oldest-first). Entries
// beyond the bound are dropped oldest-first, same as live eviction.
func Restore(current model.Snapshot, bound int, undo, redo []Entry) *Manager {
	m := New(current, bound)
	for _, e := range undo {
		m.pushUndo(Entry{Snapshot: model.CloneSnapshot(e.Snapshot), At: e.At, Label: e.Label})
	}
	for _, e := range redo {
		m.redo = append(m.redo, Entry{Snapshot: model.CloneSnapshot(e.Snapshot), At: e.At, Label: e.Label})
	}
	return m
}

// Stacks returns copies of both stacks, oldest-first.
func (m *Manager) Stacks() (undo, redo []Entry) {
	undo = make([]Entry, len(m.undo))
	for i, e := range m.undo {
		undo[i] = Entry{Snapshot: model.CloneSnapshot(e.Snapshot), At: e.At, Label: e.Label}
	}
	redo = make([]Entry, len(m.redo))
	for i, e := range m.redo {
		redo[i] = Entry{Snapshot: model.CloneSnapshot(e.Snapshot), At: e.At, Label: e.Label}
	}
	return undo, redo
}

// Commit records a new current state. The previous current goes onto the
// undo stack; the redo stack is cleared (a new change forecloses any redo
// branch).
func (m *Manager) Commit(snapshot model.Snapshot, label string) {
	m.pushUndo(Entry{
		Snapshot: m.current,
		At:       time.Now().UTC(),
		Label:    label,
	})
	m.redo = nil
	m.current = model.CloneSnapshot(snapshot)
}

func (m *Manager) pushUndo(e Entry) {
	m.undo = append(m.undo, e)
	// FIFO eviction: drop the oldest, keep the bound exact.
	if len(m.undo) > m.bound {
		over := len(m.undo) - m.bound
		m.undo = append([]Entry{}, m.undo[over:]...)
	}
}

// Undo steps current back one entry, making it redoable. Returns false when
// there is nothing to undo.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}
	top := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, Entry{
		Snapshot: m.current,
		At:       time.Now().UTC(),
		Label:    top.Label,
	})
	m.current = top.Snapshot
	return true
}

// Redo reapplies the most recently undone entry. Returns false when the
// redo stack is empty.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}
	top := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.pushUndo(Entry{
		Snapshot: m.current,
		At:       time.Now().UTC(),
		Label:    top.Label,
	})
	m.current = top.Snapshot
	return true
}

// Current returns an independent copy of the current snapshot.
func (m *Manager) Current() model.Snapshot {
	return model.CloneSnapshot(m.current)
}

func (m *Manager) Bound() int    { return m.bound }
func (m *Manager) UndoSize() int { return len(m.undo) }
func (m *Manager) RedoSize() int { return len(m.redo) }

// UndoLabels lists undo entries oldest-first; handy for history UIs.
func (m *Manager) UndoLabels() []string {
	out := make([]string, len(m.undo))
	for i, e := range m.undo {
		out[i] = e.Label
	}
	return out
}
