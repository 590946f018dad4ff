package history

import (
	"fmt"
	"reflect"
	"testing"

	"plank-cli/internal/model"
)

func snap(tag string) model.Snapshot {
	return model.Snapshot{
		FormatVersion: 2,
		Sections: map[string]model.Section{
			"sec-" + tag: {ID: "sec-" + tag, Title: tag, Kind: model.SectionKindList},
		},
		Columns: [][]string{{"sec-" + tag}},
	}
}

func TestCommit_PushesPreviousCurrent(t *testing.T) {
	m := New(snap("s0"), 10)
	m.Commit(snap("s1"), "first")

	if m.UndoSize() != 1 {
		t.Fatalf("UndoSize = %d, want 1", m.UndoSize())
	}
	if !reflect.DeepEqual(m.Current(), snap("s1")) {
		t.Fatalf("current should be the new snapshot")
	}
	if !m.Undo() {
		t.Fatalf("undo failed")
	}
	if !reflect.DeepEqual(m.Current(), snap("s0")) {
		t.Fatalf("undo should restore the previous snapshot")
	}
}

func TestUndoRedo_Symmetry(t *testing.T) {
	m := New(snap("s0"), 10)
	m.Commit(snap("s1"), "one")
	m.Commit(snap("s2"), "two")

	preUndo := m.Current()
	if !m.Undo() {
		t.Fatalf("undo failed")
	}
	if !reflect.DeepEqual(m.Current(), snap("s1")) {
		t.Fatalf("current after undo = %+v", m.Current())
	}
	if m.RedoSize() != 1 {
		t.Fatalf("RedoSize = %d, want 1", m.RedoSize())
	}
	if !m.Redo() {
		t.Fatalf("redo failed")
	}
	if !reflect.DeepEqual(m.Current(), preUndo) {
		t.Fatalf("undo();redo() must restore the exact pre-undo state")
	}
}

func TestCommit_ClearsRedo(t *testing.T) {
	m := New(snap("s0"), 10)
	m.Commit(snap("s1"), "one")
	m.Commit(snap("s2"), "two")

	if !m.Undo() {
		t.Fatalf("undo failed")
	}
	m.Commit(snap("s3"), "three")

	if m.RedoSize() != 0 {
		t.Fatalf("RedoSize = %d, want 0 (new commit forecloses redo)", m.RedoSize())
	}
	if m.Redo() {
		t.Fatalf("redo should fail after a fresh commit")
	}
	if m.UndoSize() != 2 {
		t.Fatalf("UndoSize = %d, want 2 ([s0 s1])", m.UndoSize())
	}
}

func TestBound_FIFOEviction(t *testing.T) {
	const bound = 5
	m := New(snap("s0"), bound)
	for i := 1; i <= 12; i++ {
		m.Commit(snap(fmt.Sprintf("s%d", i)), fmt.Sprintf("commit %d", i))
	}

	if m.UndoSize() != bound {
		t.Fatalf("UndoSize = %d, want exactly %d", m.UndoSize(), bound)
	}
	// 12 commits into a bound of 5: the 7 oldest entries are evicted.
	labels := m.UndoLabels()
	if labels[0] != "commit 8" {
		t.Fatalf("oldest label = %q, want %q", labels[0], "commit 8")
	}
	if labels[len(labels)-1] != "commit 12" {
		t.Fatalf("newest label = %q, want %q", labels[len(labels)-1], "commit 12")
	}
}

func TestUndoRedo_EmptyStacksFail(t *testing.T) {
	m := New(snap("s0"), 3)
	if m.Undo() {
		t.Fatalf("undo on empty stack must fail")
	}
	if m.Redo() {
		t.Fatalf("redo on empty stack must fail")
	}
}

func TestEntries_AreIndependentCopies(t *testing.T) {
	live := snap("s0")
	m := New(live, 3)
	live.Sections["sec-s0"] = model.Section{ID: "sec-s0", Title: "mutated"}

	if m.Current().Sections["sec-s0"].Title != "s0" {
		t.Fatalf("manager aliased the caller's snapshot")
	}
}

func TestRestore_RebuildsStacks(t *testing.T) {
	m := New(snap("s0"), 10)
	m.Commit(snap("s1"), "one")
	m.Commit(snap("s2"), "two")
	if !m.Undo() {
		t.Fatalf("undo failed")
	}
	undo, redo := m.Stacks()

	r := Restore(m.Current(), 10, undo, redo)
	if r.UndoSize() != m.UndoSize() || r.RedoSize() != m.RedoSize() {
		t.Fatalf("restored sizes %d/%d, want %d/%d", r.UndoSize(), r.RedoSize(), m.UndoSize(), m.RedoSize())
	}
	if !r.Redo() {
		t.Fatalf("restored redo failed")
	}
	if !reflect.DeepEqual(r.Current(), snap("s2")) {
		t.Fatalf("restored redo produced %+v", r.Current())
	}
}
