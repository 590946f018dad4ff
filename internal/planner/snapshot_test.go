package planner

import (
	"reflect"
	"testing"

	"plank-cli/internal/model"
)

func buildBoard(t *testing.T) *Planner {
	t.Helper()
	p := New()
	a := p.AddSection(SectionData{Title: "A"})
	b := p.AddSection(SectionData{Title: "B"})
	f := p.AddSection(SectionData{Title: "notes", Kind: model.SectionKindFreeform, Freeform: "# hi"})
	if err := p.AddSectionToColumn(a.ID, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.AddSectionToColumn(b.ID, 1); err != nil {
		t.Fatal(err)
	}
	if err := p.AddSectionToColumn(f.ID, 1); err != nil {
		t.Fatal(err)
	}
	for _, txt := range []string{"one", "two", "three"} {
		if _, err := p.AddItem(a.ID, txt); err != nil {
			t.Fatal(err)
		}
	}
	// One orphan, to prove orphans survive the round trip.
	p.AddSection(SectionData{Title: "orphan"})
	return p
}

func TestSnapshot_RoundTrip(t *testing.T) {
	p := buildBoard(t)
	snap := p.ToSnapshot()

	q, err := FromSnapshot(snap)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if !reflect.DeepEqual(snap, q.ToSnapshot()) {
		t.Fatalf("round trip changed state:\n%+v\nvs\n%+v", snap, q.ToSnapshot())
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	p := buildBoard(t)
	snap := p.ToSnapshot()

	ids, _ := p.ColumnIDs(0)
	secID := ids[0]
	if _, err := p.AddItem(secID, "mutated later"); err != nil {
		t.Fatal(err)
	}
	if len(snap.Sections[secID].Items) != 3 {
		t.Fatalf("snapshot observed a later mutation")
	}
}

func TestFromSnapshot_RejectsUnknownID(t *testing.T) {
	snap := model.Snapshot{
		Sections: map[string]model.Section{},
		Columns:  [][]string{{"sec-ghost"}},
	}
	if _, err := FromSnapshot(snap); err == nil {
		t.Fatalf("expected error for dangling column id")
	}
}

func TestFromSnapshot_RejectsDuplicatePlacement(t *testing.T) {
	snap := model.Snapshot{
		Sections: map[string]model.Section{
			"sec-a": {ID: "sec-a", Title: "A", Kind: model.SectionKindList},
		},
		Columns: [][]string{{"sec-a"}, {"sec-a"}},
	}
	if _, err := FromSnapshot(snap); err == nil {
		t.Fatalf("expected error for duplicate placement")
	}
}

func TestFromSnapshot_EmptyColumnsGetsOne(t *testing.T) {
	p, err := FromSnapshot(model.Snapshot{Sections: map[string]model.Section{}})
	if err != nil {
		t.Fatal(err)
	}
	if p.ColumnCount() != 1 {
		t.Fatalf("ColumnCount = %d, want 1", p.ColumnCount())
	}
}

func TestRestore_InPlace(t *testing.T) {
	p := buildBoard(t)
	before := p.ToSnapshot()

	a := p.AddSection(SectionData{Title: "extra"})
	if err := p.AddSectionToColumn(a.ID, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.Restore(before); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !reflect.DeepEqual(before, p.ToSnapshot()) {
		t.Fatalf("restore did not reproduce the snapshot")
	}
}

func TestRestore_InvalidLeavesStateUntouched(t *testing.T) {
	p := buildBoard(t)
	before := p.ToSnapshot()

	bad := model.Snapshot{Sections: map[string]model.Section{}, Columns: [][]string{{"sec-ghost"}}}
	if err := p.Restore(bad); err == nil {
		t.Fatalf("expected error")
	}
	if !reflect.DeepEqual(before, p.ToSnapshot()) {
		t.Fatalf("failed restore mutated the planner")
	}
}
