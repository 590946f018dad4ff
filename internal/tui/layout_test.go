package tui

import (
	"testing"

	"plank-cli/internal/model"
	"plank-cli/internal/planner"
)

func layoutBoard(t *testing.T) (*planner.Planner, string, string) {
	t.Helper()
	board := planner.New()
	a := board.AddSection(planner.SectionData{Title: "A", Kind: model.SectionKindList})
	b := board.AddSection(planner.SectionData{Title: "B", Kind: model.SectionKindFreeform})
	if err := board.AddSectionToColumn(a.ID, 0); err != nil {
		t.Fatal(err)
	}
	if err := board.AddSectionToColumn(b.ID, 0); err != nil {
		t.Fatal(err)
	}
	for _, text := range []string{"one", "two"} {
		if _, err := board.AddItem(a.ID, text); err != nil {
			t.Fatal(err)
		}
	}
	return board, a.ID, b.ID
}

func TestBuildColLayout_RowsAndBoxes(t *testing.T) {
	board, aID, bID := layoutBoard(t)
	lay := buildColLayout(board, 0)

	// Header, two items, second header: four rows at one unit each.
	if len(lay.rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(lay.rows))
	}
	if lay.rows[0].kind != rowSection || lay.rows[0].sectionID != aID {
		t.Fatalf("first row should be section %s header", aID)
	}
	if lay.rows[1].kind != rowItem || lay.rows[2].kind != rowItem {
		t.Fatalf("rows 1-2 should be items, got %+v", lay.rows[1:3])
	}
	if lay.rows[3].sectionID != bID {
		t.Fatalf("last row should be section %s header", bID)
	}
	if lay.height() != 4 {
		t.Fatalf("height = %v, want 4", lay.height())
	}

	// Section boxes span header plus items.
	if len(lay.sectionBoxes) != 2 {
		t.Fatalf("sectionBoxes = %d, want 2", len(lay.sectionBoxes))
	}
	if got := lay.sectionBoxes[0]; got.Start != 0 || got.End != 3 {
		t.Fatalf("section A box = [%v,%v], want [0,3]", got.Start, got.End)
	}
	if got := lay.sectionBoxes[1]; got.Start != 3 || got.End != 4 {
		t.Fatalf("section B box = [%v,%v], want [3,4]", got.Start, got.End)
	}

	boxes := lay.itemBoxes[aID]
	if len(boxes) != 2 {
		t.Fatalf("item boxes for A = %d, want 2", len(boxes))
	}
	if boxes[0].Start != 1 || boxes[0].End != 2 || boxes[1].Start != 2 || boxes[1].End != 3 {
		t.Fatalf("item boxes misplaced: %+v", boxes)
	}
	if _, ok := lay.itemBoxes[bID]; ok {
		t.Fatalf("freeform section must not carry item boxes")
	}
}

func TestColLayout_ListContainersSkipFreeform(t *testing.T) {
	board, aID, _ := layoutBoard(t)
	lay := buildColLayout(board, 0)

	containers := lay.listContainers()
	if len(containers) != 1 || containers[0].ID != aID {
		t.Fatalf("listContainers = %+v, want only %s", containers, aID)
	}
}

func TestBuildColLayout_MissingColumnIsEmpty(t *testing.T) {
	board := planner.New()
	lay := buildColLayout(board, 7)
	if len(lay.rows) != 0 || lay.height() != 0 {
		t.Fatalf("missing column should yield an empty layout")
	}
}
