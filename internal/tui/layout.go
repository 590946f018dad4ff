package tui

import (
	"plank-cli/internal/model"
	"plank-cli/internal/placement"
	"plank-cli/internal/planner"
)

type rowKind int

const (
	rowSection rowKind = iota
	rowItem
)

// row is one selectable line in a column pane.
type row struct {
	kind      rowKind
	sectionID string
	itemID    string
}

// colLayout flattens one column into rows and the 1-D boxes the placement
// resolver consumes. One row = one unit along the drag axis, mirroring how
// the pointer-driven original measured element rects.
type colLayout struct {
	sections []model.Section
	rows     []row

	// sectionBoxes spans each section's full extent (header + items):
	// candidates for section drags and containers for item drags.
	sectionBoxes []placement.Box
	// itemBoxes maps section id to that section's item boxes.
	itemBoxes map[string][]placement.Box
}

func buildColLayout(board *planner.Planner, col int) colLayout {
	lay := colLayout{itemBoxes: map[string][]placement.Box{}}
	secs, err := board.ColumnSections(col)
	if err != nil {
		return lay
	}
	lay.sections = secs

	pos := 0.0
	for _, sec := range secs {
		start := pos
		lay.rows = append(lay.rows, row{kind: rowSection, sectionID: sec.ID})
		pos++
		if sec.Kind == model.SectionKindList {
			boxes := make([]placement.Box, 0, len(sec.Items))
			for _, it := range sec.Items {
				lay.rows = append(lay.rows, row{kind: rowItem, sectionID: sec.ID, itemID: it.ID})
				boxes = append(boxes, placement.Box{ID: it.ID, Start: pos, End: pos + 1})
				pos++
			}
			lay.itemBoxes[sec.ID] = boxes
		}
		lay.sectionBoxes = append(lay.sectionBoxes, placement.Box{ID: sec.ID, Start: start, End: pos})
	}
	return lay
}

// height reports the total row extent of the column.
func (l colLayout) height() float64 {
	if len(l.sectionBoxes) == 0 {
		return 0
	}
	return l.sectionBoxes[len(l.sectionBoxes)-1].End
}

// listContainers narrows sectionBoxes to list sections: item drags can only
// target sections that hold items.
func (l colLayout) listContainers() []placement.Box {
	out := make([]placement.Box, 0, len(l.sectionBoxes))
	for i, sec := range l.sections {
		if sec.Kind == model.SectionKindList {
			out = append(out, l.sectionBoxes[i])
		}
	}
	return out
}
