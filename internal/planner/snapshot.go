package planner

import (
	"fmt"

	"plank-cli/internal/model"
)

// ToSnapshot returns a deep, independent copy of the full board state.
func (p *Planner) ToSnapshot() model.Snapshot {
	s := model.Snapshot{
		FormatVersion: FormatVersion,
		Orientation:   p.orientation,
		Sections:      map[string]model.Section{},
		Columns:       make([][]string, len(p.columns)),
		LastModified:  p.lastModified,
	}
	for id, sec := range p.sections {
		s.Sections[id] = model.CloneSection(*sec)
	}
	for i, col := range p.columns {
		s.Columns[i] = append([]string{}, col...)
	}
	return s
}

// FromSnapshot rebuilds a planner from a snapshot, enforcing referential
// integrity: every column id must resolve, and no id may appear twice.
func FromSnapshot(s model.Snapshot) (*Planner, error) {
	p := &Planner{
		orientation:  s.Orientation,
		sections:     map[string]*model.Section{},
		columns:      make([][]string, 0, len(s.Columns)),
		lastModified: s.LastModified,
	}
	if p.orientation == "" {
		p.orientation = model.OrientationColumns
	}
	for id, sec := range s.Sections {
		c := model.CloneSection(sec)
		if c.ID == "" {
			c.ID = id
		}
		if c.ID != id {
			return nil, fmt.Errorf("snapshot section key %q does not match id %q", id, c.ID)
		}
		p.sections[id] = &c
	}
	seen := map[string]bool{}
	for _, col := range s.Columns {
		dst := make([]string, 0, len(col))
		for _, id := range col {
			if _, ok := p.sections[id]; !ok {
				return nil, UnknownSectionError{ID: id}
			}
			if seen[id] {
				return nil, fmt.Errorf("snapshot places section %s twice", id)
			}
			seen[id] = true
			dst = append(dst, id)
		}
		p.columns = append(p.columns, dst)
	}
	if len(p.columns) == 0 {
		p.columns = [][]string{{}}
	}
	return p, nil
}

// Restore replaces this planner's state in place with the snapshot's.
// In-place so callers holding the *Planner (drag controller, UI) stay valid
// across undo/redo swaps. The planner is untouched on error.
func (p *Planner) Restore(s model.Snapshot) error {
	next, err := FromSnapshot(s)
	if err != nil {
		return err
	}
	*p = *next
	return nil
}

// Clone deep-copies the planner.
func (p *Planner) Clone() *Planner {
	out, err := FromSnapshot(p.ToSnapshot())
	if err != nil {
		// ToSnapshot of a valid planner is always loadable.
		panic(err)
	}
	return out
}

// CheckInvariants verifies the structural rules the planner maintains:
// referenced ids resolve, no duplicates across columns, at least one column.
func (p *Planner) CheckInvariants() error {
	if len(p.columns) == 0 {
		return fmt.Errorf("planner has no columns")
	}
	seen := map[string]bool{}
	for ci, col := range p.columns {
		for _, id := range col {
			if _, ok := p.sections[id]; !ok {
				return fmt.Errorf("column %d references unknown section %s", ci, id)
			}
			if seen[id] {
				return fmt.Errorf("section %s placed more than once", id)
			}
			seen[id] = true
		}
	}
	return nil
}
