package planner

import (
	"time"

	"plank-cli/internal/model"
)

const FormatVersion = 2

// Planner owns the section map and the column order. It is the single
// source of truth for ordering; every mutation goes through its methods.
//
// Columns reference sections by id only. A section missing from every
// column is "orphaned" but still owned (and persisted) until removed.
type Planner struct {
	orientation  model.Orientation
	sections     map[string]*model.Section
	columns      [][]string
	lastModified time.Time
}

// SectionData carries the caller-supplied fields for AddSection.
type SectionData struct {
	Title    string
	Kind     model.SectionKind
	Freeform string
}

// New returns an empty planner with a single empty column.
func New() *Planner {
	return &Planner{
		orientation: model.OrientationColumns,
		sections:    map[string]*model.Section{},
		columns:     [][]string{{}},
	}
}

// touch bumps lastModified, strictly monotonic even within one wall-clock tick.
func (p *Planner) touch() time.Time {
	now := time.Now().UTC()
	if !now.After(p.lastModified) {
		now = p.lastModified.Add(time.Nanosecond)
	}
	p.lastModified = now
	return now
}

func (p *Planner) Orientation() model.Orientation { return p.orientation }

func (p *Planner) SetOrientation(o model.Orientation) {
	if o == p.orientation {
		return
	}
	p.orientation = o
	p.touch()
}

func (p *Planner) LastModified() time.Time { return p.lastModified }

// AddSection creates a section with a fresh id. The section starts orphaned:
// it is not placed in any column until AddSectionToColumn.
func (p *Planner) AddSection(data SectionData) model.Section {
	kind := data.Kind
	if kind == "" {
		kind = model.SectionKindList
	}
	sec := &model.Section{
		ID:    p.newSectionID(),
		Title: data.Title,
		Kind:  kind,
	}
	if kind == model.SectionKindFreeform {
		sec.Freeform = data.Freeform
	}
	p.sections[sec.ID] = sec
	p.touch()
	return model.CloneSection(*sec)
}

// RemoveSection deletes the section and detaches it from every column.
// Returns false (and changes nothing) if the id is unknown.
func (p *Planner) RemoveSection(id string) bool {
	if _, ok := p.sections[id]; !ok {
		return false
	}
	delete(p.sections, id)
	p.detachFromColumns(id)
	p.touch()
	return true
}

func (p *Planner) detachFromColumns(id string) {
	for ci := range p.columns {
		col := p.columns[ci]
		for i := 0; i < len(col); i++ {
			if col[i] == id {
				col = append(col[:i], col[i+1:]...)
				i--
			}
		}
		p.columns[ci] = col
	}
}

// AddSectionToColumn places a section at position pos in column columnIndex.
// Placement is idempotent: the section is first detached from wherever it
// currently sits, so it can never be referenced twice. Columns are grown with
// empty slots up to columnIndex; pos is clamped to [0, len] and defaults to
// append.
func (p *Planner) AddSectionToColumn(id string, columnIndex int, pos ...int) error {
	if _, ok := p.sections[id]; !ok {
		return UnknownSectionError{ID: id}
	}
	if columnIndex < 0 {
		return IndexOutOfRangeError{Index: columnIndex, Max: len(p.columns)}
	}
	for len(p.columns) <= columnIndex {
		p.columns = append(p.columns, []string{})
	}
	p.detachFromColumns(id)

	col := p.columns[columnIndex]
	at := len(col)
	if len(pos) > 0 {
		at = pos[0]
		if at < 0 {
			at = 0
		}
		if at > len(col) {
			at = len(col)
		}
	}
	col = append(col, "")
	copy(col[at+1:], col[at:])
	col[at] = id
	p.columns[columnIndex] = col
	p.touch()
	return nil
}

// PlaceSectionBefore moves a section into columnIndex, in front of beforeID.
// An empty beforeID (or atEnd) appends. This is the section-drag commit path.
func (p *Planner) PlaceSectionBefore(id string, columnIndex int, beforeID string) error {
	if _, ok := p.sections[id]; !ok {
		return UnknownSectionError{ID: id}
	}
	if columnIndex < 0 {
		return IndexOutOfRangeError{Index: columnIndex, Max: len(p.columns)}
	}
	if beforeID == "" {
		return p.AddSectionToColumn(id, columnIndex)
	}
	if _, ok := p.sections[beforeID]; !ok {
		return UnknownSectionError{ID: beforeID}
	}
	// Position is computed after the moved section is detached, so that a
	// same-column move lands exactly in front of the anchor.
	p.detachFromColumns(id)
	for len(p.columns) <= columnIndex {
		p.columns = append(p.columns, []string{})
	}
	at := len(p.columns[columnIndex])
	for i, sid := range p.columns[columnIndex] {
		if sid == beforeID {
			at = i
			break
		}
	}
	return p.AddSectionToColumn(id, columnIndex, at)
}

// RemoveColumn deletes the column at columnIndex. Its sections stay owned but
// become orphaned. A board always keeps at least one column.
func (p *Planner) RemoveColumn(columnIndex int) error {
	if columnIndex < 0 || columnIndex >= len(p.columns) {
		return UnknownColumnError{Index: columnIndex}
	}
	p.columns = append(p.columns[:columnIndex], p.columns[columnIndex+1:]...)
	if len(p.columns) == 0 {
		p.columns = [][]string{{}}
	}
	p.touch()
	return nil
}

// AddColumn appends an empty column and returns its index.
func (p *Planner) AddColumn() int {
	p.columns = append(p.columns, []string{})
	p.touch()
	return len(p.columns) - 1
}

func (p *Planner) ColumnCount() int { return len(p.columns) }

// ColumnIDs returns the section ids of one column, in order.
func (p *Planner) ColumnIDs(columnIndex int) ([]string, error) {
	if columnIndex < 0 || columnIndex >= len(p.columns) {
		return nil, UnknownColumnError{Index: columnIndex}
	}
	return append([]string{}, p.columns[columnIndex]...), nil
}

// ColumnSections resolves one column to section copies, in order.
func (p *Planner) ColumnSections(columnIndex int) ([]model.Section, error) {
	ids, err := p.ColumnIDs(columnIndex)
	if err != nil {
		return nil, err
	}
	out := make([]model.Section, 0, len(ids))
	for _, id := range ids {
		if sec, ok := p.sections[id]; ok {
			out = append(out, model.CloneSection(*sec))
		}
	}
	return out, nil
}

// Section returns a copy of the section, if present.
func (p *Planner) Section(id string) (model.Section, bool) {
	sec, ok := p.sections[id]
	if !ok {
		return model.Section{}, false
	}
	return model.CloneSection(*sec), true
}

// SectionColumn reports which column currently holds the section,
// or -1 when the section is orphaned or unknown.
func (p *Planner) SectionColumn(id string) int {
	for ci, col := range p.columns {
		for _, sid := range col {
			if sid == id {
				return ci
			}
		}
	}
	return -1
}

// Orphans lists owned sections not referenced by any column.
func (p *Planner) Orphans() []string {
	placed := map[string]bool{}
	for _, col := range p.columns {
		for _, id := range col {
			placed[id] = true
		}
	}
	out := []string{}
	for id := range p.sections {
		if !placed[id] {
			out = append(out, id)
		}
	}
	return out
}

// FindItem locates an item anywhere on the board.
func (p *Planner) FindItem(itemID string) (sectionID string, index int, ok bool) {
	for id, sec := range p.sections {
		for i := range sec.Items {
			if sec.Items[i].ID == itemID {
				return id, i, true
			}
		}
	}
	return "", 0, false
}

func (p *Planner) listSection(sectionID, op string) (*model.Section, error) {
	sec, ok := p.sections[sectionID]
	if !ok {
		return nil, UnknownSectionError{ID: sectionID}
	}
	if sec.Kind != model.SectionKindList {
		return nil, KindMismatchError{SectionID: sectionID, Op: op}
	}
	return sec, nil
}

// AddItem appends a new item to a list section.
func (p *Planner) AddItem(sectionID, text string) (model.Item, error) {
	sec, err := p.listSection(sectionID, "add item")
	if err != nil {
		return model.Item{}, err
	}
	now := p.touch()
	it := model.Item{
		ID:        p.newItemID(),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sec.Items = append(sec.Items, it)
	return it, nil
}

// RemoveItem deletes one item from a list section.
func (p *Planner) RemoveItem(sectionID, itemID string) error {
	sec, err := p.listSection(sectionID, "remove item")
	if err != nil {
		return err
	}
	for i := range sec.Items {
		if sec.Items[i].ID == itemID {
			sec.Items = append(sec.Items[:i], sec.Items[i+1:]...)
			p.touch()
			return nil
		}
	}
	return UnknownItemError{SectionID: sectionID, ID: itemID}
}

// SetItemText replaces an item's text.
func (p *Planner) SetItemText(sectionID, itemID, text string) error {
	sec, err := p.listSection(sectionID, "edit item")
	if err != nil {
		return err
	}
	for i := range sec.Items {
		if sec.Items[i].ID == itemID {
			sec.Items[i].Text = text
			sec.Items[i].UpdatedAt = p.touch()
			return nil
		}
	}
	return UnknownItemError{SectionID: sectionID, ID: itemID}
}

// ToggleItem flips an item's checked flag and returns the new value.
func (p *Planner) ToggleItem(sectionID, itemID string) (bool, error) {
	sec, err := p.listSection(sectionID, "toggle item")
	if err != nil {
		return false, err
	}
	for i := range sec.Items {
		if sec.Items[i].ID == itemID {
			sec.Items[i].Checked = !sec.Items[i].Checked
			sec.Items[i].UpdatedAt = p.touch()
			return sec.Items[i].Checked, nil
		}
	}
	return false, UnknownItemError{SectionID: sectionID, ID: itemID}
}

// RenameSection sets a section title.
func (p *Planner) RenameSection(id, title string) error {
	sec, ok := p.sections[id]
	if !ok {
		return UnknownSectionError{ID: id}
	}
	sec.Title = title
	p.touch()
	return nil
}

// SetFreeform replaces a freeform section's body.
func (p *Planner) SetFreeform(id, body string) error {
	sec, ok := p.sections[id]
	if !ok {
		return UnknownSectionError{ID: id}
	}
	if sec.Kind != model.SectionKindFreeform {
		return KindMismatchError{SectionID: id, Op: "set freeform"}
	}
	sec.Freeform = body
	p.touch()
	return nil
}

// MoveItemWithinSection splices an item to newIndex among its siblings.
// newIndex must already be a valid sibling index; use MoveItemBetweenSections
// for cross-section moves.
func (p *Planner) MoveItemWithinSection(sectionID, itemID string, newIndex int) error {
	sec, err := p.listSection(sectionID, "move item")
	if err != nil {
		return err
	}
	if newIndex < 0 || newIndex >= len(sec.Items) {
		return IndexOutOfRangeError{Index: newIndex, Max: len(sec.Items) - 1}
	}
	from := -1
	for i := range sec.Items {
		if sec.Items[i].ID == itemID {
			from = i
			break
		}
	}
	if from < 0 {
		return UnknownItemError{SectionID: sectionID, ID: itemID}
	}
	if from == newIndex {
		return nil
	}
	it := sec.Items[from]
	rest := append(sec.Items[:from], sec.Items[from+1:]...)
	rest = append(rest, model.Item{})
	copy(rest[newIndex+1:], rest[newIndex:])
	rest[newIndex] = it
	sec.Items = rest
	p.touch()
	return nil
}

// MoveItemBetweenSections removes the item from its source section and
// inserts it into the target at pos (clamped; default append). Source and
// target may be the same section, which degrades to a within-section move.
func (p *Planner) MoveItemBetweenSections(itemID, fromSectionID, toSectionID string, pos ...int) error {
	from, err := p.listSection(fromSectionID, "move item")
	if err != nil {
		return err
	}
	to, err := p.listSection(toSectionID, "move item")
	if err != nil {
		return err
	}
	idx := -1
	for i := range from.Items {
		if from.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return UnknownItemError{SectionID: fromSectionID, ID: itemID}
	}
	it := from.Items[idx]
	from.Items = append(from.Items[:idx], from.Items[idx+1:]...)

	at := len(to.Items)
	if len(pos) > 0 {
		at = pos[0]
		if at < 0 {
			at = 0
		}
		if at > len(to.Items) {
			at = len(to.Items)
		}
	}
	to.Items = append(to.Items, model.Item{})
	copy(to.Items[at+1:], to.Items[at:])
	to.Items[at] = it
	p.touch()
	return nil
}

// PlaceItemBefore moves an item into toSectionID, in front of beforeItemID.
// An empty beforeItemID appends. This is the item-drag commit path.
func (p *Planner) PlaceItemBefore(itemID, fromSectionID, toSectionID, beforeItemID string) error {
	if beforeItemID == "" {
		return p.MoveItemBetweenSections(itemID, fromSectionID, toSectionID)
	}
	to, err := p.listSection(toSectionID, "move item")
	if err != nil {
		return err
	}
	at := -1
	for i := range to.Items {
		if to.Items[i].ID == beforeItemID {
			at = i
			break
		}
	}
	if at < 0 {
		return UnknownItemError{SectionID: toSectionID, ID: beforeItemID}
	}
	// Dropping in front of an anchor that sits after the dragged item in the
	// same section: the removal shifts the anchor left by one.
	if fromSectionID == toSectionID {
		for i := range to.Items {
			if to.Items[i].ID == itemID {
				if i < at {
					at--
				}
				break
			}
		}
	}
	return p.MoveItemBetweenSections(itemID, fromSectionID, toSectionID, at)
}
