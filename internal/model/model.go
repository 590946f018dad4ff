package model

import "time"

// SectionKind is fixed at section creation; there is no migration path
// between list and freeform content.
type SectionKind string

const (
	SectionKindList     SectionKind = "list"
	SectionKindFreeform SectionKind = "freeform"
)

type Orientation string

const (
	OrientationColumns Orientation = "columns"
	OrientationRows    Orientation = "rows"
)

type Item struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Checked   bool      `json:"checked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Section struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Kind  SectionKind `json:"kind"`

	// Items is the authoritative ordering for list sections; unused for freeform.
	Items []Item `json:"items,omitempty"`

	// Freeform holds the text body for freeform sections.
	Freeform string `json:"freeform,omitempty"`
}

// Snapshot is the persisted (and history) shape of a whole board.
// Columns holds section IDs only; every referenced ID must exist in Sections.
type Snapshot struct {
	FormatVersion int                `json:"formatVersion"`
	Orientation   Orientation        `json:"orientation,omitempty"`
	Sections      map[string]Section `json:"sections"`
	Columns       [][]string         `json:"columnsOrder"`
	LastModified  time.Time          `json:"lastModified"`
}

// CloneSection returns a deep copy (Items slice included).
func CloneSection(s Section) Section {
	out := s
	if s.Items != nil {
		out.Items = make([]Item, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}

// CloneSnapshot returns a fully independent copy. History entries and
// persistence payloads must never alias live board state.
func CloneSnapshot(s Snapshot) Snapshot {
	out := s
	out.Sections = make(map[string]Section, len(s.Sections))
	for id, sec := range s.Sections {
		out.Sections[id] = CloneSection(sec)
	}
	out.Columns = make([][]string, len(s.Columns))
	for i, col := range s.Columns {
		out.Columns[i] = append([]string{}, col...)
	}
	return out
}
