package planner

import (
	"strings"

	"github.com/google/uuid"
)

// newID returns prefix-<suffix>, suffix being the first block of a random UUID.
// Collisions are guarded by the caller against the live id space.
func newID(prefix string) string {
	u := uuid.New().String()
	return prefix + "-" + strings.SplitN(u, "-", 2)[0]
}

func (p *Planner) newSectionID() string {
	for {
		id := newID("sec")
		if _, ok := p.sections[id]; !ok {
			return id
		}
	}
}

func (p *Planner) newItemID() string {
	for {
		id := newID("item")
		if !p.itemIDExists(id) {
			return id
		}
	}
}

func (p *Planner) itemIDExists(id string) bool {
	for _, sec := range p.sections {
		for i := range sec.Items {
			if sec.Items[i].ID == id {
				return true
			}
		}
	}
	return false
}
