// Package placement maps a 1-D pointer position onto a discrete insertion
// slot among sibling bounds. It is pure: no state, no side effects, so it can
// run on every pointer-move tick without drift.
package placement

// Box is one candidate sibling's extent along the drag axis.
type Box struct {
	ID    string
	Start float64
	End   float64
}

// Mid returns the box midpoint, the only geometry the resolver compares.
func (b Box) Mid() float64 { return (b.Start + b.End) / 2 }

// Slot is an insertion point: a container plus an anchor within it.
// BeforeID names the sibling the dragged element would precede; AtEnd means
// append after the last sibling.
type Slot struct {
	ContainerID string
	BeforeID    string
	AtEnd       bool
}

// Equal reports whether two slots name the same insertion point.
func (s Slot) Equal(o Slot) bool {
	return s.ContainerID == o.ContainerID && s.BeforeID == o.BeforeID && s.AtEnd == o.AtEnd
}

// ResolveAnchor picks the insertion anchor for pos among boxes, excluding the
// dragged element itself.
//
// Rules:
//   - no candidates, or pos past the last candidate's end: append at end
//   - otherwise the candidate with the nearest midpoint wins; ties go to the
//     earliest candidate (strict less-than update while scanning in order)
//   - anchor is "before" the winner only when pos is strictly above its
//     midpoint; pos exactly on the midpoint resolves to "after"
func ResolveAnchor(containerID string, pos float64, boxes []Box, draggedID string) Slot {
	cands := make([]Box, 0, len(boxes))
	for _, b := range boxes {
		if b.ID == draggedID {
			continue
		}
		cands = append(cands, b)
	}
	if len(cands) == 0 || pos > cands[len(cands)-1].End {
		return Slot{ContainerID: containerID, AtEnd: true}
	}

	best := 0
	bestDist := abs(pos - cands[0].Mid())
	for i := 1; i < len(cands); i++ {
		if d := abs(pos - cands[i].Mid()); d < bestDist {
			best = i
			bestDist = d
		}
	}

	if pos < cands[best].Mid() {
		return Slot{ContainerID: containerID, BeforeID: cands[best].ID}
	}
	// "After" the winner means before its successor, or append when the
	// winner is last.
	if best+1 < len(cands) {
		return Slot{ContainerID: containerID, BeforeID: cands[best+1].ID}
	}
	return Slot{ContainerID: containerID, AtEnd: true}
}

// ResolveContainer picks the target container by the same nearest-midpoint
// rule over container bounds. Returns false when there are no containers.
func ResolveContainer(pos float64, containers []Box) (string, bool) {
	if len(containers) == 0 {
		return "", false
	}
	best := 0
	bestDist := abs(pos - containers[0].Mid())
	for i := 1; i < len(containers); i++ {
		if d := abs(pos - containers[i].Mid()); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return containers[best].ID, true
}

// Resolve composes container and anchor selection for cross-container drags:
// containerPos picks the lane, pos picks the slot inside it. boxesByContainer
// supplies each container's sibling bounds.
func Resolve(containerPos, pos float64, containers []Box, boxesByContainer map[string][]Box, draggedID string) (Slot, bool) {
	cid, ok := ResolveContainer(containerPos, containers)
	if !ok {
		return Slot{}, false
	}
	return ResolveAnchor(cid, pos, boxesByContainer[cid], draggedID), true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
