// Package drag runs a single drag gesture, item-level or section-level, as
// one tagged state machine. The two drag kinds are mutually exclusive by
// construction: there is exactly one live state and it carries one kind.
package drag

import (
	"fmt"
	"strconv"
	"strings"

	"plank-cli/internal/history"
	"plank-cli/internal/placement"
	"plank-cli/internal/planner"
)

type Kind int

const (
	KindNone Kind = iota
	KindItem
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindSection:
		return "section"
	default:
		return "none"
	}
}

type ConflictingDragError struct {
	Active    Kind
	Requested Kind
}

func (e ConflictingDragError) Error() string {
	return fmt.Sprintf("cannot start %s drag while %s drag is active", e.Requested, e.Active)
}

// ErrIdle is returned by Drop when no drag is active.
type ErrIdle struct{ Op string }

func (e ErrIdle) Error() string { return e.Op + " called with no active drag" }

// State is the live drag, valid only while Kind != KindNone.
type State struct {
	Kind              Kind
	DraggedID         string
	SourceContainerID string
	Target            placement.Slot

	targetSet bool
}

// Controller drives a drag from start to drop or cancel. It is the only
// code path that commits drag results into the planner, and it pushes one
// history entry per committed drop.
type Controller struct {
	board  *planner.Planner
	hist   *history.Manager
	notify Notifier

	state State
}

func NewController(board *planner.Planner, hist *history.Manager, notify Notifier) *Controller {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Controller{board: board, hist: hist, notify: notify}
}

// Active reports whether a drag is in flight.
func (c *Controller) Active() bool { return c.state.Kind != KindNone }

// State returns the current drag state (zero value when idle).
func (c *Controller) State() State { return c.state }

// Start begins a drag. Starting while a drag of the other kind is active
// fails with ConflictingDragError and leaves the active drag untouched.
// Starting while the same kind is active cancels the prior drag first
// (last gesture wins); restarted reports that this happened.
func (c *Controller) Start(kind Kind, draggedID, sourceContainerID string) (restarted bool, err error) {
	if kind != KindItem && kind != KindSection {
		return false, fmt.Errorf("invalid drag kind %d", kind)
	}
	if c.state.Kind != KindNone {
		if c.state.Kind != kind {
			return false, ConflictingDragError{Active: c.state.Kind, Requested: kind}
		}
		c.Cancel()
		restarted = true
	}
	c.state = State{
		Kind:              kind,
		DraggedID:         draggedID,
		SourceContainerID: sourceContainerID,
	}
	c.notify.DragStarted(kind, draggedID, sourceContainerID)
	return restarted, nil
}

// Retarget records a new insertion slot. Calls while idle are ignored.
// A move notification fires only when the slot actually changed; identical
// repeated slots (every pointer tick lands somewhere) are suppressed.
func (c *Controller) Retarget(slot placement.Slot) {
	if c.state.Kind == KindNone {
		return
	}
	if c.state.targetSet && c.state.Target.Equal(slot) {
		return
	}
	c.state.Target = slot
	c.state.targetSet = true
	c.notify.DragMoved(c.state.Kind, c.state.DraggedID, slot)
}

// Drop commits the drag. With no target ever set the gesture completes as a
// no-op: the lifecycle ends cleanly, but neither the planner nor history is
// touched. On commit failure the drag still ends (the gesture is over) and
// the error is surfaced.
func (c *Controller) Drop() error {
	if c.state.Kind == KindNone {
		return ErrIdle{Op: "drop"}
	}
	st := c.state
	c.state = State{}

	if !st.targetSet {
		c.notify.DragEnded(st.Kind, st.DraggedID)
		return nil
	}

	var err error
	switch st.Kind {
	case KindItem:
		err = c.board.PlaceItemBefore(st.DraggedID, st.SourceContainerID, st.Target.ContainerID, st.Target.BeforeID)
	case KindSection:
		col, ok := ParseColumnContainer(st.Target.ContainerID)
		if !ok {
			err = fmt.Errorf("section drop target %q is not a column", st.Target.ContainerID)
			break
		}
		err = c.board.PlaceSectionBefore(st.DraggedID, col, st.Target.BeforeID)
	}
	if err != nil {
		c.notify.DragEnded(st.Kind, st.DraggedID)
		return err
	}

	if c.hist != nil {
		c.hist.Commit(c.board.ToSnapshot(), dropLabel(st))
	}
	switch st.Kind {
	case KindItem:
		c.notify.ItemMoved(st.DraggedID, st.SourceContainerID, st.Target.ContainerID)
	case KindSection:
		c.notify.SectionMoved(st.DraggedID, st.Target.ContainerID)
	}
	c.notify.DragEnded(st.Kind, st.DraggedID)
	return nil
}

// Cancel discards the drag without committing. Safe to call while idle.
func (c *Controller) Cancel() {
	if c.state.Kind == KindNone {
		return
	}
	st := c.state
	c.state = State{}
	c.notify.DragCancelled(st.Kind, st.DraggedID)
}

func dropLabel(st State) string {
	if st.Kind == KindSection {
		return "move section " + st.DraggedID
	}
	return "move item " + st.DraggedID
}

// Column containers are addressed as "col:<index>" so that section drags and
// item drags share one Slot type. Item containers are plain section ids.
const columnContainerPrefix = "col:"

func ColumnContainerID(index int) string {
	return columnContainerPrefix + strconv.Itoa(index)
}

func ParseColumnContainer(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, columnContainerPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
