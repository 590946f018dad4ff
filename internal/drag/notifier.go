package drag

import "plank-cli/internal/placement"

// Notifier receives fire-and-forget drag lifecycle signals. Implementations
// must not call back into the Controller synchronously and must not assume a
// re-render happens before the next call.
type Notifier interface {
	DragStarted(kind Kind, draggedID, sourceContainerID string)
	DragMoved(kind Kind, draggedID string, target placement.Slot)
	DragEnded(kind Kind, draggedID string)
	DragCancelled(kind Kind, draggedID string)
	ItemMoved(itemID, fromSectionID, toContainerID string)
	SectionMoved(sectionID, toContainerID string)
}

// NopNotifier drops every signal.
type NopNotifier struct{}

func (NopNotifier) DragStarted(Kind, string, string)       {}
func (NopNotifier) DragMoved(Kind, string, placement.Slot) {}
func (NopNotifier) DragEnded(Kind, string)                 {}
func (NopNotifier) DragCancelled(Kind, string)             {}
func (NopNotifier) ItemMoved(string, string, string)       {}
func (NopNotifier) SectionMoved(string, string)            {}

// MultiNotifier fans one signal out to several subscribers, in order.
type MultiNotifier []Notifier

func (m MultiNotifier) DragStarted(k Kind, id, src string) {
	for _, n := range m {
		n.DragStarted(k, id, src)
	}
}

func (m MultiNotifier) DragMoved(k Kind, id string, t placement.Slot) {
	for _, n := range m {
		n.DragMoved(k, id, t)
	}
}

func (m MultiNotifier) DragEnded(k Kind, id string) {
	for _, n := range m {
		n.DragEnded(k, id)
	}
}

func (m MultiNotifier) DragCancelled(k Kind, id string) {
	for _, n := range m {
		n.DragCancelled(k, id)
	}
}

func (m MultiNotifier) ItemMoved(id, from, to string) {
	for _, n := range m {
		n.ItemMoved(id, from, to)
	}
}

func (m MultiNotifier) SectionMoved(id, to string) {
	for _, n := range m {
		n.SectionMoved(id, to)
	}
}
