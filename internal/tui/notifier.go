package tui

import (
	"fmt"
	"sync"

	"plank-cli/internal/drag"
	"plank-cli/internal/placement"
)

// uiNotifier collects drag signals and autosave failures for the status bar.
// Drag signals arrive synchronously from Update; save errors arrive from the
// autosave timer goroutine, hence the mutex.
type uiNotifier struct {
	mu      sync.Mutex
	status  string
	saveErr error
}

func (n *uiNotifier) setStatus(s string) {
	n.mu.Lock()
	n.status = s
	n.mu.Unlock()
}

func (n *uiNotifier) takeStatus() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.status
}

func (n *uiNotifier) saveFailed(err error) {
	n.mu.Lock()
	n.saveErr = err
	n.mu.Unlock()
}

func (n *uiNotifier) takeSaveErr() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	err := n.saveErr
	n.saveErr = nil
	return err
}

func (n *uiNotifier) DragStarted(kind drag.Kind, id, _ string) {
	n.setStatus(fmt.Sprintf("dragging %s %s", kind, id))
}

func (n *uiNotifier) DragMoved(kind drag.Kind, id string, t placement.Slot) {
	if t.AtEnd {
		n.setStatus(fmt.Sprintf("dragging %s %s → end of %s", kind, id, t.ContainerID))
		return
	}
	n.setStatus(fmt.Sprintf("dragging %s %s → before %s", kind, id, t.BeforeID))
}

func (n *uiNotifier) DragEnded(kind drag.Kind, id string) {
	n.setStatus(fmt.Sprintf("%s %s dropped", kind, id))
}

func (n *uiNotifier) DragCancelled(kind drag.Kind, id string) {
	n.setStatus(fmt.Sprintf("%s drag cancelled", kind))
}

func (n *uiNotifier) ItemMoved(id, from, to string) {
	n.setStatus(fmt.Sprintf("moved %s → %s", id, to))
}

func (n *uiNotifier) SectionMoved(id, to string) {
	n.setStatus(fmt.Sprintf("moved %s → %s", id, to))
}
