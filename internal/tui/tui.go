package tui

import (
	"context"

	"plank-cli/internal/session"
	"plank-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(dir, boardKey string) error {
	applyColorProfile()

	notify := &uiNotifier{}
	sess, err := session.Open(context.Background(), session.Opts{
		Gateway:     store.SQLiteGateway{Dir: dir},
		Key:         boardKey,
		Notifier:    notify,
		OnSaveError: notify.saveFailed,
	})
	if err != nil {
		return err
	}
	m := newBoardModel(sess, notify)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	// Whatever the debounce timer still holds goes out before exit.
	flushErr := sess.Flush(context.Background())
	if err != nil {
		return err
	}
	return flushErr
}
