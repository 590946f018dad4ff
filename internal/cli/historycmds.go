package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last committed change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Undo() {
				return writeErr(cmd, errors.New("nothing to undo"))
			}
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]int{
				"undoRemaining": sess.History().UndoSize(),
				"redoAvailable": sess.History().RedoSize(),
			})
		},
	}
}

func newRedoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Reapply the most recently undone change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Redo() {
				return writeErr(cmd, errors.New("nothing to redo"))
			}
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]int{
				"undoRemaining": sess.History().UndoSize(),
				"redoAvailable": sess.History().RedoSize(),
			})
		},
	}
}

func newSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Force-save the board now, bypassing the autosave debounce",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.ForceSave(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]bool{"saved": true})
		},
	}
}
