package cli

import (
	"context"
	"errors"
	"fmt"

	"plank-cli/internal/model"
	"plank-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Inspect the board",
	}
	cmd.AddCommand(newBoardShowCmd(app))
	cmd.AddCommand(newBoardSizeCmd(app))
	cmd.AddCommand(newBoardOrientCmd(app))
	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Dump the full board snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, sess.Board().ToSnapshot())
		},
	}
}

func newBoardOrientCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orient <columns|rows>",
		Short: "Set the board orientation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var o model.Orientation
			switch args[0] {
			case "columns":
				o = model.OrientationColumns
			case "rows":
				o = model.OrientationRows
			default:
				return writeErr(cmd, fmt.Errorf("unknown orientation: %s", args[0]))
			}
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sess.Board().SetOrientation(o)
			sess.Commit("set orientation " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"orientation": args[0]})
		},
	}
}

func newBoardSizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Report storage usage for the data dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			gw := store.SQLiteGateway{Dir: dir}
			usage, err := gw.Size(context.Background())
			if err != nil {
				if errors.Is(err, store.ErrSizeUnavailable) {
					return writeOut(cmd, app, map[string]any{"used": usage.Used, "available": nil})
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, usage)
		},
	}
}
