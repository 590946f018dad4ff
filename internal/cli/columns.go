package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Manage board columns",
	}
	cmd.AddCommand(newColumnsListCmd(app))
	cmd.AddCommand(newColumnsAddCmd(app))
	cmd.AddCommand(newColumnsRemoveCmd(app))
	return cmd
}

func newColumnsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List columns with their sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			board := sess.Board()
			type colOut struct {
				Index    int      `json:"index"`
				Sections []string `json:"sections"`
			}
			out := make([]colOut, 0, board.ColumnCount())
			for i := 0; i < board.ColumnCount(); i++ {
				ids, err := board.ColumnIDs(i)
				if err != nil {
					return writeErr(cmd, err)
				}
				out = append(out, colOut{Index: i, Sections: ids})
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newColumnsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Append an empty column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			idx := sess.Board().AddColumn()
			sess.Commit("add column")
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]int{"index": idx})
		},
	}
}

func newColumnsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove a column (its sections become orphaned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Board().RemoveColumn(idx); err != nil {
				return writeErr(cmd, err)
			}
			sess.Commit("remove column " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"removed": args[0]})
		},
	}
}
