package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage items within sections",
	}
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsRemoveCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	cmd.AddCommand(newItemsToggleCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	return cmd
}

func newItemsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <section-id> <text>",
		Short: "Append an item to a list section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := sess.Board().AddItem(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			sess.Commit("add item " + it.ID)
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, it)
		},
	}
}

func newItemsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			secID, _, ok := sess.Board().FindItem(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			if err := sess.Board().RemoveItem(secID, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			sess.Commit("remove item " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"removed": args[0]})
		},
	}
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var toSection string
	var toIndex int
	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Move an item within its section or into another section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			board := sess.Board()
			fromSection, _, ok := board.FindItem(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			switch {
			case toSection != "" && toSection != fromSection:
				if toIndex >= 0 {
					err = board.MoveItemBetweenSections(args[0], fromSection, toSection, toIndex)
				} else {
					err = board.MoveItemBetweenSections(args[0], fromSection, toSection)
				}
			case toIndex >= 0:
				err = board.MoveItemWithinSection(fromSection, args[0], toIndex)
			default:
				err = errors.New("provide --to-section and/or --to-index")
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			sess.Commit("move item " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"item": args[0], "section": orDefault(toSection, fromSection), "index": toIndex,
			})
		},
	}
	cmd.Flags().StringVar(&toSection, "to-section", "", "Target section id (default: stay in place)")
	cmd.Flags().IntVar(&toIndex, "to-index", -1, "Target index among siblings (default: append on cross-section moves)")
	return cmd
}

func newItemsToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Flip an item's checked state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			secID, _, ok := sess.Board().FindItem(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			checked, err := sess.Board().ToggleItem(secID, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			sess.Commit("toggle item " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"item": args[0], "checked": checked})
		},
	}
}

func newItemsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <item-id> <text>",
		Short: "Replace an item's text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			secID, _, ok := sess.Board().FindItem(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			if err := sess.Board().SetItemText(secID, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			sess.Commit("edit item " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"item": args[0], "text": args[1]})
		},
	}
}

func orDefault(v, d string) string {
	if v != "" {
		return v
	}
	return d
}
