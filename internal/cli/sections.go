package cli

import (
	"context"
	"strconv"

	"plank-cli/internal/model"
	"plank-cli/internal/planner"

	"github.com/spf13/cobra"
)

func newSectionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Manage sections",
	}
	cmd.AddCommand(newSectionsListCmd(app))
	cmd.AddCommand(newSectionsAddCmd(app))
	cmd.AddCommand(newSectionsRemoveCmd(app))
	cmd.AddCommand(newSectionsPlaceCmd(app))
	cmd.AddCommand(newSectionsRenameCmd(app))
	return cmd
}

func newSectionsListCmd(app *App) *cobra.Command {
	var orphans bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sections by column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			board := sess.Board()
			if orphans {
				out := []model.Section{}
				for _, id := range board.Orphans() {
					if sec, ok := board.Section(id); ok {
						out = append(out, sec)
					}
				}
				return writeOut(cmd, app, out)
			}
			out := [][]model.Section{}
			for i := 0; i < board.ColumnCount(); i++ {
				secs, err := board.ColumnSections(i)
				if err != nil {
					return writeErr(cmd, err)
				}
				out = append(out, secs)
			}
			return writeOut(cmd, app, out)
		},
	}
	cmd.Flags().BoolVar(&orphans, "orphans", false, "List sections not placed in any column")
	return cmd
}

func newSectionsAddCmd(app *App) *cobra.Command {
	var kind string
	var column int
	var freeform string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a section and place it in a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			data := planner.SectionData{Title: args[0], Kind: model.SectionKind(kind)}
			if data.Kind == model.SectionKindFreeform {
				data.Freeform = freeform
			}
			sec := sess.Board().AddSection(data)
			if column >= 0 {
				if err := sess.Board().AddSectionToColumn(sec.ID, column); err != nil {
					return writeErr(cmd, err)
				}
			}
			sess.Commit("add section " + sec.ID)
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, sec)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(model.SectionKindList), "Section kind (list|freeform); fixed at creation")
	cmd.Flags().IntVar(&column, "column", 0, "Column index to place the section in (-1 leaves it orphaned)")
	cmd.Flags().StringVar(&freeform, "text", "", "Initial freeform body (freeform kind only)")
	return cmd
}

func newSectionsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <section-id>",
		Short: "Remove a section and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Board().RemoveSection(args[0]) {
				return writeErr(cmd, errNotFound("section", args[0]))
			}
			sess.Commit("remove section " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"removed": args[0]})
		},
	}
}

func newSectionsPlaceCmd(app *App) *cobra.Command {
	var pos int
	cmd := &cobra.Command{
		Use:   "place <section-id> <column-index>",
		Short: "Move a section into a column (idempotent; never duplicates)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := strconv.Atoi(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if pos >= 0 {
				err = sess.Board().AddSectionToColumn(args[0], column, pos)
			} else {
				err = sess.Board().AddSectionToColumn(args[0], column)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			sess.Commit("place section " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"section": args[0], "column": column})
		},
	}
	cmd.Flags().IntVar(&pos, "pos", -1, "Insert position within the column (default: append)")
	return cmd
}

func newSectionsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <section-id> <title>",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Board().RenameSection(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			sess.Commit("rename section " + args[0])
			if err := sess.Flush(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"section": args[0], "title": args[1]})
		},
	}
}
