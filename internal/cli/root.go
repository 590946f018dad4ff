package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"plank-cli/internal/format"
	"plank-cli/internal/session"
	"plank-cli/internal/store"
	"plank-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Board      string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "plank",
		Short:        "Plank: a column/section/item planner (CLI + TUI)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("PLANK_DIR", ""), "Path to the data dir (default: ./.plank)")
	cmd.PersistentFlags().StringVar(&app.Board, "board", envOr("PLANK_BOARD", session.DefaultKey), "Board key inside the data dir")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PLANK_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newSectionsCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newUndoCmd(app))
	cmd.AddCommand(newRedoCmd(app))
	cmd.AddCommand(newSaveCmd(app))

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func dataDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, ".plank"), nil
}

func openSession(app *App) (*session.Session, error) {
	dir, err := dataDir(app)
	if err != nil {
		return nil, err
	}
	return session.Open(context.Background(), session.Opts{
		Gateway: store.SQLiteGateway{Dir: dir},
		Key:     app.Board,
	})
}

func runTUI(app *App) error {
	dir, err := dataDir(app)
	if err != nil {
		return err
	}
	return tui.Run(dir, app.Board)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
