package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"plank-cli/internal/drag"
	"plank-cli/internal/planner"
	"plank-cli/internal/session"
	"plank-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func renderSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.Open(context.Background(), session.Opts{
		Gateway:  store.SQLiteGateway{Dir: t.TempDir()},
		Key:      "board",
		Debounce: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return sess
}

func TestRenderColumn_CheckedItemIsMuted(t *testing.T) {
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })

	// Make adaptive color selection deterministic.
	oldBg := lipgloss.HasDarkBackground()
	lipgloss.SetHasDarkBackground(true)
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(oldBg) })

	sess := renderSession(t)
	board := sess.Board()
	sec := board.AddSection(planner.SectionData{Title: "Today"})
	if err := board.AddSectionToColumn(sec.ID, 0); err != nil {
		t.Fatal(err)
	}
	it, err := board.AddItem(sec.ID, "ship it")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := board.ToggleItem(sec.ID, it.ID); err != nil {
		t.Fatal(err)
	}

	m := newBoardModel(sess, &uiNotifier{})
	m.width = 40
	m.height = 12
	got := m.renderColumn(0, 40, 10)

	plain := ansi.Strip(got)
	if !strings.Contains(plain, "Today") {
		t.Fatalf("expected section title in rendered column; got %q", plain)
	}
	if !strings.Contains(plain, "[x] ship it") {
		t.Fatalf("expected checked item in rendered column; got %q", plain)
	}
	// Muted 256-color fg on dark backgrounds: 38;5;243.
	if !strings.Contains(got, "38;5;243") {
		t.Fatalf("expected muted foreground (38;5;243) for the checked item; got %q", got)
	}
}

func TestRenderColumn_DropMarkerAtTarget(t *testing.T) {
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })

	sess := renderSession(t)
	board := sess.Board()
	sec := board.AddSection(planner.SectionData{Title: "Today"})
	if err := board.AddSectionToColumn(sec.ID, 0); err != nil {
		t.Fatal(err)
	}
	a, err := board.AddItem(sec.ID, "first")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := board.AddItem(sec.ID, "second"); err != nil {
		t.Fatal(err)
	}

	m := newBoardModel(sess, &uiNotifier{})
	m.width = 40
	m.height = 12

	if _, err := sess.Drag().Start(drag.KindItem, a.ID, sec.ID); err != nil {
		t.Fatal(err)
	}
	m.targetCol = 0
	m.pos = 3.5 // below the last item: append slot
	m.retarget()

	plain := ansi.Strip(m.renderColumn(0, 40, 10))
	if !strings.Contains(plain, "▸") {
		t.Fatalf("expected drop marker while dragging; got %q", plain)
	}
}
