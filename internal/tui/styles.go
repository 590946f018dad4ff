package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// applyColorProfile pins lipgloss's color profile before the program starts.
// NO_COLOR wins outright; otherwise, when TERM/COLORTERM report stronger
// support than termenv's probe detected, trust the env. Color probing
// under-reports on some terminals.
func applyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// The board must stay readable on both light and dark terminals, so every
// color is an AdaptiveColor pair.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorHeaderBg   = ac("252", "237")
	colorDragFg     = ac("26", "39") // blue accent for the live drag
)

var (
	styleHeader         = lipgloss.NewStyle().Bold(true).Background(colorHeaderBg).Padding(0, 1)
	styleHeaderSelected = lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg).Padding(0, 1)
	styleMuted          = lipgloss.NewStyle().Foreground(colorMuted)
	styleSelected       = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
	styleDragging       = lipgloss.NewStyle().Foreground(colorDragFg).Bold(true)
	styleDropMark       = lipgloss.NewStyle().Foreground(colorDragFg)
)
