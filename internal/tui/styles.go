package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"misleadviz/internal/fixtures"
)

type styles struct {
	header  lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	bubble  lipgloss.Style
	player  lipgloss.Style
	post    lipgloss.Style
	card    lipgloss.Style
	flag    lipgloss.Style
	errLine lipgloss.Style
	footer  lipgloss.Style
	purple  lipgloss.Style
	green   lipgloss.Style
}

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().
			Background(lipgloss.Color(fixtures.ColorPurple)).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		title: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")),
		bubble: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		player: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(fixtures.ColorGreen)).
			Padding(0, 1),
		post: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1).
			MarginBottom(1),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginBottom(1),
		flag: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fixtures.ColorGreen)).
			Bold(true),
		errLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0392b")),
		footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")).
			MarginTop(1),
		purple: lipgloss.NewStyle().Foreground(lipgloss.Color(fixtures.ColorPurple)),
		green:  lipgloss.NewStyle().Foreground(lipgloss.Color(fixtures.ColorGreen)),
	}
}

// cssToHex turns "rgb(r,g,b)" into "#rrggbb"; hex input passes through.
func cssToHex(c string) string {
	var r, g, b int
	if _, err := fmt.Sscanf(c, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return c
}

func swatch(fill string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(cssToHex(fill))).Render("  ")
}
