// Package tui implements the terminal user interface for stretchy.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Catppuccin Mocha color palette
const (
	hexBase     = "#1E1E2E"
	hexMantle   = "#181825"
	hexText     = "#CDD6F4"
	hexSubtext  = "#A6ADC8"
	hexOverlay  = "#7F849C"
	hexBlue     = "#89B4FA"
	hexLavender = "#B4BEFE"
	hexPeach    = "#FAB387"
)

var (
	colorMantle   = lipgloss.Color(hexMantle)
	colorText     = lipgloss.Color(hexText)
	colorOverlay  = lipgloss.Color(hexOverlay)
	colorBlue     = lipgloss.Color(hexBlue)
	colorLavender = lipgloss.Color(hexLavender)
	colorPeach    = lipgloss.Color(hexPeach)
)

var (
	// Header styles
	topBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)

	appNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			Background(colorMantle)

	pageCountStyle = lipgloss.NewStyle().
			Foreground(colorOverlay).
			Background(colorMantle)

	// Title strip styles
	titleStyle = lipgloss.NewStyle().
			Foreground(colorOverlay)

	titleActiveStyle = lipgloss.NewStyle().
				Foreground(colorLavender).
				Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorPeach)

	// Footer styles
	footerStyle = lipgloss.NewStyle().
			Foreground(colorOverlay)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorPeach)
)

// fade blends fg into bg. opacity 0 is invisible, 1 is fully fg.
func fade(fg, bg string, opacity float64) lipgloss.Color {
	f, err := colorful.Hex(fg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	opacity = min(max(opacity, 0), 1)
	return lipgloss.Color(b.BlendLab(f, opacity).Clamped().Hex())
}
