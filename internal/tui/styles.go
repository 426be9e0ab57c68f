// Package tui implements the Bubble Tea workbench for previewing scrim
// modals over a headless document.
package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a")
	colorYellow = lipgloss.Color("#e0af68")
	colorBlue   = lipgloss.Color("#7aa2f7")
	colorGray   = lipgloss.Color("#565f89")
	colorWhite  = lipgloss.Color("#c0caf5")
)

// Styles used for rendering the workbench (lipgloss v1).
var (
	// Title style for section headers.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			PaddingLeft(1)

	// Visible modal state style.
	visibleStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// Closing modal state style.
	closingStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	// Subtle style for ids and opacity readouts.
	subtleStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	// Content summary style.
	summaryStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	// Help line style.
	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1)

	// Error line style.
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f38ba8")).
			PaddingLeft(1)
)

// Banner ASCII art for the header.
const banner = `
 ╔═╗╔═╗╦═╗╦╔╦╗
 ╚═╗║  ╠╦╝║║║║
 ╚═╝╚═╝╩╚═╩╩ ╩`

// bannerStyle styles the ASCII art banner.
var bannerStyle = lipgloss.NewStyle().
	Foreground(colorBlue).
	Bold(true).
	PaddingLeft(1).
	PaddingBottom(1)

// Modal styles using lipgloss v2 for layer/compositor support.
var (
	modalStyle = lipglossv2.NewStyle().
			Border(lipglossv2.RoundedBorder()).
			BorderForeground(lipglossv2.Color("#7aa2f7")).
			Padding(1, 2)

	modalTitleStyle = lipglossv2.NewStyle().
			Foreground(lipglossv2.Color("#7aa2f7")).
			Bold(true)

	modalHelpStyle = lipglossv2.NewStyle().
			Foreground(lipglossv2.Color("#565f89")).
			MarginTop(1)
)

// coverShades maps cover opacity to progressively darker border colors so
// the fade is visible in cells rather than alpha.
var coverShades = []color.Color{
	lipglossv2.Color("#1a1b26"),
	lipglossv2.Color("#2a2e45"),
	lipglossv2.Color("#3b4261"),
	lipglossv2.Color("#565f89"),
	lipglossv2.Color("#7aa2f7"),
}

// shadeFor picks the border shade for a given opacity in [0, 1].
func shadeFor(opacity float64) color.Color {
	if opacity <= 0 {
		return coverShades[0]
	}
	if opacity >= 1 {
		return coverShades[len(coverShades)-1]
	}
	idx := int(opacity * float64(len(coverShades)))
	if idx >= len(coverShades) {
		idx = len(coverShades) - 1
	}
	return coverShades[idx]
}
