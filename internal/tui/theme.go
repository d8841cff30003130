package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPink)

	tabStyle       = lipgloss.NewStyle().Foreground(colorOverlay1).Padding(0, 1)
	tabActiveStyle = lipgloss.NewStyle().Foreground(colorPink).Bold(true).Padding(0, 1).Underline(true)

	statusStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorRed)

	cursorStyle   = lipgloss.NewStyle().Foreground(colorPink).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(colorOverlay1)
	headerRow     = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)

	// graph rendering
	nodeStyle       = lipgloss.NewStyle().Foreground(colorBlue)
	nodeSelected    = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	nodeCursorStyle = lipgloss.NewStyle().Foreground(colorPink).Bold(true).Reverse(true)
	edgeStyle       = lipgloss.NewStyle().Foreground(colorSurface1)
	labelStyle      = lipgloss.NewStyle().Foreground(colorSubtext0)

	filterOnStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	filterBarStyle = lipgloss.NewStyle().Foreground(colorTeal)

	hintStyle = lipgloss.NewStyle().Foreground(colorYellow)
)
