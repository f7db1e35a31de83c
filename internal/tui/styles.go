// Package tui implements the CarbonRoots terminal interface: the name entry
// screen, the calculator screen, and the Top-10 leaderboard chart.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorForest  = lipgloss.Color("#2E7D32")
	ColorLeaf    = lipgloss.Color("#66BB6A")
	ColorText    = lipgloss.Color("#2F3E2F")
	ColorSubtle  = lipgloss.Color("241")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorValue   = lipgloss.Color("255")
)

// Styles shared by every view.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForest)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLeaf)

	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorValue)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLeaf)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	FocusedStyle = lipgloss.NewStyle().
			Foreground(ColorLeaf)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLeaf)

	BarStyle = lipgloss.NewStyle().
			Foreground(ColorForest)
)

// Footer is the caption shown under every screen.
const Footer = "© 2025 CarbonRoots"
