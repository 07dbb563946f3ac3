// Package tui provides the terminal shell for gini: app bar, navigation
// drawer, router and help overlay.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, app bar
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - current route
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - selection
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - key present
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// App bar styles
var (
	AppBarStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBg).
			Padding(0, 1)

	AppBarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Background(ColorBg)

	AppBarMenuStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Background(ColorBg).
			PaddingRight(2)

	AppBarHintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorBg)
)

// Drawer styles
var (
	DrawerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderRight(true).
			BorderForeground(ColorBorder).
			Padding(1, 1)

	DrawerItemStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	DrawerItemActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(0, 1)

	DrawerHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorLabel).
				MarginTop(1)

	DrawerHelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1).
			Padding(0, 1)
)

// Status styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	MissingStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)
