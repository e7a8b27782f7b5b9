// Package tui renders wiregrid levels, reports and statistics as terminal
// text, and hosts the interactive play mode and run history browser.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all configurable visual styles.
type Theme struct {
	// Grid cell styles
	Start    lipgloss.Style
	End      lipgloss.Style
	Path     lipgloss.Style // Solution path in the level view
	Solution lipgloss.Style // Solution path in solution and comparison views
	Fixed    lipgloss.Style
	Empty    lipgloss.Style

	// Play styles
	Energized lipgloss.Style // Cells the signal reaches from the start
	Cursor    lipgloss.Style

	// Text styles
	Title lipgloss.Style
	Rule  lipgloss.Style
	Label lipgloss.Style
	Good  lipgloss.Style
	Bad   lipgloss.Style
	Warn  lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Start:    lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("15")).Bold(true),
		End:      lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Bold(true),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Bright yellow
		Solution: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Bright green
		Fixed:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Bright cyan
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		Energized: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),

		Title: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Rule:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Good:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// PlainTheme returns a theme without any styling, for pipes and tests.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Start:     plain,
		End:       plain,
		Path:      plain,
		Solution:  plain,
		Fixed:     plain,
		Empty:     plain,
		Energized: plain,
		Cursor:    plain,
		Title:     plain,
		Rule:      plain,
		Label:     plain,
		Good:      plain,
		Bad:       plain,
		Warn:      plain,
	}
}
