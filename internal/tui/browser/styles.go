// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     browser
// Description: Styles for the tag browser TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package browser

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette - Same as other TUI components for consistency
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)

	PositionStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Tag styles
var (
	TagNameStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	TagLineStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	PropertyNameStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	PropertyValueStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	TagPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Logo
const Logo = "tagscript"
