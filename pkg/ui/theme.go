package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Checked   lipgloss.AdaptiveColor
	Unchecked lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Row parts, created once instead of per frame
	TreeLine     lipgloss.Style // ├── │
	Indicator    lipgloss.Style // ▾ ▸ •
	CheckedBox   lipgloss.Style // [x]
	UncheckedBox lipgloss.Style // [ ]
	CheckedName  lipgloss.Style
	Description  lipgloss.Style
	MutedText    lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Checked:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Unchecked: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)
	if TermProfile < colorprofile.ANSI256 {
		// 16-color palettes have no usable highlight background
		t.Selected = t.Selected.Reverse(true)
	}

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.TreeLine = r.NewStyle().Foreground(t.Muted)
	t.Indicator = r.NewStyle().Foreground(t.Secondary)
	t.CheckedBox = r.NewStyle().Foreground(t.Checked).Bold(true)
	t.UncheckedBox = r.NewStyle().Foreground(t.Unchecked)
	t.CheckedName = r.NewStyle().Foreground(t.Checked)
	t.Description = r.NewStyle().Foreground(t.Subtext).Italic(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)

	return t
}

// NewTheme builds the theme for a configured mode. "dark" and "light" pin
// the adaptive colors; anything else lets the renderer detect the background.
func NewTheme(mode string) Theme {
	r := lipgloss.NewRenderer(os.Stdout)
	switch strings.ToLower(mode) {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	return DefaultTheme(r)
}
