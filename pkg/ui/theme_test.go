package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestDefaultThemeLowColorSelection(t *testing.T) {
	orig := TermProfile
	t.Cleanup(func() { TermProfile = orig })

	TermProfile = colorprofile.ANSI
	if !DefaultTheme(lipgloss.NewRenderer(nil)).Selected.GetReverse() {
		t.Error("16-color terminals should mark the selection with reverse video")
	}

	TermProfile = colorprofile.TrueColor
	if DefaultTheme(lipgloss.NewRenderer(nil)).Selected.GetReverse() {
		t.Error("truecolor terminals should use the highlight background")
	}
}

func TestNewThemePinsBackground(t *testing.T) {
	if NewTheme("light").Renderer.HasDarkBackground() {
		t.Error("light theme reports a dark background")
	}
	if !NewTheme("dark").Renderer.HasDarkBackground() {
		t.Error("dark theme reports a light background")
	}
}
