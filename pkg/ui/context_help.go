package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/checktree/pkg/checklist"
)

// helpModalWidth is the preferred width of the help overlay.
const helpModalWidth = 64

// HelpContent returns the help overlay markdown for the active policy.
func HelpContent(policy checklist.Policy) string {
	var b strings.Builder
	b.WriteString(helpKeys)
	b.WriteString("\n\n")
	switch policy {
	case checklist.PolicyCascade:
		b.WriteString(helpCascade)
	default:
		b.WriteString(helpIndependent)
	}
	return b.String()
}

// glamourStyle picks the glamour standard style matching the theme. The
// background is read from the renderer once, before the program starts, so
// rendering inside the event loop never queries the terminal.
func glamourStyle(theme Theme) string {
	if theme.Renderer != nil && !theme.Renderer.HasDarkBackground() {
		return "light"
	}
	return "dark"
}

// renderHelpMarkdown renders the help text for the given wrap width. On a
// renderer failure the raw markdown is shown instead.
func renderHelpMarkdown(policy checklist.Policy, style string, width int) string {
	content := HelpContent(policy)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// helpModalSize returns the overlay content size for a terminal size.
func helpModalSize(width, height int) (int, int) {
	w := helpModalWidth
	if w > width-4 {
		w = width - 4
	}
	h := height - 8 // border, padding, title and footer
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

// RenderHelpModal wraps the scrolled help body in the overlay frame.
func RenderHelpModal(body string, theme Theme, contentWidth int, scrollPercent float64) string {
	r := theme.Renderer

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("↑/↓ scroll │ ? or Esc to close │ %3.f%%", scrollPercent*100)))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 1)

	return modalStyle.Render(b.String())
}

const helpKeys = `## Keys

- **↑/k ↓/j** move the selection
- **→/l** expand the selected item
- **←/h** collapse the selected item
- **Space/Enter** check or uncheck the selected item
- **g/G** jump to the first or last row
- **PgUp/PgDn** move half a page
- **u** jump to the parent item
- **E/C** expand or collapse everything
- **q/Esc/Ctrl+C** finish and print the selection`

const helpIndependent = `## Policy: independent

Each item keeps its own mark. An item counts as selected when it
or any item above it is checked, so checking a parent selects the
whole branch without touching the children. Unchecking the parent
restores whatever the children had before.`

const helpCascade = `## Policy: cascade

Checking or unchecking an item applies the same mark to every item
below it, replacing their previous marks. Items above are left
alone. Only items that are checked themselves are selected.`
