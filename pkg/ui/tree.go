// tree.go - Checklist tree rendering with branch lines and viewport scrolling
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/checktree/pkg/checklist"
	"github.com/vanderheijden86/checktree/pkg/model"
)

// selectionGutter is the width the Selected style adds on the left (border
// plus padding). Unselected rows are indented by the same amount.
const selectionGutter = 2

// TreeView renders the visible rows of a session. It owns only presentation
// state; the rows and selection come from the session on every call.
type TreeView struct {
	theme            Theme
	width            int // Available width
	height           int // Available height in rows
	viewportOffset   int // Index of first visible row
	showDescriptions bool
}

// NewTreeView creates a tree view with the given theme.
func NewTreeView(theme Theme, showDescriptions bool) TreeView {
	return TreeView{
		theme:            theme,
		showDescriptions: showDescriptions,
	}
}

// SetSize updates the available dimensions for the tree view
func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// Height returns the number of rows the view can show.
func (t *TreeView) Height() int {
	if t.height <= 0 {
		return 20 // Default
	}
	return t.height
}

// EnsureVisible scrolls the viewport so the cursor row is on screen.
func (t *TreeView) EnsureVisible(cursor, total int) {
	h := t.Height()
	if cursor < t.viewportOffset {
		t.viewportOffset = cursor
	}
	if cursor >= t.viewportOffset+h {
		t.viewportOffset = cursor - h + 1
	}
	if last := total - h; t.viewportOffset > last {
		t.viewportOffset = last
	}
	if t.viewportOffset < 0 {
		t.viewportOffset = 0
	}
}

// visibleRange returns the start and end indices of rows to render.
// The range [start, end) covers rows visible in the viewport.
func (t *TreeView) visibleRange(total int) (start, end int) {
	if total == 0 {
		return 0, 0
	}
	visibleCount := t.Height()

	start = t.viewportOffset
	end = start + visibleCount

	// Clamp to bounds
	if end > total {
		end = total
		start = end - visibleCount
		if start < 0 {
			start = 0
		}
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

// View renders the rows of s that fit in the viewport.
func (t *TreeView) View(s checklist.Session) string {
	rows := s.Rows()
	if len(rows) == 0 {
		return t.renderEmptyState()
	}

	var sb strings.Builder
	start, end := t.visibleRange(len(rows))
	for i := start; i < end; i++ {
		isSelected := i == s.Selected()
		line := t.renderRow(s, rows[i], isSelected)

		if isSelected {
			line = t.theme.Selected.Render(line)
		} else {
			line = strings.Repeat(" ", selectionGutter) + line
		}

		sb.WriteString(line)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderEmptyState renders the view when the tree has no items.
func (t *TreeView) renderEmptyState() string {
	r := t.theme.Renderer

	titleStyle := r.NewStyle().
		Foreground(t.theme.Primary).
		Bold(true)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Nothing to check"))
	sb.WriteString("\n\n")
	sb.WriteString(t.theme.MutedText.Render("The checklist has no items."))
	sb.WriteString("\n")
	sb.WriteString(t.theme.MutedText.Render("Pass --tree FILE to load one, or press q to finish."))
	return sb.String()
}

// renderRow renders a single row with tree characters and styling.
func (t *TreeView) renderRow(s checklist.Session, row checklist.Row, isSelected bool) string {
	var sb strings.Builder

	prefix := t.buildTreePrefix(s.Tree(), row.Path)
	sb.WriteString(prefix)

	sb.WriteString(t.theme.Indicator.Render(getExpandIndicator(row)))
	sb.WriteString(" ")

	checked := s.IsChecked(row.Path)
	if checked {
		sb.WriteString(t.theme.CheckedBox.Render("[x]"))
	} else {
		sb.WriteString(t.theme.UncheckedBox.Render("[ ]"))
	}
	sb.WriteString(" ")

	// Use lipgloss.Width for display width (handles ANSI codes + Unicode)
	avail := t.width - selectionGutter - lipgloss.Width(sb.String())
	if t.width <= 0 {
		avail = 60
	}

	name := truncateTitle(row.Name, avail)
	if checked && !isSelected {
		sb.WriteString(t.theme.CheckedName.Render(name))
	} else {
		sb.WriteString(name)
	}

	if t.showDescriptions && row.Description != "" {
		rest := avail - runewidth.StringWidth(name) - 2
		if rest > 3 {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Description.Render(truncateTitle(row.Description, rest)))
		}
	}

	if row.IsParent && !row.Expanded && row.HasChildren {
		if n := childCount(s.Tree(), row.Path); n > 0 {
			sb.WriteString(t.theme.MutedText.Render(fmt.Sprintf(" (%d)", n)))
		}
	}

	return sb.String()
}

// buildTreePrefix builds the indentation and branch characters for a row.
func (t *TreeView) buildTreePrefix(tree model.Tree, p model.Path) string {
	if len(p) <= 1 {
		return "" // Root rows have no prefix
	}

	var prefixParts []string

	// One column per ancestor below the root level
	for depth := 2; depth < len(p); depth++ {
		if isLastChild(tree, p[:depth]) {
			prefixParts = append(prefixParts, "    ")
		} else {
			prefixParts = append(prefixParts, "│   ")
		}
	}

	if isLastChild(tree, p) {
		prefixParts = append(prefixParts, "└── ")
	} else {
		prefixParts = append(prefixParts, "├── ")
	}

	return t.theme.TreeLine.Render(strings.Join(prefixParts, ""))
}

// isLastChild reports whether the node at p is the last of its siblings.
func isLastChild(tree model.Tree, p model.Path) bool {
	if len(p) == 0 {
		return false
	}
	siblings := []*model.Node(tree)
	if len(p) > 1 {
		parent := tree.At(p[:len(p)-1])
		if parent == nil {
			return false
		}
		siblings = parent.Children
	}
	return p[len(p)-1] == len(siblings)-1
}

func childCount(tree model.Tree, p model.Path) int {
	if n := tree.At(p); n != nil {
		return len(n.Children)
	}
	return 0
}

// getExpandIndicator returns the expand/collapse indicator for a row.
func getExpandIndicator(row checklist.Row) string {
	if !row.IsParent {
		return "•" // Leaf node
	}
	if row.Expanded {
		return "▾" // Expanded
	}
	return "▸" // Collapsed
}

// truncateTitle truncates to the given display width with an ellipsis.
func truncateTitle(title string, maxWidth int) string {
	if runewidth.StringWidth(title) <= maxWidth {
		return title
	}
	if maxWidth <= 3 {
		return "..."
	}
	return runewidth.Truncate(title, maxWidth, "…")
}
