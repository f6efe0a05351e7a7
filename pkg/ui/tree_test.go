package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/checktree/pkg/checklist"
	"github.com/vanderheijden86/checktree/pkg/model"
)

func newTreeTestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(nil))
}

// readmeTree is the built-in example: backend with auth checked, frontend
// checked with two unchecked children.
func readmeTree() model.Tree {
	return model.Tree{
		model.Parent("backend", false,
			model.Leaf("auth", true),
			model.Leaf("billing", false),
			model.Leaf("notifications", false),
		),
		model.Parent("frontend", true,
			model.Leaf("dashboard", false),
			model.Leaf("settings", false),
		),
	}
}

// nestedTree has a grandchild under a last child.
func nestedTree() model.Tree {
	return model.Tree{
		model.Parent("a", false,
			model.Leaf("a1", false),
			model.Parent("a2", false, model.Leaf("x", false)),
		),
		model.Leaf("b", false),
	}
}

func viewLines(tv TreeView, s checklist.Session) []string {
	return strings.Split(tv.View(s), "\n")
}

func TestTreeViewPrefixes(t *testing.T) {
	tree := nestedTree()
	s := checklist.NewSession(tree, checklist.ExpandAll(tree), checklist.PolicyIndependent)
	tv := NewTreeView(newTreeTestTheme(), false)

	lines := viewLines(tv, s)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}

	want := []string{
		"▾ [ ] a",
		"  ├── • [ ] a1",
		"  └── ▾ [ ] a2",
		"      └── • [ ] x",
		"  • [ ] b",
	}
	for i, w := range want {
		if !strings.Contains(lines[i], w) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], w)
		}
	}
	if !strings.HasPrefix(lines[0], "┃") {
		t.Errorf("selected row should carry the selection border, got %q", lines[0])
	}
}

func TestTreeViewSiblingContinuation(t *testing.T) {
	tree := model.Tree{
		model.Parent("a", false,
			model.Parent("a1", false, model.Leaf("y", false)),
			model.Leaf("a2", false),
		),
	}
	s := checklist.NewSession(tree, checklist.ExpandAll(tree), checklist.PolicyIndependent)
	tv := NewTreeView(newTreeTestTheme(), false)

	lines := viewLines(tv, s)
	if !strings.Contains(lines[2], "│   └── • [ ] y") {
		t.Errorf("expected a continuation line for a1's later sibling, got %q", lines[2])
	}
}

func TestTreeViewEffectiveCheckboxes(t *testing.T) {
	tree := readmeTree()
	tests := []struct {
		policy checklist.Policy
		want   string
	}{
		{checklist.PolicyIndependent, "[x] dashboard"},
		{checklist.PolicyCascade, "[ ] dashboard"},
	}
	for _, tt := range tests {
		s := checklist.NewSession(tree, checklist.ExpandAll(tree), tt.policy)
		tv := NewTreeView(newTreeTestTheme(), false)
		if out := tv.View(s); !strings.Contains(out, tt.want) {
			t.Errorf("%s: expected %q in\n%s", tt.policy, tt.want, out)
		}
	}
}

func TestTreeViewCollapsedChildCount(t *testing.T) {
	s := checklist.NewSession(readmeTree(), nil, checklist.PolicyIndependent)
	tv := NewTreeView(newTreeTestTheme(), false)

	out := tv.View(s)
	if !strings.Contains(out, "▸ [ ] backend (3)") {
		t.Errorf("collapsed parent should show its child count, got\n%s", out)
	}
	if strings.Contains(out, "auth") {
		t.Error("children of a collapsed parent must not render")
	}
}

func TestTreeViewDescriptions(t *testing.T) {
	tree := readmeTree()
	tree[0].Description = "Server-side services"
	s := checklist.NewSession(tree, nil, checklist.PolicyIndependent)

	hidden := NewTreeView(newTreeTestTheme(), false)
	if strings.Contains(hidden.View(s), "Server-side") {
		t.Error("descriptions should be hidden when disabled")
	}

	shown := NewTreeView(newTreeTestTheme(), true)
	shown.SetSize(80, 10)
	if !strings.Contains(shown.View(s), "backend  Server-side services") {
		t.Errorf("description missing:\n%s", shown.View(s))
	}
}

func TestTreeViewEmpty(t *testing.T) {
	s := checklist.NewSession(model.Tree{}, nil, checklist.PolicyIndependent)
	tv := NewTreeView(newTreeTestTheme(), false)
	if out := tv.View(s); !strings.Contains(out, "no items") {
		t.Errorf("expected empty state, got %q", out)
	}
}

func TestTreeViewTruncatesToWidth(t *testing.T) {
	long := strings.Repeat("w", 200)
	s := checklist.NewSession(model.Tree{model.Leaf(long, false)}, nil, checklist.PolicyIndependent)
	tv := NewTreeView(newTreeTestTheme(), false)
	tv.SetSize(40, 5)

	for _, line := range viewLines(tv, s) {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line width %d exceeds 40: %q", w, line)
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	if got := truncateTitle("short", 20); got != "short" {
		t.Errorf("short title changed: %q", got)
	}
	got := truncateTitle("abcdefghijklmnop", 8)
	if runewidth.StringWidth(got) > 8 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncateTitle = %q", got)
	}
	if got := truncateTitle("anything", 2); got != "..." {
		t.Errorf("tiny width = %q, want ...", got)
	}

	// Names that fit are kept even when the column is tiny
	for _, tt := range []struct {
		title string
		width int
	}{{"ab", 3}, {"ab", 2}, {"x", 1}, {"", 0}} {
		if got := truncateTitle(tt.title, tt.width); got != tt.title {
			t.Errorf("truncateTitle(%q, %d) = %q, want unchanged", tt.title, tt.width, got)
		}
	}
}

func TestEnsureVisible(t *testing.T) {
	tv := NewTreeView(newTreeTestTheme(), false)
	tv.SetSize(80, 5)

	tv.EnsureVisible(10, 20)
	if start, end := tv.visibleRange(20); start != 6 || end != 11 {
		t.Errorf("range = [%d,%d), want [6,11)", start, end)
	}

	tv.EnsureVisible(2, 20)
	if start, _ := tv.visibleRange(20); start != 2 {
		t.Errorf("scrolling up: start = %d, want 2", start)
	}

	// Rows shrink below the viewport: offset resets
	tv.EnsureVisible(19, 20)
	tv.EnsureVisible(3, 4)
	if start, end := tv.visibleRange(4); start != 0 || end != 4 {
		t.Errorf("after shrink range = [%d,%d), want [0,4)", start, end)
	}
}

func TestIsLastChild(t *testing.T) {
	tree := nestedTree()
	tests := []struct {
		path model.Path
		want bool
	}{
		{model.Path{0}, false},
		{model.Path{1}, true},
		{model.Path{0, 0}, false},
		{model.Path{0, 1}, true},
		{model.Path{0, 1, 0}, true},
		{model.Path{5, 0}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isLastChild(tree, tt.path); got != tt.want {
			t.Errorf("isLastChild(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
