package checklist

import (
	"github.com/vanderheijden86/checktree/pkg/debug"
	"github.com/vanderheijden86/checktree/pkg/model"
)

// Session holds the state of one interactive run: the current tree revision,
// the expansion set, the derived visible rows and the selected row.
//
// Session is a value type. Every method with a pointer receiver replaces the
// fields wholesale, so a copy taken before a call is never affected by it.
type Session struct {
	tree     model.Tree
	expanded model.ExpandedSet
	policy   Policy
	rows     []Row
	selected int
}

// NewSession starts a session over tree with the given initial expansion.
func NewSession(tree model.Tree, expanded model.ExpandedSet, policy Policy) Session {
	if expanded == nil {
		expanded = model.NewExpandedSet()
	}
	s := Session{
		tree:     tree,
		expanded: expanded,
		policy:   policy,
	}
	s.rebuildRows(nil)
	return s
}

// Tree returns the current tree revision.
func (s Session) Tree() model.Tree { return s.tree }

// Expanded returns the current expansion set.
func (s Session) Expanded() model.ExpandedSet { return s.expanded }

// Policy returns the active propagation policy.
func (s Session) Policy() Policy { return s.policy }

// Rows returns the visible rows.
func (s Session) Rows() []Row { return s.rows }

// Selected returns the index of the highlighted row.
func (s Session) Selected() int { return s.selected }

// SelectedRow returns the highlighted row, or false when there are no rows.
func (s Session) SelectedRow() (Row, bool) {
	if s.selected >= 0 && s.selected < len(s.rows) {
		return s.rows[s.selected], true
	}
	return Row{}, false
}

// IsChecked reports the effective checked state of the node at p.
func (s Session) IsChecked(p model.Path) bool {
	return s.policy.Propagation().Effective(s.tree, p)
}

// Export flattens the current tree under the active policy.
func (s Session) Export() []string {
	return Export(s.tree, s.policy)
}

// CheckedCount returns how many nodes currently export.
func (s Session) CheckedCount() int {
	return len(s.Export())
}

// MoveUp moves the selection one row up, stopping at the first row.
func (s *Session) MoveUp() {
	if s.selected > 0 {
		s.selected--
	}
}

// MoveDown moves the selection one row down, stopping at the last row.
func (s *Session) MoveDown() {
	if s.selected < len(s.rows)-1 {
		s.selected++
	}
}

// MoveBy moves the selection by delta rows, clamped to the visible range.
func (s *Session) MoveBy(delta int) {
	s.selected += delta
	s.clamp()
}

// JumpToTop selects the first row.
func (s *Session) JumpToTop() {
	s.selected = 0
}

// JumpToBottom selects the last row.
func (s *Session) JumpToBottom() {
	if len(s.rows) > 0 {
		s.selected = len(s.rows) - 1
	}
}

// JumpToParent selects the parent of the highlighted row. Roots stay put.
func (s *Session) JumpToParent() {
	row, ok := s.SelectedRow()
	if !ok || len(row.Path) <= 1 {
		return
	}
	if i := IndexOf(s.rows, row.Path.Parent()); i >= 0 {
		s.selected = i
	}
}

// Expand opens the highlighted node if it is a collapsed parent.
func (s *Session) Expand() {
	row, ok := s.SelectedRow()
	if !ok || !row.IsParent || row.Expanded {
		return
	}
	s.setExpanded(ToggleExpanded(s.expanded, row.Path))
}

// Collapse closes the highlighted node if it is an expanded parent.
func (s *Session) Collapse() {
	row, ok := s.SelectedRow()
	if !ok || !row.IsParent || !row.Expanded {
		return
	}
	s.setExpanded(ToggleExpanded(s.expanded, row.Path))
}

// ExpandAll opens every parent in the tree.
func (s *Session) ExpandAll() {
	s.setExpanded(ExpandAll(s.tree))
}

// CollapseAll closes every parent in the tree.
func (s *Session) CollapseAll() {
	s.setExpanded(model.NewExpandedSet())
}

// ToggleChecked flips the highlighted node under the active policy.
func (s *Session) ToggleChecked() {
	row, ok := s.SelectedRow()
	if !ok {
		return
	}
	s.ToggleCheckedAt(row.Path)
}

// ToggleCheckedAt flips the node at p under the active policy.
func (s *Session) ToggleCheckedAt(p model.Path) {
	debug.Log("toggle checked %s (%s)", p, s.policy)
	var current model.Path
	if row, ok := s.SelectedRow(); ok {
		current = row.Path
	}
	s.tree = s.policy.Propagation().Toggle(s.tree, p)
	s.rebuildRows(current)
}

func (s *Session) setExpanded(e model.ExpandedSet) {
	var current model.Path
	if row, ok := s.SelectedRow(); ok {
		current = row.Path
	}
	s.expanded = e
	s.rebuildRows(current)
	debug.Log("%d parents expanded, %d rows visible", e.Len(), len(s.rows))
}

// rebuildRows recomputes the visible rows and keeps the selection on the same
// node. If that node is now hidden, its nearest visible ancestor is selected.
func (s *Session) rebuildRows(keep model.Path) {
	s.rows = Visible(s.tree, s.expanded)
	for p := keep; len(p) > 0; p = p.Parent() {
		if i := IndexOf(s.rows, p); i >= 0 {
			s.selected = i
			break
		}
	}
	s.clamp()
}

// clamp restores 0 <= selected < len(rows), or 0 for an empty list.
func (s *Session) clamp() {
	if s.selected >= len(s.rows) {
		debug.LogIf(len(s.rows) > 0, "selected %d past %d rows, clamping", s.selected, len(s.rows))
		s.selected = len(s.rows) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}
