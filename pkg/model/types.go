package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a single checklist item.
//
// A nil Children slice marks a leaf. A non-nil slice, even an empty one, marks a
// parent. Nodes are treated as immutable once built: every change produces new
// nodes along the affected path and shares the rest.
type Node struct {
	Name        string
	Description string // display only
	Checked     bool   // stored flag, see checklist.Policy for the effective value
	Children    []*Node
}

// Leaf creates a node without a children field.
func Leaf(name string, checked bool) *Node {
	return &Node{Name: name, Checked: checked}
}

// Parent creates a container node. The children slice is always non-nil so the
// node stays a parent even when it has no children.
func Parent(name string, checked bool, children ...*Node) *Node {
	kids := make([]*Node, 0, len(children))
	kids = append(kids, children...)
	return &Node{Name: name, Checked: checked, Children: kids}
}

// IsParent reports whether the node carries a children field.
func (n *Node) IsParent() bool {
	return n != nil && n.Children != nil
}

// WithChecked returns a shallow copy of n with Checked set to v.
// The children slice is shared with n.
func (n *Node) WithChecked(v bool) *Node {
	c := *n
	c.Checked = v
	return &c
}

// WithChildren returns a shallow copy of n with the given children.
func (n *Node) WithChildren(children []*Node) *Node {
	c := *n
	c.Children = children
	return &c
}

// Tree is the ordered sequence of root nodes.
type Tree []*Node

// At resolves a path to a node, or nil when the path does not exist.
func (t Tree) At(p Path) *Node {
	if len(p) == 0 {
		return nil
	}
	nodes := []*Node(t)
	var n *Node
	for _, idx := range p {
		if idx < 0 || idx >= len(nodes) {
			return nil
		}
		n = nodes[idx]
		if n == nil {
			return nil
		}
		nodes = n.Children
	}
	return n
}

// Walk visits every node in pre-order. Returning false from fn skips the
// node's children.
func (t Tree) Walk(fn func(n *Node, p Path) bool) {
	var walk func(nodes []*Node, prefix Path)
	walk = func(nodes []*Node, prefix Path) {
		for i, n := range nodes {
			if n == nil {
				continue
			}
			p := prefix.Child(i)
			if fn(n, p) && n.Children != nil {
				walk(n.Children, p)
			}
		}
	}
	walk(t, nil)
}

// Count returns the total number of nodes in the tree.
func (t Tree) Count() int {
	count := 0
	t.Walk(func(*Node, Path) bool {
		count++
		return true
	})
	return count
}

// Validate checks that every node has a name and that sibling names are unique.
func (t Tree) Validate() error {
	var check func(nodes []*Node, prefix Path) error
	check = func(nodes []*Node, prefix Path) error {
		seen := make(map[string]int, len(nodes))
		for i, n := range nodes {
			p := prefix.Child(i)
			if n == nil {
				return fmt.Errorf("node %s is nil", p)
			}
			if strings.TrimSpace(n.Name) == "" {
				return fmt.Errorf("node %s: name cannot be empty", p)
			}
			if prev, dup := seen[n.Name]; dup {
				return fmt.Errorf("node %s: duplicate sibling name %q (first at %s)", p, n.Name, prefix.Child(prev))
			}
			seen[n.Name] = i
			if err := check(n.Children, p); err != nil {
				return err
			}
		}
		return nil
	}
	return check(t, nil)
}

// Path addresses a node by the child index taken at each level, starting at
// the root sequence.
type Path []int

// pathSeparator cannot appear in a rendered non-negative integer, which keeps
// Key injective.
const pathSeparator = "-"

// Key returns the canonical string form of the path, e.g. "0-2-1".
func (p Path) Key() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, pathSeparator)
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return "[" + p.Key() + "]"
}

// Child returns a new path one level deeper. The receiver's backing array is
// never shared with the result.
func (p Path) Child(i int) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = i
	return c
}

// Parent returns the path of the enclosing node, or nil for a root.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	c := make(Path, len(p)-1)
	copy(c, p)
	return c
}

// Depth is the zero-based nesting level addressed by the path.
func (p Path) Depth() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// HasPrefix reports whether p lies inside the subtree addressed by prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// ExpandedSet records which parent nodes are expanded, keyed by Path.Key.
// Values are replaced rather than mutated: Toggle, With and Without return a
// new set.
type ExpandedSet map[string]struct{}

// NewExpandedSet builds a set containing the given paths.
func NewExpandedSet(paths ...Path) ExpandedSet {
	s := make(ExpandedSet, len(paths))
	for _, p := range paths {
		s[p.Key()] = struct{}{}
	}
	return s
}

// Has reports whether the path is expanded.
func (s ExpandedSet) Has(p Path) bool {
	_, ok := s[p.Key()]
	return ok
}

// Toggle returns a copy of the set with the path's membership flipped.
func (s ExpandedSet) Toggle(p Path) ExpandedSet {
	if s.Has(p) {
		return s.Without(p)
	}
	return s.With(p)
}

// With returns a copy of the set that includes p.
func (s ExpandedSet) With(p Path) ExpandedSet {
	c := s.clone()
	c[p.Key()] = struct{}{}
	return c
}

// Without returns a copy of the set that excludes p.
func (s ExpandedSet) Without(p Path) ExpandedSet {
	c := s.clone()
	delete(c, p.Key())
	return c
}

// Len returns the number of recorded keys, including inert ones.
func (s ExpandedSet) Len() int {
	return len(s)
}

func (s ExpandedSet) clone() ExpandedSet {
	c := make(ExpandedSet, len(s)+1)
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}
