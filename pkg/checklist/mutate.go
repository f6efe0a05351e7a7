package checklist

import (
	"github.com/vanderheijden86/checktree/pkg/model"
)

// ToggleExpanded flips the expansion state of the node at p. Leaf paths are
// accepted and simply record a key that nothing reads.
func ToggleExpanded(s model.ExpandedSet, p model.Path) model.ExpandedSet {
	return s.Toggle(p)
}

// ExpandAll returns a set with every parent of the tree expanded.
func ExpandAll(t model.Tree) model.ExpandedSet {
	s := model.NewExpandedSet()
	t.Walk(func(n *model.Node, p model.Path) bool {
		if n.IsParent() {
			s[p.Key()] = struct{}{}
		}
		return true
	})
	return s
}

// ExpandToDepth returns a set with every parent shallower than depth expanded.
// A depth of zero or less expands nothing.
func ExpandToDepth(t model.Tree, depth int) model.ExpandedSet {
	s := model.NewExpandedSet()
	if depth <= 0 {
		return s
	}
	t.Walk(func(n *model.Node, p model.Path) bool {
		if p.Depth() >= depth {
			return false
		}
		if n.IsParent() {
			s[p.Key()] = struct{}{}
		}
		return true
	})
	return s
}

// replaceAt rebuilds the spine from the root down to p, applying fn to the
// target. Every node off the spine is shared with the input tree. An invalid
// path returns the tree unchanged.
func replaceAt(t model.Tree, p model.Path, fn func(*model.Node) *model.Node) model.Tree {
	if len(p) == 0 {
		return t
	}
	out, ok := replaceIn(t, p, fn)
	if !ok {
		return t
	}
	return model.Tree(out)
}

func replaceIn(nodes []*model.Node, p model.Path, fn func(*model.Node) *model.Node) ([]*model.Node, bool) {
	idx := p[0]
	if idx < 0 || idx >= len(nodes) || nodes[idx] == nil {
		return nil, false
	}

	var replacement *model.Node
	if len(p) == 1 {
		replacement = fn(nodes[idx])
	} else {
		children, ok := replaceIn(nodes[idx].Children, p[1:], fn)
		if !ok {
			return nil, false
		}
		replacement = nodes[idx].WithChildren(children)
	}

	out := make([]*model.Node, len(nodes))
	copy(out, nodes)
	out[idx] = replacement
	return out, true
}

// forceChecked returns a copy of the subtree rooted at n with every flag set
// to v. Leaves stay leaves and empty parents stay empty parents.
func forceChecked(n *model.Node, v bool) *model.Node {
	c := n.WithChecked(v)
	if n.Children == nil {
		return c
	}
	kids := make([]*model.Node, len(n.Children))
	for i, child := range n.Children {
		kids[i] = forceChecked(child, v)
	}
	c.Children = kids
	return c
}
