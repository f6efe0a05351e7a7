package checklist

import (
	"github.com/vanderheijden86/checktree/pkg/model"
)

// Export flattens the tree under the given policy. The result is never nil so
// it always encodes as a JSON array.
func Export(t model.Tree, p Policy) []string {
	return p.Propagation().Export(t)
}

// exportThreaded includes a node when it or any ancestor is checked. The
// effective flag is carried down the walk instead of re-reading ancestors.
func exportThreaded(t model.Tree) []string {
	names := []string{}
	var walk func(nodes []*model.Node, parentEffective bool)
	walk = func(nodes []*model.Node, parentEffective bool) {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			effective := parentEffective || n.Checked
			if effective {
				names = append(names, n.Name)
			}
			walk(n.Children, effective)
		}
	}
	walk(t, false)
	return names
}

// exportOwnFlag includes exactly the nodes whose stored flag is set.
func exportOwnFlag(t model.Tree) []string {
	names := []string{}
	t.Walk(func(n *model.Node, _ model.Path) bool {
		if n.Checked {
			names = append(names, n.Name)
		}
		return true
	})
	return names
}

// CountEffective returns how many nodes display as checked under the policy.
func CountEffective(t model.Tree, p Policy) int {
	return len(Export(t, p))
}
