// Package checklist implements the tree state model behind the checklist:
// visibility flattening, copy-on-write mutation, checked-state propagation and
// export.
package checklist

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/checktree/pkg/model"
)

// Policy selects how a checked flag relates to the rest of the tree.
type Policy int

const (
	// PolicyIndependent flips only the target node. A node counts as checked
	// when it or any ancestor is checked.
	PolicyIndependent Policy = iota
	// PolicyCascade flips the target and forces every descendant to the same
	// value. A node counts as checked only by its own flag.
	PolicyCascade
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyIndependent:
		return "independent"
	case PolicyCascade:
		return "cascade"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps a configuration value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "independent", "a":
		return PolicyIndependent, nil
	case "cascade", "cascading", "b":
		return PolicyCascade, nil
	default:
		return PolicyIndependent, fmt.Errorf("unknown policy %q (want independent or cascade)", s)
	}
}

// Policies lists every supported policy, in display order.
func Policies() []Policy {
	return []Policy{PolicyIndependent, PolicyCascade}
}

// Propagation is the mutation/export pair a Policy selects.
type Propagation interface {
	// Toggle flips the checked state addressed by p and returns the new tree.
	Toggle(t model.Tree, p model.Path) model.Tree
	// Effective reports whether the node at p displays as checked.
	Effective(t model.Tree, p model.Path) bool
	// Export flattens the tree into the selected names, in pre-order.
	Export(t model.Tree) []string
}

// Propagation returns the implementation for the policy.
func (p Policy) Propagation() Propagation {
	if p == PolicyCascade {
		return cascade{}
	}
	return independent{}
}

type independent struct{}

func (independent) Toggle(t model.Tree, p model.Path) model.Tree {
	return replaceAt(t, p, func(n *model.Node) *model.Node {
		return n.WithChecked(!n.Checked)
	})
}

func (independent) Effective(t model.Tree, p model.Path) bool {
	nodes := []*model.Node(t)
	for _, idx := range p {
		if idx < 0 || idx >= len(nodes) {
			return false
		}
		n := nodes[idx]
		if n == nil {
			return false
		}
		if n.Checked {
			return true
		}
		nodes = n.Children
	}
	return false
}

func (independent) Export(t model.Tree) []string {
	return exportThreaded(t)
}

type cascade struct{}

func (cascade) Toggle(t model.Tree, p model.Path) model.Tree {
	return replaceAt(t, p, func(n *model.Node) *model.Node {
		return forceChecked(n, !n.Checked)
	})
}

func (cascade) Effective(t model.Tree, p model.Path) bool {
	n := t.At(p)
	return n != nil && n.Checked
}

func (cascade) Export(t model.Tree) []string {
	return exportOwnFlag(t)
}
