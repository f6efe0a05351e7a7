package checklist

import (
	"github.com/vanderheijden86/checktree/pkg/model"
)

// Row is one visible line of the checklist.
type Row struct {
	Name        string
	Description string
	Level       int // depth from the root sequence, equal to len(Path)-1
	Path        model.Path
	IsParent    bool
	Expanded    bool
	HasChildren bool
}

// Key returns the row's path key.
func (r Row) Key() string {
	return r.Path.Key()
}

// Visible projects the tree and expansion set into the rows currently shown,
// in document pre-order. Children appear only under expanded parents.
func Visible(t model.Tree, expanded model.ExpandedSet) []Row {
	rows := make([]Row, 0, len(t))
	var walk func(nodes []*model.Node, prefix model.Path)
	walk = func(nodes []*model.Node, prefix model.Path) {
		for i, n := range nodes {
			if n == nil {
				continue
			}
			p := prefix.Child(i)
			isParent := n.IsParent()
			open := isParent && expanded.Has(p)
			rows = append(rows, Row{
				Name:        n.Name,
				Description: n.Description,
				Level:       p.Depth(),
				Path:        p,
				IsParent:    isParent,
				Expanded:    open,
				HasChildren: len(n.Children) > 0,
			})
			if open {
				walk(n.Children, p)
			}
		}
	}
	walk(t, nil)
	return rows
}

// IndexOf returns the index of the row addressed by p, or -1.
func IndexOf(rows []Row, p model.Path) int {
	key := p.Key()
	for i, r := range rows {
		if r.Key() == key {
			return i
		}
	}
	return -1
}
