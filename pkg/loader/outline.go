package loader

import (
	"bufio"
	"io"
	"strings"

	"github.com/vanderheijden86/checktree/pkg/model"
)

// Outline syntax, one item per line:
//
//	# comments and blank lines are ignored
//	backend: Server-side services
//	  [x] auth
//	  [ ] billing
//	archive/
//
// Deeper indentation nests an item under the previous shallower one. A tab
// counts as four columns. "[x]" or "[ ]" sets the checked flag, text after the
// first ": " is the description, and a trailing "/" makes an empty parent.

const tabWidth = 4

type outlineEntry struct {
	indent      int
	childIndent int // indentation of the first child, -1 until one is seen
	node        *model.Node
}

func parseOutline(r io.Reader, source string) (model.Tree, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)

	var roots []*model.Node
	rootIndent := -1
	var stack []*outlineEntry
	lineNum := 0

	for sc.Scan() {
		lineNum++
		raw := strings.TrimRight(sc.Text(), " \t\r")
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		indent := indentWidth(raw)
		node, err := parseOutlineItem(text)
		if err != nil {
			return nil, &DefinitionError{Source: source, Line: lineNum, Msg: err.Error()}
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			if rootIndent == -1 {
				rootIndent = indent
			}
			if indent != rootIndent {
				return nil, &DefinitionError{Source: source, Line: lineNum, Msg: "inconsistent indentation for top-level item"}
			}
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			if parent.childIndent == -1 {
				parent.childIndent = indent
			}
			if indent != parent.childIndent {
				return nil, &DefinitionError{Source: source, Line: lineNum, Msg: "inconsistent indentation under " + parent.node.Name}
			}
			parent.node.Children = append(parent.node.Children, node)
		}
		stack = append(stack, &outlineEntry{indent: indent, childIndent: -1, node: node})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if roots == nil {
		return model.Tree{}, nil
	}
	return model.Tree(roots), nil
}

// parseOutlineItem reads marker, name, description and the parent suffix.
func parseOutlineItem(text string) (*model.Node, error) {
	n := &model.Node{}

	switch {
	case strings.HasPrefix(text, "[x]"), strings.HasPrefix(text, "[X]"):
		n.Checked = true
		text = strings.TrimSpace(text[3:])
	case strings.HasPrefix(text, "[ ]"):
		text = strings.TrimSpace(text[3:])
	}

	if name, desc, ok := strings.Cut(text, ": "); ok {
		text = strings.TrimSpace(name)
		n.Description = strings.TrimSpace(desc)
	}

	if strings.HasSuffix(text, "/") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "/"))
		n.Children = []*model.Node{}
	}
	n.Name = text
	if n.Name == "" {
		return nil, errEmptyName
	}
	return n, nil
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth
		default:
			return width
		}
	}
	return width
}

type outlineError string

func (e outlineError) Error() string { return string(e) }

const errEmptyName = outlineError("item name cannot be empty")
