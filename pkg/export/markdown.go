package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/checktree/pkg/checklist"
	"github.com/vanderheijden86/checktree/pkg/model"
)

// GenerateMarkdown renders the whole tree as a nested task list. Each item
// shows its effective checked state under the policy, so the document matches
// what the checklist displayed at exit.
func GenerateMarkdown(tree model.Tree, policy checklist.Policy, title string) string {
	var sb strings.Builder
	prop := policy.Propagation()

	if title != "" {
		sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	}

	tree.Walk(func(n *model.Node, p model.Path) bool {
		mark := " "
		if prop.Effective(tree, p) {
			mark = "x"
		}
		indent := strings.Repeat("  ", p.Depth())
		sb.WriteString(fmt.Sprintf("%s- [%s] %s", indent, mark, escapeMarkdown(n.Name)))
		if n.Description != "" {
			sb.WriteString(" - " + escapeMarkdown(n.Description))
		}
		sb.WriteString("\n")
		return true
	})

	sb.WriteString(fmt.Sprintf("\n%d of %d selected\n", checklist.CountEffective(tree, policy), tree.Count()))
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// RenderMarkdown renders markdown for a terminal of the given width.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
