package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/checktree/pkg/checklist"
	"github.com/vanderheijden86/checktree/pkg/debug"
	"github.com/vanderheijden86/checktree/pkg/model"
)

// chromeHeight is the number of lines used by the header and footer.
const chromeHeight = 2

// Options configures a checklist model.
type Options struct {
	Title            string
	Policy           checklist.Policy
	ExpandDepth      int // Parents shallower than this start expanded
	ShowDescriptions bool
	Theme            Theme
}

// Model is the bubbletea model for the interactive checklist.
type Model struct {
	session checklist.Session
	tree    TreeView
	keys    KeyMap
	help    help.Model
	theme   Theme
	title   string

	// Help overlay
	showHelp     bool
	helpViewport viewport.Model
	helpStyle    string

	// State
	ready    bool
	quitting bool
	width    int
	height   int
	exported []string
}

// NewModel creates a checklist model over tree.
func NewModel(tree model.Tree, opts Options) Model {
	if opts.Theme.Renderer == nil {
		opts.Theme = NewTheme("auto")
	}
	title := opts.Title
	if title == "" {
		title = "checktree"
	}

	expanded := checklist.ExpandToDepth(tree, opts.ExpandDepth)
	h := help.New()

	m := Model{
		session:   checklist.NewSession(tree, expanded, opts.Policy),
		tree:      NewTreeView(opts.Theme, opts.ShowDescriptions),
		keys:      DefaultKeyMap(),
		help:      h,
		theme:     opts.Theme,
		title:     title,
		helpStyle: glamourStyle(opts.Theme),
	}
	debug.Log("model ready: %d nodes, policy %s, %d rows", tree.Count(), opts.Policy, len(m.session.Rows()))
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.tree.SetSize(msg.Width, msg.Height-chromeHeight)
		m.tree.EnsureVisible(m.session.Selected(), len(m.session.Rows()))
		if m.showHelp {
			m.refreshHelp()
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			return m.updateHelp(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.finish()
	case key.Matches(msg, m.keys.Up):
		m.session.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.session.MoveDown()
	case key.Matches(msg, m.keys.Expand):
		m.session.Expand()
	case key.Matches(msg, m.keys.Collapse):
		m.session.Collapse()
	case key.Matches(msg, m.keys.Toggle):
		m.session.ToggleChecked()
	case key.Matches(msg, m.keys.Top):
		m.session.JumpToTop()
	case key.Matches(msg, m.keys.Bottom):
		m.session.JumpToBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.session.MoveBy(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.session.MoveBy(m.pageSize())
	case key.Matches(msg, m.keys.Parent):
		m.session.JumpToParent()
	case key.Matches(msg, m.keys.ExpandAll):
		m.session.ExpandAll()
	case key.Matches(msg, m.keys.CollapseAll):
		m.session.CollapseAll()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.refreshHelp()
		return m, nil
	default:
		return m, nil
	}
	m.tree.EnsureVisible(m.session.Selected(), len(m.session.Rows()))
	return m, nil
}

// updateHelp handles keys while the help overlay is open. Esc closes the
// overlay instead of finishing.
func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc":
		m.showHelp = false
		return m, nil
	case "q", "ctrl+c":
		return m.finish()
	}
	var cmd tea.Cmd
	m.helpViewport, cmd = m.helpViewport.Update(msg)
	return m, cmd
}

// finish exports the final selection and stops the program.
func (m Model) finish() (tea.Model, tea.Cmd) {
	m.exported = m.session.Export()
	m.quitting = true
	debug.Log("finished with %d selected", len(m.exported))
	return m, tea.Quit
}

// pageSize is half the tree viewport, at least one row.
func (m Model) pageSize() int {
	if n := m.tree.Height() / 2; n > 0 {
		return n
	}
	return 1
}

func (m *Model) refreshHelp() {
	w, h := helpModalSize(m.width, m.height)
	if m.width == 0 {
		w, h = helpModalWidth, 20
	}
	m.helpViewport = viewport.New(w, h)
	m.helpViewport.SetContent(renderHelpMarkdown(m.session.Policy(), m.helpStyle, w))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	if m.showHelp {
		modal := RenderHelpModal(m.helpViewport.View(), m.theme, m.helpViewport.Width, m.helpViewport.ScrollPercent())
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	body := lipgloss.NewStyle().Height(m.tree.Height()).Render(m.tree.View(m.session))
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render(m.title)
	info := m.theme.MutedText.Render(fmt.Sprintf(" %s │ %d/%d selected",
		m.session.Policy(), m.session.CheckedCount(), m.session.Tree().Count()))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, info)
}

func (m Model) renderFooter() string {
	return m.help.View(m.keys)
}

// Session returns the current checklist session.
func (m Model) Session() checklist.Session {
	return m.session
}

// Exported returns the names selected at exit, or nil while still running.
func (m Model) Exported() []string {
	return m.exported
}

// Quitting reports whether the user finished the checklist.
func (m Model) Quitting() bool {
	return m.quitting
}
