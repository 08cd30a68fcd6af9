// Package tui is the interactive terminal front end of the viewer.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mcncl/jsonview/internal/clipboard"
	"github.com/mcncl/jsonview/internal/errors"
	"github.com/mcncl/jsonview/internal/stats"
	"github.com/mcncl/jsonview/internal/tree"
	"github.com/mcncl/jsonview/internal/viewer"
)

// StatusTimeout is how long a status message such as "Copied!" stays up.
const StatusTimeout = 2 * time.Second

// chrome is the number of rows taken by the title and the footer.
const chrome = 4

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f9fafb")).
			Background(lipgloss.Color("#1f2937")).
			Padding(0, 1).
			Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("#374151"))
)

const helpText = "↑↓/jk move  enter/space toggle  e/c expand/collapse all  s stats  f/m format/minify  y copy  q quit"

// clearStatusMsg removes the status line unless a newer one replaced it.
type clearStatusMsg struct {
	seq int
}

// Model is the bubbletea model of the viewer.
type Model struct {
	session  *viewer.Session
	renderer *tree.Renderer
	clip     clipboard.Writer
	log      *zap.Logger

	lines  []tree.Line
	cursor int
	offset int
	width  int
	height int

	showStats bool
	preview   string
	status    string
	statusSeq int
}

// New creates a model over an already loaded session.
func New(session *viewer.Session, renderer *tree.Renderer, clip clipboard.Writer, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		session:  session,
		renderer: renderer,
		clip:     clip,
		log:      log,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustScroll()
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.preview != "" {
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "f", "m":
			m.preview = ""
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		m.move(-1)

	case "down", "j":
		m.move(1)

	case "g", "home":
		m.cursor = 0
		m.adjustScroll()

	case "G", "end":
		if len(m.lines) > 0 {
			m.cursor = len(m.lines) - 1
			m.adjustScroll()
		}

	case "enter", " ":
		if n := m.current(); n != nil && n.IsContainer() {
			n.Toggle()
			m.refresh()
		}

	case "e":
		if n := m.current(); n != nil {
			n.ExpandAll()
			m.refresh()
		}

	case "c":
		if n := m.current(); n != nil {
			n.CollapseAll()
			m.refresh()
		}

	case "s":
		m.showStats = !m.showStats

	case "f":
		return m.transform("formatted", m.session.Format)

	case "m":
		return m.transform("minified", m.session.Minify)

	case "y":
		return m.copy()
	}
	return m, nil
}

func (m Model) transform(name string, apply func() error) (tea.Model, tea.Cmd) {
	if err := apply(); err != nil {
		return m.setStatus(errors.UserFriendlyError(err))
	}
	m.log.Debug("input rewritten", zap.String("as", name))
	m.preview = m.session.Input()
	return m, nil
}

func (m Model) copy() (tea.Model, tea.Cmd) {
	if m.clip == nil {
		return m.setStatus("Clipboard unavailable")
	}
	if err := m.session.Copy(m.clip); err != nil {
		return m.setStatus(errors.UserFriendlyError(err))
	}
	return m.setStatus("Copied!")
}

func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	seq := m.statusSeq
	return m, tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// refresh re-reads the visible lines after the tree changed.
func (m *Model) refresh() {
	root := m.session.Tree()
	if root == nil {
		m.lines = nil
		m.cursor = 0
		m.offset = 0
		return
	}
	m.lines = tree.Lines(root)
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

func (m *Model) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.lines) {
		return
	}
	m.cursor = next
	m.adjustScroll()
}

func (m *Model) current() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return nil
	}
	return m.lines[m.cursor].Node
}

func (m *Model) contentHeight() int {
	if m.height == 0 {
		return len(m.lines)
	}
	h := m.height - chrome
	if m.showStats {
		h -= len(stats.Stats{}.Fields()) + 4
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) adjustScroll() {
	h := m.contentHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Cursor returns the index of the selected line.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the node under the cursor, or nil without a document.
func (m Model) Selected() *tree.Node {
	return m.current()
}

// Status returns the current status message.
func (m Model) Status() string {
	return m.status
}

// View implements tea.Model.
func (m Model) View() string {
	var sections []string
	sections = append(sections, titleStyle.Render("JSON Tree Viewer"))

	switch m.session.State() {
	case viewer.StateInvalid:
		sections = append(sections, errorStyle.Render(m.session.ErrorMessage()))
	case viewer.StateEmpty:
		sections = append(sections, helpStyle.Render("No document loaded."))
	default:
		if m.preview != "" {
			sections = append(sections, m.preview)
			sections = append(sections, helpStyle.Render("esc close preview  q quit"))
			return strings.Join(sections, "\n")
		}
		sections = append(sections, m.treeView())
		if m.showStats {
			sections = append(sections, m.statsView())
		}
	}

	footer := helpStyle.Render(helpText)
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + footer
	}
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (m Model) treeView() string {
	end := m.offset + m.contentHeight()
	if end > len(m.lines) {
		end = len(m.lines)
	}
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		row := m.renderer.FormatLine(m.lines[i])
		if i == m.cursor {
			row = cursorStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func (m Model) statsView() string {
	result, ok := m.session.Stats()
	if !ok {
		return ""
	}
	var b strings.Builder
	if err := stats.WriteTable(&b, result); err != nil {
		m.log.Warn("render statistics", zap.Error(err))
		return result.String()
	}
	return strings.TrimRight(b.String(), "\n")
}

// Run starts the program in the alternate screen and blocks until the
// user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	if _, err := p.Run(); err != nil {
		return errors.NewRenderError(fmt.Sprintf("interactive view failed: %v", err), err)
	}
	return nil
}
