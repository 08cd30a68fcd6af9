package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mcncl/jsonview/internal/clipboard"
	"github.com/mcncl/jsonview/internal/config"
	"github.com/mcncl/jsonview/internal/tree"
	"github.com/mcncl/jsonview/internal/viewer"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, input string) (Model, *viewer.Session, *clipboard.Memory) {
	t.Helper()
	log := zaptest.NewLogger(t)
	s := viewer.New(config.NewConfig(), log)
	s.SetInput(input)
	mem := &clipboard.Memory{}
	return New(s, tree.NewRenderer(false), mem, log), s, mem
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func TestModel_InitialView(t *testing.T) {
	m, _, _ := newModel(t, viewer.SampleJSON())

	assert.Nil(t, m.Init())
	assert.Equal(t, 0, m.Cursor())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "root", m.Selected().Label)

	view := m.View()
	assert.Contains(t, view, "▾ root: Object{1}")
	assert.Contains(t, view, "  ▾ user: Object{7}")
	assert.Contains(t, view, "    ▸ orders: Array(2)")
	assert.Contains(t, view, `      name: "John Doe"`)
	assert.NotContains(t, view, "theme")
}

func TestModel_Navigation(t *testing.T) {
	m, _, _ := newModel(t, viewer.SampleJSON())

	m, _ = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Cursor())
	assert.Equal(t, "id", m.Selected().Label)

	m, _ = send(t, m, runes("k"))
	assert.Equal(t, "user", m.Selected().Label)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the top")

	m, _ = send(t, m, runes("G"))
	assert.Equal(t, "orders", m.Selected().Label)
	m, _ = send(t, m, runes("j"))
	assert.Equal(t, "orders", m.Selected().Label, "cursor stops at the bottom")

	m, _ = send(t, m, runes("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_ToggleSelected(t *testing.T) {
	m, s, _ := newModel(t, viewer.SampleJSON())

	m, _ = send(t, m, runes("G"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, s.Tree().Find("user", "orders").Expanded)
	assert.Contains(t, m.View(), "▸ 0: Object{4}")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, s.Tree().Find("user", "orders").Expanded)
	assert.NotContains(t, m.View(), "0: Object{4}")
}

func TestModel_ToggleScalarIsIgnored(t *testing.T) {
	m, s, _ := newModel(t, `{"a": 1}`)
	before := m.View()

	m, _ = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "a", m.Selected().Label)
	assert.True(t, s.Tree().Expanded)
	assert.Equal(t, before, m.View())
}

func TestModel_CollapseClampsCursor(t *testing.T) {
	m, _, _ := newModel(t, `[1, 2, 3]`)
	m, _ = send(t, m, runes("G"))
	require.Equal(t, 3, m.Cursor())

	m, _ = send(t, m, runes("g"), runes("c"))
	assert.Equal(t, 0, m.Cursor())
	m, _ = send(t, m, runes("j"))
	assert.Equal(t, 0, m.Cursor(), "collapsed root has no visible children")
}

func TestModel_ExpandAll(t *testing.T) {
	m, _, _ := newModel(t, viewer.SampleJSON())

	m, _ = send(t, m, runes("e"))
	view := m.View()
	assert.Contains(t, view, `theme: "dark"`)
	assert.Contains(t, view, `"keyboard"`)
}

func TestModel_StatsPanel(t *testing.T) {
	m, _, _ := newModel(t, viewer.SampleJSON())
	assert.NotContains(t, m.View(), "Total Keys")

	m, _ = send(t, m, runes("s"))
	view := m.View()
	assert.Contains(t, view, "Total Keys")
	assert.Contains(t, view, "26")

	m, _ = send(t, m, runes("s"))
	assert.NotContains(t, m.View(), "Total Keys")
}

func TestModel_FormatPreview(t *testing.T) {
	m, s, _ := newModel(t, `{"a":1}`)

	m, _ = send(t, m, runes("f"))
	assert.Equal(t, "{\n  \"a\": 1\n}", s.Input())
	assert.Contains(t, m.View(), "\"a\": 1")
	assert.Contains(t, m.View(), "esc close preview")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, m.View(), "root: Object{1}")

	m, _ = send(t, m, runes("m"))
	assert.Equal(t, `{"a":1}`, s.Input())
}

func TestModel_Copy(t *testing.T) {
	m, _, mem := newModel(t, `[true]`)

	m, cmd := send(t, m, runes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, "[\n  true\n]", mem.Text())
	assert.Equal(t, "Copied!", m.Status())
	assert.Contains(t, m.View(), "Copied!")

	m, _ = send(t, m, clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.Status())
}

func TestModel_StaleStatusClearIsIgnored(t *testing.T) {
	m, _, _ := newModel(t, `[true]`)

	m, _ = send(t, m, runes("y"))
	stale := m.statusSeq
	m, _ = send(t, m, runes("y"))

	m, _ = send(t, m, clearStatusMsg{seq: stale})
	assert.Equal(t, "Copied!", m.Status())
}

func TestModel_InvalidInput(t *testing.T) {
	m, _, mem := newModel(t, `{"a": }`)

	view := m.View()
	assert.Contains(t, view, "Invalid JSON: ")
	assert.Nil(t, m.Selected())

	m, _ = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter}, runes("y"))
	assert.Zero(t, mem.Writes())
	assert.Equal(t, "Error: No JSON document is loaded.", m.Status())
}

func TestModel_EmptyInput(t *testing.T) {
	m, _, _ := newModel(t, "")
	assert.Contains(t, m.View(), "No document loaded.")
}

func TestModel_Scrolling(t *testing.T) {
	m, _, _ := newModel(t, "["+strings.Repeat("0,", 49)+"0]")

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	view := m.View()
	assert.Contains(t, view, "root: Array(50)")
	assert.NotContains(t, view, "  49: 0")

	m, _ = send(t, m, runes("G"))
	view = m.View()
	assert.Contains(t, view, "  49: 0")
	assert.NotContains(t, view, "root: Array(50)")
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newModel(t, `[]`)
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := send(t, m, key)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
	}
}
