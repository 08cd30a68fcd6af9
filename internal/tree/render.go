package tree

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcncl/jsonview/internal/models"
)

// Affordances drawn in front of container labels.
const (
	ExpandedMarker  = "▾"
	CollapsedMarker = "▸"
)

// Line is one row of the rendered tree.
type Line struct {
	Node      *Node
	Depth     int
	Label     string
	Summary   string
	Kind      models.Kind
	Container bool
	Expanded  bool
}

// Lines walks the tree from root and returns one Line per shown node.
// Children are visited only below open containers.
func Lines(root *Node) []Line {
	visible := root.Visible()
	lines := make([]Line, len(visible))
	for i, n := range visible {
		lines[i] = Line{
			Node:      n,
			Depth:     n.Depth,
			Label:     n.Label,
			Summary:   n.Summary(),
			Kind:      n.Kind(),
			Container: n.IsContainer(),
			Expanded:  n.Open(),
		}
	}
	return lines
}

// Palette maps kinds to terminal colours.
type Palette struct {
	Colors   map[models.Kind]lipgloss.Color
	Fallback lipgloss.Color
}

// DefaultPalette returns the kind colours of the viewer: strings green,
// numbers blue, booleans purple, null gray, objects red, arrays orange.
func DefaultPalette() Palette {
	return Palette{
		Colors: map[models.Kind]lipgloss.Color{
			models.KindString:  lipgloss.Color("#16a34a"),
			models.KindNumber:  lipgloss.Color("#2563eb"),
			models.KindBoolean: lipgloss.Color("#9333ea"),
			models.KindNull:    lipgloss.Color("#6b7280"),
			models.KindObject:  lipgloss.Color("#dc2626"),
			models.KindArray:   lipgloss.Color("#ea580c"),
		},
		Fallback: lipgloss.Color("#4b5563"),
	}
}

// PaletteFromNames builds a palette from kind names to colour strings,
// starting from the defaults. Unknown kind names are returned.
func PaletteFromNames(colors map[string]string, fallback string) (Palette, []string) {
	p := DefaultPalette()
	var unknown []string
	for name, c := range colors {
		kind, ok := models.ParseKind(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		p.Colors[kind] = lipgloss.Color(c)
	}
	if fallback != "" {
		p.Fallback = lipgloss.Color(fallback)
	}
	return p, unknown
}

// Color returns the colour for kind, or the fallback.
func (p Palette) Color(kind models.Kind) lipgloss.Color {
	if c, ok := p.Colors[kind]; ok {
		return c
	}
	return p.Fallback
}

// Renderer writes a tree as indented text.
type Renderer struct {
	// Indent is the number of spaces per depth level.
	Indent  int
	Palette Palette
	// Color enables ANSI styling of summaries and labels.
	Color bool
}

// NewRenderer returns a renderer with two-space indentation and the
// default palette.
func NewRenderer(color bool) *Renderer {
	return &Renderer{
		Indent:  2,
		Palette: DefaultPalette(),
		Color:   color,
	}
}

// FormatLine renders a single line without a trailing newline.
func (r *Renderer) FormatLine(l Line) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", l.Depth*r.Indent))

	switch {
	case !l.Container:
		b.WriteString("  ")
	case l.Expanded:
		b.WriteString(ExpandedMarker + " ")
	default:
		b.WriteString(CollapsedMarker + " ")
	}

	label := l.Label + ":"
	summary := l.Summary
	if r.Color {
		label = lipgloss.NewStyle().Bold(true).Render(label)
		summary = lipgloss.NewStyle().Foreground(r.Palette.Color(l.Kind)).Render(summary)
	}
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(summary)
	return b.String()
}

// Render writes every visible line of root to w.
func (r *Renderer) Render(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	for _, l := range Lines(root) {
		if _, err := bw.WriteString(r.FormatLine(l)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// RenderString renders root into a string.
func (r *Renderer) RenderString(root *Node) string {
	var b strings.Builder
	_ = r.Render(&b, root)
	return b.String()
}
