package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonview/internal/models"
	"github.com/mcncl/jsonview/internal/parser"
)

func mustParse(t *testing.T, input string) *models.Value {
	t.Helper()
	doc, err := parser.ParseString(input)
	require.NoError(t, err)
	require.False(t, doc.Empty())
	return doc.Root
}

func expandStates(nodes []*Node) map[string]bool {
	out := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		key := RootLabel
		for _, p := range n.Path() {
			key += "/" + p
		}
		out[key] = n.Expanded
	}
	return out
}

func TestNew_Root(t *testing.T) {
	root := New(mustParse(t, `{"a": 1}`))

	assert.Equal(t, RootLabel, root.Label)
	assert.Equal(t, 0, root.Depth)
	assert.True(t, root.Expanded)
	assert.Nil(t, root.Parent())
	assert.Empty(t, root.Path())
	assert.Equal(t, models.KindObject, root.Kind())
}

func TestNode_DefaultExpandDepth(t *testing.T) {
	root := New(mustParse(t, `{"x":{"y":{"z":1}}}`))

	x := root.Find("x")
	require.NotNil(t, x)
	y := root.Find("x", "y")
	require.NotNil(t, y)

	assert.True(t, root.Expanded, "root opens by default")
	assert.True(t, x.Expanded, "direct child opens by default")
	assert.False(t, y.Expanded, "grandchild starts collapsed")
	assert.Equal(t, 1, x.Depth)
	assert.Equal(t, 2, y.Depth)

	visible := root.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, []string{"root", "x", "y"}, []string{visible[0].Label, visible[1].Label, visible[2].Label})
}

func TestNode_CustomExpandDepth(t *testing.T) {
	root := NewWithOptions(mustParse(t, `{"x":{"y":{"z":1}}}`), 0)
	assert.False(t, root.Expanded)
	assert.Len(t, root.Visible(), 1)

	root = NewWithOptions(mustParse(t, `{"x":{"y":{"z":1}}}`), 10)
	assert.Len(t, root.Visible(), 4)
}

func TestNode_ChildrenOrderAndLabels(t *testing.T) {
	root := New(mustParse(t, `{"b": [10, 20, 30], "a": {"k": true}}`))

	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "b", children[0].Label)
	assert.Equal(t, "a", children[1].Label)

	items := children[0].Children()
	require.Len(t, items, 3)
	for i, want := range []string{"0", "1", "2"} {
		assert.Equal(t, want, items[i].Label)
		assert.Equal(t, 2, items[i].Depth)
		assert.Same(t, children[0], items[i].Parent())
	}
	assert.Equal(t, []string{"b", "2"}, items[2].Path())
}

func TestNode_ChildrenShareValues(t *testing.T) {
	v := mustParse(t, `{"a": {"b": 1}}`)
	root := New(v)

	a, _ := v.Get("a")
	assert.Same(t, v, root.Value)
	assert.Same(t, a, root.Find("a").Value)
}

func TestNode_ScalarIgnoresExpanded(t *testing.T) {
	root := New(mustParse(t, `{"s": "str"}`))
	s := root.Find("s")
	require.NotNil(t, s)

	assert.True(t, s.Expanded, "depth 1 default applies to the flag")
	assert.False(t, s.Open(), "but scalars never open")
	assert.Nil(t, s.Children())

	assert.False(t, s.Toggle())
	assert.True(t, s.Expanded, "toggle leaves scalars untouched")
}

func TestNode_ToggleIsLocal(t *testing.T) {
	root := New(mustParse(t, `{"a": {"x": [1]}, "b": {"y": [2]}, "c": [3, [4]]}`))
	root.ExpandAll()
	nodes := root.Visible()
	before := expandStates(nodes)

	a := root.Find("a")
	require.NotNil(t, a)
	assert.False(t, a.Toggle())

	after := expandStates(nodes)
	for key, state := range before {
		if key == "root/a" {
			assert.NotEqual(t, state, after[key])
			continue
		}
		assert.Equal(t, state, after[key], "state of %s changed", key)
	}
}

func TestNode_ToggleTwiceRestoresSubtree(t *testing.T) {
	root := New(mustParse(t, `{"a": {"b": {"c": [1, 2]}, "d": null}}`))
	r := NewRenderer(false)

	b := root.Find("a", "b")
	require.NotNil(t, b)
	b.Toggle()
	original := r.RenderString(root)

	a := root.Find("a")
	a.Toggle()
	assert.NotEqual(t, original, r.RenderString(root))
	a.Toggle()
	assert.Equal(t, original, r.RenderString(root))
}

func TestNode_ChildrenAreStable(t *testing.T) {
	root := New(mustParse(t, `[{"a": 1}]`))
	first := root.Children()
	second := root.Children()
	require.Len(t, first, 1)
	assert.Same(t, first[0], second[0])
}

func TestNode_EmptyContainers(t *testing.T) {
	root := New(mustParse(t, `{"arr": [], "obj": {}}`))

	arr := root.Find("arr")
	require.NotNil(t, arr)
	assert.True(t, arr.IsContainer())
	assert.Empty(t, arr.Children())
	assert.Equal(t, "Array(0)", arr.Summary())
	assert.Equal(t, "Object{0}", root.Find("obj").Summary())
}

func TestNode_Find(t *testing.T) {
	root := New(mustParse(t, `{"users": [{"name": "ann"}]}`))

	n := root.Find("users", "0", "name")
	require.NotNil(t, n)
	assert.Equal(t, `"ann"`, n.Summary())
	assert.Same(t, root, root.Find())
	assert.Nil(t, root.Find("users", "5"))
	assert.Nil(t, root.Find("missing"))
}

func TestNode_ExpandAllCollapseAll(t *testing.T) {
	root := New(mustParse(t, `{"a": {"b": {"c": {"d": 1}}}}`))
	assert.Len(t, root.Visible(), 3)

	root.ExpandAll()
	assert.Len(t, root.Visible(), 5)

	root.CollapseAll()
	assert.Len(t, root.Visible(), 1)

	root.Toggle()
	assert.Len(t, root.Visible(), 2, "children keep their collapsed state")
}

func TestNode_ScalarRoot(t *testing.T) {
	root := New(models.String("hi"))
	assert.False(t, root.IsContainer())
	assert.Len(t, root.Visible(), 1)
	assert.Equal(t, `"hi"`, root.Summary())
}
