package uitree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/dpiwatch/internal/platform"
)

func TestFontSizeInheritance(t *testing.T) {
	root := New("form", platform.Rect{Right: 400, Bottom: 300})
	panel := root.Add(New("panel", platform.Rect{Right: 200, Bottom: 100}))
	label := panel.Add(New("label", platform.Rect{Right: 50, Bottom: 20}))

	assert.Equal(t, DefaultFontSize, label.FontSize())

	root.SetFontSize(11)
	assert.Equal(t, 11.0, label.FontSize())
	assert.True(t, label.InheritsFont())

	panel.SetFontSize(14)
	assert.Equal(t, 14.0, label.FontSize())
	assert.Equal(t, 11.0, root.FontSize())

	panel.SetFontSize(0)
	assert.Equal(t, 11.0, label.FontSize())
	assert.Same(t, panel, label.Parent())
}

func TestWalkAndFind(t *testing.T) {
	root := New("form", platform.Rect{})
	a := root.Add(New("a", platform.Rect{}))
	a.Add(New("a1", platform.Rect{}))
	root.Add(New("b", platform.Rect{}))

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	assert.Equal(t, []string{"form", "a", "a1", "b"}, names)

	require.NotNil(t, root.Find("a1"))
	assert.Nil(t, root.Find("missing"))
	assert.Len(t, root.Children(), 2)
}

func TestToolkitScaleTree(t *testing.T) {
	root := New("form", platform.Rect{Left: 50, Top: 60, Right: 450, Bottom: 360})
	child := root.Add(New("button", platform.Rect{Left: 10, Top: 20, Right: 90, Bottom: 45}))
	child.SetFontSize(12)
	inherited := root.Add(New("label", platform.Rect{Left: 0, Top: 0, Right: 30, Bottom: 15}))

	require.NoError(t, Toolkit{}.ScaleTree(root, 2, 2))

	assert.Equal(t, platform.Rect{Left: 50, Top: 60, Right: 850, Bottom: 660}, root.Bounds)
	assert.Equal(t, platform.Rect{Left: 20, Top: 40, Right: 180, Bottom: 90}, child.Bounds)
	assert.Equal(t, 2*DefaultFontSize, root.FontSize())
	assert.Equal(t, 2*DefaultFontSize, inherited.FontSize())
	assert.Equal(t, 12.0, child.FontSize(), "explicit fonts are left to the caller")
}

func TestToolkitScaleTreeRejectsBadInput(t *testing.T) {
	root := New("form", platform.Rect{Right: 10, Bottom: 10})

	assert.Error(t, Toolkit{}.ScaleTree(root, 0, 1))
	assert.Error(t, Toolkit{}.ScaleTree(nil, 1, 1))
	assert.Equal(t, platform.Rect{Right: 10, Bottom: 10}, root.Bounds)
}
