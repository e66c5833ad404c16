package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/style"
	"github.com/shouni/gemini-layout-kit/pkg/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func fixtureElement(id, text, align string, z int, opacity float64) domain.LayoutElement {
	return domain.LayoutElement{
		ID: id, Top: "10px", Left: "10px", Width: "100px", Height: "50px",
		TextContent: text, FontFamily: "Arial, sans-serif", FontSize: "16px", FontWeight: "400",
		Color: "#ffffff", TextAlign: align, TextShadow: "none",
		Background: "#1f2937", BorderRadius: "0px", Border: "none", BoxShadow: "none",
		ZIndex: z, Transform: "none",
		Opacity: opacity, Filter: "none", ClipPath: "none", MixBlendMode: "normal",
	}
}

func scenario() domain.LayoutData {
	return domain.LayoutData{
		Container: domain.LayoutContainer{Width: "400px", Height: "300px", BackgroundColor: "#111827"},
		Elements: []domain.LayoutElement{
			fixtureElement("a", "Hi", "left", 1, 1),
			fixtureElement("b", "", "center", 2, 0.5),
		},
	}
}

func TestRender_Container(t *testing.T) {
	tree, err := Render(scenario())
	require.NoError(t, err)

	c := tree.Container
	assert.Equal(t, "400px", c.Width)
	assert.Equal(t, "300px", c.Height)
	assert.Equal(t, "#111827", c.BackgroundColor)
	assert.Equal(t, "hidden", c.Overflow)
	assert.Equal(t, "400 / 300", c.AspectRatio)
	assert.Equal(t, "100%", c.MaxWidth)
}

func TestRender_InvalidContainer(t *testing.T) {
	d := scenario()
	d.Container.Height = "auto"
	_, err := Render(d)
	assert.Error(t, err)
}

func TestRender_NodesKeepArrayOrder(t *testing.T) {
	d := scenario()
	d.Elements[0].ZIndex = 9
	tree, err := Render(d)
	require.NoError(t, err)

	require.Len(t, tree.Nodes, 2)
	assert.Equal(t, "a", tree.Nodes[0].ID)
	assert.Equal(t, "element-a", tree.Nodes[0].Class)
	assert.Equal(t, "b", tree.Nodes[1].ID)
}

func TestRender_StackingFollowsZIndex(t *testing.T) {
	t.Run("zIndex 2 の b が a より手前", func(t *testing.T) {
		tree, err := Render(scenario())
		require.NoError(t, err)

		top, err := tree.Topmost("a", "b")
		require.NoError(t, err)
		assert.Equal(t, "b", top)
	})

	t.Run("配列順ではなく zIndex が優先される", func(t *testing.T) {
		d := scenario()
		d.Elements[0].ZIndex = 5
		tree, err := Render(d)
		require.NoError(t, err)

		order := tree.PaintOrder()
		assert.Equal(t, "b", order[0].ID)
		assert.Equal(t, "a", order[1].ID)
		// 元の並びは変更しない
		assert.Equal(t, "a", tree.Nodes[0].ID)
	})

	t.Run("同じ zIndex は要素順", func(t *testing.T) {
		d := scenario()
		d.Elements[1].ZIndex = 1
		tree, err := Render(d)
		require.NoError(t, err)

		top, err := tree.Topmost("a", "b")
		require.NoError(t, err)
		assert.Equal(t, "b", top)
	})

	t.Run("存在しないID", func(t *testing.T) {
		tree, err := Render(scenario())
		require.NoError(t, err)
		_, err = tree.Topmost("a", "zzz")
		assert.Error(t, err)
	})
}

func TestRender_AlignmentMapping(t *testing.T) {
	tests := map[string]string{
		"center": "center",
		"right":  "flex-end",
		"left":   "flex-start",
		"start":  "flex-start",
	}
	for align, want := range tests {
		t.Run(align, func(t *testing.T) {
			d := scenario()
			d.Elements[0].TextAlign = align
			tree, err := Render(d)
			require.NoError(t, err)

			s := tree.Nodes[0].Style
			assert.Equal(t, want, s.JustifyContent)
			assert.Equal(t, align, s.TextAlign)
			assert.Equal(t, "center", s.AlignItems)
			assert.Equal(t, "border-box", s.BoxSizing)
			assert.Equal(t, "4px", s.Padding)
		})
	}
}

// 描画とスタイルシートが同じ宣言を持つことを確認する
func TestRender_MatchesStylesheet(t *testing.T) {
	d := scenario()
	d.Elements[0].BoxShadow = "0 0 10px #fff"
	d.Elements[1].Transform = "rotate(15deg)"

	tree, err := Render(d)
	require.NoError(t, err)
	css := synth.Stylesheet(d)

	for _, n := range tree.Nodes {
		for _, decl := range n.Style.Declarations() {
			line := "  " + decl.Property + ": " + decl.Value + ";"
			assert.Contains(t, css, line, "node %s", n.ID)
		}
	}
	for _, decl := range style.ForContainer(d.Container).Declarations() {
		assert.Contains(t, css, "  "+decl.Property+": "+decl.Value+";")
	}
}

func TestTree_HTMLNode(t *testing.T) {
	d := scenario()
	d.Elements[0].TextContent = `<b>"Hi" & bye</b>`

	tree, err := Render(d)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tree.WriteHTML(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<div class="container" style="position: relative;`))
	assert.Contains(t, out, "aspect-ratio: 400 / 300;")
	assert.Contains(t, out, `data-element-id="a"`)
	assert.Contains(t, out, "&lt;b&gt;&#34;Hi&#34; &amp; bye&lt;/b&gt;")
	assert.Contains(t, out, "justify-content: center;")
	assert.Contains(t, out, "z-index: 2;")

	// 出力は再パース可能で、子要素数が要素数と一致する
	root := tree.HTMLNode()
	count := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	assert.Equal(t, 2, count)
	_, err = html.Parse(strings.NewReader(out))
	assert.NoError(t, err)
}

func TestWritePreview(t *testing.T) {
	d := scenario()
	tree, err := Render(d)
	require.NoError(t, err)
	art := synth.Synthesize(d)

	var buf bytes.Buffer
	err = WritePreview(&buf, tree, PreviewOptions{
		OriginalImageURL: "data:image/png;base64,AAAA",
		Markup:           art.Markup,
		Stylesheet:       art.Stylesheet,
	})
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `src="data:image/png;base64,AAAA"`)
	assert.Contains(t, out, "<title>Generated Layout</title>")
	assert.Contains(t, out, "&lt;div class=&#34;container&#34;&gt;")
	assert.Contains(t, out, ".element-b {")

	t.Run("tree が nil ならエラー", func(t *testing.T) {
		assert.Error(t, WritePreview(&bytes.Buffer{}, nil, PreviewOptions{}))
	})

	t.Run("元画像なしでも出力できる", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, WritePreview(&b, tree, PreviewOptions{Title: "Only Layout"}))
		assert.NotContains(t, b.String(), "<img")
		assert.Contains(t, b.String(), "Only Layout")
	})
}
