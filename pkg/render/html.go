package render

import (
	"fmt"
	"io"

	"github.com/shouni/gemini-layout-kit/pkg/style"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLNode はツリーをインラインスタイル付きの DOM に変換します。
// 子ノードは要素順に並び、テキストはエスケープされて出力されます。
func (t *Tree) HTMLNode() *html.Node {
	root := element(atom.Div,
		attr("class", style.ContainerClass),
		attr("style", style.Inline(t.Container.Declarations())),
	)
	for _, n := range t.Nodes {
		child := element(atom.Div,
			attr("class", n.Class),
			attr("data-element-id", n.ID),
			attr("style", style.Inline(n.Style.Declarations())),
		)
		if n.Text != "" {
			child.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		}
		root.AppendChild(child)
	}
	return root
}

// WriteHTML は DOM をシリアライズして w に書き込みます。
func (t *Tree) WriteHTML(w io.Writer) error {
	return html.Render(w, t.HTMLNode())
}

// PreviewOptions はプレビュー文書の付加情報です。
type PreviewOptions struct {
	Title string
	// OriginalImageURL は元画像のデータURLです。空なら元画像ペインを出力しません。
	OriginalImageURL string
	Markup           string
	Stylesheet       string
}

const previewChrome = `body { margin: 0; padding: 24px; background: #111827; color: #e5e7eb; font-family: sans-serif; }
.panes { display: grid; grid-template-columns: repeat(auto-fit, minmax(320px, 1fr)); gap: 32px; }
.pane { background: #1f2937; border: 1px solid #374151; border-radius: 16px; padding: 16px; }
.pane h3 { margin-top: 0; text-align: center; }
.stage { display: flex; justify-content: center; align-items: center; }
.stage img { max-width: 100%; max-height: 60vh; object-fit: contain; }
pre { background: #0b1120; color: #c7d2fe; padding: 16px; border-radius: 8px; overflow-x: auto; }`

// WritePreview は元画像、ライブレイアウト、生成コードを並べた単独の HTML 文書を書き込みます。
func WritePreview(w io.Writer, tree *Tree, opts PreviewOptions) error {
	if tree == nil {
		return fmt.Errorf("tree is required")
	}
	title := opts.Title
	if title == "" {
		title = "Generated Layout"
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), title))
	head.AppendChild(withText(element(atom.Style), previewChrome))
	htmlEl.AppendChild(head)

	body := element(atom.Body)
	htmlEl.AppendChild(body)

	panes := element(atom.Div, attr("class", "panes"))
	body.AppendChild(panes)

	if opts.OriginalImageURL != "" {
		pane := element(atom.Div, attr("class", "pane"))
		pane.AppendChild(withText(element(atom.H3), "Original Image"))
		stage := element(atom.Div, attr("class", "stage"))
		stage.AppendChild(element(atom.Img, attr("src", opts.OriginalImageURL), attr("alt", "Original")))
		pane.AppendChild(stage)
		panes.AppendChild(pane)
	}

	layoutPane := element(atom.Div, attr("class", "pane"))
	layoutPane.AppendChild(withText(element(atom.H3), title))
	stage := element(atom.Div, attr("class", "stage"))
	stage.AppendChild(tree.HTMLNode())
	layoutPane.AppendChild(stage)
	panes.AppendChild(layoutPane)

	for _, block := range []struct{ lang, code string }{
		{"HTML", opts.Markup},
		{"CSS", opts.Stylesheet},
	} {
		if block.code == "" {
			continue
		}
		pane := element(atom.Div, attr("class", "pane"))
		pane.AppendChild(withText(element(atom.H3), block.lang))
		pre := element(atom.Pre)
		pre.AppendChild(withText(element(atom.Code), block.code))
		pane.AppendChild(pre)
		body.AppendChild(pane)
	}

	return html.Render(w, doc)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
