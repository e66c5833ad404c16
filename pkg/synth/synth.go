// Package synth は LayoutData からマークアップとスタイルシートのソーステキストを生成します。
// 出力は入力のみから決まり、同じ入力に対して常にバイト単位で同一です。
package synth

import (
	"html"
	"strings"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/style"
)

const indent = "    "

// Artifacts はコード表示用の2つのテキストです。
type Artifacts struct {
	Markup     string `json:"markup"`
	Stylesheet string `json:"stylesheet"`
}

// Synthesize はマークアップとスタイルシートをまとめて生成します。
func Synthesize(data domain.LayoutData) Artifacts {
	return Artifacts{
		Markup:     Markup(data),
		Stylesheet: Stylesheet(data),
	}
}

// Markup はコンテナ1つと要素ごとの子ノードからなるマークアップを生成します。
// textContent はそのまま埋め込み、空文字の場合も空のノードを出力します。
func Markup(data domain.LayoutData) string {
	return markup(data, func(s string) string { return s })
}

// PageMarkup は Markup と同じ構造で、textContent を HTML エスケープして埋め込みます。
// ブラウザで開くページに差し込む用途です。
func PageMarkup(data domain.LayoutData) string {
	return markup(data, html.EscapeString)
}

func markup(data domain.LayoutData, text func(string) string) string {
	var b strings.Builder
	b.WriteString(`<div class="` + style.ContainerClass + `">` + "\n")
	for _, el := range data.Elements {
		b.WriteString(indent)
		b.WriteString(`<div class="` + style.ClassName(el.ID) + `">`)
		b.WriteString(text(el.TextContent))
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// Stylesheet はコンテナのルールと要素ごとのルールを配列順に生成します。
func Stylesheet(data domain.LayoutData) string {
	var b strings.Builder
	writeRule(&b, style.ContainerClass, style.ForContainer(data.Container).Declarations())
	for _, el := range data.Elements {
		b.WriteString("\n\n")
		writeRule(&b, style.ClassName(el.ID), style.ForElement(el).Declarations())
	}
	return b.String()
}

func writeRule(b *strings.Builder, class string, decls []style.Declaration) {
	b.WriteString("." + class + " {\n")
	for _, d := range decls {
		b.WriteString("  ")
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}")
}
