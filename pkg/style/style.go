// Package style は LayoutData の各フィールドを表示用プロパティへ写像する唯一の定義を提供します。
// スタイルシート生成（synth）とライブ描画（render）の両方がここを経由するため、
// 同じフィールドの解釈が両者で食い違うことはありません。
package style

import (
	"strconv"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
)

const (
	// ContainerClass はコンテナに付与するクラス名です。
	ContainerClass = "container"
	// ElementClassPrefix は要素クラス名の接頭辞です。
	ElementClassPrefix = "element-"
	// ElementPadding は要素の内側余白です。モデル出力ではなく合成側の規約です。
	ElementPadding = "4px"
)

// Declaration は1つの "property: value" の組です。
type Declaration struct {
	Property string
	Value    string
}

// ElementStyle は1要素に適用される計算済みスタイルです。
type ElementStyle struct {
	Position   string
	BoxSizing  string
	Display    string
	AlignItems string
	Padding    string

	Top    string
	Left   string
	Width  string
	Height string

	Background   string
	BorderRadius string
	Border       string
	BoxShadow    string

	Color      string
	FontFamily string
	FontSize   string
	FontWeight string
	TextAlign  string
	TextShadow string

	Opacity      float64
	Filter       string
	ClipPath     string
	MixBlendMode string
	ZIndex       int
	Transform    string

	JustifyContent string
}

// ForElement は要素のフィールドを ElementStyle に 1:1 で写像します。
func ForElement(el domain.LayoutElement) ElementStyle {
	return ElementStyle{
		Position:   "absolute",
		BoxSizing:  "border-box",
		Display:    "flex",
		AlignItems: "center",
		Padding:    ElementPadding,

		Top:    el.Top,
		Left:   el.Left,
		Width:  el.Width,
		Height: el.Height,

		Background:   el.Background,
		BorderRadius: el.BorderRadius,
		Border:       el.Border,
		BoxShadow:    el.BoxShadow,

		Color:      el.Color,
		FontFamily: el.FontFamily,
		FontSize:   el.FontSize,
		FontWeight: el.FontWeight,
		TextAlign:  el.TextAlign,
		TextShadow: el.TextShadow,

		Opacity:      el.Opacity,
		Filter:       el.Filter,
		ClipPath:     el.ClipPath,
		MixBlendMode: el.MixBlendMode,
		ZIndex:       el.ZIndex,
		Transform:    el.Transform,

		JustifyContent: JustifyContent(el.TextAlign),
	}
}

// Declarations は CSS の宣言列を固定順で返します。
func (s ElementStyle) Declarations() []Declaration {
	return []Declaration{
		{"position", s.Position},
		{"box-sizing", s.BoxSizing},
		{"display", s.Display},
		{"align-items", s.AlignItems},
		{"padding", s.Padding},
		{"top", s.Top},
		{"left", s.Left},
		{"width", s.Width},
		{"height", s.Height},
		{"background", s.Background},
		{"border-radius", s.BorderRadius},
		{"border", s.Border},
		{"box-shadow", s.BoxShadow},
		{"color", s.Color},
		{"font-family", s.FontFamily},
		{"font-size", s.FontSize},
		{"font-weight", s.FontWeight},
		{"text-align", s.TextAlign},
		{"text-shadow", s.TextShadow},
		{"opacity", FormatNumber(s.Opacity)},
		{"filter", s.Filter},
		{"clip-path", s.ClipPath},
		{"mix-blend-mode", s.MixBlendMode},
		{"z-index", strconv.Itoa(s.ZIndex)},
		{"transform", s.Transform},
		{"justify-content", s.JustifyContent},
	}
}

// ContainerStyle はコンテナの計算済みスタイルです。
// MaxWidth, MaxHeight, AspectRatio はライブ描画でのみ設定され、空の場合は出力されません。
type ContainerStyle struct {
	Position        string
	Width           string
	Height          string
	BackgroundColor string
	Overflow        string

	MaxWidth    string
	MaxHeight   string
	AspectRatio string
}

// ForContainer はコンテナのフィールドを ContainerStyle に写像します。
func ForContainer(c domain.LayoutContainer) ContainerStyle {
	return ContainerStyle{
		Position:        "relative",
		Width:           c.Width,
		Height:          c.Height,
		BackgroundColor: c.BackgroundColor,
		Overflow:        "hidden",
	}
}

// Declarations は CSS の宣言列を固定順で返します。
func (s ContainerStyle) Declarations() []Declaration {
	decls := []Declaration{
		{"position", s.Position},
		{"width", s.Width},
		{"height", s.Height},
		{"background-color", s.BackgroundColor},
		{"overflow", s.Overflow},
	}
	optional := []Declaration{
		{"max-width", s.MaxWidth},
		{"max-height", s.MaxHeight},
		{"aspect-ratio", s.AspectRatio},
	}
	for _, d := range optional {
		if d.Value != "" {
			decls = append(decls, d)
		}
	}
	return decls
}

// JustifyContent は textAlign から要素内の水平方向の配置を決めます。
func JustifyContent(textAlign string) string {
	switch textAlign {
	case "center":
		return "center"
	case "right":
		return "flex-end"
	default:
		return "flex-start"
	}
}

// ClassName は要素IDからクラス名を作ります。
func ClassName(id string) string {
	return ElementClassPrefix + id
}

// FormatNumber はロケールに依存しない最短表記で数値を文字列化します（1, 0.5 など）。
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Inline は宣言列を style 属性用の1行に連結します。
func Inline(decls []Declaration) string {
	b := make([]byte, 0, len(decls)*24)
	for i, d := range decls {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, d.Property...)
		b = append(b, ": "...)
		b = append(b, d.Value...)
		b = append(b, ';')
	}
	return string(b)
}
