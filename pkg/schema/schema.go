package schema

import (
	"google.golang.org/genai"
)

// ContainerFields はコンテナの必須キーです（宣言順）。
var ContainerFields = []string{"width", "height", "backgroundColor"}

// ElementFields は要素の必須キーです（宣言順）。
var ElementFields = []string{
	"id", "top", "left", "width", "height",
	"textContent", "fontFamily", "fontSize", "fontWeight", "color", "textAlign", "textShadow",
	"background", "borderRadius", "border", "boxShadow",
	"zIndex", "transform",
	"opacity", "filter", "clipPath", "mixBlendMode",
}

var containerDescriptions = map[string]string{
	"width":           "Exact width of the container in pixels, matching the source image, e.g., '800px'.",
	"height":          "Exact height of the container in pixels, matching the source image, e.g., '600px'.",
	"backgroundColor": "A base background color for the layout, e.g., '#111827'.",
}

var elementDescriptions = map[string]string{
	"id":           "A unique identifier for the element.",
	"top":          "CSS 'top' property in pixels, e.g., '50px'.",
	"left":         "CSS 'left' property in pixels, e.g., '75px'.",
	"width":        "CSS 'width' property in pixels, e.g., '120px'.",
	"height":       "CSS 'height' property in pixels, e.g., '200px'.",
	"textContent":  "The text content of the element. If it's not a text element, use an empty string.",
	"fontFamily":   "CSS 'font-family' property. Use common font stacks like 'Arial, sans-serif'. Use 'inherit' if not a text element.",
	"fontSize":     "CSS 'font-size' property in pixels, e.g., '16px'. Use 'inherit' if not a text element.",
	"fontWeight":   "CSS 'font-weight' property, e.g., '700' or 'bold'. Use 'inherit' if not a text element.",
	"color":        "CSS 'color' property for the text. Use 'transparent' if not a text element.",
	"textAlign":    "CSS 'text-align' property, e.g., 'center'. Use 'left' if not a text element.",
	"textShadow":   "CSS 'text-shadow' for text effects, e.g., '2px 2px 4px #000000'. Use 'none' if no shadow.",
	"background":   "CSS 'background' property. Can be a solid hex color, or a gradient like 'linear-gradient(to right, #ff0000, #0000ff)'.",
	"borderRadius": "CSS 'border-radius' property, can be complex like '50% 20% / 10% 40%' for organic shapes.",
	"border":       "CSS 'border' property for outlines, e.g., '2px solid #FFFFFF'. Use 'none' if no border.",
	"boxShadow":    "CSS 'box-shadow' to replicate glow effects, e.g., '0 0 20px #00BFFF'. Use 'none' if no shadow.",
	"zIndex":       "CSS 'z-index' for stacking, e.g., 10.",
	"transform":    "CSS 'transform' for rotation, e.g., 'rotate(15deg)'. Use 'none' if no transform is needed.",
	"opacity":      "CSS 'opacity' from 0.0 to 1.0 for transparency. Use 1 for fully opaque.",
	"filter":       "CSS 'filter' for effects like 'blur(5px) saturate(150%)'. Use 'none' if no filter.",
	"clipPath":     "CSS 'clip-path' for complex shapes, e.g., 'polygon(...)', 'circle(...)'. Use 'none' for rectangular shapes.",
	"mixBlendMode": "CSS 'mix-blend-mode' for blending, e.g., 'screen', 'multiply'. Use 'normal' if no blending.",
}

// elementTypes は文字列以外の型を持つ要素キーです。
var elementTypes = map[string]genai.Type{
	"zIndex":  genai.TypeInteger,
	"opacity": genai.TypeNumber,
}

// LayoutSchema はモデル出力を拘束するレスポンススキーマを返します。
// 呼び出しごとに新しい値を返すため、呼び出し側で変更しても共有状態には影響しません。
func LayoutSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"container": objectSchema(ContainerFields, containerDescriptions, nil),
			"elements": {
				Type:  genai.TypeArray,
				Items: objectSchema(ElementFields, elementDescriptions, elementTypes),
			},
		},
		Required:         []string{"container", "elements"},
		PropertyOrdering: []string{"container", "elements"},
	}
}

func objectSchema(fields []string, descriptions map[string]string, types map[string]genai.Type) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		typ := genai.TypeString
		if t, ok := types[f]; ok {
			typ = t
		}
		props[f] = &genai.Schema{Type: typ, Description: descriptions[f]}
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         append([]string(nil), fields...),
		PropertyOrdering: append([]string(nil), fields...),
	}
}
