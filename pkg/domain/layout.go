package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LayoutContainer はレイアウト全体のキャンバスです。
// Width と Height は元画像のピクセル寸法と一致する "800px" 形式の文字列です。
type LayoutContainer struct {
	Width           string `json:"width"`
	Height          string `json:"height"`
	BackgroundColor string `json:"backgroundColor"`
}

// LayoutElement はコンテナ内に絶対配置される1つの視覚要素です。
// すべてのフィールドは必須で、該当しない場合もスキーマが指定する番兵値で埋められます。
type LayoutElement struct {
	ID string `json:"id"`

	// 位置と寸法（コンテナ左上が原点）
	Top    string `json:"top"`
	Left   string `json:"left"`
	Width  string `json:"width"`
	Height string `json:"height"`

	// タイポグラフィ
	TextContent string `json:"textContent"`
	FontFamily  string `json:"fontFamily"`
	FontSize    string `json:"fontSize"`
	FontWeight  string `json:"fontWeight"`
	Color       string `json:"color"`
	TextAlign   string `json:"textAlign"`
	TextShadow  string `json:"textShadow"`

	// スタイリング
	Background   string `json:"background"`
	BorderRadius string `json:"borderRadius"`
	Border       string `json:"border"`
	BoxShadow    string `json:"boxShadow"`
	ZIndex       int    `json:"zIndex"`
	Transform    string `json:"transform"`

	// 高度なエフェクト
	Opacity      float64 `json:"opacity"`
	Filter       string  `json:"filter"`
	ClipPath     string  `json:"clipPath"`
	MixBlendMode string  `json:"mixBlendMode"`
}

// LayoutData は1回のモデル呼び出しで得られた生成結果です。
// 生成後は不変の値として扱い、利用側は変更しません。
type LayoutData struct {
	Container LayoutContainer `json:"container"`
	Elements  []LayoutElement `json:"elements"`
}

// Dimensions はコンテナの幅と高さをピクセル数として返します。
func (c LayoutContainer) Dimensions() (float64, float64, error) {
	w, err := ParsePixels(c.Width)
	if err != nil {
		return 0, 0, fmt.Errorf("container width: %w", err)
	}
	h, err := ParsePixels(c.Height)
	if err != nil {
		return 0, 0, fmt.Errorf("container height: %w", err)
	}
	return w, h, nil
}

// AspectRatio は "幅 / 高さ" 形式のアスペクト比を返します。
// 小数部は切り捨てます。
func (c LayoutContainer) AspectRatio() (string, error) {
	w, h, err := c.Dimensions()
	if err != nil {
		return "", err
	}
	iw, ih := int(w), int(h)
	if iw <= 0 || ih <= 0 {
		return "", fmt.Errorf("container has no area: %s x %s", c.Width, c.Height)
	}
	return strconv.Itoa(iw) + " / " + strconv.Itoa(ih), nil
}

// Validate は JSON スキーマでは表現できない構造上の制約を検証します。
// 値の意味的な妥当性（画像との一致や範囲外配置）は検証しません。
func (d LayoutData) Validate() error {
	// 描画側はコンテナの整数ピクセルからアスペクト比を求めるため、1px 未満は拒否する
	if _, err := d.Container.AspectRatio(); err != nil {
		return err
	}

	seen := make(map[string]int, len(d.Elements))
	for i, el := range d.Elements {
		if strings.TrimSpace(el.ID) == "" {
			return fmt.Errorf("elements[%d]: id is empty", i)
		}
		if !isClassSafeID(el.ID) {
			return fmt.Errorf("elements[%d]: id %q must contain only letters, digits, '-' or '_'", i, el.ID)
		}
		if prev, ok := seen[el.ID]; ok {
			return fmt.Errorf("elements[%d]: duplicate id %q (first at elements[%d])", i, el.ID, prev)
		}
		seen[el.ID] = i
	}
	return nil
}

// isClassSafeID は ID がそのまま CSS クラス名の一部として使えるかを判定します。
func isClassSafeID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// ElementByID は ID で要素を検索します。
func (d LayoutData) ElementByID(id string) (LayoutElement, bool) {
	for _, el := range d.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return LayoutElement{}, false
}

// ParsePixels は "120px" や "12.5px" 形式の長さを数値に変換します。
func ParsePixels(s string) (float64, error) {
	v := strings.TrimSpace(s)
	num, ok := strings.CutSuffix(v, "px")
	if !ok || num == "" {
		return 0, fmt.Errorf("not a pixel length: %q", s)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a pixel length: %q", s)
	}
	return f, nil
}
