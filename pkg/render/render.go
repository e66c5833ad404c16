// Package render は LayoutData をライブ表示用のビジュアルツリーに変換します。
// スタイルの解釈は style パッケージに一元化されており、synth が生成するスタイルシートと同じ意味を持ちます。
package render

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/style"
)

// Node は絶対配置される1要素です。
type Node struct {
	ID    string
	Class string
	Text  string
	Style style.ElementStyle
}

// Tree はコンテナと要素ノードからなるビジュアルツリーです。
// Nodes は LayoutData の要素順を保持し、重なり順は ZIndex で決まります。
type Tree struct {
	Container style.ContainerStyle
	Nodes     []Node
}

// Render は LayoutData からビジュアルツリーを構築します。
// 縮小表示でも比率が崩れないよう、コンテナのアスペクト比を幅:高さに固定します。
func Render(data domain.LayoutData) (*Tree, error) {
	ratio, err := data.Container.AspectRatio()
	if err != nil {
		return nil, fmt.Errorf("コンテナ寸法からアスペクト比を決定できません: %w", err)
	}

	container := style.ForContainer(data.Container)
	container.MaxWidth = "100%"
	container.MaxHeight = "100%"
	container.AspectRatio = ratio

	nodes := make([]Node, 0, len(data.Elements))
	for _, el := range data.Elements {
		nodes = append(nodes, Node{
			ID:    el.ID,
			Class: style.ClassName(el.ID),
			Text:  el.TextContent,
			Style: style.ForElement(el),
		})
	}

	return &Tree{Container: container, Nodes: nodes}, nil
}

// PaintOrder はノードを描画順（奥から手前）に並べた新しいスライスを返します。
// ZIndex が同じ場合は要素順を維持します。
func (t *Tree) PaintOrder() []Node {
	ordered := slices.Clone(t.Nodes)
	slices.SortStableFunc(ordered, func(a, b Node) int {
		return cmp.Compare(a.Style.ZIndex, b.Style.ZIndex)
	})
	return ordered
}

// Topmost は指定した2要素のうち手前に描画される方のIDを返します。
func (t *Tree) Topmost(idA, idB string) (string, error) {
	pos := make(map[string]int, 2)
	for i, n := range t.PaintOrder() {
		if n.ID == idA || n.ID == idB {
			pos[n.ID] = i
		}
	}
	for _, id := range []string{idA, idB} {
		if _, ok := pos[id]; !ok {
			return "", fmt.Errorf("node not found: %s", id)
		}
	}
	if pos[idA] > pos[idB] {
		return idA, nil
	}
	return idB, nil
}
