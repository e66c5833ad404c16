package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/render"
	"github.com/shouni/gemini-layout-kit/pkg/synth"
)

const (
	fileMarkup     = "index.html"
	fileStylesheet = "styles.css"
	filePreview    = "preview.html"
	fileLayout     = "layout.json"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Generated Layout</title>
<link rel="stylesheet" href="%s">
</head>
<body>
%s
</body>
</html>
`

// writeOutputs は LayoutData の各表現を dir に書き出し、書き出したパスを返します。
// originalImageURL が空でなければプレビューに元画像を並べます。
func writeOutputs(dir string, data domain.LayoutData, originalImageURL string) ([]string, error) {
	tree, err := render.Render(data)
	if err != nil {
		return nil, fmt.Errorf("レイアウトを描画できません: %w", err)
	}
	artifacts := synth.Synthesize(data)

	layoutJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("layout.json の生成に失敗しました: %w", err)
	}

	var preview bytes.Buffer
	if err := render.WritePreview(&preview, tree, render.PreviewOptions{
		OriginalImageURL: originalImageURL,
		Markup:           artifacts.Markup,
		Stylesheet:       artifacts.Stylesheet,
	}); err != nil {
		return nil, fmt.Errorf("プレビューの生成に失敗しました: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("出力ディレクトリを作成できません: %w", err)
	}

	files := []struct {
		name string
		body []byte
	}{
		{fileMarkup, []byte(fmt.Sprintf(pageTemplate, fileStylesheet, synth.PageMarkup(data)))},
		{fileStylesheet, []byte(artifacts.Stylesheet + "\n")},
		{filePreview, preview.Bytes()},
		{fileLayout, append(layoutJSON, '\n')},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.body, 0o644); err != nil {
			return written, fmt.Errorf("%s の書き込みに失敗しました: %w", f.name, err)
		}
		slog.Debug("ファイルを書き出しました", "path", path, "bytes", len(f.body))
		written = append(written, path)
	}
	return written, nil
}
