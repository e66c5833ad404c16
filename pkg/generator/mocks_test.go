package generator

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockContentGenerator struct {
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (m *mockContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, contents, config)
	}
	return nil, nil
}

// --- Fixtures ---

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

func pngBase64() string {
	return base64.StdEncoding.EncodeToString(pngBytes)
}

func layoutJSON() string {
	el := func(id, align string, z int, opacity float64) map[string]any {
		return map[string]any{
			"id": id, "top": "10px", "left": "10px", "width": "100px", "height": "50px",
			"textContent": "Hi", "fontFamily": "Arial, sans-serif", "fontSize": "16px", "fontWeight": "700",
			"color": "#ffffff", "textAlign": align, "textShadow": "none",
			"background": "#1f2937", "borderRadius": "8px", "border": "none", "boxShadow": "none",
			"zIndex": z, "transform": "none",
			"opacity": opacity, "filter": "none", "clipPath": "none", "mixBlendMode": "normal",
		}
	}
	b, _ := json.Marshal(map[string]any{
		"container": map[string]any{"width": "400px", "height": "300px", "backgroundColor": "#111827"},
		"elements":  []any{el("a", "left", 1, 1), el("b", "center", 2, 0.5)},
	})
	return string(b)
}

func textResponse(text string, reason genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: reason,
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}
