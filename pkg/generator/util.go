package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// NewGenAIClient は Gemini API バックエンドの genai クライアントを生成します。
// 返されたクライアントの Models フィールドが ContentGenerator を満たします。
func NewGenAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの作成に失敗しました: %w", err)
	}
	return client, nil
}

// normalizeModel は "models/" 接頭辞と空白を取り除き、空なら DefaultModel を返します。
func normalizeModel(model string) string {
	m := strings.TrimPrefix(strings.TrimSpace(model), "models/")
	if m == "" {
		return DefaultModel
	}
	return m
}

// truncate はログ出力用に文字列を最大 n バイトに切り詰めます。
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
