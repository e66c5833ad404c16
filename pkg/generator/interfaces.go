package generator

import (
	"context"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"google.golang.org/genai"
)

// LayoutGenerator はセッション層が利用するレイアウト生成の窓口です。
type LayoutGenerator interface {
	// GenerateLayout は画像1枚をモデルに送り、検証済みの LayoutData を返します。
	// 失敗時のエラーは原因に関わらず domain.ErrLayoutGenerationFailed に一致します。
	GenerateLayout(ctx context.Context, src domain.ImageSource) (*domain.LayoutData, error)
}

// ContentGenerator は Gemini の generateContent 呼び出しを抽象化するインターフェースです。
// (*genai.Client).Models がこれを満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
