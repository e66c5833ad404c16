package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/logger"
	"github.com/shouni/gemini-layout-kit/pkg/schema"
	"google.golang.org/genai"
)

// GeminiLayoutGenerator は画像からレイアウトを生成するアダプターです。
// 1回の生成につきリクエストは1回だけ送り、再試行やストリーミングは行いません。
type GeminiLayoutGenerator struct {
	client      ContentGenerator
	model       string
	prompt      string
	temperature *float32
}

// NewGeminiLayoutGenerator は依存関係を注入して GeminiLayoutGenerator を初期化します。
func NewGeminiLayoutGenerator(client ContentGenerator, model string, opts ...Option) (*GeminiLayoutGenerator, error) {
	if client == nil {
		return nil, fmt.Errorf("client (ContentGenerator) is required")
	}

	g := &GeminiLayoutGenerator{
		client: client,
		model:  normalizeModel(model),
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Model は使用するモデル名を返します。
func (g *GeminiLayoutGenerator) Model() string {
	return g.model
}

// GenerateLayout は画像を構造化出力リクエストとして送信し、結果を LayoutData に変換します。
// 失敗の原因はログにのみ記録し、呼び出し元には正規化したエラーを返します。
func (g *GeminiLayoutGenerator) GenerateLayout(ctx context.Context, src domain.ImageSource) (*domain.LayoutData, error) {
	log := logger.FromContext(ctx)

	imgPart, err := toPart(src)
	if err != nil {
		return nil, g.fail(ctx, log, "prepare", err)
	}

	prompt := g.prompt
	if src.HasDimensions() {
		prompt = prompt + "\n\n" + dimensionHint(src.Width, src.Height)
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{imgPart, {Text: prompt}},
	}}

	log.InfoContext(ctx, "Geminiにレイアウト生成をリクエストします",
		"model", g.model, "mime_type", src.MimeType, "bytes", len(imgPart.InlineData.Data))

	resp, err := g.client.GenerateContent(ctx, g.model, contents, g.config())
	if err != nil {
		return nil, g.fail(ctx, log, "request", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, g.fail(ctx, log, "response", err)
	}

	data, err := schema.Decode([]byte(text))
	if err != nil {
		log.DebugContext(ctx, "解析できなかったレスポンス", "text", truncate(text, 512))
		return nil, g.fail(ctx, log, "decode", err)
	}

	log.InfoContext(ctx, "レイアウト生成が完了しました",
		"model", g.model, "elements", len(data.Elements),
		"container", strings.Join([]string{data.Container.Width, data.Container.Height}, "x"))
	return &data, nil
}

func (g *GeminiLayoutGenerator) config() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: ResponseMIMEType,
		ResponseSchema:   schema.LayoutSchema(),
		Temperature:      g.temperature,
	}
}

// fail は原因をログに残し、ユーザー向けに正規化したエラーへ変換します。
func (g *GeminiLayoutGenerator) fail(ctx context.Context, log *slog.Logger, stage string, cause error) error {
	log.ErrorContext(ctx, "Gemini APIでのレイアウト生成に失敗しました",
		"model", g.model, "stage", stage, "error", cause)
	return domain.NewInvocationError(fmt.Errorf("%s: %w", stage, cause))
}
