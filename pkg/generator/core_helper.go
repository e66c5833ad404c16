package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"google.golang.org/genai"
)

const blockedReasonUnspecified = "BLOCKED_REASON_UNSPECIFIED"

// toPart は ImageSource を InlineData の Part に変換します。
func toPart(src domain.ImageSource) (*genai.Part, error) {
	if !strings.HasPrefix(src.MimeType, "image/") {
		return nil, fmt.Errorf("MIMEタイプが画像ではありません: %q", src.MimeType)
	}
	data, err := src.Decode()
	if err != nil {
		return nil, err
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: src.MimeType, Data: data}}, nil
}

// responseText は最初の候補からテキストパーツを連結して返します。
// 安全フィルター等でブロックされた場合はエラーを返します。
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("Geminiからの有効な応答がありませんでした")
	}

	if fb := resp.PromptFeedback; fb != nil {
		if reason := string(fb.BlockReason); reason != "" && reason != blockedReasonUnspecified {
			return "", fmt.Errorf("リクエストがブロックされました (BlockReason: %s %s)", reason, fb.BlockReasonMessage)
		}
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("Geminiからの有効な応答がありませんでした")
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]
	if candidate == nil {
		return "", errors.New("Geminiからの有効な応答がありませんでした")
	}

	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
	default:
		return "", fmt.Errorf("レイアウト生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}

	var b strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("レスポンスにテキストが含まれていません")
	}
	return text, nil
}
