package generator

const (
	// DefaultModel はモデル名が指定されなかった場合に使用するモデルです。
	DefaultModel = "gemini-2.5-flash"
	// ResponseMIMEType は構造化出力として要求するレスポンス形式です。
	ResponseMIMEType = "application/json"
)

// Option は GeminiLayoutGenerator の任意設定です。
type Option func(*GeminiLayoutGenerator)

// WithPrompt は解析指示のプロンプトを差し替えます。空文字は無視します。
func WithPrompt(prompt string) Option {
	return func(g *GeminiLayoutGenerator) {
		if prompt != "" {
			g.prompt = prompt
		}
	}
}

// WithTemperature は生成時の temperature を指定します。
func WithTemperature(t float32) Option {
	return func(g *GeminiLayoutGenerator) {
		g.temperature = &t
	}
}
