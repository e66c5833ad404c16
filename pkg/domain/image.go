package domain

import (
	"encoding/base64"
	"fmt"
)

// ImageSource はモデルへ送信する画像です。
// Base64Data はデータURLから取り出したペイロード部分で、Width/Height は判明している場合のみ設定されます。
type ImageSource struct {
	Base64Data string
	MimeType   string
	Width      int
	Height     int
}

// Decode は Base64 ペイロードをバイト列に戻します。
func (s ImageSource) Decode() ([]byte, error) {
	if s.Base64Data == "" {
		return nil, fmt.Errorf("image payload is empty")
	}
	data, err := base64.StdEncoding.DecodeString(s.Base64Data)
	if err != nil {
		return nil, fmt.Errorf("image payload is not valid base64: %w", err)
	}
	return data, nil
}

// HasDimensions はピクセル寸法が判明しているかを返します。
func (s ImageSource) HasDimensions() bool {
	return s.Width > 0 && s.Height > 0
}
