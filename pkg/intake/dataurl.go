// Package intake は画像の受け取り口です。データURLの分解と、ファイル・URLからの読み込みを扱います。
package intake

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
)

var ErrInvalidDataURL = errors.New("invalid data URL")

// ParseDataURL は "data:image/png;base64,..." 形式の文字列からペイロードとMIMEタイプを取り出します。
// ペイロードは最初のカンマ以降、MIMEタイプは ':' と最初の ';' の間の部分です。
func ParseDataURL(s string) (domain.ImageSource, error) {
	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return domain.ImageSource{}, fmt.Errorf("%w: missing comma", ErrInvalidDataURL)
	}

	scheme, meta, ok := strings.Cut(header, ":")
	if !ok || !strings.EqualFold(strings.TrimSpace(scheme), "data") {
		return domain.ImageSource{}, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURL)
	}

	mimeType, params, ok := strings.Cut(meta, ";")
	if !ok || !hasBase64Param(params) {
		return domain.ImageSource{}, fmt.Errorf("%w: payload is not base64 encoded", ErrInvalidDataURL)
	}
	if mimeType == "" {
		return domain.ImageSource{}, fmt.Errorf("%w: missing mime type", ErrInvalidDataURL)
	}
	if payload == "" {
		return domain.ImageSource{}, fmt.Errorf("%w: empty payload", ErrInvalidDataURL)
	}

	return domain.ImageSource{Base64Data: payload, MimeType: mimeType}, nil
}

func hasBase64Param(params string) bool {
	for _, p := range strings.Split(params, ";") {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			return true
		}
	}
	return false
}

// ToDataURL は ImageSource をデータURLに組み立てます。
func ToDataURL(src domain.ImageSource) string {
	return "data:" + src.MimeType + ";base64," + src.Base64Data
}

// FromBytes は生の画像バイト列から ImageSource を作ります。
// mimeType が空の場合は内容から判定し、画像でなければエラーを返します。
func FromBytes(data []byte, mimeType string) (domain.ImageSource, error) {
	if len(data) == 0 {
		return domain.ImageSource{}, errors.New("image data is empty")
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	// "image/png; charset=..." のようなパラメータは落とす
	mimeType, _, _ = strings.Cut(mimeType, ";")
	mimeType = strings.TrimSpace(mimeType)

	if !strings.HasPrefix(mimeType, "image/") {
		return domain.ImageSource{}, fmt.Errorf("MIMEタイプが画像ではありません: %s", mimeType)
	}
	return domain.ImageSource{
		Base64Data: base64.StdEncoding.EncodeToString(data),
		MimeType:   mimeType,
	}, nil
}
