package intake

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/imgutil"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const (
	DefaultMaxBytes    = 20 << 20
	DefaultJPEGQuality = 85
)

// HTTPClient は、URLから画像データを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Loader はファイルパスまたはURLから画像を読み込み、ImageSource に変換します。
type Loader struct {
	httpClient    HTTPClient
	reader        remoteio.InputReader
	maxBytes      int
	compressAbove int
	jpegQuality   int
	urlCheck      func(string) (bool, error)
}

// LoaderOption は Loader の任意設定です。
type LoaderOption func(*Loader)

// WithHTTPClient はURL読み込みに使うクライアントを設定します。未設定ならURLは読み込めません。
func WithHTTPClient(c HTTPClient) LoaderOption {
	return func(l *Loader) { l.httpClient = c }
}

// WithReader は gs:// 参照の読み込みに使うリーダーを設定します。
func WithReader(r remoteio.InputReader) LoaderOption {
	return func(l *Loader) { l.reader = r }
}

// WithMaxBytes は受け付ける画像サイズの上限を設定します。
func WithMaxBytes(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// WithCompression は threshold バイトを超える画像を JPEG に再圧縮するよう設定します。
// threshold が 0 以下なら圧縮しません。
func WithCompression(threshold, quality int) LoaderOption {
	return func(l *Loader) {
		l.compressAbove = threshold
		if quality > 0 && quality <= 100 {
			l.jpegQuality = quality
		}
	}
}

// NewLoader は Loader を初期化します。
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		maxBytes:    DefaultMaxBytes,
		jpegQuality: DefaultJPEGQuality,
		urlCheck:    IsSafeURL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load は参照先のスキームで読み込み方法を選びます。
// gs:// はリモートストレージ、http(s) は LoadURL、data: はデータURL、それ以外はファイルパスです。
func (l *Loader) Load(ctx context.Context, ref string) (domain.ImageSource, error) {
	if strings.HasPrefix(ref, GCSScheme) {
		return l.LoadRemote(ctx, ref)
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.LoadURL(ctx, ref)
	}
	if strings.HasPrefix(ref, "data:") {
		return ParseDataURL(ref)
	}
	return l.LoadFile(ctx, ref)
}

// LoadFile はローカルファイルを読み込みます。
func (l *Loader) LoadFile(ctx context.Context, path string) (domain.ImageSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.ImageSource{}, fmt.Errorf("画像ファイルを開けません: %w", err)
	}
	if info.IsDir() {
		return domain.ImageSource{}, fmt.Errorf("ディレクトリは指定できません: %s", path)
	}
	if info.Size() > int64(l.maxBytes) {
		return domain.ImageSource{}, fmt.Errorf("画像が大きすぎます: %d bytes (上限 %d)", info.Size(), l.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ImageSource{}, fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
	}
	return l.fromBytes(ctx, data, path)
}

// LoadURL は安全性を確認したうえでURLから画像を取得します。
func (l *Loader) LoadURL(ctx context.Context, rawURL string) (domain.ImageSource, error) {
	if l.httpClient == nil {
		return domain.ImageSource{}, fmt.Errorf("httpClient is required to load %s", rawURL)
	}
	safe, err := l.urlCheck(rawURL)
	if err != nil {
		return domain.ImageSource{}, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	if !safe {
		return domain.ImageSource{}, fmt.Errorf("安全ではないURLが指定されました: %s", rawURL)
	}

	data, err := l.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return domain.ImageSource{}, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
	}
	if len(data) > l.maxBytes {
		return domain.ImageSource{}, fmt.Errorf("画像が大きすぎます: %d bytes (上限 %d)", len(data), l.maxBytes)
	}
	return l.fromBytes(ctx, data, rawURL)
}

// LoadRemote はリモートストレージ上のオブジェクトを読み込みます。
func (l *Loader) LoadRemote(ctx context.Context, uri string) (domain.ImageSource, error) {
	if l.reader == nil {
		return domain.ImageSource{}, fmt.Errorf("reader is required to load %s", uri)
	}

	rc, err := l.reader.Open(ctx, uri)
	if err != nil {
		return domain.ImageSource{}, fmt.Errorf("リモート画像を開けません: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, int64(l.maxBytes)+1))
	if err != nil {
		return domain.ImageSource{}, fmt.Errorf("リモート画像の読み込みに失敗しました: %w", err)
	}
	if len(data) > l.maxBytes {
		return domain.ImageSource{}, fmt.Errorf("画像が大きすぎます: %d bytes 超 (上限 %d)", l.maxBytes, l.maxBytes)
	}
	return l.fromBytes(ctx, data, uri)
}

func (l *Loader) fromBytes(ctx context.Context, data []byte, origin string) (domain.ImageSource, error) {
	mimeType := http.DetectContentType(data)

	if l.compressAbove > 0 && len(data) > l.compressAbove {
		if compressed, err := imgutil.CompressToJPEG(data, l.jpegQuality); err != nil {
			slog.WarnContext(ctx, "画像の圧縮に失敗しました。元データで続行します", "origin", origin, "error", err)
		} else if len(compressed) < len(data) {
			slog.InfoContext(ctx, "画像をJPEGに再圧縮しました", "origin", origin, "before", len(data), "after", len(compressed))
			data = compressed
			mimeType = "image/jpeg"
		}
	}

	src, err := FromBytes(data, mimeType)
	if err != nil {
		return domain.ImageSource{}, err
	}

	if w, h, _, err := imgutil.Dimensions(data); err == nil {
		src.Width, src.Height = w, h
	} else {
		slog.DebugContext(ctx, "画像寸法を取得できませんでした", "origin", origin, "error", err)
	}
	return src, nil
}
