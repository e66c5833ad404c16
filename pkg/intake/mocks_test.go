package intake

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"testing"
)

// --- Mocks ---

type mockHTTPClient struct {
	calls     int
	lastURL   string
	fetchFunc func(ctx context.Context, url string) ([]byte, error)
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	m.lastURL = url
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return nil, nil
}

// mockReader は remoteio.InputReader を実装します。
type mockReader struct {
	opened   []string
	openFunc func(ctx context.Context, uri string) (io.ReadCloser, error)
	listFunc func(ctx context.Context, uri string, fn func(string) error) error
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	m.opened = append(m.opened, uri)
	if m.openFunc != nil {
		return m.openFunc(ctx, uri)
	}
	return nil, io.ErrUnexpectedEOF
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	if m.listFunc != nil {
		return m.listFunc(ctx, uri, fn)
	}
	return nil
}

// trackingCloser は Close が呼ばれたかを記録します。
type trackingCloser struct {
	io.Reader
	closed bool
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return nil
}

// --- Fixtures ---

// noisyPNG はJPEG再圧縮で確実に小さくなるノイズ画像を生成します。
func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	r := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)), 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}
