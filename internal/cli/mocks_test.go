package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/shouni/gemini-layout-kit/pkg/config"
	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/generator"
)

// --- Mocks ---

type mockLayoutGenerator struct {
	calls        int
	lastSource   domain.ImageSource
	generateFunc func(ctx context.Context, src domain.ImageSource) (*domain.LayoutData, error)
}

func (m *mockLayoutGenerator) GenerateLayout(ctx context.Context, src domain.ImageSource) (*domain.LayoutData, error) {
	m.calls++
	m.lastSource = src
	if m.generateFunc != nil {
		return m.generateFunc(ctx, src)
	}
	return nil, nil
}

func factoryFor(gen generator.LayoutGenerator) generatorFactory {
	return func(ctx context.Context, cfg *config.Config) (generator.LayoutGenerator, error) {
		return gen, nil
	}
}

// mockReader は remoteio.InputReader を実装します。
type mockReader struct {
	openFunc func(ctx context.Context, uri string) (io.ReadCloser, error)
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	return m.openFunc(ctx, uri)
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

// syncBuffer はスピナーとロガーが並行して書き込むための bytes.Buffer です。
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// --- Fixtures ---

func pngFile(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 8), uint8(y * 8), 128, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func element(id, text, align string, z int, opacity float64) domain.LayoutElement {
	return domain.LayoutElement{
		ID: id, Top: "10px", Left: "10px", Width: "100px", Height: "50px",
		TextContent: text, FontFamily: "Arial, sans-serif", FontSize: "16px", FontWeight: "700",
		Color: "#ffffff", TextAlign: align, TextShadow: "none",
		Background: "#1f2937", BorderRadius: "8px", Border: "none", BoxShadow: "none",
		ZIndex: z, Transform: "none",
		Opacity: opacity, Filter: "none", ClipPath: "none", MixBlendMode: "normal",
	}
}

func sampleLayout() *domain.LayoutData {
	return &domain.LayoutData{
		Container: domain.LayoutContainer{Width: "400px", Height: "300px", BackgroundColor: "#111827"},
		Elements: []domain.LayoutElement{
			element("a", "Hi", "left", 1, 1),
			element("b", "There", "center", 2, 0.5),
		},
	}
}
