package session

import (
	"context"
	"sync"
	"time"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/logger"
)

// --- Mocks ---

type mockLayoutGenerator struct {
	mu           sync.Mutex
	calls        int
	lastSource   domain.ImageSource
	lastReqID    string
	generateFunc func(ctx context.Context, src domain.ImageSource) (*domain.LayoutData, error)
}

func (m *mockLayoutGenerator) GenerateLayout(ctx context.Context, src domain.ImageSource) (*domain.LayoutData, error) {
	m.mu.Lock()
	m.calls++
	m.lastSource = src
	m.lastReqID = logger.RequestID(ctx)
	m.mu.Unlock()
	if m.generateFunc != nil {
		return m.generateFunc(ctx, src)
	}
	return nil, nil
}

func (m *mockLayoutGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type observation struct {
	result   string
	elements int
	duration time.Duration
}

type mockRecorder struct {
	mu   sync.Mutex
	seen []observation
}

func (m *mockRecorder) ObserveSuccess(d time.Duration, elements int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observation{result: "success", elements: elements, duration: d})
}

func (m *mockRecorder) ObserveFailure(result string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observation{result: result, duration: d})
}

// --- Fixtures ---

const pngDataURL = "data:image/png;base64,iVBORw0KGgo="

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
