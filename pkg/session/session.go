// Package session は画像1枚に対するレイアウト生成の状態を管理します。
// 同時に実行できる生成は常に1つだけです。
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/generator"
	"github.com/shouni/gemini-layout-kit/pkg/intake"
	"github.com/shouni/gemini-layout-kit/pkg/logger"
	"github.com/shouni/gemini-layout-kit/pkg/metrics"
	"github.com/shouni/gemini-layout-kit/pkg/synth"
)

// ErrGenerationInProgress は生成中に再度 Generate が呼ばれた場合に返されます。
// このときモデル呼び出しは行われず、状態も変化しません。
var ErrGenerationInProgress = errors.New("layout generation is already in progress")

// Recorder は生成結果を記録するメトリクスの窓口です。*metrics.Recorder が満たします。
type Recorder interface {
	ObserveSuccess(d time.Duration, elements int)
	ObserveFailure(result string, d time.Duration)
}

// Snapshot はある時点のセッション状態のコピーです。
type Snapshot struct {
	HasImage  bool
	Loading   bool
	Layout    *domain.LayoutData
	Err       string
	Artifacts *synth.Artifacts
}

// Session は入力画像・生成結果・エラー・生成中フラグを保持します。
type Session struct {
	gen      generator.LayoutGenerator
	recorder Recorder
	newID    func() string
	now      func() time.Time

	inFlight atomic.Bool

	mu        sync.Mutex
	image     *domain.ImageSource
	epoch     uint64
	layout    *domain.LayoutData
	artifacts *synth.Artifacts
	errMsg    string
}

// Option は Session の任意設定です。
type Option func(*Session)

// WithRecorder はメトリクスの記録先を設定します。
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithRequestIDFunc はリクエストIDの採番方法を差し替えます。
func WithRequestIDFunc(f func() string) Option {
	return func(s *Session) {
		if f != nil {
			s.newID = f
		}
	}
}

// New は Session を初期化します。
func New(gen generator.LayoutGenerator, opts ...Option) *Session {
	s := &Session{
		gen:   gen,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetImage はデータURLを入力画像として設定します。
// 以前の生成結果とエラーは破棄されます。
func (s *Session) SetImage(dataURL string) error {
	src, err := intake.ParseDataURL(dataURL)
	if err != nil {
		return domain.NewPreconditionError("The selected file could not be read as an image.", err)
	}
	s.SetSource(src)
	return nil
}

// SetSource は解析済みの画像を入力として設定します。
func (s *Session) SetSource(src domain.ImageSource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.image = &src
	s.epoch++
	s.layout = nil
	s.artifacts = nil
	s.errMsg = ""
}

// Generate は現在の画像からレイアウトを生成し、結果またはエラーのどちらか一方を記録します。
// 呼び出し元に返すエラーはユーザーに表示してよいメッセージを持つ *domain.Error です。
func (s *Session) Generate(ctx context.Context) (*domain.LayoutData, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		if s.recorder != nil {
			s.recorder.ObserveFailure(metrics.ResultBusy, 0)
		}
		return nil, ErrGenerationInProgress
	}
	defer s.inFlight.Store(false)

	ctx = logger.WithRequestID(ctx, s.newID())
	log := logger.FromContext(ctx)

	s.mu.Lock()
	if s.image == nil {
		s.errMsg = domain.MessageNoImage
		s.mu.Unlock()
		if s.recorder != nil {
			s.recorder.ObserveFailure(metrics.ResultPrecondition, 0)
		}
		log.WarnContext(ctx, "画像が未設定のため生成を開始できません")
		return nil, domain.ErrNoImage
	}
	src := *s.image
	epoch := s.epoch
	s.errMsg = ""
	s.mu.Unlock()

	start := s.now()
	log.InfoContext(ctx, "レイアウト生成を開始します", "mime_type", src.MimeType)

	data, err := s.gen.GenerateLayout(ctx, src)
	elapsed := s.now().Sub(start)
	if err == nil && data == nil {
		err = domain.NewInvocationError(errors.New("generator returned no layout"))
	}
	if err != nil {
		appErr := normalize(err)
		s.record(epoch, nil, appErr.Message)
		if s.recorder != nil {
			s.recorder.ObserveFailure(resultLabel(appErr), elapsed)
		}
		log.ErrorContext(ctx, "レイアウト生成に失敗しました", "elapsed", elapsed, "error", err)
		return nil, appErr
	}

	s.record(epoch, data, "")
	if s.recorder != nil {
		s.recorder.ObserveSuccess(elapsed, len(data.Elements))
	}
	log.InfoContext(ctx, "レイアウト生成が完了しました", "elapsed", elapsed, "elements", len(data.Elements))
	return data, nil
}

// record は生成開始後に画像が差し替えられていなければ結果を反映します。
func (s *Session) record(epoch uint64, data *domain.LayoutData, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return
	}
	s.layout = data
	s.errMsg = errMsg
	s.artifacts = nil
	if data != nil {
		a := synth.Synthesize(*data)
		s.artifacts = &a
	}
}

// State は現在の状態のスナップショットを返します。
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		HasImage: s.image != nil,
		Loading:  s.inFlight.Load(),
		Err:      s.errMsg,
	}
	if s.layout != nil {
		l := *s.layout
		l.Elements = append([]domain.LayoutElement(nil), s.layout.Elements...)
		snap.Layout = &l
	}
	if s.artifacts != nil {
		a := *s.artifacts
		snap.Artifacts = &a
	}
	return snap
}

// normalize は任意のエラーをユーザー向けメッセージを持つ *domain.Error に変換します。
// 分類できないエラーはモデル呼び出しの失敗として扱います。
func normalize(err error) *domain.Error {
	var appErr *domain.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr
	}
	return domain.NewInvocationError(err)
}

func resultLabel(err *domain.Error) string {
	if err.Kind == domain.KindPrecondition {
		return metrics.ResultPrecondition
	}
	return metrics.ResultInvocation
}
