package domain

import (
	"errors"
	"fmt"
)

// Kind はエラーの分類です。
type Kind int

const (
	// KindPrecondition は画像未指定など、生成を試行する前に検出される誤りです。
	KindPrecondition Kind = iota + 1
	// KindInvocation はモデル呼び出しの失敗（通信・認証・拒否・解析不能）です。
	KindInvocation
	// KindConfig は起動時に検出される設定の誤りです。実行中に回復できません。
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindInvocation:
		return "invocation"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

const (
	// MessageNoImage は画像未指定時にユーザーへ表示するメッセージです。
	MessageNoImage = "Please upload an image first."
	// MessageGenerationFailed はモデル呼び出し失敗時の唯一のユーザー向けメッセージです。
	MessageGenerationFailed = "Failed to generate layout. The model may not have been able to process the image."
	// MessageUnknown は分類できないエラーのメッセージです。
	MessageUnknown = "An unknown error occurred."
)

// Error はユーザー向けメッセージと内部原因を分離して保持するアプリケーションエラーです。
// Message はそのまま表示してよい文言で、Err は診断ログ専用です。
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is は同じ Kind と Message を持つ *Error を同一とみなします。
// これにより errors.Is(err, ErrLayoutGenerationFailed) が原因に関わらず成立します。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrNoImage                = &Error{Kind: KindPrecondition, Message: MessageNoImage}
	ErrLayoutGenerationFailed = &Error{Kind: KindInvocation, Message: MessageGenerationFailed}
	ErrMissingAPIKey          = &Error{Kind: KindConfig, Message: "API_KEY environment variable is not set."}
)

// NewPreconditionError は事前条件違反のエラーを生成します。
func NewPreconditionError(message string, err error) *Error {
	return &Error{Kind: KindPrecondition, Message: message, Err: err}
}

// NewInvocationError はモデル呼び出し失敗を正規化したエラーを生成します。
// ユーザー向けメッセージは原因に関わらず MessageGenerationFailed です。
func NewInvocationError(err error) *Error {
	return &Error{Kind: KindInvocation, Message: MessageGenerationFailed, Err: err}
}

// NewConfigError は設定エラーを生成します。
func NewConfigError(message string, err error) *Error {
	return &Error{Kind: KindConfig, Message: message, Err: err}
}

// KindOf は err に含まれる最も外側の *Error の Kind を返します。
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// UserMessage は err をユーザーに表示してよい文言に変換します。
// 内部原因の文字列は含めません。
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return MessageUnknown
}
