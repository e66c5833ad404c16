package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressMessages は生成待ちの間に順に表示する状態メッセージです。
var progressMessages = []string{
	"Analyzing image contours...",
	"Mapping shapes to CSS...",
	"Applying color palette...",
	"Finalizing layout...",
}

const progressInterval = 2 * time.Second

// spinner は一定間隔で進捗メッセージを切り替えて表示します。
type spinner struct {
	w        io.Writer
	messages []string
	tick     <-chan time.Time
	ticker   *time.Ticker

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newSpinner(w io.Writer, interval time.Duration) *spinner {
	t := time.NewTicker(interval)
	return &spinner{w: w, messages: progressMessages, tick: t.C, ticker: t}
}

// start は最初のメッセージを表示し、以降 tick ごとに次のメッセージへ進めます。
func (s *spinner) start() {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		i := 0
		fmt.Fprintf(s.w, "\r%s", s.messages[i])
		for {
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\n")
				return
			case <-s.tick:
				i = (i + 1) % len(s.messages)
				fmt.Fprintf(s.w, "\r%s", s.messages[i])
			}
		}
	}()
}

// halt は表示を止め、ゴルーチンの終了を待ちます。複数回呼んでも安全です。
func (s *spinner) halt() {
	s.once.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		if s.stop != nil {
			close(s.stop)
			<-s.done
		}
	})
}
