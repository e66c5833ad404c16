package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/gemini-layout-kit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		slog.Debug("コマンドが失敗しました", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", cli.ExitMessage(err))
		stop()
		os.Exit(1)
	}
}
