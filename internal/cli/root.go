// Package cli は layoutgen コマンドの定義です。
package cli

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-layout-kit/pkg/config"
	"github.com/shouni/gemini-layout-kit/pkg/generator"
	"github.com/shouni/gemini-layout-kit/pkg/intake"
	"github.com/shouni/gemini-layout-kit/pkg/logger"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/spf13/cobra"
)

// generatorFactory は設定からレイアウト生成器を作る関数です。テストで差し替えます。
type generatorFactory func(ctx context.Context, cfg *config.Config) (generator.LayoutGenerator, error)

// readerFactory は gs:// 参照用のリーダーと、その解放関数を作ります。
type readerFactory func(ctx context.Context) (remoteio.InputReader, func() error, error)

type app struct {
	configPath   string
	cfg          *config.Config
	newGenerator generatorFactory
	newReader    readerFactory
}

// NewRootCommand は layoutgen のルートコマンドを組み立てます。
func NewRootCommand() *cobra.Command {
	return newRootCommand(newGeminiGenerator)
}

func newRootCommand(factory generatorFactory, opts ...func(*app)) *cobra.Command {
	a := &app{newGenerator: factory, newReader: newGCSReader}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "layoutgen",
		Short:         "Turn a UI screenshot into absolutely positioned HTML/CSS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.InitWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newGenerateCommand(a), newRenderCommand(a))
	return root
}

// Execute はルートコマンドを実行します。
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newGCSReader(ctx context.Context) (remoteio.InputReader, func() error, error) {
	r, err := intake.NewGCSReader(ctx)
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}

func newGeminiGenerator(ctx context.Context, cfg *config.Config) (generator.LayoutGenerator, error) {
	client, err := generator.NewGenAIClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	gen, err := generator.NewGeminiLayoutGenerator(client.Models, cfg.Model, generator.WithTemperature(cfg.Temperature))
	if err != nil {
		return nil, fmt.Errorf("生成器の初期化に失敗しました: %w", err)
	}
	return gen, nil
}
