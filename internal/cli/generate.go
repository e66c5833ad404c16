package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/shouni/gemini-layout-kit/pkg/intake"
	"github.com/shouni/gemini-layout-kit/pkg/metrics"
	"github.com/shouni/gemini-layout-kit/pkg/session"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	outDir      string
	metricsFile string
	compress    bool
}

func newGenerateCommand(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <image-path|url|gs://bucket/object>",
		Short: "Generate a layout from an image with Gemini",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default: output.dir from config)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format to this path")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "recompress large images to JPEG before sending")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, ref string, opts *generateOptions) error {
	ctx := cmd.Context()
	cfg := a.cfg

	if err := cfg.Validate(); err != nil {
		return err
	}

	loaderOpts := []intake.LoaderOption{intake.WithMaxBytes(cfg.Intake.MaxBytes)}
	var httpClient httpkit.ClientInterface = httpkit.New(cfg.Intake.FetchTimeout)
	loaderOpts = append(loaderOpts, intake.WithHTTPClient(httpClient))
	if threshold := cfg.Intake.CompressAbove; opts.compress || threshold > 0 {
		if threshold <= 0 {
			threshold = 1
		}
		loaderOpts = append(loaderOpts, intake.WithCompression(threshold, cfg.Intake.JPEGQuality))
	}
	// GCS クライアントは gs:// 参照のときだけ作る
	if strings.HasPrefix(ref, intake.GCSScheme) {
		reader, closeReader, err := a.newReader(ctx)
		if err != nil {
			return fmt.Errorf("リモートストレージに接続できません: %w", err)
		}
		defer func() {
			if err := closeReader(); err != nil {
				slog.WarnContext(ctx, "リーダーの解放に失敗しました", "error", err)
			}
		}()
		loaderOpts = append(loaderOpts, intake.WithReader(reader))
	}

	src, err := intake.NewLoader(loaderOpts...).Load(ctx, ref)
	if err != nil {
		return fmt.Errorf("画像を読み込めません: %w", err)
	}

	gen, err := a.newGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	sess := session.New(gen, session.WithRecorder(recorder))
	sess.SetSource(src)

	sp := newSpinner(cmd.ErrOrStderr(), progressInterval)
	sp.start()
	started := time.Now()
	data, genErr := sess.Generate(ctx)
	sp.halt()

	if opts.metricsFile != "" {
		if err := recorder.WriteTextfile(opts.metricsFile); err != nil {
			slog.WarnContext(ctx, "メトリクスを書き出せませんでした", "path", opts.metricsFile, "error", err)
		}
	}

	if genErr != nil {
		return genErr
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	written, err := writeOutputs(outDir, *data, intake.ToDataURL(src))
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "レイアウトを書き出しました",
		"dir", outDir, "elements", len(data.Elements), "elapsed", time.Since(started).Round(time.Millisecond))
	for _, p := range written {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// ExitMessage はエラーをユーザーに表示する文言に変換します。
func ExitMessage(err error) string {
	if _, ok := domain.KindOf(err); ok {
		return domain.UserMessage(err)
	}
	return err.Error()
}
