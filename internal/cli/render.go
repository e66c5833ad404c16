package cli

import (
	"fmt"
	"os"

	"github.com/shouni/gemini-layout-kit/pkg/schema"
	"github.com/spf13/cobra"
)

func newRenderCommand(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Re-run markup, stylesheet and preview generation on a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("レイアウトを読み込めません: %w", err)
			}
			data, err := schema.Decode(raw)
			if err != nil {
				return fmt.Errorf("%s はレイアウトとして不正です: %w", args[0], err)
			}

			dir := outDir
			if dir == "" {
				dir = a.cfg.Output.Dir
			}
			written, err := writeOutputs(dir, data, "")
			if err != nil {
				return err
			}
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: output.dir from config)")
	return cmd
}
