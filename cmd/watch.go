package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/iconforge/core/generator"
	"github.com/tristendillon/iconforge/core/logger"
	"github.com/tristendillon/iconforge/core/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate components whenever icons change",
	Long:  "Runs generate once, then watches the input directory and regenerates on every change until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		gen, err := generator.NewIconGenerator(cfg)
		if err != nil {
			return err
		}

		regenerate := func() error {
			report, err := gen.Generate(generator.GenerateOptions{})
			if err != nil {
				return err
			}
			logger.Success("Converted %d icons (%d unchanged, %d skipped)",
				report.Converted(), report.Unchanged, len(report.Skipped))
			return nil
		}

		if err := regenerate(); err != nil {
			return fmt.Errorf("failed to generate components: %w", err)
		}

		w, err := watcher.NewIconWatcher(cfg.Input, cfg.Extensions, []string{cfg.Output}, cfg.Watch.Debounce, regenerate)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return w.Watch(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addGenerateFlags(watchCmd)
}
