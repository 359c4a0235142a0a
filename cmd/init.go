/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tristendillon/iconforge/core/config"
	"github.com/tristendillon/iconforge/core/logger"
	"github.com/tristendillon/iconforge/core/template_engine"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter iconforge.yaml",
	Long:  `Writes an iconforge.yaml with every option set to its default value.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		path := config.DefaultFile
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		engine := template_engine.NewTemplateEngine()
		if err := engine.GenerateFile(template_engine.TEMPLATES.INIT_CONFIG, path, config.Default()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		logger.Success("Wrote %s", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Next Steps:\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  - edit input/output in %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "  - iconforge generate\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
}
