/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/iconforge/core/generator"
	"github.com/tristendillon/iconforge/core/logger"
)

var dryRun bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates components and the index file from the icon directory",
	Long: `Generates one component per SVG icon found under the input directory and
an index file re-exporting all of them. Icons without an <svg> element are
skipped with a warning.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("generate called")
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		gen, err := generator.NewIconGenerator(cfg)
		if err != nil {
			return err
		}

		report, err := gen.Generate(generator.GenerateOptions{DryRun: dryRun})
		if err != nil {
			return fmt.Errorf("failed to generate components: %w", err)
		}

		logger.Success("Converted %d icons (%d unchanged, %d skipped)",
			report.Converted(), report.Unchanged, len(report.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addGenerateFlags(generateCmd)
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be written without writing anything")
}
