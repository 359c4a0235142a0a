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
)

var rootCmd = &cobra.Command{
	Use:   "iconforge",
	Short: "Convert SVG icons into typed React components.",
	Long: `iconforge walks a directory of SVG icons and writes one React component
per icon, mirroring the directory layout, plus an index file re-exporting
every component. Icons inherit the surrounding text color and forward any
extra props to the root <svg>.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if noColor {
			logger.SetColor(false)
		}
		if logfile != "" {
			closeLog, err := logger.OpenLogFile(logfile)
			if err != nil {
				return err
			}
			closeLogFile = closeLog
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeLogFile != nil {
			return closeLogFile()
		}
		return nil
	},
}

var (
	logfile      string
	configPath   string
	verbose      bool
	noColor      bool
	closeLogFile func() error
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./iconforge.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadConfig reads the config and applies any flags the user set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input, _ = flags.GetString("input")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("ext") {
		cfg.OutputExtension, _ = flags.GetString("ext")
	}
	if flags.Changed("template") {
		cfg.Transform.Template, _ = flags.GetString("template")
	}
	if flags.Changed("index") {
		cfg.IndexFile, _ = flags.GetString("index")
	}
	if flags.Changed("on-collision") {
		cfg.OnCollision, _ = flags.GetString("on-collision")
	}
	if flags.Changed("exclude") {
		cfg.Exclude, _ = flags.GetStringSlice("exclude")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addGenerateFlags registers the flags shared by generate and watch.
func addGenerateFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().StringP("input", "i", defaults.Input, "Directory containing SVG icons")
	cmd.Flags().StringP("output", "o", defaults.Output, "Directory to write components to")
	cmd.Flags().String("ext", defaults.OutputExtension, "Extension of generated component files")
	cmd.Flags().String("template", "", "Component template: tsx or jsx (default from --ext)")
	cmd.Flags().String("index", defaults.IndexFile, "Name of the generated index file")
	cmd.Flags().String("on-collision", defaults.OnCollision, "What to do when two icons map to the same name: error or first")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns (relative to input) to skip, e.g. '**/drafts/**'")
}
