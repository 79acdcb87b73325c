// Package cli provides the Cobra command structure for reindent.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/internal/configloader"
	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/internal/ui/pretty"
	"github.com/yaklabco/reindent/pkg/config"

	// Register built-in languages.
	_ "github.com/yaklabco/reindent/pkg/lang/brace"
	_ "github.com/yaklabco/reindent/pkg/lang/markdown"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	logLevel   string
	configPath string
	color      string
}

// NewRootCommand creates the root reindent command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "reindent",
		Short: "Reconcile whitespace and indentation of source files",
		Long: `reindent rewrites the whitespace of source files from their syntax tree.

It parses each file into a lossless tree, computes the indentation every line
should have from the block structure and rewrites only the whitespace between
tokens. Code is never moved, reordered or changed otherwise. Brace languages
(Java, C, C++, C#, JavaScript, TypeScript) are formatted; Markdown is parsed
so its fenced code is left untouched.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := flags.logLevel
			if flags.debug {
				level = "debug"
			}
			if !configloader.IsValidLogLevel(level) {
				return fmt.Errorf("%w: unknown log level %q", ErrInvalidUsage, level)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(ctx, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newFormatCommand(flags))
	rootCmd.AddCommand(newIndentCommand(flags))
	rootCmd.AddCommand(newLanguagesCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	helpFormatter := NewHelpFormatter(&flags.color)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// styles returns output styles for the command's stdout.
func (g *globalFlags) styles(cmd *cobra.Command) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(g.color, cmd.OutOrStdout()))
}

// loadConfig resolves the configuration for a command, layering cli over
// the files and environment. Warnings are logged.
func (g *globalFlags) loadConfig(cmd *cobra.Command, cli *config.Config) (*config.Config, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: g.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		var validationErr *configloader.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") && !g.debug {
		logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	}
	return cfg, nil
}
