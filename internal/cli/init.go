package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/internal/configloader"
	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/lang"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// configDirPermissions is the mode for a created user config directory.
const configDirPermissions = 0o755

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	user   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new reindent configuration file",
		Long: `Create a new .reindent.yml configuration file in the current directory
with the default settings, ready to be customized.

Examples:
  reindent init                      Create .reindent.yml
  reindent init --user               Create the per-user config file
  reindent init --output ci.yml      Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := initPath(flags)
			if err != nil {
				return err
			}
			return runInit(cmd, path, flags.force)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the per-user config under $XDG_CONFIG_HOME/reindent")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: "+configloader.ProjectConfigFile+")")

	return cmd
}

// initPath resolves where the configuration file goes.
func initPath(flags *initFlags) (string, error) {
	switch {
	case flags.output != "" && flags.user:
		return "", fmt.Errorf("%w: --user and --output cannot be combined", ErrInvalidUsage)
	case flags.output != "":
		return flags.output, nil
	case flags.user:
		dir := configloader.UserConfigDir()
		if dir == "" {
			return "", fmt.Errorf("%w: cannot determine the user config directory", ErrInvalidUsage)
		}
		return filepath.Join(dir, "config.yaml"), nil
	default:
		return configloader.ProjectConfigFile, nil
	}
}

func runInit(cmd *cobra.Command, outputPath string, force bool) error {
	logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	languages := lang.DefaultRegistry.Languages()
	names := make([]string, 0, len(languages))
	for _, language := range languages {
		names = append(names, language.Name)
	}

	content, err := config.GenerateTemplate(names)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), configDirPermissions); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'reindent languages' to see the language names accepted under languages")

	return nil
}
