package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/runner"
)

type indentFlags struct {
	line    int
	useTabs bool
	diff    bool
}

func newIndentCommand(global *globalFlags) *cobra.Command {
	var cfg config.Config
	flags := &indentFlags{}

	cmd := &cobra.Command{
		Use:   "indent <file> --line N",
		Short: "Reindent a single line of a file",
		Long: `Reindent one line of a file the way an editor does when Enter or Tab is
pressed, leaving every other line alone.

The result is printed to stdout unless --write is given.

Examples:
  reindent indent --line 12 src/Main.java
  reindent indent --line 12 --write src/Main.java
  reindent indent --line 3 --diff a.c`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.line < 1 {
				return fmt.Errorf("%w: --line must be a positive line number", ErrInvalidUsage)
			}

			cfg.Indent.UseTabs = flags.useTabs
			if flags.diff {
				cfg.Format = config.FormatDiff
			}

			resolved, err := global.loadConfig(cmd, &cfg)
			if err != nil {
				return err
			}

			logging.FromContext(cmd.Context()).Debug("reindenting line",
				logging.FieldPath, args[0], "line", flags.line)

			return formatSingle(cmd, resolved, args[0], runner.Source{Line: flags.line}, global.styles(cmd))
		},
	}

	cmd.Flags().IntVarP(&flags.line, "line", "l", 0, "1-based line to reindent")
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write the file in place")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff instead of the text")
	cmd.Flags().IntVar(&cfg.Indent.IndentSize, "indent-size", 0, "columns per indent level (0 = from config)")
	cmd.Flags().IntVar(&cfg.Indent.TabSize, "tab-size", 0, "columns per tab (0 = from config)")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent with tabs")

	return cmd
}
