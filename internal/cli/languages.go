package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/internal/ui/pretty"
	"github.com/yaklabco/reindent/pkg/lang"
)

func newLanguagesCommand(global *globalFlags) *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Long: `List the languages reindent recognizes, whether it can format them and
the file extensions and aliases used to detect them.

Languages without a formatter are parsed so embedded code is left alone, but
their files are skipped when formatting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			languages := lang.DefaultRegistry.Languages()
			out := cmd.OutOrStdout()

			if namesOnly {
				for _, language := range languages {
					if _, err := io.WriteString(out, language.Name+"\n"); err != nil {
						return err
					}
				}
				return nil
			}

			table := global.styles(cmd).FormatLanguageTable(pretty.LanguageRows(languages), pretty.TerminalWidth(out))
			_, err := io.WriteString(out, table)
			return err
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names", false, "print only language names")

	return cmd
}
