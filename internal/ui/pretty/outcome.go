package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/reindent/pkg/runner"
)

// FormatOutcome renders the status line of one file, or "" when there is
// nothing to report. verbose also reports unchanged and skipped files.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, verbose bool) string {
	path := outcome.RelPath
	if path == "" {
		path = outcome.Path
	}

	switch {
	case outcome.Error != nil:
		return s.Error.Render("error") + " " + s.FilePath.Render(path) + ": " + outcome.Error.Error() + "\n"
	case outcome.Written:
		line := s.Changed.Render("reformatted") + " " + s.FilePath.Render(path)
		if outcome.BackupPath != "" {
			line += s.Dim.Render(" (backup: " + outcome.BackupPath + ")")
		}
		return line + "\n"
	case outcome.Changed:
		return s.Changed.Render("would reformat") + " " + s.FilePath.Render(path) + "\n"
	case !verbose:
		return ""
	case outcome.Skipped:
		return s.Skipped.Render("skipped") + " " + path + s.Dim.Render(" (no formatter)") + "\n"
	default:
		return s.Unchanged.Render("unchanged") + " " + path + "\n"
	}
}

// FormatDiff colorizes a unified diff line by line. Tabs are kept as is.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.SplitAfter(diff, "\n")
	var builder strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")

		style := s.DiffContext
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"), strings.HasPrefix(body, "diff "):
			style = s.DiffHeader
		case strings.HasPrefix(body, "@@"):
			style = s.DiffHunk
		case strings.HasPrefix(body, "+"):
			style = s.DiffAdd
		case strings.HasPrefix(body, "-"):
			style = s.DiffRemove
		}

		builder.WriteString(style.TabWidth(lipgloss.NoTabConversion).Render(body))
		builder.WriteString("\n")
	}
	return builder.String()
}
