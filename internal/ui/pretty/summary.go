package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/reindent/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func pluralFiles(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files reformatted, 5 unchanged, 1 skipped".
// check words changed files as "would be reformatted".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, check bool) string {
	unchanged := stats.FilesProcessed - stats.FilesChanged

	var parts []string
	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, pluralFiles(stats.FilesProcessed))))
	case check || stats.FilesWritten == 0:
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%d %s would be reformatted",
			stats.FilesChanged, pluralFiles(stats.FilesChanged))))
		parts = append(parts, fmt.Sprintf("%d unchanged", unchanged))
	default:
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%d %s reformatted",
			stats.FilesWritten, pluralFiles(stats.FilesWritten))))
		parts = append(parts, fmt.Sprintf("%d unchanged", unchanged))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files discovered", s.SummaryValue.Render, stats.FilesDiscovered)
	row("Files formatted", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesChanged > 0 {
		row("Files changed", s.Changed.Render, stats.FilesChanged)
	}
	if stats.FilesWritten > 0 {
		row("Files written", s.Success.Render, stats.FilesWritten)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Dim.Render, stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render, stats.FilesErrored)
	}

	if len(stats.FilesByLanguage) > 0 {
		builder.WriteString("\n")
		for _, name := range slices.Sorted(maps.Keys(stats.FilesByLanguage)) {
			row("  "+name, s.SummaryValue.Render, stats.FilesByLanguage[name])
		}
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed for some files"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Changed.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
