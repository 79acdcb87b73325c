package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/reindent/pkg/lang"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minLastColumn  = 12
	ellipsis       = "..."
	formatterYes   = "yes"
	formatterNo    = "-"
	tableSeparator = "-"
)

// LanguageRow is one row of the languages table.
type LanguageRow struct {
	Name       string
	Formatter  bool
	Extensions []string
	Aliases    []string
}

// LanguageRows converts registered languages to table rows.
func LanguageRows(languages []*lang.Language) []LanguageRow {
	rows := make([]LanguageRow, 0, len(languages))
	for _, language := range languages {
		rows = append(rows, LanguageRow{
			Name:       language.Name,
			Formatter:  language.HasFormatter(),
			Extensions: language.Extensions,
			Aliases:    language.Aliases,
		})
	}
	return rows
}

// FormatLanguageTable renders rows as an aligned table no wider than width.
// The last column is truncated to fit.
func (s *Styles) FormatLanguageTable(rows []LanguageRow, width int) string {
	if len(rows) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultTermWidth
	}

	header := []string{"LANGUAGE", "FORMATTER", "EXTENSIONS", "ALIASES"}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		formatter := formatterNo
		if row.Formatter {
			formatter = formatterYes
		}
		cells = append(cells, []string{
			row.Name,
			formatter,
			strings.Join(row.Extensions, " "),
			strings.Join(row.Aliases, ", "),
		})
	}

	widths := make([]int, len(header))
	for i, title := range header {
		widths[i] = lipgloss.Width(title)
	}
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	last := len(widths) - 1
	used := 0
	for i := range last {
		used += widths[i] + tablePadding
	}
	widths[last] = min(widths[last], max(minLastColumn, width-used))

	var builder strings.Builder
	s.writeTableRow(&builder, header, widths, s.TableHeader)
	total := used + widths[last]
	builder.WriteString(s.TableBorder.Render(strings.Repeat(tableSeparator, total)))
	builder.WriteString("\n")
	for _, row := range cells {
		s.writeTableRow(&builder, row, widths, lipgloss.NewStyle())
	}
	return builder.String()
}

func (s *Styles) writeTableRow(builder *strings.Builder, row []string, widths []int, style lipgloss.Style) {
	last := len(row) - 1
	for i, cell := range row {
		cell = truncate(cell, widths[i])
		if i == last {
			builder.WriteString(style.Render(cell))
			break
		}
		padded := cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+tablePadding)
		builder.WriteString(style.Render(padded))
	}
	builder.WriteString("\n")
}

// truncate shortens str to at most width display columns, marking the cut
// with an ellipsis.
func truncate(str string, width int) string {
	if lipgloss.Width(str) <= width {
		return str
	}
	if width <= len(ellipsis) {
		return ellipsis[:width]
	}

	runes := []rune(str)
	for len(runes) > 0 && lipgloss.Width(string(runes))+len(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
