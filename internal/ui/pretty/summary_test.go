package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/reindent/internal/ui/pretty"
	"github.com/yaklabco/reindent/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		check bool
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "All files formatted (3 files checked)\n",
		},
		{
			name:  "clean single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "All files formatted (1 file checked)\n",
		},
		{
			name:  "would reformat",
			stats: runner.Stats{FilesProcessed: 4, FilesChanged: 1, FilesSkipped: 2},
			check: true,
			want:  "1 file would be reformatted, 3 unchanged, 2 skipped\n",
		},
		{
			name:  "written",
			stats: runner.Stats{FilesProcessed: 4, FilesChanged: 2, FilesWritten: 2, FilesErrored: 1},
			want:  "2 files reformatted, 2 unchanged, 1 failed\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.check))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 6,
		FilesProcessed:  5,
		FilesChanged:    2,
		FilesSkipped:    1,
		FilesByLanguage: map[string]int{"brace": 5},
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "  Files discovered:  6\n")
	assert.Contains(t, result, "  Files formatted:   5\n")
	assert.Contains(t, result, "  Files changed:     2\n")
	assert.Contains(t, result, "  Files skipped:     1\n")
	assert.Contains(t, result, "    brace:           5\n")
	assert.NotContains(t, result, "Files failed")
	assert.Contains(t, result, "Some files need formatting")
}

func TestFormatSummary_Clean(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesProcessed: 2})

	assert.Contains(t, result, "All files formatted")
	assert.NotContains(t, result, "Files changed")
}
