package textedit

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// UnifiedDiff returns a unified diff between before and after, labelled with
// path. It returns "" when the texts are equal.
func UnifiedDiff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	path = strings.TrimPrefix(path, "/")
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return diff, nil
}

// noNewlineMarker follows a last line that has no line break, as in git.
const noNewlineMarker = "\\ No newline at end of file\n"

// splitLines splits text into lines that keep their "\n". A last line
// without one is terminated and followed by noNewlineMarker.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + "\n" + noNewlineMarker
	}
	return lines
}

// GitHeader returns the "diff --git" header line for path.
func GitHeader(path string) string {
	path = strings.TrimPrefix(path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}
