package syntax

import "sort"

// LineInfo holds metadata for a single line in a text.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of text).
	EndOffset int
}

// BuildLines constructs line metadata from text.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(text string) []LineInfo {
	if len(text) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := range len(text) {
		if text[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && text[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(text),
		EndOffset:    len(text),
	})

	return lines
}

// LineAt converts a byte offset to a 1-based line number using lines from BuildLines.
// Returns 0 if the offset is out of range.
func LineAt(lines []LineInfo, offset int) int {
	if offset < 0 || len(lines) == 0 {
		return 0
	}

	lineIdx := sort.Search(len(lines), func(i int) bool {
		return lines[i].EndOffset > offset
	})
	if lineIdx >= len(lines) {
		lineIdx = len(lines) - 1
	}
	if offset < lines[lineIdx].StartOffset {
		return 0
	}

	return lineIdx + 1
}

// LineStart returns the start offset of the 1-based line, or -1 if out of range.
func LineStart(lines []LineInfo, line int) int {
	if line < 1 || line > len(lines) {
		return -1
	}
	return lines[line-1].StartOffset
}
