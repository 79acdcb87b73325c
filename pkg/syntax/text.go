package syntax

import "strings"

// TextRange is a half-open [StartOffset, EndOffset) byte range into a text.
type TextRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// NewTextRange creates a range, swapping the bounds if they are reversed.
func NewTextRange(start, end int) TextRange {
	if end < start {
		start, end = end, start
	}
	return TextRange{StartOffset: start, EndOffset: end}
}

// Len returns the length of the range in bytes.
func (r TextRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r TextRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r TextRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// ContainsRange returns true if other lies entirely within this range.
func (r TextRange) ContainsRange(other TextRange) bool {
	return other.StartOffset >= r.StartOffset && other.EndOffset <= r.EndOffset
}

// Intersects returns true if the ranges share at least one offset,
// or if an empty range sits inside the other.
func (r TextRange) Intersects(other TextRange) bool {
	return r.StartOffset <= other.EndOffset && other.StartOffset <= r.EndOffset
}

// Equal returns true if both ranges have the same bounds.
func (r TextRange) Equal(other TextRange) bool {
	return r.StartOffset == other.StartOffset && r.EndOffset == other.EndOffset
}

// Clamp restricts the range to [0, length].
func (r TextRange) Clamp(length int) TextRange {
	return TextRange{
		StartOffset: min(max(r.StartOffset, 0), length),
		EndOffset:   min(max(r.EndOffset, 0), length),
	}
}

// Substring returns the part of text covered by the range.
func (r TextRange) Substring(text string) string {
	c := r.Clamp(len(text))
	return text[c.StartOffset:c.EndOffset]
}

// ContainsLineBreak reports whether text contains '\n' or '\r'.
func ContainsLineBreak(text string) bool {
	return strings.ContainsAny(text, "\n\r")
}

// BlankLines counts the '\n' characters in text.
func BlankLines(text string) int {
	return strings.Count(text, "\n")
}
