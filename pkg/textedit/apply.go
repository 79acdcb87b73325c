package textedit

import "strings"

// Apply applies a sorted, validated slice of edits to text.
// Edits must be prepared with Prepare before calling.
func Apply(text string, edits []TextEdit) string {
	if len(edits) == 0 {
		return text
	}

	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	var out strings.Builder
	out.Grow(len(text) + delta)

	cursor := 0
	for _, e := range edits {
		out.WriteString(text[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.WriteString(text[cursor:])

	return out.String()
}

// PrepareAndApply validates, sorts and applies edits in one step.
func PrepareAndApply(text string, edits []TextEdit) (string, error) {
	prepared, err := Prepare(edits, len(text))
	if err != nil {
		return text, err
	}
	return Apply(text, prepared), nil
}
