// Package document holds the text a syntax tree was parsed from, together
// with markers that track offsets through edits.
//
// A Document is not safe for concurrent use.
package document

import (
	"cmp"
	"fmt"

	"github.com/tidwall/btree"

	"github.com/yaklabco/reindent/pkg/syntax"
	"github.com/yaklabco/reindent/pkg/textedit"
)

// Document is a mutable text buffer.
type Document struct {
	text    string
	lines   []syntax.LineInfo
	markers *btree.BTreeG[*Marker]
	nextID  uint64
	stamp   uint64
}

// New creates a document holding text.
func New(text string) *Document {
	return &Document{
		text:    text,
		markers: btree.NewBTreeG(lessMarker),
	}
}

// Text returns the current text.
func (d *Document) Text() string {
	return d.text
}

// Len returns the text length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// Stamp returns a counter that increases with every applied change.
func (d *Document) Stamp() uint64 {
	return d.stamp
}

// Lines returns the line table of the current text.
func (d *Document) Lines() []syntax.LineInfo {
	if d.lines == nil {
		d.lines = syntax.BuildLines(d.text)
	}
	return d.lines
}

// LineAt returns the 1-based line holding offset, or 0 when out of range.
func (d *Document) LineAt(offset int) int {
	return syntax.LineAt(d.Lines(), offset)
}

// Apply applies edits to the text and moves every marker through them.
// The edits are validated first; on error the document is unchanged.
func (d *Document) Apply(edits []textedit.TextEdit) error {
	prepared, err := textedit.Prepare(edits, len(d.text))
	if err != nil {
		return fmt.Errorf("apply edits: %w", err)
	}
	if len(prepared) == 0 {
		return nil
	}

	d.text = textedit.Apply(d.text, prepared)
	d.lines = nil
	d.stamp++
	d.shiftMarkers(prepared)
	return nil
}

// Replace replaces bytes [start, end) with text.
func (d *Document) Replace(start, end int, text string) error {
	return d.Apply([]textedit.TextEdit{{StartOffset: start, EndOffset: end, NewText: text}})
}

// SetText replaces the whole text. Markers collapse to offset 0.
func (d *Document) SetText(text string) {
	//nolint:errcheck // A whole-text replacement is always valid.
	_ = d.Replace(0, len(d.text), text)
}

// shiftMarkers moves the markers at or after the first edit. Markers before
// it keep their offsets.
func (d *Document) shiftMarkers(edits []textedit.TextEdit) {
	pivot := &Marker{offset: edits[0].StartOffset}

	var moved []*Marker
	d.markers.Ascend(pivot, func(m *Marker) bool {
		moved = append(moved, m)
		return true
	})

	for _, m := range moved {
		d.markers.Delete(m)
		m.offset = mapOffset(m.offset, edits)
	}
	for _, m := range moved {
		d.markers.Set(m)
	}
}

// mapOffset maps an offset through sorted, non-overlapping edits. An offset
// at the start of an edit stays in front of the new text; an offset inside
// a replaced range collapses to the start of the edit.
func mapOffset(offset int, edits []textedit.TextEdit) int {
	delta := 0
	for _, e := range edits {
		if offset <= e.StartOffset {
			break
		}
		if offset < e.EndOffset {
			return e.StartOffset + delta
		}
		delta += e.Delta()
	}
	return offset + delta
}

func lessMarker(a, b *Marker) bool {
	if c := cmp.Compare(a.offset, b.offset); c != 0 {
		return c < 0
	}
	return a.id < b.id
}
