package document

import "fmt"

// Marker tracks an offset in a document across edits.
type Marker struct {
	doc    *Document
	offset int
	id     uint64
}

// CreateMarker creates a marker at offset, clamped to the text bounds.
func (d *Document) CreateMarker(offset int) *Marker {
	offset = max(0, min(offset, len(d.text)))
	d.nextID++
	m := &Marker{doc: d, offset: offset, id: d.nextID}
	d.markers.Set(m)
	return m
}

// MarkerCount returns the number of live markers.
func (d *Document) MarkerCount() int {
	return d.markers.Len()
}

// Offset returns the current offset of the marker.
func (m *Marker) Offset() int {
	return m.offset
}

// Valid reports whether the marker has not been disposed.
func (m *Marker) Valid() bool {
	return m != nil && m.doc != nil
}

// Dispose stops tracking the marker. Disposing twice is a no-op.
func (m *Marker) Dispose() {
	if !m.Valid() {
		return
	}
	m.doc.markers.Delete(m)
	m.doc = nil
}

func (m *Marker) String() string {
	return fmt.Sprintf("Marker(%d)", m.offset)
}
