package syntax

// Meta holds per-node metadata. It is copyable: Copy carries it to duplicates.
type Meta struct {
	// Generated marks nodes synthesized programmatically rather than parsed.
	Generated bool

	// ReformatBefore asks the formatter to re-derive the whitespace before this node.
	ReformatBefore bool

	// InjectionApproved allows generic tree edits to touch this injection node.
	InjectionApproved bool

	oldIndent    int
	oldIndentSet bool
}

func newMeta() Meta {
	return Meta{}
}

// OldIndent returns the captured indentation, or -1 if none was captured.
func (m *Meta) OldIndent() int {
	if !m.oldIndentSet {
		return -1
	}
	return m.oldIndent
}

// SetOldIndent captures an encoded indentation. A negative value clears it.
func (m *Meta) SetOldIndent(indent int) {
	if indent < 0 {
		m.oldIndent = 0
		m.oldIndentSet = false
		return
	}
	m.oldIndent = indent
	m.oldIndentSet = true
}

// HasOldIndent returns true if an indentation has been captured.
func (m *Meta) HasOldIndent() bool {
	return m.oldIndentSet
}
