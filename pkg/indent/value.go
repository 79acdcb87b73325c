package indent

// Indent is a decoded indentation: whole indent units plus extra columns.
// Either part may be negative while indents are being combined; Fill
// normalizes before rendering.
type Indent struct {
	Level  int
	Spaces int
}

// FromEncoded decodes a packed indentation.
func FromEncoded(encoded int) Indent {
	level, spaces := Decode(encoded)
	return Indent{Level: level, Spaces: spaces}
}

// Encode packs the indentation into level*Factor + spaces.
func (i Indent) Encode() int {
	return i.Level*Factor + i.Spaces
}

// Normalize folds negative parts into a non-negative indentation.
// A negative level is converted to columns; negative columns borrow whole
// levels. The result never goes below zero.
func (c *Calculator) Normalize(i Indent) Indent {
	size := c.opts.IndentSize
	if i.Level < 0 {
		spaces := max(i.Spaces+i.Level*size, 0)
		return Indent{Spaces: spaces}
	}
	if i.Spaces < 0 {
		borrow := (-i.Spaces + size - 1) / size
		i.Level -= borrow
		i.Spaces += borrow * size
		if i.Level < 0 {
			i.Level = 0
		}
	}
	return i
}

// Fill renders an Indent after normalizing it.
func (c *Calculator) Fill(i Indent) string {
	return c.Render(c.Normalize(i).Encode())
}
