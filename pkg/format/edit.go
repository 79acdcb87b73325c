package format

import (
	"fmt"

	"github.com/yaklabco/reindent/pkg/syntax"
	"github.com/yaklabco/reindent/pkg/textedit"
)

// change rewrites one piece of whitespace. space is an existing whitespace
// leaf to replace. Otherwise new whitespace is inserted in front of before,
// or appended to the file when before is nil.
type change struct {
	space  *syntax.Node
	before *syntax.Node
	text   string
}

func (c change) edit(root *syntax.Node) textedit.TextEdit {
	var start, end int
	switch {
	case c.space != nil:
		r := c.space.TextRange()
		start, end = r.StartOffset, r.EndOffset
	case c.before != nil:
		start = c.before.StartOffset()
		end = start
	default:
		start = root.TextLength()
		end = start
	}
	return textedit.TextEdit{StartOffset: start, EndOffset: end, NewText: c.text}
}

// applyChanges writes changes to the document first and, only when the
// document accepted them, to the tree. The tree is left untouched on error.
func (f *File) applyChanges(changes []change) error {
	if len(changes) == 0 {
		return nil
	}
	if !f.InSync() {
		return fmt.Errorf("%w: document and tree differ", ErrOperationFailed)
	}

	edits := make([]textedit.TextEdit, len(changes))
	for i, c := range changes {
		edits[i] = c.edit(f.Root)
	}
	if err := f.Document.Apply(edits); err != nil {
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	for _, c := range changes {
		switch {
		case c.space == nil:
			space := syntax.NewWhitespace(c.text)
			space.Meta.Generated = true
			if c.before == nil {
				syntax.AppendChild(f.Root, space)
			} else {
				syntax.InsertBefore(syntax.OutermostStart(c.before, syntax.PrevLeaf(c.before)), space)
			}
		case c.text == "":
			syntax.RemoveChild(c.space.Parent, c.space)
		default:
			fresh := syntax.NewWhitespace(c.text)
			fresh.Meta = c.space.Meta
			fresh.Meta.ReformatBefore = false
			syntax.ReplaceChild(c.space.Parent, c.space, fresh)
		}
	}
	return nil
}
