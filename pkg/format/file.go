// Package format runs the formatting pass over syntax trees.
//
// The Driver resolves the formatting model of a file's language, lets
// pre-processors widen the range, asks the Engine for whitespace edits and
// applies them to the tree and its document together, then runs
// post-processors. Languages without a formatting model pass through
// unchanged.
package format

import (
	"github.com/yaklabco/reindent/pkg/document"
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// File is a syntax tree paired with the document it was parsed from.
type File struct {
	// Path is the file path used for display and diffs.
	Path string

	// Language is the file's language. It may be nil for unknown files.
	Language *lang.Language

	// Root is the root of the syntax tree.
	Root *syntax.Node

	// Document holds the text of the file.
	Document *document.Document
}

// NewFile parses text in language and creates its document.
func NewFile(path string, language *lang.Language, text string) *File {
	return &File{
		Path:     path,
		Language: language,
		Root:     language.ParseText(text),
		Document: document.New(text),
	}
}

// Text returns the text of the syntax tree.
func (f *File) Text() string {
	return f.Root.Text()
}

// InSync reports whether the tree and the document hold the same text.
func (f *File) InSync() bool {
	return f.Root.Text() == f.Document.Text()
}

// Commit re-parses the tree from the document if the document changed
// behind the tree's back. It reports whether a new tree was built.
func (f *File) Commit() bool {
	if f.InSync() {
		return false
	}
	f.Root = f.Language.ParseText(f.Document.Text())
	return true
}
