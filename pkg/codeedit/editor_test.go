package codeedit_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/reindent/pkg/codeedit"
	"github.com/yaklabco/reindent/pkg/indent"
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

const toy = "toy"

//nolint:gochecknoglobals // Test fixtures.
var (
	toyFile    = syntax.NewTokenType(toy, "FILE", 0)
	toyGroup   = syntax.NewTokenType(toy, "GROUP", 0)
	toyWord    = syntax.NewTokenType(toy, "WORD", 0)
	toyComment = syntax.NewTokenType(toy, "COMMENT", syntax.FlagComment)
	toyInject  = syntax.NewTokenType(toy, "INJECTION", syntax.FlagInjection)
)

// newEditor returns an editor for the toy language: a line break is
// mandatory after words ending in ";" or "{" and a space before words starting with "-".
func newEditor() *codeedit.Editor {
	registry := lang.NewRegistry()
	registry.Register(&lang.Language{
		Name: toy,
		Spacing: func(left, right *syntax.Node) lang.Spacing {
			text := left.LeafText()
			switch {
			case strings.HasSuffix(text, ";"), strings.HasSuffix(text, "{"):
				return lang.SpacingLineBreak
			case strings.HasPrefix(right.LeafText(), "-"):
				return lang.SpacingSpace
			}
			return lang.SpacingNone
		},
	})
	return codeedit.New(registry, indent.Fixed(indent.DefaultOptions()))
}

func word(text string) *syntax.Node {
	return syntax.NewLeaf(toyWord, text)
}

func ws(text string) *syntax.Node {
	return syntax.NewWhitespace(text)
}

func file(children ...*syntax.Node) *syntax.Node {
	return syntax.NewComposite(toyFile, children...)
}

func TestAddChildInheritsIndent(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	lineBreak := ws("\n")
	root := file(word("class Foo {"), ws("\n    "), word("int x;"), lineBreak, word("}"))

	added := word("int y;")
	got, err := editor.AddChild(root, added, lineBreak)
	require.NoError(t, err)

	assert.Same(t, added, got)
	assert.Equal(t, "class Foo {\n    int x;\n    int y;\n}", root.Text())
	require.NoError(t, syntax.Validate(root))

	before := added.Prev
	require.True(t, before.IsWhitespace())
	assert.Equal(t, "\n    ", before.LeafText())
	assert.True(t, codeedit.IsNodeGenerated(before))
	assert.True(t, codeedit.IsMarkedToReformatBefore(added.Next))
	assert.Equal(t, 0, codeedit.OldIndentation(added))
}

func TestReconcileMergeTieBreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		left     string
		right    string
		force    bool
		want     string
		keepLeft bool
	}{
		{"more breaks on left", "\n\n", "\n", false, "\n\n", true},
		{"more breaks on left forced", "\n\n", "\n", true, "\n\n", false},
		{"more breaks on right", "\n", "\n\n", false, "\n\n", false},
		{"both empty", "", "", false, "", true},
		{"no breaks concatenate", "  ", " ", false, "   ", false},
		{"equal breaks keep left", "\n  ", "\n", false, "\n  ", true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			left, right := ws(testCase.left), ws(testCase.right)
			root := file(word("a"), left, right, word("b"))

			got := newEditor().Reconcile(left, right, testCase.force, false)

			assert.Equal(t, testCase.want, got.LeafText())
			assert.Equal(t, "a"+testCase.want+"b", root.Text())
			assert.Nil(t, right.Parent)
			assert.Equal(t, testCase.keepLeft, got == left)
			assert.Equal(t, testCase.force, codeedit.IsMarkedToReformatBefore(got))
			require.NoError(t, syntax.Validate(root))
		})
	}
}

func TestReconcileEdges(t *testing.T) {
	t.Parallel()

	editor := newEditor()

	t.Run("nil right", func(t *testing.T) {
		t.Parallel()

		left := word("a")
		assert.Same(t, left, editor.Reconcile(left, nil, true, true))
	})

	t.Run("nil left marks right", func(t *testing.T) {
		t.Parallel()

		right := word("a")
		file(right)
		assert.Same(t, right, editor.Reconcile(nil, right, false, false))
		assert.True(t, codeedit.IsMarkedToReformatBefore(right))
	})

	t.Run("whitespace then word is trusted", func(t *testing.T) {
		t.Parallel()

		left, right := ws(" "), word("a")
		file(word("x"), left, right)
		assert.Same(t, left, editor.Reconcile(left, right, false, false))
		assert.False(t, codeedit.IsMarkedToReformatBefore(left))
	})

	t.Run("forced whitespace then word is frozen", func(t *testing.T) {
		t.Parallel()

		left, right := ws(" "), word("a")
		root := file(word("x"), left, right)
		got := editor.Reconcile(left, right, true, false)
		assert.NotSame(t, left, got)
		assert.Equal(t, " ", got.LeafText())
		assert.True(t, codeedit.IsMarkedToReformatBefore(got))
		assert.Equal(t, "x a", root.Text())
	})

	t.Run("mandatory space", func(t *testing.T) {
		t.Parallel()

		left, right := word("a"), word("-b")
		root := file(left, right)
		editor.Reconcile(left, right, false, false)
		assert.Equal(t, "a -b", root.Text())
	})

	t.Run("optional spacing marks right", func(t *testing.T) {
		t.Parallel()

		left, right := word("a"), word("b")
		root := file(left, right)
		editor.Reconcile(left, right, false, false)
		assert.Equal(t, "ab", root.Text())
		assert.True(t, codeedit.IsMarkedToReformatBefore(right))
	})

	t.Run("different languages", func(t *testing.T) {
		t.Parallel()

		left := word("a;")
		right := syntax.NewLeaf(syntax.NewTokenType("other", "WORD", 0), "b")
		root := file(left, right)
		editor.Reconcile(left, right, false, false)
		assert.Equal(t, "a;b", root.Text())
		assert.True(t, codeedit.IsMarkedToReformatBefore(right))
	})
}

func TestReconcileIsIdempotent(t *testing.T) {
	t.Parallel()

	scenarios := map[string]func() (*syntax.Node, *syntax.Node, *syntax.Node){
		"line break": func() (*syntax.Node, *syntax.Node, *syntax.Node) {
			left, right := word("a;"), word("b")
			return file(ws("  "), left, right), left, right
		},
		"merge": func() (*syntax.Node, *syntax.Node, *syntax.Node) {
			left, right := ws("\n"), ws("\n\n")
			return file(word("a"), left, right, word("b")), left, right
		},
		"no spacing": func() (*syntax.Node, *syntax.Node, *syntax.Node) {
			left, right := word("a"), word("b")
			return file(left, right), left, right
		},
	}

	for name, build := range scenarios {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			editor := newEditor()
			root, left, right := build()

			left = editor.Reconcile(left, right, false, false)
			if right.Parent == nil {
				right = syntax.NextLeaf(left)
			}
			text := root.Text()
			shape := leafTexts(root)
			marked := codeedit.IsMarkedToReformatBefore(right)

			editor.Reconcile(left, right, false, false)

			assert.Equal(t, text, root.Text())
			assert.Equal(t, shape, leafTexts(root))
			assert.Equal(t, marked, codeedit.IsMarkedToReformatBefore(right))
			require.NoError(t, syntax.Validate(root))
		})
	}
}

func TestRemoveTrailingChildNormalizesWhitespace(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	trailing := ws("\n")
	removed := word("b")
	group := syntax.NewComposite(toyGroup, word("a"), trailing, removed)
	after := word("c")
	root := file(group, after)

	require.NoError(t, editor.RemoveChild(group, removed))

	assert.Equal(t, "ac", root.Text())
	assert.Nil(t, trailing.Parent)
	assert.True(t, codeedit.IsMarkedToReformatBefore(after))
	require.NoError(t, syntax.Validate(root))
}

func TestRemoveTrailingChildAtEndOfFile(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	removed := word("b")
	group := syntax.NewComposite(toyGroup, word("a"), ws("\n"), removed)
	root := file(group)

	require.NoError(t, editor.RemoveChild(group, removed))

	assert.Equal(t, "a\n", root.Text())
	require.NoError(t, syntax.Validate(root))
}

func TestRemoveChildMergesNeighbours(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	removed := word("b")
	root := file(word("a"), ws("\n"), removed, ws("\n\n"), word("c"))

	require.NoError(t, editor.RemoveChild(root, removed))

	assert.Equal(t, "a\n\nc", root.Text())
	assert.Equal(t, 0, codeedit.OldIndentation(removed))
	require.NoError(t, syntax.Validate(root))
}

func TestRemoveOnlyContentDoesNotForce(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	removed := word("b")
	group := syntax.NewComposite(toyGroup, removed)
	space := ws(" ")
	root := file(group, space, word("c"))

	require.NoError(t, editor.RemoveChild(group, removed))

	assert.Equal(t, " c", root.Text())
	assert.Same(t, space, root.Children()[1])
	assert.True(t, codeedit.IsMarkedToReformatBefore(space))
}

func TestAddChildrenBeforeComment(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	space := ws("\n")
	comment := syntax.NewLeaf(toyComment, "// note")
	root := file(word("a;"), space, comment, ws("\n"), word("b"))

	added := word("c;")
	_, err := editor.AddChild(root, added, comment)
	require.NoError(t, err)

	assert.Equal(t, "a;\nc;\n// note\nb", root.Text())
	require.True(t, added.Next.IsWhitespace())
	assert.Same(t, comment, added.Next.Next)
	require.NoError(t, syntax.Validate(root))
}

func TestAddChildrenMergesInsertedWhitespace(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	root := file(word("a"), ws("\n"), word("b"))

	inserted := ws("\n\n")
	got, err := editor.AddChild(root, inserted, root.LastChild)
	require.NoError(t, err)

	assert.Nil(t, inserted.Parent)
	assert.Equal(t, "\n\n", got.LeafText())
	assert.Equal(t, "a\n\nb", root.Text())
	require.NoError(t, syntax.Validate(root))
}

func TestAddChildrenSkipsGeneratedIndentCapture(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	root := file(word("a;"), ws("\n"), word("b;"))

	generated := word("g;")
	codeedit.SetNodeGenerated(generated, true)
	captured := word("c;")
	codeedit.SetOldIndentation(captured, 8)

	first, last := syntax.Chain(generated, captured)
	_, err := editor.AddChildren(root, first, last, nil)
	require.NoError(t, err)

	assert.Equal(t, -1, codeedit.OldIndentation(generated))
	assert.Equal(t, 8, codeedit.OldIndentation(captured))
	// Only the boundaries of the inserted range are reconciled.
	assert.Equal(t, "a;\nb;\ng;c;", root.Text())
}

func TestReplaceChild(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	old := word("b")
	root := file(word("a"), ws(" "), old, ws("\n"), word("c"))

	replacement := word("bb")
	require.NoError(t, editor.ReplaceChild(root, old, replacement))

	assert.Equal(t, "a bb\nc", root.Text())
	assert.Nil(t, old.Parent)
	assert.True(t, codeedit.IsMarkedToReformatBefore(replacement.Prev))
	assert.GreaterOrEqual(t, codeedit.OldIndentation(old), 0)
	require.NoError(t, syntax.Validate(root))
}

func TestReplaceChildBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		children    func(old *syntax.Node) []*syntax.Node
		replacement *syntax.Node
		want        string
	}{
		{
			name: "next whitespace without line break is refreshed",
			children: func(old *syntax.Node) []*syntax.Node {
				return []*syntax.Node{word("a"), ws(" "), old, ws(" "), word("c")}
			},
			replacement: word("bb"),
			want:        "a bb c",
		},
		{
			name: "whitespace replacement merged into the left whitespace",
			children: func(old *syntax.Node) []*syntax.Node {
				return []*syntax.Node{word("a"), ws(" "), old, ws(" "), word("c")}
			},
			replacement: ws("\n"),
			want:        "a\nc",
		},
		{
			name: "whitespace replacement refreshed after a word",
			children: func(old *syntax.Node) []*syntax.Node {
				return []*syntax.Node{word("a"), old, ws(" "), word("c")}
			},
			replacement: ws("\n"),
			want:        "a\nc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			editor := newEditor()
			old := word("b")
			root := file(tt.children(old)...)

			require.NoError(t, editor.ReplaceChild(root, old, tt.replacement))

			assert.Equal(t, tt.want, root.Text())
			require.NoError(t, syntax.Validate(root))
			last := root.LastChild
			require.True(t, last.Prev.IsWhitespace())
			assert.True(t, codeedit.IsMarkedToReformatBefore(last.Prev) || codeedit.IsMarkedToReformatBefore(last))
		})
	}
}

func TestAddChildrenFirstWhitespaceRefreshed(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	root := file(word("a"), word("b"))

	inserted := ws(" ")
	got, err := editor.AddChild(root, inserted, root.LastChild)
	require.NoError(t, err)

	assert.Equal(t, "a b", root.Text())
	require.NotNil(t, got)
	assert.True(t, got.IsWhitespace())
	assert.Same(t, root.LastChild.Prev, got)
	require.NoError(t, syntax.Validate(root))
}

func TestReplaceChildWithEmptyComposite(t *testing.T) {
	t.Parallel()

	editor := newEditor()
	old := word("b")
	after := word("c")
	root := file(old, ws(" "), after)

	require.NoError(t, editor.ReplaceChild(root, old, syntax.NewComposite(toyGroup)))

	assert.Equal(t, "c", root.Text())
	assert.True(t, codeedit.IsMarkedToReformatBefore(after))
	require.NoError(t, syntax.Validate(root))
}

func TestInjectionGuard(t *testing.T) {
	t.Parallel()

	newTree := func() (*syntax.Node, *syntax.Node) {
		injection := syntax.NewComposite(toyInject, word("foreign"))
		return file(word("a"), ws(" "), injection), injection
	}

	operations := map[string]func(editor *codeedit.Editor, root, injection *syntax.Node) error{
		"add": func(editor *codeedit.Editor, root, _ *syntax.Node) error {
			_, err := editor.AddChild(root, syntax.NewComposite(toyInject, word("x")), nil)
			return err
		},
		"add nested": func(editor *codeedit.Editor, root, _ *syntax.Node) error {
			wrapper := syntax.NewComposite(toyGroup, syntax.NewComposite(toyInject, word("x")))
			_, err := editor.AddChild(root, wrapper, nil)
			return err
		},
		"remove": func(editor *codeedit.Editor, root, injection *syntax.Node) error {
			return editor.RemoveChild(root, injection)
		},
		"replace": func(editor *codeedit.Editor, root, injection *syntax.Node) error {
			return editor.ReplaceChild(root, injection, word("b"))
		},
	}

	for name, operation := range operations {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root, injection := newTree()
			before := leafTexts(root)

			err := operation(newEditor(), root, injection)

			require.Error(t, err)
			assert.True(t, codeedit.IsFatal(err))
			assert.True(t, errors.Is(err, codeedit.ErrForeignInjection))
			assert.Equal(t, before, leafTexts(root))
		})
	}

	t.Run("approved", func(t *testing.T) {
		t.Parallel()

		root, injection := newTree()
		codeedit.ApproveInjection(injection)

		require.NoError(t, newEditor().RemoveChild(root, injection))
		assert.Equal(t, "a ", root.Text())
	})
}

func TestSplitWhitespace(t *testing.T) {
	t.Parallel()

	space := ws("\n    ")
	root := file(word("a"), space, word("b"))
	marker := word("|")

	require.NoError(t, codeedit.SplitWhitespace(space, 1, marker))
	assert.Equal(t, "a\n|    b", root.Text())

	require.NoError(t, newEditor().RemoveChild(root, marker))
	assert.Equal(t, "a\nb", root.Text())
	require.NoError(t, syntax.Validate(root))

	assert.ErrorIs(t, codeedit.SplitWhitespace(word("x"), 0, marker), codeedit.ErrNotWhitespace)
	assert.Error(t, codeedit.SplitWhitespace(ws(" "), 0, marker))
}

func TestIsLineToBeIndented(t *testing.T) {
	t.Parallel()

	root := file(
		word("a"), ws("\n  "), word("b"), ws(" "),
		syntax.NewLeaf(toyComment, "/* x\n  y */"), ws("\n"),
	)

	assert.True(t, codeedit.IsLineToBeIndented(root, 0))
	assert.True(t, codeedit.IsLineToBeIndented(root, 4))
	assert.False(t, codeedit.IsLineToBeIndented(root, 5))
	assert.False(t, codeedit.IsLineToBeIndented(root, 13))
	assert.False(t, codeedit.IsLineToBeIndented(root, 99))
}

func TestCreateLineFeed(t *testing.T) {
	t.Parallel()

	lf := codeedit.CreateLineFeed()
	assert.Equal(t, "\n", lf.LeafText())
	assert.True(t, lf.IsWhitespace())
	assert.True(t, codeedit.IsNodeGenerated(lf))
}

func TestMetadataSurvivesCopy(t *testing.T) {
	t.Parallel()

	node := syntax.NewComposite(toyGroup, word("a"))
	codeedit.SetNodeGeneratedRecursively(node, true)
	codeedit.SetOldIndentation(node, 2*indent.Factor)
	codeedit.MarkToReformatBefore(node, true)

	dup := syntax.Copy(node)
	assert.True(t, codeedit.IsNodeGenerated(dup))
	assert.True(t, codeedit.IsNodeGenerated(dup.FirstChild))
	assert.Equal(t, 2*indent.Factor, codeedit.OldIndentation(dup))
	assert.True(t, codeedit.IsMarkedToReformatBefore(dup))
}

func leafTexts(root *syntax.Node) []string {
	var texts []string
	for leaf := range root.Leaves() {
		texts = append(texts, leaf.LeafText())
	}
	return texts
}
