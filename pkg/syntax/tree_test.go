package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/reindent/pkg/syntax"
)

//nolint:gochecknoglobals // Test fixtures.
var (
	testWord  = syntax.NewTokenType("test", "WORD", 0)
	testGroup = syntax.NewTokenType("test", "GROUP", 0)
)

func word(text string) *syntax.Node {
	return syntax.NewLeaf(testWord, text)
}

func TestNewLeaf(t *testing.T) {
	t.Parallel()

	leaf := word("abc")

	assert.True(t, leaf.IsLeaf())
	assert.False(t, leaf.IsWhitespace())
	assert.Equal(t, "abc", leaf.Text())
	assert.Equal(t, 3, leaf.TextLength())
	assert.Equal(t, -1, leaf.Meta.OldIndent())
	assert.Equal(t, "test", leaf.Language())
}

func TestCompositeText(t *testing.T) {
	t.Parallel()

	root := syntax.NewComposite(syntax.File,
		word("a"),
		syntax.NewWhitespace(" "),
		syntax.NewComposite(testGroup, word("b"), word("c")),
	)

	assert.Equal(t, "a bc", root.Text())
	assert.Equal(t, 4, root.TextLength())
	assert.Equal(t, 3, root.ChildCount())
	require.NoError(t, syntax.Validate(root))
}

func TestInsertAndRemove(t *testing.T) {
	t.Parallel()

	a, b, c := word("a"), word("b"), word("c")
	root := syntax.NewComposite(syntax.File, a, c)

	syntax.InsertBefore(c, b)
	assert.Equal(t, "abc", root.Text())

	syntax.RemoveChild(root, b)
	assert.Equal(t, "ac", root.Text())
	assert.Nil(t, b.Parent)
	assert.Nil(t, b.Prev)
	assert.Nil(t, b.Next)

	syntax.InsertAfter(c, b)
	assert.Equal(t, "acb", root.Text())
	assert.Same(t, b, root.LastChild)
	require.NoError(t, syntax.Validate(root))
}

func TestReplaceChild(t *testing.T) {
	t.Parallel()

	a, b, c := word("a"), word("b"), word("c")
	root := syntax.NewComposite(syntax.File, a, b)

	syntax.ReplaceChild(root, b, c)

	assert.Equal(t, "ac", root.Text())
	assert.Nil(t, b.Parent)
	assert.Same(t, root, c.Parent)
	require.NoError(t, syntax.Validate(root))
}

func TestAddRangeAndRemoveRange(t *testing.T) {
	t.Parallel()

	anchor := word("z")
	root := syntax.NewComposite(syntax.File, word("a"), anchor)

	first, last := syntax.Chain(word("x"), word("y"))
	syntax.AddRange(root, first, last, anchor)
	assert.Equal(t, "axyz", root.Text())

	syntax.RemoveRange(root, first, last)
	assert.Equal(t, "az", root.Text())
	require.NoError(t, syntax.Validate(root))
}

func TestLeafNavigation(t *testing.T) {
	t.Parallel()

	b, c := word("b"), word("c")
	empty := syntax.NewComposite(testGroup)
	root := syntax.NewComposite(syntax.File,
		word("a"),
		syntax.NewComposite(testGroup, b, empty, c),
		word("d"),
	)

	assert.Equal(t, "a", syntax.PrevLeaf(b).Text())
	assert.Same(t, b, syntax.PrevLeaf(c))
	assert.Equal(t, "d", syntax.NextLeaf(c).Text())
	assert.Nil(t, syntax.PrevLeaf(syntax.FirstLeaf(root)))
	assert.Nil(t, syntax.NextLeaf(syntax.LastLeaf(root)))
	assert.Nil(t, syntax.FirstLeaf(empty))
	assert.Same(t, root, syntax.Root(c))
}

func TestOffsetsAndLeafAt(t *testing.T) {
	t.Parallel()

	c := word("cd")
	root := syntax.NewComposite(syntax.File,
		word("ab"),
		syntax.NewComposite(testGroup, c),
		word("e"),
	)

	assert.Equal(t, 2, c.StartOffset())
	assert.Equal(t, syntax.TextRange{StartOffset: 2, EndOffset: 4}, c.TextRange())
	assert.Same(t, c, syntax.LeafAt(root, 3))
	assert.Equal(t, "e", syntax.LeafAt(root, 5).Text())
	assert.Nil(t, syntax.LeafAt(root, 9))
}

func TestCopyCarriesMeta(t *testing.T) {
	t.Parallel()

	inner := word("x")
	inner.Meta.Generated = true
	inner.Meta.SetOldIndent(40003)
	group := syntax.NewComposite(testGroup, inner)
	group.Meta.ReformatBefore = true

	dup := syntax.Copy(group)

	require.NotSame(t, group, dup)
	assert.Nil(t, dup.Parent)
	assert.True(t, dup.Meta.ReformatBefore)
	assert.True(t, dup.FirstChild.Meta.Generated)
	assert.Equal(t, 40003, dup.FirstChild.Meta.OldIndent())
	assert.Equal(t, group.Text(), dup.Text())
}

func TestValidateRejectsAdjacentWhitespace(t *testing.T) {
	t.Parallel()

	root := syntax.NewComposite(syntax.File,
		word("a"),
		syntax.NewWhitespace(" "),
		syntax.NewComposite(testGroup, syntax.NewWhitespace("\n"), word("b")),
	)

	err := syntax.Validate(root)
	require.ErrorIs(t, err, syntax.ErrMalformedTree)
}

func TestTextRange(t *testing.T) {
	t.Parallel()

	r := syntax.NewTextRange(8, 2)

	assert.Equal(t, 2, r.StartOffset)
	assert.Equal(t, 6, r.Len())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(8))
	assert.True(t, r.Intersects(syntax.TextRange{StartOffset: 8, EndOffset: 8}))
	assert.Equal(t, "cdef", syntax.TextRange{StartOffset: 2, EndOffset: 6}.Substring("abcdefgh"))
	assert.Equal(t, 2, syntax.BlankLines("a\n\nb"))
}

func TestBuildLines(t *testing.T) {
	t.Parallel()

	lines := syntax.BuildLines("ab\r\ncd\n")

	require.Len(t, lines, 3)
	assert.Equal(t, 2, lines[0].NewlineStart)
	assert.Equal(t, 1, syntax.LineAt(lines, 0))
	assert.Equal(t, 2, syntax.LineAt(lines, 5))
	assert.Equal(t, 3, syntax.LineAt(lines, 7))
}
