// Package markdown implements Markdown as a host language. Fenced code block
// bodies become injection nodes holding the body parsed in the fence's
// language. Markdown has no formatting model, so formatting passes it through
// unchanged, and generic tree edits may not touch the injected bodies without
// explicit approval.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// Name is the token-type language of markdown nodes.
const Name = "markdown"

// Token and element types.
//
//nolint:gochecknoglobals // Token types are compared by identity.
var (
	File      = syntax.NewTokenType(Name, "FILE", 0)
	Text      = syntax.NewTokenType(Name, "TEXT", 0)
	Injection = syntax.NewTokenType(Name, "INJECTION", syntax.FlagInjection)
)

// Language returns the markdown language description, resolving fenced code
// languages against registry.
func Language(registry *lang.Registry) *lang.Language {
	return &lang.Language{
		Name:       Name,
		Aliases:    []string{"Markdown", "md"},
		Extensions: []string{".md", ".markdown", ".mdown", ".mkd"},
		Parse: func(source string) *syntax.Node {
			return Parse(registry, source)
		},
	}
}

func init() {
	lang.DefaultRegistry.Register(Language(lang.DefaultRegistry))
}

// span is a fenced code body and its info-string language.
type span struct {
	start, end int
	language   string
}

// Parse builds a markdown tree. Text outside fenced code bodies is kept as
// opaque leaves; each body becomes an injection composite.
func Parse(registry *lang.Registry, source string) *syntax.Node {
	root := syntax.NewComposite(File)

	pos := 0
	for _, body := range fencedBodies([]byte(source)) {
		if body.start > pos {
			syntax.AppendChild(root, syntax.NewLeaf(Text, source[pos:body.start]))
		}
		syntax.AppendChild(root, injection(registry, body.language, source[body.start:body.end]))
		pos = body.end
	}
	if pos < len(source) {
		syntax.AppendChild(root, syntax.NewLeaf(Text, source[pos:]))
	}

	return root
}

func injection(registry *lang.Registry, language, body string) *syntax.Node {
	node := syntax.NewComposite(Injection)

	embedded, ok := registry.Get(language)
	if !ok || embedded.Parse == nil || language == "" {
		syntax.AppendChild(node, syntax.NewLeaf(syntax.Text, body))
		return node
	}

	parsed := embedded.Parse(body)
	for child := parsed.FirstChild; child != nil; child = parsed.FirstChild {
		syntax.AppendChild(node, child)
	}
	return node
}

// fencedBodies returns the contiguous fenced code bodies of source in order.
// Bodies whose lines are interrupted by container markers (block quotes,
// list indentation) are skipped.
func fencedBodies(source []byte) []span {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	var bodies []span
	//nolint:errcheck // The walker never returns an error.
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lines := fenced.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		for i := 1; i < lines.Len(); i++ {
			if lines.At(i).Start != lines.At(i-1).Stop {
				return ast.WalkSkipChildren, nil
			}
		}

		bodies = append(bodies, span{
			start:    lines.At(0).Start,
			end:      lines.At(lines.Len() - 1).Stop,
			language: string(fenced.Language(source)),
		})
		return ast.WalkSkipChildren, nil
	})

	return bodies
}
