package indent

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/reindent/pkg/syntax"
)

// Calculator measures and renders indentation under fixed Options.
type Calculator struct {
	opts Options
}

// New creates a Calculator. Zero sizes in opts are replaced with defaults.
func New(opts Options) *Calculator {
	return &Calculator{opts: opts.Normalize()}
}

// Options returns the normalized options.
func (c *Calculator) Options() Options {
	return c.opts
}

// OfText returns the encoded indentation of the last line of text.
//
// Only the part after the last line break is measured. Leading spaces and tabs
// are counted; with includeNonSpace the remaining content counts too, by
// display width. Tabs are converted to whole indent levels and whatever does
// not fill a level is carried in the space count.
func (c *Calculator) OfText(text string, includeNonSpace bool) int {
	if idx := strings.LastIndexAny(text, "\n\r"); idx >= 0 {
		text = text[idx+1:]
	}

	spaceCount := 0
	tabCount := 0

	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		switch cluster := graphemes.Str(); cluster {
		case "\t":
			tabCount++
		case " ":
			spaceCount++
		default:
			if !includeNonSpace {
				return c.encode(tabCount, spaceCount)
			}
			spaceCount += graphemes.Width()
		}
	}

	return c.encode(tabCount, spaceCount)
}

func (c *Calculator) encode(tabCount, spaceCount int) int {
	if tabCount == 0 {
		return spaceCount
	}
	tabWidth := tabCount * c.opts.TabSize
	level := tabWidth / c.opts.IndentSize
	spaceCount += tabWidth - level*c.opts.IndentSize
	return level*Factor + spaceCount
}

// Compute returns the encoded indentation preceding node.
//
// The walk goes backward: into the rightmost leaf of the previous sibling
// (stopping at strong whitespace holders), up to the parent when there is no
// previous sibling, until a leaf containing a line break is found. With
// includeNonSpace the widths of the content passed on the way are added.
// A nil node, the root, and walks longer than WalkLimit hops yield 0.
func (c *Calculator) Compute(node *syntax.Node, includeNonSpace bool) int {
	acc := 0
	cur := node

	for steps := 0; cur != nil; steps++ {
		if steps > WalkLimit {
			return 0
		}

		if cur.Prev == nil {
			cur = cur.Parent
			continue
		}

		prev := cur.Prev
		emptyComposite := false
		for prev.IsComposite() && !prev.IsStrongWhitespaceHolder() {
			if prev.LastChild == nil {
				emptyComposite = true
				break
			}
			prev = prev.LastChild
		}
		if emptyComposite {
			cur = prev
			continue
		}

		text := prev.Text()
		if idx := strings.LastIndexAny(text, "\n\r"); idx >= 0 {
			return acc + c.OfText(text[idx+1:], includeNonSpace)
		}

		if includeNonSpace {
			acc += c.OfText(text, true)
			cur = prev
			continue
		}

		if atDocumentStart(prev) {
			return acc + c.OfText(text, false)
		}
		cur = prev
	}

	return acc
}

// atDocumentStart reports whether nothing precedes n in its tree.
func atDocumentStart(n *syntax.Node) bool {
	child := n
	for parent := n.Parent; parent != nil; parent = parent.Parent {
		if child.Prev != nil {
			return false
		}
		child = parent
	}
	return child.Prev == nil
}

// Decode splits an encoded indentation into its level and space count.
// The level is rounded to the nearest whole unit.
func Decode(encoded int) (int, int) {
	level := (encoded + Factor/2) / Factor
	if encoded < 0 {
		level = 0
	}
	return level, encoded - level*Factor
}

// Width returns the column width of an encoded indentation. Never negative.
func (c *Calculator) Width(encoded int) int {
	level, spaces := Decode(encoded)
	return max(level*c.opts.IndentSize+spaces, 0)
}

// Render returns the whitespace string for an encoded indentation.
func (c *Calculator) Render(encoded int) string {
	level, spaceCount := Decode(encoded)
	levelWidth := level * c.opts.IndentSize
	total := levelWidth + spaceCount
	if total <= 0 {
		return ""
	}

	if !c.opts.UseTabs {
		return strings.Repeat(" ", total)
	}

	var sb strings.Builder
	if c.opts.SmartTabs {
		tabCount := levelWidth / c.opts.TabSize
		leftSpaces := levelWidth - tabCount*c.opts.TabSize
		sb.WriteString(strings.Repeat("\t", tabCount))
		sb.WriteString(strings.Repeat(" ", max(leftSpaces+spaceCount, 0)))
		return sb.String()
	}

	for size := total; size > 0; {
		if size >= c.opts.TabSize {
			sb.WriteByte('\t')
			size -= c.opts.TabSize
		} else {
			sb.WriteByte(' ')
			size--
		}
	}
	return sb.String()
}
