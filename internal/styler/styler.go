package styler

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/dgallion1/mdrender/internal/vistree"
)

// Style is the inline formatting accumulator carried down the recursion.
// Attributes are additive: bold inside italic produces both flags. Code is
// verbatim and suppresses further emphasis interpretation of its content.
type Style struct {
	Bold       bool
	Italic     bool
	Strike     bool
	Code       bool
	LinkTarget string
}

// ResolveInline flattens the inline children of n into maximally merged text
// runs. Adjacent text under identical style is one run; no empty runs are
// emitted. A link wrapping several styled children yields several runs, all
// carrying the same link target. The second return lists the kind tags of
// inline nodes outside the inline vocabulary, in encounter order; the
// compiler turns them into Unsupported placeholders so nothing is dropped
// silently.
func ResolveInline(n ast.Node, src []byte, inherited Style) ([]vistree.TextRun, []string) {
	return ResolveNodes(children(n), src, inherited)
}

// ResolveNodes resolves an explicit sequence of inline nodes. The compiler
// uses it to resolve paragraph segments between block-level images.
func ResolveNodes(nodes []ast.Node, src []byte, inherited Style) ([]vistree.TextRun, []string) {
	var b runBuilder
	for _, n := range nodes {
		resolve(&b, n, src, inherited)
	}
	return b.runs, b.unknown
}

// runBuilder appends text under a style, merging into the previous run when
// the style and link target are identical.
type runBuilder struct {
	runs    []vistree.TextRun
	unknown []string
}

func (b *runBuilder) append(text string, s Style) {
	if text == "" {
		return
	}
	if n := len(b.runs); n > 0 {
		last := &b.runs[n-1]
		if last.Bold == s.Bold && last.Italic == s.Italic && last.Strike == s.Strike &&
			last.Code == s.Code && last.LinkTarget == s.LinkTarget {
			last.Text += text
			return
		}
	}
	b.runs = append(b.runs, vistree.TextRun{
		Text:       text,
		Bold:       s.Bold,
		Italic:     s.Italic,
		Strike:     s.Strike,
		Code:       s.Code,
		LinkTarget: s.LinkTarget,
	})
}

func resolve(b *runBuilder, n ast.Node, src []byte, s Style) {
	switch node := n.(type) {
	case *ast.Text:
		b.append(string(node.Segment.Value(src)), s)
		if node.SoftLineBreak() || node.HardLineBreak() {
			b.append("\n", s)
		}
	case *ast.String:
		b.append(string(node.Value), s)
	case *ast.Emphasis:
		next := s
		if node.Level >= 2 {
			next.Bold = true
		} else {
			next.Italic = true
		}
		resolveChildren(b, node, src, next)
	case *extast.Strikethrough:
		next := s
		next.Strike = true
		resolveChildren(b, node, src, next)
	case *ast.Link:
		next := s
		next.LinkTarget = string(node.Destination)
		resolveChildren(b, node, src, next)
	case *ast.AutoLink:
		next := s
		url := string(node.URL(src))
		next.LinkTarget = url
		label := string(node.Label(src))
		if label == "" {
			label = url
		}
		b.append(label, next)
	case *ast.CodeSpan:
		next := s
		next.Code = true
		// Verbatim: the span's text nodes are appended as-is, with no
		// emphasis interpretation.
		b.append(string(node.Text(src)), next)
	case *ast.Image:
		// Inline images nested under emphasis or links degrade to their
		// alt text; the compiler resolves images found at paragraph level.
		b.append(string(node.Text(src)), s)
	case *extast.TaskCheckBox:
		// Consumed by the list compiler, which records the checked state
		// on the item itself.
	default:
		b.unknown = append(b.unknown, n.Kind().String())
	}
}

func resolveChildren(b *runBuilder, n ast.Node, src []byte, s Style) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		resolve(b, c, src, s)
	}
}

func children(n ast.Node) []ast.Node {
	out := make([]ast.Node, 0, n.ChildCount())
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}
