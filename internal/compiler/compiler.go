package compiler

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/dgallion1/mdrender/internal/styler"
	"github.com/dgallion1/mdrender/internal/vistree"
)

// Highlighter turns code block source into syntax-tagged spans. The spans
// must partition the source exactly; an unknown language is not an error.
type Highlighter interface {
	Highlight(source, language string) []vistree.HighlightSpan
}

// ImageResolver maps an image reference to a local file. Any failure aborts
// the whole compile.
type ImageResolver interface {
	Resolve(target, alt string) (vistree.Image, error)
}

// Config controls compilation behavior.
type Config struct {
	DefaultLanguage string // Highlight language for untagged code blocks.
	MaxDepth        int    // Cap on quote/list nesting; 0 means unlimited.
	StrictColumns   bool   // Mismatched table rows error instead of being repaired.
}

// DefaultConfig returns the options a bare compiler runs with.
func DefaultConfig() Config {
	return Config{StrictColumns: true}
}

// Compiler turns a parsed markdown AST into a visual tree. It is stateless
// across calls; one Compiler may serve concurrent compiles.
type Compiler struct {
	cfg    Config
	hl     Highlighter
	images ImageResolver
}

func New(cfg Config, hl Highlighter, images ImageResolver) *Compiler {
	return &Compiler{cfg: cfg, hl: hl, images: images}
}

// Compile walks doc against its source bytes and returns the visual tree.
// The input AST is read-only and never retained. On error no tree is
// returned; unsupported node kinds are not errors and are reported through
// the tree's diagnostics instead.
func (c *Compiler) Compile(doc ast.Node, src []byte) (*vistree.Tree, error) {
	w := &walk{c: c, src: src, unsupported: map[string]int{}}
	children, err := w.blocks(doc, nesting{})
	if err != nil {
		return nil, err
	}
	return &vistree.Tree{Children: children, Diagnostics: w.diagnostics()}, nil
}

// nesting is the only walk state beyond the call stack, passed down
// explicitly rather than mutated globally.
type nesting struct {
	quote int
	list  int
}

type walk struct {
	c           *Compiler
	src         []byte
	unsupported map[string]int
}

func (w *walk) blocks(parent ast.Node, d nesting) ([]vistree.Node, error) {
	var out []vistree.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		nodes, err := w.block(n, d)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (w *walk) block(n ast.Node, d nesting) ([]vistree.Node, error) {
	switch node := n.(type) {
	case *ast.Heading:
		return one(vistree.Section{Level: node.Level, Children: w.inline(node)}), nil

	case *ast.Paragraph:
		return w.paragraph(node)
	case *ast.TextBlock:
		// Tight list items hold their inline content in a TextBlock.
		return w.paragraph(node)

	case *ast.Blockquote:
		depth := d.quote + 1
		if w.c.cfg.MaxDepth > 0 && depth > w.c.cfg.MaxDepth {
			return nil, &RenderError{Kind: ErrDepthExceeded,
				Detail: fmt.Sprintf("quote depth %d exceeds cap %d", depth, w.c.cfg.MaxDepth)}
		}
		children, err := w.blocks(node, nesting{quote: depth, list: d.list})
		if err != nil {
			return nil, err
		}
		return one(vistree.Quote{Depth: depth, Children: children}), nil

	case *ast.List:
		return w.list(node, d)

	case *ast.FencedCodeBlock:
		return w.codeBlock(node, string(node.Language(w.src))), nil
	case *ast.CodeBlock:
		return w.codeBlock(node, ""), nil

	case *extast.Table:
		return w.table(node)

	case *ast.ThematicBreak:
		return one(vistree.ThematicBreak{}), nil

	default:
		kind := n.Kind().String()
		w.unsupported[kind]++
		return one(vistree.Unsupported{OriginalKind: kind}), nil
	}
}

// paragraph resolves inline content into merged runs. Images sitting directly
// in the paragraph are block-level in the visual tree: runs before and after
// become separate sections around the Image node.
func (w *walk) paragraph(n ast.Node) ([]vistree.Node, error) {
	var out []vistree.Node
	var seg []ast.Node

	flush := func() {
		runs, unknown := styler.ResolveNodes(seg, w.src, styler.Style{})
		seg = seg[:0]
		if children := w.lift(runs, unknown); len(children) > 0 {
			out = append(out, vistree.Section{Level: 0, Children: children})
		}
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		img, ok := c.(*ast.Image)
		if !ok {
			seg = append(seg, c)
			continue
		}
		flush()
		resolved, err := w.c.images.Resolve(string(img.Destination), string(img.Text(w.src)))
		if err != nil {
			return nil, &RenderError{Kind: ErrImageUnavailable,
				Path: string(img.Destination), Err: err}
		}
		out = append(out, resolved)
	}
	flush()
	return out, nil
}

func (w *walk) list(node *ast.List, d nesting) ([]vistree.Node, error) {
	depth := d.list + 1
	if w.c.cfg.MaxDepth > 0 && depth > w.c.cfg.MaxDepth {
		return nil, &RenderError{Kind: ErrDepthExceeded,
			Detail: fmt.Sprintf("list depth %d exceeds cap %d", depth, w.c.cfg.MaxDepth)}
	}

	lc := vistree.ListContainer{Ordered: node.IsOrdered()}
	if lc.Ordered {
		lc.Start = node.Start
	}
	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			return nil, &RenderError{Kind: ErrParserContractViolation,
				Detail: fmt.Sprintf("List contains %s, want ListItem", item.Kind())}
		}
		children, err := w.blocks(li, nesting{quote: d.quote, list: depth})
		if err != nil {
			return nil, err
		}
		entry := &vistree.ListItem{Children: children}
		// A task-list item leads with a checkbox inside its first block.
		if first := li.FirstChild(); first != nil {
			if cb, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
				checked := cb.IsChecked
				entry.Checked = &checked
			}
		}
		lc.Items = append(lc.Items, entry)
	}
	return one(lc), nil
}

func (w *walk) codeBlock(n ast.Node, language string) []vistree.Node {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(w.src))
	}
	if language == "" {
		language = w.c.cfg.DefaultLanguage
	}
	return one(vistree.CodeBlock{
		Language: language,
		Spans:    w.c.hl.Highlight(buf.String(), language),
	})
}

func (w *walk) table(tbl *extast.Table) ([]vistree.Node, error) {
	columns := make([]vistree.Alignment, len(tbl.Alignments))
	for i, a := range tbl.Alignments {
		columns[i] = alignment(a)
	}

	var rows [][]vistree.Cell
	addRow := func(row ast.Node) error {
		cells, err := w.tableCells(row)
		if err != nil {
			return err
		}
		if len(cells) != len(columns) {
			if w.c.cfg.StrictColumns {
				return &RenderError{Kind: ErrMalformedTable,
					Detail: fmt.Sprintf("row %d has %d cells, want %d",
						len(rows)+1, len(cells), len(columns))}
			}
			for len(cells) < len(columns) {
				cells = append(cells, vistree.Cell{})
			}
			cells = cells[:len(columns)]
		}
		rows = append(rows, cells)
		return nil
	}

	for child := tbl.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extast.TableHeader, *extast.TableRow:
			if err := addRow(child); err != nil {
				return nil, err
			}
		default:
			return nil, &RenderError{Kind: ErrParserContractViolation,
				Detail: fmt.Sprintf("Table contains %s, want TableHeader or TableRow", child.Kind())}
		}
	}
	return one(vistree.Table{Columns: columns, Rows: rows}), nil
}

func (w *walk) tableCells(row ast.Node) ([]vistree.Cell, error) {
	var cells []vistree.Cell
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		tc, ok := c.(*extast.TableCell)
		if !ok {
			return nil, &RenderError{Kind: ErrParserContractViolation,
				Detail: fmt.Sprintf("table row contains %s, want TableCell", c.Kind())}
		}
		cells = append(cells, vistree.Cell{Children: w.inline(tc)})
	}
	return cells, nil
}

// inline resolves the inline children of n, lifting unknown inline kinds
// into Unsupported placeholders.
func (w *walk) inline(n ast.Node) []vistree.Node {
	runs, unknown := styler.ResolveInline(n, w.src, styler.Style{})
	return w.lift(runs, unknown)
}

// lift turns resolved runs into visual nodes and appends an Unsupported
// placeholder, with a counted diagnostic, for every unknown inline kind.
func (w *walk) lift(runs []vistree.TextRun, unknown []string) []vistree.Node {
	out := runNodes(runs)
	for _, kind := range unknown {
		w.unsupported[kind]++
		out = append(out, vistree.Unsupported{OriginalKind: kind})
	}
	return out
}

func (w *walk) diagnostics() []vistree.Diagnostic {
	if len(w.unsupported) == 0 {
		return nil
	}
	out := make([]vistree.Diagnostic, 0, len(w.unsupported))
	for kind, count := range w.unsupported {
		out = append(out, vistree.Diagnostic{Kind: kind, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// runNodes lifts resolved runs into visual nodes. A pure code run becomes an
// InlineCode node; code inside a link stays a TextRun so the target survives.
func runNodes(runs []vistree.TextRun) []vistree.Node {
	out := make([]vistree.Node, 0, len(runs))
	for _, r := range runs {
		if r.Code && r.LinkTarget == "" && !r.Bold && !r.Italic && !r.Strike {
			out = append(out, vistree.InlineCode{Text: r.Text})
			continue
		}
		out = append(out, r)
	}
	return out
}

func alignment(a extast.Alignment) vistree.Alignment {
	switch a {
	case extast.AlignLeft:
		return vistree.AlignLeft
	case extast.AlignCenter:
		return vistree.AlignCenter
	case extast.AlignRight:
		return vistree.AlignRight
	default:
		return vistree.AlignNone
	}
}

func one(n vistree.Node) []vistree.Node {
	return []vistree.Node{n}
}
