package vistree

// Tree is the root of a compiled visual tree.
type Tree struct {
	Children    []Node       // Top-level visual nodes, in document order.
	Diagnostics []Diagnostic // Unsupported node kinds encountered, sorted by kind.
}

// Node is a visual node. The concrete type is the variant tag; Kind returns a
// stable string form of it for diagnostics and serialization.
type Node interface {
	Kind() string
}

// Diagnostic records a non-fatal degradation: an input node kind that has no
// visual representation and was compiled to an Unsupported placeholder.
type Diagnostic struct {
	Kind  string
	Count int
}

// Section groups the inline content of a heading (Level 1-6) or a plain
// paragraph (Level 0).
type Section struct {
	Level    int
	Children []Node
}

// TextRun is a maximal span of text under one set of style flags. Adjacent
// runs in a sequence never share an identical style and link target.
type TextRun struct {
	Text       string
	Bold       bool
	Italic     bool
	Strike     bool
	Code       bool
	LinkTarget string // Empty when the run is not part of a link.
}

// HighlightSpan is a substring of code block source tagged with a syntactic
// category. Concatenating the Text of all spans of a CodeBlock reproduces the
// source exactly.
type HighlightSpan struct {
	Text string
	Tag  string
}

// CodeBlock is a fenced or indented code block with highlighted spans.
type CodeBlock struct {
	Language string // Empty when the block carried no language tag.
	Spans    []HighlightSpan
}

// InlineCode is a verbatim code span inside running text.
type InlineCode struct {
	Text string
}

// Quote is a block quote. Depth is 1 for a top-level quote and grows by one
// for each directly nested quote.
type Quote struct {
	Depth    int
	Children []Node
}

// ListContainer holds the items of an ordered or bullet list.
type ListContainer struct {
	Ordered bool
	Start   int // First item number of an ordered list; 0 for bullet lists.
	Items   []*ListItem
}

// ListItem is one list entry. Children may contain nested ListContainers.
// Checked is non-nil only for task-list items.
type ListItem struct {
	Checked  *bool
	Children []Node
}

// Alignment is a table column alignment.
type Alignment string

const (
	AlignNone   Alignment = "none"
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Cell is one table cell; its children are inline content.
type Cell struct {
	Children []Node
}

// Table is a cell grid. Every row has exactly len(Columns) cells; Rows[0] is
// the header row.
type Table struct {
	Columns []Alignment
	Rows    [][]Cell
}

// Image is a resolved local image. Width and Height are 0 when the dimensions
// could not be decoded.
type Image struct {
	Path   string // Resolved filesystem path.
	Alt    string
	Width  int
	Height int
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Unsupported is the explicit placeholder for an input node kind outside the
// visual vocabulary. It is never dropped silently.
type Unsupported struct {
	OriginalKind string
}

func (Section) Kind() string       { return "section" }
func (TextRun) Kind() string       { return "text_run" }
func (CodeBlock) Kind() string     { return "code_block" }
func (InlineCode) Kind() string    { return "inline_code" }
func (Quote) Kind() string         { return "quote" }
func (ListContainer) Kind() string { return "list" }
func (Table) Kind() string         { return "table" }
func (Image) Kind() string         { return "image" }
func (ThematicBreak) Kind() string { return "thematic_break" }
func (Unsupported) Kind() string   { return "unsupported" }
