package parser

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parse turns markdown source into a goldmark AST. GFM extensions are enabled
// so tables, strikethrough and autolinks arrive as their own node kinds. The
// returned document is walked against src; goldmark nodes hold offsets, not
// text.
func Parse(src []byte) ast.Node {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	return md.Parser().Parse(text.NewReader(src))
}
