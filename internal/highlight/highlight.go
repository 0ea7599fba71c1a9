package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dgallion1/mdrender/internal/vistree"
)

// PlainTag marks a span with no syntactic category.
const PlainTag = "plain"

// Highlighter resolves code into syntax-tagged spans using chroma lexers.
// It never fails: an unknown or missing language degrades to one plain span.
type Highlighter struct{}

func New() *Highlighter {
	return &Highlighter{}
}

// Highlight splits source into highlight spans for the given language. The
// concatenation of the returned span texts always equals source exactly;
// whenever the lexer cannot guarantee that, the whole text comes back as a
// single span tagged "plain".
func (h *Highlighter) Highlight(source, language string) []vistree.HighlightSpan {
	if source == "" {
		return nil
	}
	if language == "" {
		return plain(source)
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return plain(source)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plain(source)
	}

	var spans []vistree.HighlightSpan
	var rebuilt strings.Builder
	for _, token := range iterator.Tokens() {
		if token.Value == "" {
			continue
		}
		spans = append(spans, vistree.HighlightSpan{
			Text: token.Value,
			Tag:  token.Type.String(),
		})
		rebuilt.WriteString(token.Value)
	}

	// Some lexers normalize their input (e.g. append a trailing newline).
	// The spans must partition the source byte-for-byte; if they don't,
	// degrade to plain rather than return a lossy split.
	if rebuilt.String() != source {
		return plain(source)
	}
	return spans
}

func plain(source string) []vistree.HighlightSpan {
	return []vistree.HighlightSpan{{Text: source, Tag: PlainTag}}
}
