package styler

import (
	"testing"

	"github.com/yuin/goldmark/ast"

	"github.com/dgallion1/mdrender/internal/parser"
)

// firstBlock parses md and returns its first block node plus the source.
func firstBlock(t *testing.T, md string) (ast.Node, []byte) {
	t.Helper()
	src := []byte(md)
	doc := parser.Parse(src)
	n := doc.FirstChild()
	if n == nil {
		t.Fatalf("no block parsed from %q", md)
	}
	return n, src
}

func TestResolveInline_BoldItalicNesting(t *testing.T) {
	n, src := firstBlock(t, "**bold *and italic***")
	runs, _ := ResolveInline(n, src, Style{})

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "bold " || !runs[0].Bold || runs[0].Italic {
		t.Errorf("run 0: expected {bold } bold-only, got %+v", runs[0])
	}
	if runs[1].Text != "and italic" || !runs[1].Bold || !runs[1].Italic {
		t.Errorf("run 1: expected {and italic} bold+italic, got %+v", runs[1])
	}
}

func TestResolveInline_UniformStyleSingleRun(t *testing.T) {
	tests := []struct {
		name   string
		md     string
		text   string
		italic bool
	}{
		{"plain", "just plain text here", "just plain text here", false},
		{"all italic", "*all of it italic*", "all of it italic", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, src := firstBlock(t, tt.md)
			runs, _ := ResolveInline(n, src, Style{})
			if len(runs) != 1 {
				t.Fatalf("expected exactly 1 run, got %d: %+v", len(runs), runs)
			}
			if runs[0].Text != tt.text {
				t.Errorf("expected text %q, got %q", tt.text, runs[0].Text)
			}
			if runs[0].Italic != tt.italic {
				t.Errorf("expected italic=%v, got %+v", tt.italic, runs[0])
			}
		})
	}
}

func TestResolveInline_SoftBreakMergesIntoRun(t *testing.T) {
	n, src := firstBlock(t, "first line\nsecond line")
	runs, _ := ResolveInline(n, src, Style{})
	if len(runs) != 1 {
		t.Fatalf("expected 1 merged run across a soft break, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "first line\nsecond line" {
		t.Errorf("unexpected merged text %q", runs[0].Text)
	}
}

func TestResolveInline_LinkSharedTargetPerRun(t *testing.T) {
	n, src := firstBlock(t, "[click **here** now](https://example.com/x)")
	runs, _ := ResolveInline(n, src, Style{})

	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d: %+v", len(runs), runs)
	}
	for i, r := range runs {
		if r.LinkTarget != "https://example.com/x" {
			t.Errorf("run %d: expected link target on every run, got %+v", i, r)
		}
	}
	if runs[0].Text != "click " || runs[0].Bold {
		t.Errorf("run 0: got %+v", runs[0])
	}
	if runs[1].Text != "here" || !runs[1].Bold {
		t.Errorf("run 1: expected bold {here}, got %+v", runs[1])
	}
	if runs[2].Text != " now" || runs[2].Bold {
		t.Errorf("run 2: got %+v", runs[2])
	}
}

func TestResolveInline_CodeSpanVerbatim(t *testing.T) {
	n, src := firstBlock(t, "`*not emphasis*`")
	runs, _ := ResolveInline(n, src, Style{})
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d: %+v", len(runs), runs)
	}
	if !runs[0].Code {
		t.Errorf("expected code run, got %+v", runs[0])
	}
	if runs[0].Text != "*not emphasis*" {
		t.Errorf("expected verbatim text, got %q", runs[0].Text)
	}
	if runs[0].Italic || runs[0].Bold {
		t.Errorf("code content must not be re-interpreted as emphasis: %+v", runs[0])
	}
}

func TestResolveInline_Strikethrough(t *testing.T) {
	n, src := firstBlock(t, "~~gone~~ kept")
	runs, _ := ResolveInline(n, src, Style{})
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "gone" || !runs[0].Strike {
		t.Errorf("run 0: expected struck {gone}, got %+v", runs[0])
	}
	if runs[1].Text != " kept" || runs[1].Strike {
		t.Errorf("run 1: got %+v", runs[1])
	}
}

func TestResolveInline_NoEmptyRuns(t *testing.T) {
	n, src := firstBlock(t, "a **b** c")
	runs, _ := ResolveInline(n, src, Style{})
	for i, r := range runs {
		if r.Text == "" {
			t.Errorf("run %d is empty: %+v", i, runs)
		}
	}
}

func TestResolveInline_UnknownInlineKindsReported(t *testing.T) {
	n, src := firstBlock(t, "a <b>bold</b> c")
	runs, unknown := ResolveInline(n, src, Style{})

	if len(unknown) != 2 {
		t.Fatalf("expected 2 unknown kinds for the raw tags, got %v", unknown)
	}
	for i, kind := range unknown {
		if kind != "RawHTML" {
			t.Errorf("unknown %d: expected RawHTML, got %q", i, kind)
		}
	}
	// The surrounding text still resolves; the raw tags themselves carry no
	// text and must not surface as runs.
	if len(runs) != 1 || runs[0].Text != "a bold c" {
		t.Errorf("unexpected runs %+v", runs)
	}
}

func TestResolveInline_TaskCheckBoxNotUnknown(t *testing.T) {
	src := []byte("- [x] done\n")
	doc := parser.Parse(src)
	item := doc.FirstChild().FirstChild() // list -> item
	if item == nil {
		t.Fatal("no list item parsed")
	}
	_, unknown := ResolveInline(item.FirstChild(), src, Style{})
	if len(unknown) != 0 {
		t.Errorf("checkbox must not be reported unknown, got %v", unknown)
	}
}

func TestResolveInline_InheritedStyle(t *testing.T) {
	n, src := firstBlock(t, "plain words")
	runs, _ := ResolveInline(n, src, Style{Bold: true})
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if !runs[0].Bold {
		t.Errorf("inherited bold flag lost: %+v", runs[0])
	}
}
