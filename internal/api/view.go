package api

import "github.com/dgallion1/mdrender/internal/vistree"

// nodeView flattens a visual node into a JSON-friendly map. Every map carries
// a "kind" discriminator so clients can dispatch without reflection.
func nodeView(n vistree.Node) map[string]any {
	v := map[string]any{"kind": n.Kind()}
	switch node := n.(type) {
	case vistree.Section:
		v["level"] = node.Level
		v["children"] = nodeViews(node.Children)
	case vistree.TextRun:
		v["text"] = node.Text
		if node.Bold {
			v["bold"] = true
		}
		if node.Italic {
			v["italic"] = true
		}
		if node.Strike {
			v["strike"] = true
		}
		if node.Code {
			v["code"] = true
		}
		if node.LinkTarget != "" {
			v["link_target"] = node.LinkTarget
		}
	case vistree.InlineCode:
		v["text"] = node.Text
	case vistree.CodeBlock:
		v["language"] = node.Language
		spans := make([]map[string]any, 0, len(node.Spans))
		for _, sp := range node.Spans {
			spans = append(spans, map[string]any{"text": sp.Text, "tag": sp.Tag})
		}
		v["spans"] = spans
	case vistree.Quote:
		v["depth"] = node.Depth
		v["children"] = nodeViews(node.Children)
	case vistree.ListContainer:
		v["ordered"] = node.Ordered
		if node.Ordered {
			v["start"] = node.Start
		}
		items := make([]map[string]any, 0, len(node.Items))
		for _, item := range node.Items {
			iv := map[string]any{"children": nodeViews(item.Children)}
			if item.Checked != nil {
				iv["checked"] = *item.Checked
			}
			items = append(items, iv)
		}
		v["items"] = items
	case vistree.Table:
		cols := make([]string, 0, len(node.Columns))
		for _, a := range node.Columns {
			cols = append(cols, string(a))
		}
		v["columns"] = cols
		rows := make([][]map[string]any, 0, len(node.Rows))
		for _, row := range node.Rows {
			cells := make([]map[string]any, 0, len(row))
			for _, cell := range row {
				cells = append(cells, map[string]any{"children": nodeViews(cell.Children)})
			}
			rows = append(rows, cells)
		}
		v["rows"] = rows
	case vistree.Image:
		v["path"] = node.Path
		v["alt"] = node.Alt
		if node.Width > 0 {
			v["width"] = node.Width
		}
		if node.Height > 0 {
			v["height"] = node.Height
		}
	case vistree.Unsupported:
		v["original_kind"] = node.OriginalKind
	case vistree.ThematicBreak:
		// Kind alone is enough.
	}
	return v
}

func nodeViews(nodes []vistree.Node) []map[string]any {
	out := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeView(n))
	}
	return out
}

func diagnosticViews(diags []vistree.Diagnostic) []map[string]any {
	out := make([]map[string]any, 0, len(diags))
	for _, d := range diags {
		out = append(out, map[string]any{"kind": d.Kind, "count": d.Count})
	}
	return out
}
