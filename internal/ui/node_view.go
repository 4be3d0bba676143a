package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zhubert/parley/internal/render"
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// RenderOutput renders a display node tree for the conversation viewport.
func RenderOutput(out render.Output, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	parts := make([]string, 0, len(out.Nodes))
	for _, node := range out.Nodes {
		if s := renderNode(node, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func renderNode(node render.Node, width int) string {
	switch n := node.(type) {
	case render.Text:
		return renderTextNode(n, width)
	case render.CodeBlock:
		return strings.TrimRight(highlightCode(n.Code, n.Language), "\n")
	case render.Image:
		label := "Image"
		if n.Alt != "" {
			label = n.Alt
		}
		return ImageRefStyle.Render("["+label+"]") + " " + SpanLinkStyle.Render(n.URL)
	case render.Table:
		return renderTable(n)
	case render.Fields:
		return renderFields(n)
	case render.List:
		return renderList(n, width)
	default:
		return ""
	}
}

func renderTextNode(n render.Text, width int) string {
	var sb strings.Builder
	for _, span := range n.Spans {
		switch span.Style {
		case render.SpanCode:
			sb.WriteString(SpanCodeStyle.Render(span.Text))
		case render.SpanBold:
			sb.WriteString(SpanBoldStyle.Render(span.Text))
		case render.SpanItalic:
			sb.WriteString(SpanItalicStyle.Render(span.Text))
		case render.SpanLink:
			sb.WriteString(SpanLinkStyle.Render(span.Text))
		default:
			if n.IsError {
				sb.WriteString(ToolErrorStyle.Render(span.Text))
			} else {
				sb.WriteString(span.Text)
			}
		}
	}
	return wrapText(sb.String(), width)
}

// renderTable lays out a fixed-column table, padding cells to the widest
// entry per column. Rune width matters here: CJK output from process names
// would misalign with naive len-based padding.
func renderTable(n render.Table) string {
	widths := make([]int, len(n.Headers))
	for i, h := range n.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range n.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var sb strings.Builder
	for i, h := range n.Headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(TableHeaderStyle.Render(runewidth.FillRight(h, widths[i])))
	}
	sb.WriteString("\n")
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("─", w))
	}
	for _, row := range n.Rows {
		sb.WriteString("\n")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(TableCellStyle.Render(runewidth.FillRight(cell, widths[i])))
		}
	}
	return sb.String()
}

func renderFields(n render.Fields) string {
	labelWidth := 0
	for _, f := range n.Items {
		if w := runewidth.StringWidth(f.Label); w > labelWidth {
			labelWidth = w
		}
	}

	lines := make([]string, 0, len(n.Items))
	for _, f := range n.Items {
		label := FieldLabelStyle.Render(runewidth.FillRight(f.Label+":", labelWidth+1))
		lines = append(lines, label+" "+TableCellStyle.Render(f.Value))
	}
	return strings.Join(lines, "\n")
}

func renderList(n render.List, width int) string {
	var sb strings.Builder
	if n.Title != "" {
		sb.WriteString(ListTitleStyle.Render(n.Title))
	}
	for i, item := range n.Items {
		if i > 0 || n.Title != "" {
			sb.WriteString("\n")
		}
		sb.WriteString("  ")
		sb.WriteString(ListBulletStyle.Render("•"))
		sb.WriteString(" ")
		sb.WriteString(wrapText(item, width-4))
	}
	return sb.String()
}
