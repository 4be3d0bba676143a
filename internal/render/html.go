package render

import (
	"fmt"
	"html"
	"strings"
)

// HTML serializes the output to safe HTML for a web-style presentation
// surface. All text content and attribute values are escaped here,
// unconditionally, so no upstream stage has to worry about injection.
func (o Output) HTML() string {
	var sb strings.Builder
	for _, node := range o.Nodes {
		writeNodeHTML(&sb, node)
	}
	return sb.String()
}

func writeNodeHTML(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case Text:
		if n.IsError {
			sb.WriteString(`<div class="tool-output tool-error">`)
		} else {
			sb.WriteString(`<div class="message-text">`)
		}
		for _, span := range n.Spans {
			writeSpanHTML(sb, span)
		}
		sb.WriteString("</div>")

	case CodeBlock:
		sb.WriteString("<pre><code")
		if n.Language != "" {
			fmt.Fprintf(sb, ` class="language-%s"`, html.EscapeString(n.Language))
		}
		sb.WriteString(">")
		sb.WriteString(html.EscapeString(n.Code))
		sb.WriteString("</code></pre>")

	case Image:
		fmt.Fprintf(sb, `<img src="%s" alt="%s" class="chat-image"/>`,
			html.EscapeString(n.URL), html.EscapeString(n.Alt))

	case Table:
		sb.WriteString(`<table class="tool-table"><thead><tr>`)
		for _, h := range n.Headers {
			fmt.Fprintf(sb, "<th>%s</th>", html.EscapeString(h))
		}
		sb.WriteString("</tr></thead><tbody>")
		for _, row := range n.Rows {
			sb.WriteString("<tr>")
			for _, cell := range row {
				fmt.Fprintf(sb, "<td>%s</td>", html.EscapeString(cell))
			}
			sb.WriteString("</tr>")
		}
		sb.WriteString("</tbody></table>")

	case Fields:
		sb.WriteString(`<div class="tool-fields">`)
		for _, f := range n.Items {
			fmt.Fprintf(sb, `<div class="field-row"><span class="field-label">%s:</span> <span class="field-value">%s</span></div>`,
				html.EscapeString(f.Label), html.EscapeString(f.Value))
		}
		sb.WriteString("</div>")

	case List:
		if n.Title != "" {
			fmt.Fprintf(sb, "<h4>%s</h4>", html.EscapeString(n.Title))
		}
		sb.WriteString("<ul>")
		for _, item := range n.Items {
			fmt.Fprintf(sb, "<li>%s</li>", html.EscapeString(item))
		}
		sb.WriteString("</ul>")
	}
}

func writeSpanHTML(sb *strings.Builder, span Span) {
	escaped := html.EscapeString(span.Text)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")

	switch span.Style {
	case SpanCode:
		fmt.Fprintf(sb, "<code>%s</code>", escaped)
	case SpanBold:
		fmt.Fprintf(sb, "<strong>%s</strong>", escaped)
	case SpanItalic:
		fmt.Fprintf(sb, "<em>%s</em>", escaped)
	case SpanLink:
		fmt.Fprintf(sb, `<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
			html.EscapeString(span.URL), escaped)
	default:
		sb.WriteString(escaped)
	}
}
