// Package render turns message content into structured display nodes.
// Rendering is pure: it never mutates the message store, and it never fails —
// malformed content always degrades to plain text.
//
// Serialization of nodes to actual markup (HTML for a web surface, styled
// text for the TUI) happens at the presentation boundary, so escaping is a
// property of the serializer rather than of string ordering.
package render

// Node is a discriminated union of display nodes. Each node type implements
// the marker method, ensuring type-safe handling at the presentation layer.
type Node interface {
	node()
}

// SpanStyle classifies an inline span of text.
type SpanStyle int

const (
	SpanPlain SpanStyle = iota
	SpanCode
	SpanBold
	SpanItalic
	SpanLink
)

// Span is a run of inline text with a single style. URL is set only for
// SpanLink spans.
type Span struct {
	Text  string
	Style SpanStyle
	URL   string
}

// Text is a block of inline-formatted text. IsError marks tool output that
// should be shown in an error style.
type Text struct {
	Spans   []Span
	IsError bool
}

// CodeBlock is a fenced code block with an optional language tag.
type CodeBlock struct {
	Language string
	Code     string
}

// Image is a resolvable image reference.
type Image struct {
	URL string
	Alt string
}

// Table is a fixed-column table of rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Field is one label/value pair in a Fields node.
type Field struct {
	Label string
	Value string
}

// Fields is a label/value listing, e.g. system metrics.
type Fields struct {
	Items []Field
}

// List is a titled list of items, e.g. image analysis detections.
type List struct {
	Title string
	Items []string
}

func (Text) node()      {}
func (CodeBlock) node() {}
func (Image) node()     {}
func (Table) node()     {}
func (Fields) node()    {}
func (List) node()      {}

// Output is the rendered form of one message.
type Output struct {
	Nodes []Node
}

// plainText builds a Text node containing a single unstyled span.
func plainText(s string) Text {
	return Text{Spans: []Span{{Text: s}}}
}
