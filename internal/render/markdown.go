package render

import (
	"regexp"
	"strings"
)

// Compiled patterns for the supported markdown subset. Order of application
// matters: fenced code blocks are split out first so markup characters inside
// code are never re-interpreted, then inline code, bold, italic, and bare
// URLs within the remaining text.
var (
	fencedCodePattern = regexp.MustCompile("(?s)```(\\w*)\\n?(.*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern     = regexp.MustCompile(`\*([^*]+)\*`)
	urlPattern        = regexp.MustCompile(`(?i)\b(?:https?|ftp|file)://[-A-Z0-9+&@#/%?=~_|!:,.;]*[-A-Z0-9+&@#/%=~_|]`)
)

// parseMarkdown renders the general text path: fenced code blocks become
// CodeBlock nodes, everything between them becomes Text nodes with inline
// spans.
func parseMarkdown(content string) []Node {
	var nodes []Node

	last := 0
	for _, loc := range fencedCodePattern.FindAllStringSubmatchIndex(content, -1) {
		if text := content[last:loc[0]]; text != "" {
			nodes = appendText(nodes, text)
		}
		lang := strings.TrimSpace(content[loc[2]:loc[3]])
		code := content[loc[4]:loc[5]]
		nodes = append(nodes, CodeBlock{Language: lang, Code: strings.TrimSuffix(code, "\n")})
		last = loc[1]
	}
	if text := content[last:]; text != "" {
		nodes = appendText(nodes, text)
	}

	if nodes == nil {
		nodes = []Node{Text{}}
	}
	return nodes
}

func appendText(nodes []Node, text string) []Node {
	return append(nodes, Text{Spans: parseInline(text)})
}

// parseInline splits a text segment into styled spans. Inline code is
// extracted first so its contents are protected from emphasis and link rules.
func parseInline(text string) []Span {
	var spans []Span

	last := 0
	for _, loc := range inlineCodePattern.FindAllStringSubmatchIndex(text, -1) {
		spans = append(spans, parseEmphasis(text[last:loc[0]])...)
		spans = append(spans, Span{Text: text[loc[2]:loc[3]], Style: SpanCode})
		last = loc[1]
	}
	spans = append(spans, parseEmphasis(text[last:])...)
	return spans
}

// parseEmphasis handles bold, then italic, then bare URLs in what remains.
func parseEmphasis(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	last := 0
	for _, loc := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		spans = append(spans, parseItalic(text[last:loc[0]])...)
		spans = append(spans, Span{Text: text[loc[2]:loc[3]], Style: SpanBold})
		last = loc[1]
	}
	spans = append(spans, parseItalic(text[last:])...)
	return spans
}

func parseItalic(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	last := 0
	for _, loc := range italicPattern.FindAllStringSubmatchIndex(text, -1) {
		spans = append(spans, parseLinks(text[last:loc[0]])...)
		spans = append(spans, Span{Text: text[loc[2]:loc[3]], Style: SpanItalic})
		last = loc[1]
	}
	spans = append(spans, parseLinks(text[last:])...)
	return spans
}

// parseLinks auto-links bare URLs (http, https, ftp, file schemes).
func parseLinks(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		if before := text[last:loc[0]]; before != "" {
			spans = append(spans, Span{Text: before})
		}
		url := text[loc[0]:loc[1]]
		spans = append(spans, Span{Text: url, Style: SpanLink, URL: url})
		last = loc[1]
	}
	if after := text[last:]; after != "" {
		spans = append(spans, Span{Text: after})
	}
	return spans
}
