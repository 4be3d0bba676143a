package ui

import (
	"strings"
	"testing"

	"github.com/zhubert/parley/internal/render"
)

func TestRenderOutput_Text(t *testing.T) {
	out := render.Output{Nodes: []render.Node{
		render.Text{Spans: []render.Span{
			{Text: "plain "},
			{Text: "strong", Style: render.SpanBold},
			{Text: " and "},
			{Text: "code", Style: render.SpanCode},
		}},
	}}

	got := RenderOutput(out, 80)
	for _, want := range []string{"plain", "strong", "and", "code"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}

func TestRenderOutput_CodeBlockKeepsCode(t *testing.T) {
	out := render.Output{Nodes: []render.Node{
		render.CodeBlock{Language: "python", Code: "print(1)"},
	}}

	got := RenderOutput(out, 80)
	if !strings.Contains(got, "print") {
		t.Errorf("highlighted code lost its content: %q", got)
	}
}

func TestRenderOutput_Image(t *testing.T) {
	out := render.Output{Nodes: []render.Node{
		render.Image{URL: "/workspace/plot.png", Alt: "Plot"},
	}}

	got := RenderOutput(out, 80)
	if !strings.Contains(got, "Plot") || !strings.Contains(got, "/workspace/plot.png") {
		t.Errorf("image reference missing label or URL: %q", got)
	}
}

func TestRenderOutput_TableAlignment(t *testing.T) {
	out := render.Output{Nodes: []render.Node{
		render.Table{
			Headers: []string{"PID", "Name"},
			Rows: [][]string{
				{"1", "init"},
				{"31337", "agentd"},
			},
		},
	}}

	got := RenderOutput(out, 80)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("table lines = %d, want 4 (header, rule, 2 rows): %q", len(lines), got)
	}
	for _, want := range []string{"PID", "Name", "31337", "agentd"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q: %q", want, got)
		}
	}
}

func TestRenderOutput_Fields(t *testing.T) {
	out := render.Output{Nodes: []render.Node{
		render.Fields{Items: []render.Field{
			{Label: "cpu", Value: "12%"},
			{Label: "memory", Value: "48%"},
		}},
	}}

	got := RenderOutput(out, 80)
	if !strings.Contains(got, "cpu") || !strings.Contains(got, "12%") {
		t.Errorf("fields missing content: %q", got)
	}
	if len(strings.Split(got, "\n")) != 2 {
		t.Errorf("fields should render one line per item: %q", got)
	}
}

func TestRenderOutput_List(t *testing.T) {
	out := render.Output{Nodes: []render.Node{
		render.List{Title: "Detected Labels", Items: []string{"cat (98%)", "sofa (72%)"}},
	}}

	got := RenderOutput(out, 80)
	for _, want := range []string{"Detected Labels", "cat (98%)", "sofa (72%)", "•"} {
		if !strings.Contains(got, want) {
			t.Errorf("list missing %q: %q", want, got)
		}
	}
}

func TestRenderOutput_ZeroWidthFallsBack(t *testing.T) {
	out := render.Output{Nodes: []render.Node{
		render.Text{Spans: []render.Span{{Text: "hello"}}},
	}}
	if got := RenderOutput(out, 0); !strings.Contains(got, "hello") {
		t.Errorf("zero width output = %q", got)
	}
}
