package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Tool names with dedicated formatters. Anything else falls back to the
// general text path.
const (
	toolAnalyzeImage  = "analyze_image"
	toolPythonREPL    = "python_repl"
	toolResourceUsage = "get_resource_usage"
	toolProcessList   = "list_running_processes"
)

// replOutputPrefix is stripped from REPL tool results before formatting.
const replOutputPrefix = "Python REPL Output:\n"

// plotSavedPattern matches the REPL's saved-plot marker and captures the
// file path.
var plotSavedPattern = regexp.MustCompile(`Plot has been generated and saved as '(.+?)'`)

// formatToolOutput renders tool results by declared tool name. JSON-looking
// content is parsed best-effort for the structured formatters; any shape
// mismatch degrades to the general text path on the raw string.
func (r *Renderer) formatToolOutput(content, toolName string) []Node {
	parsed := tryParseJSON(content)

	switch toolName {
	case toolAnalyzeImage:
		if nodes := r.formatImageAnalysis(parsed); nodes != nil {
			return nodes
		}
	case toolPythonREPL:
		return r.formatREPLOutput(content)
	case toolResourceUsage:
		if nodes := formatSystemMetrics(parsed); nodes != nil {
			return nodes
		}
	case toolProcessList:
		if nodes := formatProcessList(parsed); nodes != nil {
			return nodes
		}
	}

	return parseMarkdown(content)
}

// tryParseJSON parses content that looks like JSON. Returns nil when the
// content is not valid JSON; the caller then falls back to text rendering.
func tryParseJSON(content string) interface{} {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil
	}
	return v
}

// formatImageAnalysis renders an optional source image plus a labeled list of
// (name, confidence) detections. Returns nil when the payload is not the
// expected object shape.
func (r *Renderer) formatImageAnalysis(parsed interface{}) []Node {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil
	}

	var nodes []Node
	if file, ok := obj["file"].(string); ok && file != "" {
		nodes = append(nodes, Image{URL: r.workspaceURL(file), Alt: "Analyzed Image"})
	}
	if labels, ok := obj["labels"].([]interface{}); ok {
		items := make([]string, 0, len(labels))
		for _, entry := range labels {
			label, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := label["name"].(string)
			items = append(items, fmt.Sprintf("%s (%v%%)", name, label["confidence"]))
		}
		nodes = append(nodes, List{Title: "Detected Labels", Items: items})
	}

	if nodes == nil {
		return nil
	}
	return nodes
}

// formatREPLOutput renders code-execution output. A saved-plot marker yields
// an image node resolved against the workspace prefix; output containing
// "error" (case-insensitive) is flagged with the error style.
func (r *Renderer) formatREPLOutput(content string) []Node {
	output := strings.TrimSpace(strings.TrimPrefix(content, replOutputPrefix))

	if match := plotSavedPattern.FindStringSubmatchIndex(output); match != nil {
		path := output[match[2]:match[3]]
		remaining := strings.TrimSpace(output[:match[0]] + output[match[1]:])

		var nodes []Node
		if remaining != "" {
			nodes = append(nodes, plainText(remaining))
		}
		nodes = append(nodes, Image{URL: r.workspaceURL(path), Alt: "Plot"})
		return nodes
	}

	text := plainText(output)
	text.IsError = strings.Contains(strings.ToLower(output), "error")
	return []Node{text}
}

// formatSystemMetrics renders an arbitrary key-to-value mapping as
// label/value rows, sorted by key for stable output.
func formatSystemMetrics(parsed interface{}) []Node {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]Field, 0, len(keys))
	for _, k := range keys {
		items = append(items, Field{Label: k, Value: fmt.Sprintf("%v", obj[k])})
	}
	return []Node{Fields{Items: items}}
}

// processColumns are the fixed table columns for process listings, in order.
var processColumns = []string{"PID", "Name", "CPU", "Memory"}

// formatProcessList renders an array of process records as a fixed 4-column
// table. Returns nil when the payload is not an array of objects.
func formatProcessList(parsed interface{}) []Node {
	arr, ok := parsed.([]interface{})
	if !ok {
		return nil
	}

	rows := make([][]string, 0, len(arr))
	for _, entry := range arr {
		proc, ok := entry.(map[string]interface{})
		if !ok {
			return nil
		}
		row := make([]string, len(processColumns))
		for i, col := range processColumns {
			if v, ok := proc[col]; ok {
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		rows = append(rows, row)
	}

	return []Node{Table{
		Headers: []string{"PID", "Name", "CPU %", "Memory %"},
		Rows:    rows,
	}}
}
