package render

import (
	"strings"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/logger"
)

// DefaultWorkspaceURL is the URL prefix for files the backend saves into its
// workspace (plots, uploaded images).
const DefaultWorkspaceURL = "/workspace/"

// Renderer converts messages into display node trees.
type Renderer struct {
	// WorkspaceURL prefixes workspace-relative file references in tool
	// output. Defaults to DefaultWorkspaceURL when empty.
	WorkspaceURL string
}

// New creates a Renderer with default settings.
func New() *Renderer {
	return &Renderer{WorkspaceURL: DefaultWorkspaceURL}
}

func (r *Renderer) workspaceURL(path string) string {
	prefix := r.WorkspaceURL
	if prefix == "" {
		prefix = DefaultWorkspaceURL
	}
	return prefix + strings.TrimPrefix(path, "/")
}

// Render converts one message into display nodes. It never panics: tool
// results that fail to render fall back to the message content as plain text.
func (r *Renderer) Render(msg chat.Message) (out Output) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Render: recovered from %v, falling back to plain text", rec)
			out = Output{Nodes: []Node{plainText(msg.Content)}}
		}
	}()

	if msg.IsToolResult() {
		return Output{Nodes: r.formatToolOutput(msg.Content, msg.Name)}
	}
	return Output{Nodes: parseMarkdown(msg.Content)}
}
