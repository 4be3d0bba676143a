// Package chat defines the message model and the append-only message store
// that backs a Parley session. The store is the source of truth: its full
// contents are replayed to the backend on every turn.
package chat

import "encoding/json"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleSystem    Role = "system"
	RoleError     Role = "error"
)

// NormalizeRole maps backend role aliases onto canonical roles.
// The backend emits "ai" for assistant messages.
func NormalizeRole(role string) Role {
	if role == "ai" {
		return RoleAssistant
	}
	return Role(role)
}

// Message is a single dialogue turn. Content is always a string, possibly
// JSON-encoded for tool results. Messages are immutable once appended.
type Message struct {
	ID        string          `json:"-"`
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	ToolCalls json.RawMessage `json:"tool_calls,omitempty"` // carried verbatim from the backend
	Name      string          `json:"name,omitempty"`       // tool name for tool results
}

// IsToolResult reports whether this message is a tool output that needs
// specialized rendering.
func (m Message) IsToolResult() bool {
	return m.Role == RoleTool
}
