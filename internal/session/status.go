package session

// Status is the connection and activity state surfaced to the presentation
// layer. It is derived from events (loading starts and stops, probe results)
// and never stored with the conversation.
type Status int

const (
	StatusConnecting Status = iota
	StatusConnected
	StatusPending
	StatusError
	StatusDisconnected
)

// String returns the status class name.
func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusPending:
		return "pending"
	case StatusError:
		return "error"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Display labels paired with each status. The pending state carries either
// the thinking or the confirmation label depending on what is outstanding.
const (
	LabelConnecting        = "Connecting..."
	LabelReady             = "Ready"
	LabelThinking          = "Thinking..."
	LabelConfirmation      = "Confirmation Required"
	LabelServerIssue       = "Server Issue"
	LabelOffline           = "Offline"
	LabelAPIError          = "API Error"
	LabelConnectionIssue   = "Connection Issue"
	LabelConfirmationError = "Confirmation Error"
	LabelUploadFailed      = "Upload Failed"
)
