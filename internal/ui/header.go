package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/session"
)

// Header is the top bar: app title on the left, active model and connection
// status on the right.
type Header struct {
	width  int
	model  string
	status session.Status
	label  string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{status: session.StatusConnecting, label: session.LabelConnecting}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetModel sets the displayed model identifier
func (h *Header) SetModel(model string) {
	h.model = model
}

// SetStatus sets the displayed connection status
func (h *Header) SetStatus(status session.Status, label string) {
	h.status = status
	h.label = label
}

// statusIndicator returns the colored status dot for the current state.
func (h *Header) statusIndicator() string {
	var c color.Color
	dot := "●"
	switch h.status {
	case session.StatusConnected:
		c = ColorSuccess
	case session.StatusPending:
		c = ColorWarning
	case session.StatusError:
		c = ColorError
	case session.StatusDisconnected:
		c = ColorError
		dot = "○"
	default:
		c = ColorTextMuted
		dot = "○"
	}
	return lipgloss.NewStyle().Foreground(c).Render(dot)
}

// View renders the header
func (h *Header) View() string {
	title := HeaderStyle.Render("Parley")
	right := HeaderModelStyle.Render(h.model) + "  " +
		h.statusIndicator() + " " +
		HeaderModelStyle.Render(h.label) + " "

	gap := h.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, title, spacer, right)
}
