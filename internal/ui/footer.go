package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer is the bottom bar with context-sensitive keybindings.
type Footer struct {
	width               int
	waiting             bool // a request is in flight
	confirmationPending bool // a decision prompt is showing
	modalVisible        bool // a modal owns the keyboard
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(waiting, confirmationPending, modalVisible bool) {
	f.waiting = waiting
	f.confirmationPending = confirmationPending
	f.modalVisible = modalVisible
}

// bindings returns the keybindings for the current context.
func (f *Footer) bindings() []KeyBinding {
	switch {
	case f.modalVisible:
		return []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "select"},
			{Key: "esc", Desc: "close"},
		}
	case f.confirmationPending:
		return []KeyBinding{
			{Key: "y", Desc: "confirm"},
			{Key: "n", Desc: "cancel"},
			{Key: "esc", Desc: "cancel"},
		}
	case f.waiting:
		return []KeyBinding{
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	default:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+u", Desc: "upload image"},
			{Key: "ctrl+m", Desc: "model"},
			{Key: "ctrl+y", Desc: "copy transcript"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string
	for _, b := range f.bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	content := strings.Join(parts, sep)

	return FooterStyle.Width(f.width).Render(content)
}
