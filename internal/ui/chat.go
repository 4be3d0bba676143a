package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/render"
)

// Chat is the conversation panel: a scrolling viewport of rendered messages
// with the input textarea below it.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	renderer *render.Renderer

	width   int
	height  int
	focused bool

	messages []chat.Message

	waiting       bool
	waitStartTime time.Time
	waitingVerb   string
	spinnerFrame  int

	// Pending confirmation prompt shown inline above the input
	hasConfirm    bool
	confirmPrompt string
	confirmTool   string
}

// NewChat creates the conversation panel
func NewChat(renderer *render.Renderer) *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask anything..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		renderer: renderer,
	}
	c.updateContent()
	return c
}

// SetSize sets the panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	chatPanelHeight := height - InputTotalHeight
	viewportHeight := chatPanelHeight - BorderSize
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(width - BorderSize)
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(width - BorderSize - InputPaddingWidth)

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetMessages replaces the rendered conversation
func (c *Chat) SetMessages(messages []chat.Message) {
	c.messages = messages
	c.updateContent()
}

// SetWaiting toggles the thinking spinner
func (c *Chat) SetWaiting(waiting bool) {
	if waiting && !c.waiting {
		c.waitStartTime = time.Now()
		c.waitingVerb = randomThinkingVerb()
		c.spinnerFrame = 0
	}
	c.waiting = waiting
	c.updateContent()
}

// IsWaiting returns whether the spinner is showing
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// SetConfirmation shows the inline decision prompt
func (c *Chat) SetConfirmation(prompt, tool string) {
	c.hasConfirm = true
	c.confirmPrompt = prompt
	c.confirmTool = tool
	c.updateContent()
}

// ClearConfirmation hides the decision prompt
func (c *Chat) ClearConfirmation() {
	c.hasConfirm = false
	c.confirmPrompt = ""
	c.confirmTool = ""
	c.updateContent()
}

// HasConfirmation returns whether a decision prompt is showing
func (c *Chat) HasConfirmation() bool {
	return c.hasConfirm
}

// GetInput returns the trimmed input text
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// roleHeading returns the styled label line for a message, or "" for roles
// rendered without one.
func roleHeading(msg chat.Message) string {
	switch msg.Role {
	case chat.RoleUser:
		return ChatUserStyle.Render("You:")
	case chat.RoleAssistant:
		return ChatAssistantStyle.Render("Assistant:")
	case chat.RoleTool:
		name := msg.Name
		if name == "" {
			name = "tool"
		}
		return ChatToolStyle.Render("Tool [" + name + "]:")
	default:
		return ""
	}
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	for i, msg := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}

		switch msg.Role {
		case chat.RoleSystem:
			sb.WriteString(ChatSystemStyle.Render(wrapText(msg.Content, wrapWidth)))
		case chat.RoleError:
			sb.WriteString(ChatErrorStyle.Render(wrapText(msg.Content, wrapWidth)))
		default:
			sb.WriteString(roleHeading(msg))
			sb.WriteString("\n")
			sb.WriteString(RenderOutput(c.renderer.Render(msg), wrapWidth))
		}
	}

	if c.waiting && !c.hasConfirm {
		if len(c.messages) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderSpinner(c.waitingVerb, c.spinnerFrame, time.Since(c.waitStartTime)))
	}

	if c.hasConfirm {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.renderConfirmPrompt(wrapWidth))
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// renderConfirmPrompt renders the inline decision prompt
func (c *Chat) renderConfirmPrompt(wrapWidth int) string {
	var sb strings.Builder

	sb.WriteString(ConfirmTitleStyle.Render("⚠ Confirmation Required"))
	if c.confirmTool != "" {
		sb.WriteString(" ")
		sb.WriteString(ConfirmToolStyle.Render("[" + c.confirmTool + "]"))
	}
	sb.WriteString("\n")

	descStyle := ConfirmDescStyle.Width(wrapWidth - 4)
	sb.WriteString(descStyle.Render(c.confirmPrompt))
	sb.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	sb.WriteString(keyStyle.Render("[y]"))
	sb.WriteString(ConfirmHintStyle.Render(" Confirm  "))
	sb.WriteString(keyStyle.Render("[n]"))
	sb.WriteString(ConfirmHintStyle.Render(" Cancel  "))
	sb.WriteString(keyStyle.Render("[esc]"))
	sb.WriteString(ConfirmHintStyle.Render(" Cancel"))

	boxWidth := wrapWidth
	if boxWidth > 60 {
		boxWidth = 60
	}
	return ConfirmBoxStyle.Width(boxWidth).Render(sb.String())
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case StopwatchTickMsg:
		if c.waiting {
			c.spinnerFrame++
			c.updateContent()
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	}

	if c.focused {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, keys.Home, keys.End, keys.CtrlUp, keys.CtrlDown:
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				cmds = append(cmds, cmd)
				return c, tea.Batch(cmds...)
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Don't pass key events to the viewport while typing
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the conversation panel and the input area below it
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
