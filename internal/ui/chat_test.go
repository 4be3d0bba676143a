package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/render"
)

func newTestChat() *Chat {
	c := NewChat(render.New())
	c.SetSize(100, 40)
	return c
}

func TestChat_InputRoundTrip(t *testing.T) {
	c := newTestChat()

	c.SetInput("  hello there  ")
	if got := c.GetInput(); got != "hello there" {
		t.Errorf("GetInput() = %q, want trimmed %q", got, "hello there")
	}

	c.ClearInput()
	if got := c.GetInput(); got != "" {
		t.Errorf("GetInput() after clear = %q, want empty", got)
	}
}

func TestChat_SetMessagesRendersTranscript(t *testing.T) {
	c := newTestChat()
	c.SetMessages([]chat.Message{
		{Role: chat.RoleSystem, Content: "Initializing interface..."},
		{Role: chat.RoleUser, Content: "list files"},
		{Role: chat.RoleAssistant, Content: "Here you go."},
	})

	view := c.View()
	for _, want := range []string{"Initializing interface...", "You:", "list files", "Assistant:", "Here you go."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestChat_WaitingShowsSpinner(t *testing.T) {
	c := newTestChat()

	c.SetWaiting(true)
	if !c.IsWaiting() {
		t.Fatal("IsWaiting() = false after SetWaiting(true)")
	}
	verb := c.waitingVerb
	if verb == "" {
		t.Fatal("waiting verb not chosen")
	}
	if !strings.Contains(c.View(), verb) {
		t.Errorf("view missing thinking verb %q", verb)
	}

	// staying in the waiting state must not reroll the verb
	c.SetWaiting(true)
	if c.waitingVerb != verb {
		t.Errorf("verb rerolled on repeated SetWaiting(true): %q -> %q", verb, c.waitingVerb)
	}

	c.SetWaiting(false)
	if strings.Contains(c.View(), verb+"...") {
		t.Error("spinner still visible after SetWaiting(false)")
	}
}

func TestChat_ConfirmationPrompt(t *testing.T) {
	c := newTestChat()

	c.SetConfirmation("Delete /tmp/scratch?", "run_command")
	if !c.HasConfirmation() {
		t.Fatal("HasConfirmation() = false after SetConfirmation")
	}

	view := c.View()
	for _, want := range []string{"Confirmation Required", "run_command", "Delete /tmp/scratch?", "[y]", "[n]", "[esc]"} {
		if !strings.Contains(view, want) {
			t.Errorf("confirmation view missing %q", want)
		}
	}

	c.ClearConfirmation()
	if c.HasConfirmation() {
		t.Error("HasConfirmation() = true after ClearConfirmation")
	}
	if strings.Contains(c.View(), "Delete /tmp/scratch?") {
		t.Error("prompt still visible after ClearConfirmation")
	}
}

func TestChat_ConfirmationSuppressesSpinner(t *testing.T) {
	c := newTestChat()

	c.SetWaiting(true)
	c.SetConfirmation("Proceed?", "")
	view := c.View()
	if strings.Contains(view, c.waitingVerb+"...") {
		t.Error("spinner visible while decision prompt is showing")
	}
	if !strings.Contains(view, "Proceed?") {
		t.Error("decision prompt missing")
	}
}

func TestChat_ToolHeadingUsesName(t *testing.T) {
	c := newTestChat()
	c.SetMessages([]chat.Message{
		{Role: chat.RoleTool, Name: "execute_python", Content: `{"stdout": "4"}`},
		{Role: chat.RoleTool, Content: "bare result"},
	})

	view := c.View()
	if !strings.Contains(view, "Tool [execute_python]:") {
		t.Errorf("named tool heading missing: %s", view)
	}
	if !strings.Contains(view, "Tool [tool]:") {
		t.Errorf("fallback tool heading missing: %s", view)
	}
}

func TestChat_ScrollKeysBypassInput(t *testing.T) {
	c := newTestChat()
	c.SetFocused(true)

	for _, msg := range []tea.KeyPressMsg{
		{Code: tea.KeyPgUp},
		{Code: tea.KeyPgDown},
		{Code: tea.KeyHome},
		{Code: tea.KeyEnd},
		{Code: tea.KeyUp, Mod: tea.ModCtrl},
		{Code: tea.KeyDown, Mod: tea.ModCtrl},
	} {
		c, _ = c.Update(msg)
	}
	if got := c.GetInput(); got != "" {
		t.Errorf("scroll keys leaked into the input: %q", got)
	}

	// Plain typing still reaches the textarea.
	c, _ = c.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if got := c.GetInput(); got != "a" {
		t.Errorf("GetInput() = %q, want %q", got, "a")
	}
}

func TestChat_Focus(t *testing.T) {
	c := newTestChat()

	c.SetFocused(true)
	if !c.IsFocused() {
		t.Error("IsFocused() = false after SetFocused(true)")
	}
	c.SetFocused(false)
	if c.IsFocused() {
		t.Error("IsFocused() = true after SetFocused(false)")
	}
}
