package ui

import (
	"strings"
	"testing"
)

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()
	if m.IsVisible() {
		t.Fatal("new modal should be hidden")
	}

	m.Show(NewUploadState())
	if !m.IsVisible() {
		t.Fatal("modal hidden after Show")
	}

	m.SetError("file not found")
	m.Hide()
	if m.IsVisible() {
		t.Fatal("modal visible after Hide")
	}
	if m.View(100, 40) != "" {
		t.Error("hidden modal rendered content")
	}
}

func TestModal_ViewIncludesTitleAndError(t *testing.T) {
	m := NewModal()
	m.Show(NewUploadState())
	m.SetError("no such file")

	view := m.View(100, 40)
	if !strings.Contains(view, "Upload File") {
		t.Errorf("view missing title: %s", view)
	}
	if !strings.Contains(view, "no such file") {
		t.Errorf("view missing error: %s", view)
	}
}

func TestModelPickerState_DefaultsToCurrent(t *testing.T) {
	models := []string{"groq-llama", "gemini-flash", "deepseek-chat"}
	s := NewModelPickerState(models, "gemini-flash")

	if got := s.Selected(); got != "gemini-flash" {
		t.Errorf("Selected() = %q, want current model preselected", got)
	}
}

func TestModelPickerState_DisplayNames(t *testing.T) {
	s := NewModelPickerState([]string{"groq-llama"}, "groq-llama")

	view := s.Render()
	if !strings.Contains(view, "groq llama") {
		t.Errorf("picker should show dashes as spaces: %s", view)
	}
}

func TestUploadState_PathTrimmed(t *testing.T) {
	s := NewUploadState()
	s.path = "  /tmp/photo.png  "

	if got := s.Path(); got != "/tmp/photo.png" {
		t.Errorf("Path() = %q, want trimmed", got)
	}
}
