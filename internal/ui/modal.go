package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/keys"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := ModalTitleStyle.Render(m.State.Title()) + "\n" + m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}
	content += "\n" + ModalHelpStyle.Render(m.State.Help())

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// modalTheme returns a huh theme matching the current palette.
func modalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("> ")
		t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
		t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		return t
	})
}

// =============================================================================
// ModelPickerState - State for the model selection modal
// =============================================================================

// ModelPickerState lets the user switch the active model.
type ModelPickerState struct {
	form     *huh.Form
	selected string
}

func (*ModelPickerState) modalState() {}

// NewModelPickerState builds the picker with the current model preselected.
func NewModelPickerState(models []string, current string) *ModelPickerState {
	s := &ModelPickerState{selected: current}

	options := make([]huh.Option[string], len(models))
	for i, m := range models {
		options[i] = huh.NewOption(strings.ReplaceAll(m, "-", " "), m)
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Model").
			Options(options...).
			Value(&s.selected),
	)).
		WithTheme(modalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6)

	s.form.Init()
	return s
}

func (s *ModelPickerState) Title() string { return "Switch Model" }

func (s *ModelPickerState) Help() string {
	return "↑/↓ to navigate, Enter to select, Esc to cancel"
}

func (s *ModelPickerState) Render() string {
	return s.form.View()
}

// Update delegates to the huh form, keeping Enter and Escape for the
// app-layer handlers.
func (s *ModelPickerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return s, nil
		}
	}

	m, cmd := s.form.Update(msg)
	s.form = m.(*huh.Form)
	return s, cmd
}

// Selected returns the highlighted model identifier.
func (s *ModelPickerState) Selected() string {
	return s.selected
}

// =============================================================================
// UploadState - State for the file upload path modal
// =============================================================================

// UploadState asks for the path of a file to upload.
type UploadState struct {
	form *huh.Form
	path string
}

func (*UploadState) modalState() {}

// NewUploadState builds the upload path prompt.
func NewUploadState() *UploadState {
	s := &UploadState{}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("File path").
			Description("Image to upload to the backend workspace").
			Placeholder("/path/to/image.png").
			CharLimit(ModalInputCharLimit).
			Value(&s.path),
	)).
		WithTheme(modalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6)

	s.form.Init()
	return s
}

func (s *UploadState) Title() string { return "Upload File" }

func (s *UploadState) Help() string {
	return "Enter to upload, Esc to cancel"
}

func (s *UploadState) Render() string {
	return s.form.View()
}

func (s *UploadState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return s, nil
		}
	}

	m, cmd := s.form.Update(msg)
	s.form = m.(*huh.Form)
	return s, cmd
}

// Path returns the entered file path, trimmed.
func (s *UploadState) Path() string {
	return strings.TrimSpace(s.path)
}
