package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.PasteStartMsg:
		// Terminals send paste events instead of key presses; an image on
		// the clipboard becomes an upload, text falls through to the input.
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		if !m.session.Busy() && !m.session.ConfirmationPending() && !m.modal.IsVisible() {
			return m, tea.Batch(cmd, m.pasteUploadCmd(), ui.StopwatchTick())
		}
		return m, cmd

	case ui.StopwatchTickMsg:
		// The spinner tick doubles as a refresh pulse while a request is in
		// flight, so messages appended by the session show up promptly.
		m.syncFromSession()
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case sendDoneMsg:
		if msg.err != nil {
			logger.Warn("send failed: %v", msg.err)
		}
		if !m.turnStarted.IsZero() && time.Since(m.turnStarted) >= longTurnThreshold &&
			m.config.GetNotificationsEnabled() {
			if err := notification.ResponseReady(); err != nil {
				logger.Debug("notification failed: %v", err)
			}
		}
		m.turnStarted = time.Time{}
		m.syncFromSession()
		return m, nil

	case confirmDoneMsg:
		if msg.err != nil {
			logger.Warn("confirmation failed: %v", msg.err)
		}
		m.syncFromSession()
		return m, nil

	case uploadDoneMsg:
		if msg.err != nil {
			logger.Warn("upload of %s failed: %v", msg.path, msg.err)
		}
		m.syncFromSession()
		return m, nil

	case probeTickMsg:
		return m, m.probeCmd()

	case probeDoneMsg:
		m.syncFromSession()
		return m, scheduleProbe(m.probeInterval())

	case transcriptCopiedMsg:
		if msg.err != nil {
			logger.Warn("transcript copy failed: %v", msg.err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// handleKeyPress routes key events by UI state: modal first, then the
// decision prompt, then the chat input.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(key, msg)
	}

	if m.session.ConfirmationPending() {
		return m.handleConfirmationKey(key)
	}

	switch key {
	case keys.Enter:
		text := m.chat.GetInput()
		if text == "" || m.session.Busy() {
			return m, nil
		}
		m.chat.ClearInput()
		m.chat.SetWaiting(true)
		m.turnStarted = time.Now()
		return m, tea.Batch(m.sendMessageCmd(text), ui.StopwatchTick())

	case keys.CtrlM:
		m.modal.Show(ui.NewModelPickerState(m.config.GetModels(), m.session.Model()))
		m.syncFromSession()
		return m, nil

	case keys.CtrlU:
		if m.session.Busy() {
			return m, nil
		}
		m.modal.Show(ui.NewUploadState())
		m.syncFromSession()
		return m, nil

	case keys.CtrlY:
		return m, m.copyTranscriptCmd()
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// handleModalKey handles keys while a modal is open
func (m *Model) handleModalKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		m.syncFromSession()
		return m, nil

	case keys.Enter:
		switch state := m.modal.State.(type) {
		case *ui.ModelPickerState:
			return m.applyModelSelection(state.Selected())
		case *ui.UploadState:
			return m.startUpload(state.Path())
		}
		m.modal.Hide()
		m.syncFromSession()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// handleConfirmationKey handles the y/n/esc decision for a pending action
func (m *Model) handleConfirmationKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		return m, tea.Batch(m.confirmCmd(true), ui.StopwatchTick())
	case "n", "N", keys.Escape:
		return m, tea.Batch(m.confirmCmd(false), ui.StopwatchTick())
	}
	return m, nil
}

// applyModelSelection switches the session model and persists the choice
func (m *Model) applyModelSelection(model string) (tea.Model, tea.Cmd) {
	m.modal.Hide()

	if model != "" && model != m.session.Model() {
		m.session.SetModel(model)
		m.config.SetModel(model)
		if err := m.config.Save(); err != nil {
			logger.Warn("failed to save config: %v", err)
		}
	}

	m.syncFromSession()
	return m, nil
}

// startUpload validates the entered path and kicks off the upload
func (m *Model) startUpload(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		m.modal.SetError("Enter a file path")
		return m, nil
	}

	m.modal.Hide()
	m.syncFromSession()
	return m, tea.Batch(m.uploadCmd(path), ui.StopwatchTick())
}
