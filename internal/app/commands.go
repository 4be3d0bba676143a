package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/session"
)

// sendMessageCmd submits the user's text and reports when the reply arrives.
// The session applies the request timeout itself.
func (m *Model) sendMessageCmd(text string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		err := sess.SubmitUserMessage(context.Background(), text)
		return sendDoneMsg{err: err}
	}
}

// confirmCmd submits the pending action decision.
func (m *Model) confirmCmd(confirmed bool) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		err := sess.SubmitConfirmation(context.Background(), confirmed)
		return confirmDoneMsg{err: err}
	}
}

// uploadCmd opens the file and streams it to the backend.
func (m *Model) uploadCmd(path string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{path: path, err: err}
		}
		defer f.Close()

		err = sess.SubmitUpload(context.Background(), filepath.Base(path), f)
		return uploadDoneMsg{path: path, err: err}
	}
}

// probeCmd checks backend health off the update loop.
func (m *Model) probeCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		status := sess.Probe(context.Background())
		return probeDoneMsg{status: status}
	}
}

// scheduleProbe queues the next health probe after the given delay.
func scheduleProbe(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return probeTickMsg{}
	})
}

// pasteUploadCmd uploads an image sitting on the clipboard, if any. Text
// pastes leave the clipboard image empty and fall through to the input.
func (m *Model) pasteUploadCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		img, err := clipboard.ReadImage()
		if err != nil || img == nil {
			return nil
		}
		if err := img.Validate(); err != nil {
			return uploadDoneMsg{path: "clipboard image", err: err}
		}
		name := fmt.Sprintf("clipboard-%s.png", uuid.NewString()[:8])
		err = sess.SubmitUpload(context.Background(), name, bytes.NewReader(img.Data))
		return uploadDoneMsg{path: name, err: err}
	}
}

// copyTranscriptCmd writes the conversation as plain text to the clipboard.
func (m *Model) copyTranscriptCmd() tea.Cmd {
	messages := m.session.Store().Messages()
	return func() tea.Msg {
		err := clipboard.WriteText(formatTranscript(messages))
		return transcriptCopiedMsg{err: err}
	}
}

// formatTranscript flattens messages into readable plain text.
func formatTranscript(messages []chat.Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch msg.Role {
		case chat.RoleUser:
			sb.WriteString("You: ")
		case chat.RoleAssistant:
			sb.WriteString("Assistant: ")
		case chat.RoleTool:
			name := msg.Name
			if name == "" {
				name = "tool"
			}
			sb.WriteString("Tool [" + name + "]: ")
		}
		sb.WriteString(msg.Content)
	}
	return sb.String()
}

// probeInterval returns the configured probe cadence, falling back to the
// built-in default.
func (m *Model) probeInterval() time.Duration {
	if m.config != nil {
		if interval := m.config.PingInterval(); interval > 0 {
			return interval
		}
	}
	return session.ProbeInterval
}
