package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/render"
	"github.com/zhubert/parley/internal/session"
	"github.com/zhubert/parley/internal/ui"
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	session *session.Session

	header *ui.Header
	footer *ui.Footer
	chat   *ui.Chat
	modal  *ui.Modal

	width  int
	height int

	turnStarted time.Time // when the in-flight chat turn began
	quitting    bool
}

// longTurnThreshold is how long a turn must run before its completion earns a
// desktop notification.
const longTurnThreshold = 30 * time.Second

// New creates a new app model
func New(cfg *config.Config, sess *session.Session, version string) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.ApplyTheme(ui.ThemeName(savedTheme))
	}

	renderer := &render.Renderer{WorkspaceURL: cfg.GetWorkspaceURL()}

	m := &Model{
		config:  cfg,
		version: version,
		session: sess,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		chat:    ui.NewChat(renderer),
		modal:   ui.NewModal(),
	}

	m.header.SetModel(sess.Model())
	m.chat.SetFocused(true)
	m.syncFromSession()

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	// Kick off the first backend probe shortly after startup
	return scheduleProbe(session.ProbeInitialDelay)
}

// syncFromSession refreshes every view component from the session state.
// Called after each message that may have touched the session.
func (m *Model) syncFromSession() {
	m.chat.SetMessages(m.session.Store().Messages())
	m.chat.SetWaiting(m.session.Busy())

	if m.session.ConfirmationPending() {
		m.chat.SetConfirmation(m.session.PendingPrompt(), m.session.PendingToolName())
	} else {
		m.chat.ClearConfirmation()
	}

	status, label := m.session.Status()
	m.header.SetStatus(status, label)
	m.header.SetModel(m.session.Model())

	m.footer.SetContext(m.session.Busy(), m.session.ConfirmationPending(), m.modal.IsVisible())
}
