package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/gateway"
	"github.com/zhubert/parley/internal/logger"
)

// Sentinel errors for rejected submissions.
var (
	// ErrBusy means a request is already in flight or a confirmation is
	// outstanding. Submissions are rejected, not queued.
	ErrBusy = errors.New("session: request in flight")

	// ErrNoPendingAction means a confirmation was submitted with nothing
	// waiting for a decision.
	ErrNoPendingAction = errors.New("session: no pending action")
)

// Config carries the session's collaborators.
type Config struct {
	Gateway gateway.Gateway
	Store   *chat.Store
	Model   string

	// Notify is called with the action prompt when the backend requests a
	// confirmation. Optional.
	Notify func(prompt string)

	// ProbeTimeout bounds each health probe. Zero means ProbeTimeout.
	ProbeTimeout time.Duration
}

// Session is the conversation controller. It owns the busy flag, the
// confirmation gate, and the connection state, and routes every backend
// response through a single handler so messages, errors, and confirmation
// requests are processed in one order everywhere.
//
// Methods are safe for concurrent use: the event loop reads state while
// command goroutines run the network calls.
type Session struct {
	mu sync.Mutex

	store *chat.Store
	gw    gateway.Gateway
	model string

	busy      bool
	gate      Gate
	connected bool

	status      Status
	statusLabel string

	probeTimeout time.Duration
	notify       func(prompt string)
}

// New creates a session, appends the initial system notice, and reports
// status as connecting until the first probe lands.
func New(cfg Config) *Session {
	s := &Session{
		store:        cfg.Store,
		gw:           cfg.Gateway,
		model:        cfg.Model,
		status:       StatusConnecting,
		statusLabel:  LabelConnecting,
		probeTimeout: cfg.ProbeTimeout,
		notify:       cfg.Notify,
	}
	if s.probeTimeout <= 0 {
		s.probeTimeout = ProbeTimeout
	}
	s.store.Append(chat.Message{
		Role:    chat.RoleSystem,
		Content: "Initializing interface... Awaiting backend connection.",
	})
	return s
}

// Busy reports whether a request is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// ConfirmationPending reports whether an action awaits a decision.
func (s *Session) ConfirmationPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Pending()
}

// PendingPrompt returns the human-readable prompt of the action awaiting a
// decision, or "" when none is pending.
func (s *Session) PendingPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.Pending() {
		return ""
	}
	return s.gate.Action().Prompt()
}

// PendingToolName returns the tool behind the action awaiting a decision, or
// "" when none is pending.
func (s *Session) PendingToolName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.Pending() {
		return ""
	}
	return s.gate.Action().ToolName()
}

// Status returns the current status and its display label.
func (s *Session) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.statusLabel
}

// Model returns the active model identifier.
func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Store returns the message store backing this session.
func (s *Session) Store() *chat.Store {
	return s.store
}

// SetModel switches the active model and records the switch in the
// conversation. Switching to the current model is a no-op.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if model == "" || model == s.model {
		return
	}
	s.model = model
	logger.Info("Session: model switched to %s", model)
	s.store.Append(chat.Message{
		Role:    chat.RoleSystem,
		Content: fmt.Sprintf("Model switched to: %s", strings.ReplaceAll(model, "-", " ")),
	})
}

// SubmitUserMessage appends the user's message and sends the full history to
// the backend. Empty input is a no-op. Returns ErrBusy while a request is in
// flight or a confirmation is outstanding.
func (s *Session) SubmitUserMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	if s.busy || s.gate.Pending() {
		s.mu.Unlock()
		return ErrBusy
	}
	s.store.Append(chat.Message{Role: chat.RoleUser, Content: text})
	s.beginRequestLocked()
	model := s.model
	s.mu.Unlock()

	resp, err := s.gw.SendChat(ctx, s.store.Messages(), model)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		logger.Error("Session: chat request failed: %v", err)
		s.store.Append(chat.Message{Role: chat.RoleError, Content: fmt.Sprintf("Error: %v", err)})
		s.setStatusLocked(StatusError, LabelConnectionIssue)
		s.busy = false
		return err
	}
	s.handleResponseLocked(resp)
	s.finishRequestLocked()
	return nil
}

// SubmitConfirmation resolves the pending action with the user's decision,
// records the decision in the conversation, and forwards the action to the
// backend unchanged. The stored action is discarded regardless of the
// network outcome. Returns ErrNoPendingAction when nothing is pending.
func (s *Session) SubmitConfirmation(ctx context.Context, confirmed bool) error {
	s.mu.Lock()
	if !s.gate.Pending() {
		s.mu.Unlock()
		return ErrNoPendingAction
	}
	s.gate.Close()
	action := s.gate.Action()

	verb := "CANCELED"
	if confirmed {
		verb = "CONFIRMED"
	}
	s.store.Append(chat.Message{
		Role:    chat.RoleSystem,
		Content: fmt.Sprintf("User %s action: '%s'", verb, action.Prompt()),
	})
	s.busy = true
	s.setStatusLocked(StatusPending, LabelThinking)
	s.mu.Unlock()

	resp, err := s.gw.SendConfirmation(ctx, confirmed, action)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.Clear()
	if err != nil {
		logger.Error("Session: confirmation request failed: %v", err)
		s.store.Append(chat.Message{
			Role:    chat.RoleError,
			Content: fmt.Sprintf("Error processing confirmation: %v", err),
		})
		s.setStatusLocked(StatusError, LabelConfirmationError)
		s.busy = false
		return err
	}
	s.handleResponseLocked(resp)
	s.finishRequestLocked()
	return nil
}

// SubmitUpload sends a file to the backend and routes the response through
// the shared handler. A nil reader or empty name is a no-op. The busy flag
// always clears when the upload finishes.
func (s *Session) SubmitUpload(ctx context.Context, filename string, content io.Reader) error {
	if filename == "" || content == nil {
		return nil
	}

	s.mu.Lock()
	if s.busy || s.gate.Pending() {
		s.mu.Unlock()
		return ErrBusy
	}
	s.store.Append(chat.Message{
		Role:    chat.RoleSystem,
		Content: fmt.Sprintf("Uploading %s...", filename),
	})
	s.beginRequestLocked()
	s.mu.Unlock()

	resp, err := s.gw.UploadFile(ctx, filename, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		s.busy = false
	}()
	if err != nil {
		logger.Error("Session: upload failed: %v", err)
		s.store.Append(chat.Message{Role: chat.RoleError, Content: fmt.Sprintf("Upload failed: %v", err)})
		s.setStatusLocked(StatusError, LabelUploadFailed)
		return err
	}
	s.handleResponseLocked(resp)
	if !s.gate.Pending() && s.status != StatusError {
		s.refreshIdleStatusLocked()
	}
	return nil
}

func (s *Session) beginRequestLocked() {
	s.busy = true
	s.setStatusLocked(StatusPending, LabelThinking)
}

// finishRequestLocked clears the busy flag unless the response opened the
// confirmation gate, in which case the session stays busy until the user
// decides. An error status set by the response handler is left showing.
func (s *Session) finishRequestLocked() {
	if s.gate.Pending() {
		return
	}
	s.busy = false
	if s.status != StatusError {
		s.refreshIdleStatusLocked()
	}
}

// handleResponseLocked processes a backend response in the fixed order:
// error first, then messages, then any confirmation request.
func (s *Session) handleResponseLocked(resp *gateway.Response) {
	if resp.Error != "" {
		logger.Warn("Session: backend reported error: %s", resp.Error)
		s.store.Append(chat.Message{Role: chat.RoleError, Content: fmt.Sprintf("API Error: %s", resp.Error)})
		s.setStatusLocked(StatusError, LabelAPIError)
		return
	}

	for _, m := range resp.Messages {
		s.store.Append(chat.Message{
			Role:      chat.NormalizeRole(m.Role),
			Content:   m.Content,
			ToolCalls: m.ToolCalls,
			Name:      m.Name,
		})
	}

	if resp.RequiresConfirmation != nil {
		s.gate.Open(resp.RequiresConfirmation)
		s.setStatusLocked(StatusPending, LabelConfirmation)
		if s.notify != nil {
			s.notify(resp.RequiresConfirmation.Prompt())
		}
	}
}

// refreshIdleStatusLocked restores the status shown when nothing is in
// flight, based on the last known connection state. The next probe corrects
// it if the connection changed meanwhile.
func (s *Session) refreshIdleStatusLocked() {
	if s.connected {
		s.setStatusLocked(StatusConnected, LabelReady)
	} else {
		s.setStatusLocked(StatusDisconnected, LabelOffline)
	}
}

func (s *Session) setStatusLocked(status Status, label string) {
	s.status = status
	s.statusLabel = label
}
