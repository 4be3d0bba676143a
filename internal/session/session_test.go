package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/zhubert/parley/internal/chat"
	apperrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/gateway"
)

type confirmCall struct {
	confirmed bool
	action    gateway.PendingAction
}

// fakeGateway records calls and replays canned responses.
type fakeGateway struct {
	mu sync.Mutex

	chatResp    *gateway.Response
	chatErr     error
	confirmResp *gateway.Response
	confirmErr  error
	uploadResp  *gateway.Response
	uploadErr   error
	pingErr     error

	chatModels   []string
	chatHistory  [][]chat.Message
	confirmCalls []confirmCall
	uploads      []string
	pings        int
}

func (f *fakeGateway) SendChat(ctx context.Context, messages []chat.Message, model string) (*gateway.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatModels = append(f.chatModels, model)
	f.chatHistory = append(f.chatHistory, messages)
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	if f.chatResp == nil {
		return &gateway.Response{}, nil
	}
	return f.chatResp, nil
}

func (f *fakeGateway) SendConfirmation(ctx context.Context, confirmed bool, action gateway.PendingAction) (*gateway.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmCalls = append(f.confirmCalls, confirmCall{confirmed: confirmed, action: action})
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	if f.confirmResp == nil {
		return &gateway.Response{}, nil
	}
	return f.confirmResp, nil
}

func (f *fakeGateway) UploadFile(ctx context.Context, filename string, content io.Reader) (*gateway.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, filename)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if f.uploadResp == nil {
		return &gateway.Response{}, nil
	}
	return f.uploadResp, nil
}

func (f *fakeGateway) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeGateway) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func newTestSession(gw *fakeGateway) *Session {
	return New(Config{Gateway: gw, Store: chat.NewStore(), Model: "groq-llama"})
}

// countMessages returns how many stored messages contain substr.
func countMessages(s *Session, substr string) int {
	n := 0
	for _, m := range s.Store().Messages() {
		if strings.Contains(m.Content, substr) {
			n++
		}
	}
	return n
}

func lastMessage(t *testing.T, s *Session) chat.Message {
	t.Helper()
	msg, ok := s.Store().Last()
	if !ok {
		t.Fatal("store is empty")
	}
	return msg
}

func TestNew_InitialState(t *testing.T) {
	s := newTestSession(&fakeGateway{})

	status, label := s.Status()
	if status != StatusConnecting || label != LabelConnecting {
		t.Errorf("status = %v %q, want %v %q", status, label, StatusConnecting, LabelConnecting)
	}
	msg := lastMessage(t, s)
	if msg.Role != chat.RoleSystem || !strings.Contains(msg.Content, "Awaiting backend connection") {
		t.Errorf("initial message = %+v", msg)
	}
	if s.Busy() || s.ConfirmationPending() {
		t.Error("new session should be idle")
	}
}

func TestSubmitUserMessage_SendsFullHistory(t *testing.T) {
	gw := &fakeGateway{chatResp: &gateway.Response{
		Messages: []gateway.MessageOut{{Role: "ai", Content: "hello back"}},
	}}
	s := newTestSession(gw)

	if err := s.SubmitUserMessage(context.Background(), "  hello  "); err != nil {
		t.Fatalf("SubmitUserMessage: %v", err)
	}

	if len(gw.chatModels) != 1 || gw.chatModels[0] != "groq-llama" {
		t.Errorf("models sent = %v", gw.chatModels)
	}
	// History sent includes the trimmed user message after the initial notice.
	sent := gw.chatHistory[0]
	if sent[len(sent)-1].Content != "hello" || sent[len(sent)-1].Role != chat.RoleUser {
		t.Errorf("last sent message = %+v", sent[len(sent)-1])
	}

	msg := lastMessage(t, s)
	if msg.Role != chat.RoleAssistant || msg.Content != "hello back" {
		t.Errorf("last stored = %+v, want normalized assistant reply", msg)
	}
	if s.Busy() {
		t.Error("busy should clear after the round trip")
	}
}

func TestSubmitUserMessage_EmptyIsNoop(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestSession(gw)
	before := s.Store().Len()

	if err := s.SubmitUserMessage(context.Background(), "   \n "); err != nil {
		t.Fatalf("SubmitUserMessage: %v", err)
	}
	if len(gw.chatHistory) != 0 {
		t.Error("no request should be sent for empty input")
	}
	if s.Store().Len() != before {
		t.Error("no message should be appended for empty input")
	}
}

func TestSubmitUserMessage_NetworkError(t *testing.T) {
	gw := &fakeGateway{chatErr: apperrors.BackendUnreachable("http://localhost:8000", errors.New("refused"))}
	s := newTestSession(gw)

	err := s.SubmitUserMessage(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}

	msg := lastMessage(t, s)
	if msg.Role != chat.RoleError || !strings.HasPrefix(msg.Content, "Error: ") {
		t.Errorf("last stored = %+v, want Error message", msg)
	}
	status, label := s.Status()
	if status != StatusError || label != LabelConnectionIssue {
		t.Errorf("status = %v %q", status, label)
	}
	if s.Busy() {
		t.Error("busy should clear after a failed round trip")
	}
}

func TestHandleResponse_ErrorShortCircuitsMessages(t *testing.T) {
	gw := &fakeGateway{chatResp: &gateway.Response{
		Error:    "model exploded",
		Messages: []gateway.MessageOut{{Role: "assistant", Content: "should be skipped"}},
	}}
	s := newTestSession(gw)

	if err := s.SubmitUserMessage(context.Background(), "hi"); err != nil {
		t.Fatalf("SubmitUserMessage: %v", err)
	}

	if countMessages(s, "should be skipped") != 0 {
		t.Error("messages after a response-level error must not be appended")
	}
	msg := lastMessage(t, s)
	if msg.Role != chat.RoleError || msg.Content != "API Error: model exploded" {
		t.Errorf("last stored = %+v", msg)
	}
}

func TestHandleResponse_MessagesThenConfirmation(t *testing.T) {
	gw := &fakeGateway{chatResp: &gateway.Response{
		Messages: []gateway.MessageOut{
			{Role: "ai", Content: "I need to run a script to answer that."},
			{Role: "ai", Content: "It will read /etc/passwd."},
		},
		RequiresConfirmation: gateway.PendingAction{
			"prompt":    "Run the script?",
			"tool_name": "execute_python",
		},
	}}
	s := newTestSession(gw)

	if err := s.SubmitUserMessage(context.Background(), "who is logged in?"); err != nil {
		t.Fatalf("SubmitUserMessage: %v", err)
	}

	// The narration lands in the store, in order, before the gate opens.
	msgs := s.Store().Messages()
	if len(msgs) < 2 {
		t.Fatalf("store has %d messages", len(msgs))
	}
	first, second := msgs[len(msgs)-2], msgs[len(msgs)-1]
	if first.Role != chat.RoleAssistant || first.Content != "I need to run a script to answer that." {
		t.Errorf("first narration = %+v", first)
	}
	if second.Role != chat.RoleAssistant || second.Content != "It will read /etc/passwd." {
		t.Errorf("second narration = %+v", second)
	}

	if !s.ConfirmationPending() {
		t.Error("confirmation should be pending")
	}
	if !s.Busy() {
		t.Error("session must stay busy until the user decides")
	}
	if got := s.PendingPrompt(); got != "Run the script?" {
		t.Errorf("PendingPrompt = %q", got)
	}
	if _, label := s.Status(); label != LabelConfirmation {
		t.Errorf("label = %q, want %q", label, LabelConfirmation)
	}
}

func TestConfirmationFlow(t *testing.T) {
	action := gateway.PendingAction{
		"prompt":    "Delete file?",
		"tool_name": "delete_file",
		"tool_args": map[string]interface{}{},
		"extra":     "kept",
	}
	gw := &fakeGateway{chatResp: &gateway.Response{RequiresConfirmation: action}}
	s := newTestSession(gw)

	if err := s.SubmitUserMessage(context.Background(), "rm it"); err != nil {
		t.Fatalf("SubmitUserMessage: %v", err)
	}

	if !s.ConfirmationPending() {
		t.Fatal("confirmation should be pending")
	}
	if !s.Busy() {
		t.Error("session must stay busy while a confirmation is outstanding")
	}
	if got := s.PendingPrompt(); got != "Delete file?" {
		t.Errorf("PendingPrompt = %q", got)
	}
	if _, label := s.Status(); label != LabelConfirmation {
		t.Errorf("label = %q, want %q", label, LabelConfirmation)
	}

	// New submissions are rejected outright while the decision is pending.
	if err := s.SubmitUserMessage(context.Background(), "more"); !errors.Is(err, ErrBusy) {
		t.Errorf("SubmitUserMessage while pending = %v, want ErrBusy", err)
	}
	if err := s.SubmitUpload(context.Background(), "x.png", strings.NewReader("x")); !errors.Is(err, ErrBusy) {
		t.Errorf("SubmitUpload while pending = %v, want ErrBusy", err)
	}

	if err := s.SubmitConfirmation(context.Background(), false); err != nil {
		t.Fatalf("SubmitConfirmation: %v", err)
	}

	if countMessages(s, "User CANCELED action: 'Delete file?'") != 1 {
		t.Error("decision message missing")
	}
	if len(gw.confirmCalls) != 1 {
		t.Fatalf("confirm calls = %d", len(gw.confirmCalls))
	}
	call := gw.confirmCalls[0]
	if call.confirmed {
		t.Error("confirmed = true, want false")
	}
	if call.action["extra"] != "kept" || call.action["tool_name"] != "delete_file" {
		t.Errorf("action not forwarded verbatim: %+v", call.action)
	}
	if s.ConfirmationPending() || s.Busy() {
		t.Error("session should be idle after the decision")
	}
}

func TestSubmitConfirmation_NoPending(t *testing.T) {
	s := newTestSession(&fakeGateway{})
	if err := s.SubmitConfirmation(context.Background(), true); !errors.Is(err, ErrNoPendingAction) {
		t.Errorf("err = %v, want ErrNoPendingAction", err)
	}
}

func TestSubmitConfirmation_NetworkErrorStillClearsAction(t *testing.T) {
	action := gateway.PendingAction{"prompt": "Delete file?"}
	gw := &fakeGateway{
		chatResp:   &gateway.Response{RequiresConfirmation: action},
		confirmErr: apperrors.BackendTimeout("gateway.SendConfirmation", context.DeadlineExceeded),
	}
	s := newTestSession(gw)

	if err := s.SubmitUserMessage(context.Background(), "rm it"); err != nil {
		t.Fatalf("SubmitUserMessage: %v", err)
	}
	if err := s.SubmitConfirmation(context.Background(), true); err == nil {
		t.Fatal("expected error")
	}

	if countMessages(s, "User CONFIRMED action: 'Delete file?'") != 1 {
		t.Error("decision message missing")
	}
	if countMessages(s, "Error processing confirmation") != 1 {
		t.Error("confirmation error message missing")
	}
	if s.ConfirmationPending() {
		t.Error("gate must not stay pending")
	}
	if s.gate.Action() != nil {
		t.Error("stored action must be discarded regardless of network outcome")
	}
	if s.Busy() {
		t.Error("busy should clear on confirmation error")
	}
	status, label := s.Status()
	if status != StatusError || label != LabelConfirmationError {
		t.Errorf("status = %v %q", status, label)
	}
}

func TestSubmitUpload(t *testing.T) {
	gw := &fakeGateway{uploadResp: &gateway.Response{
		Messages: []gateway.MessageOut{{Role: "system", Content: "File uploaded as data.png"}},
	}}
	s := newTestSession(gw)

	if err := s.SubmitUpload(context.Background(), "data.png", strings.NewReader("bytes")); err != nil {
		t.Fatalf("SubmitUpload: %v", err)
	}

	if len(gw.uploads) != 1 || gw.uploads[0] != "data.png" {
		t.Errorf("uploads = %v", gw.uploads)
	}
	if countMessages(s, "Uploading data.png...") != 1 {
		t.Error("uploading notice missing")
	}
	if countMessages(s, "File uploaded as data.png") != 1 {
		t.Error("backend message missing")
	}
	if s.Busy() {
		t.Error("busy should clear after upload")
	}
}

func TestSubmitUpload_NilIsNoop(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestSession(gw)

	if err := s.SubmitUpload(context.Background(), "", nil); err != nil {
		t.Fatalf("SubmitUpload: %v", err)
	}
	if len(gw.uploads) != 0 {
		t.Error("no upload should be sent")
	}
}

func TestSubmitUpload_Error(t *testing.T) {
	gw := &fakeGateway{uploadErr: apperrors.UploadFailed("data.png", errors.New("broken pipe"))}
	s := newTestSession(gw)

	if err := s.SubmitUpload(context.Background(), "data.png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error")
	}

	msg := lastMessage(t, s)
	if msg.Role != chat.RoleError || !strings.HasPrefix(msg.Content, "Upload failed: ") {
		t.Errorf("last stored = %+v", msg)
	}
	if s.Busy() {
		t.Error("busy must always clear when the upload finishes")
	}
	if _, label := s.Status(); label != LabelUploadFailed {
		t.Errorf("label = %q", label)
	}
}

func TestSetModel(t *testing.T) {
	s := newTestSession(&fakeGateway{})

	s.SetModel("local-llama")
	if s.Model() != "local-llama" {
		t.Errorf("Model = %q", s.Model())
	}
	if countMessages(s, "Model switched to: local llama") != 1 {
		t.Error("switch message missing")
	}

	before := s.Store().Len()
	s.SetModel("local-llama")
	s.SetModel("")
	if s.Store().Len() != before {
		t.Error("same or empty model must be a no-op")
	}
}

func TestProbe_Transitions(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestSession(gw)
	ctx := context.Background()

	// First success: connected notice plus Ready.
	if got := s.Probe(ctx); got != StatusConnected {
		t.Errorf("status = %v, want %v", got, StatusConnected)
	}
	if countMessages(s, "Connected to backend.") != 1 {
		t.Error("connected notice missing")
	}
	if !s.Connected() {
		t.Error("Connected() = false")
	}

	// Reachable server answering with errors.
	gw.setPingErr(apperrors.ServerError(503, ""))
	if got := s.Probe(ctx); got != StatusError {
		t.Errorf("status = %v, want %v", got, StatusError)
	}
	if countMessages(s, "Connection to backend lost.") != 1 {
		t.Error("lost notice missing")
	}
	if _, label := s.Status(); label != LabelServerIssue {
		t.Errorf("label = %q, want %q", label, LabelServerIssue)
	}

	// Recovery appends exactly one connected notice across repeat probes.
	gw.setPingErr(nil)
	for i := 0; i < 3; i++ {
		if got := s.Probe(ctx); got != StatusConnected {
			t.Fatalf("probe %d status = %v", i, got)
		}
	}
	if n := countMessages(s, "Connected to backend."); n != 2 {
		t.Errorf("connected notices = %d, want 2 (initial plus one recovery)", n)
	}

	// Unreachable transport reports Offline with its own notice.
	gw.setPingErr(apperrors.BackendUnreachable("http://localhost:8000", errors.New("refused")))
	if got := s.Probe(ctx); got != StatusDisconnected {
		t.Errorf("status = %v, want %v", got, StatusDisconnected)
	}
	if countMessages(s, "Connection error.") != 1 {
		t.Error("offline notice missing")
	}
	if _, label := s.Status(); label != LabelOffline {
		t.Errorf("label = %q, want %q", label, LabelOffline)
	}
}

func TestProbe_SkippedWhileConfirmationPending(t *testing.T) {
	gw := &fakeGateway{chatResp: &gateway.Response{
		RequiresConfirmation: gateway.PendingAction{"prompt": "Go?"},
	}}
	s := newTestSession(gw)

	if err := s.SubmitUserMessage(context.Background(), "do it"); err != nil {
		t.Fatalf("SubmitUserMessage: %v", err)
	}
	before := gw.pings
	status := s.Probe(context.Background())
	if gw.pings != before {
		t.Error("probe must be skipped while a confirmation is pending")
	}
	if _, label := s.Status(); label != LabelConfirmation {
		t.Errorf("label = %q, probe must not change it", label)
	}
	if status != StatusPending {
		t.Errorf("status = %v, want %v", status, StatusPending)
	}
}

func TestNotifyOnConfirmation(t *testing.T) {
	var gotPrompt string
	gw := &fakeGateway{chatResp: &gateway.Response{
		RequiresConfirmation: gateway.PendingAction{"prompt": "Reboot host?"},
	}}
	s := New(Config{
		Gateway: gw,
		Store:   chat.NewStore(),
		Model:   "groq-llama",
		Notify: func(prompt string) {
			gotPrompt = prompt
		},
	})

	if err := s.SubmitUserMessage(context.Background(), "reboot"); err != nil {
		t.Fatalf("SubmitUserMessage: %v", err)
	}
	if gotPrompt != "Reboot host?" {
		t.Errorf("notify prompt = %q", gotPrompt)
	}
}
