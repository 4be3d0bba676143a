// Package gateway implements the HTTP contracts against the agent backend.
// It performs no retries and holds no session state; callers own both.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/zhubert/parley/internal/chat"
	apperrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

// Backend endpoints, relative to the base URL.
const (
	chatPath    = "/chat"
	confirmPath = "/confirm"
	uploadPath  = "/upload"
	pingPath    = "/ping"
)

// DefaultRequestTimeout bounds a chat/confirm/upload round-trip. Agent turns
// can run tools, so this is generous.
const DefaultRequestTimeout = 120 * time.Second

// PendingAction is the opaque descriptor of a sensitive operation awaiting
// human approval. It is forwarded verbatim to the confirmation endpoint;
// only Prompt, ToolName and ToolArgs have meaning to the client.
type PendingAction map[string]interface{}

// Prompt returns the human-readable approval prompt, or a generic fallback.
func (a PendingAction) Prompt() string {
	if p, ok := a["prompt"].(string); ok && p != "" {
		return p
	}
	return "Do you want to proceed?"
}

// ToolName returns the name of the tool requesting approval, if present.
func (a PendingAction) ToolName() string {
	name, _ := a["tool_name"].(string)
	return name
}

// MessageOut is one entry in a backend response's message list.
type MessageOut struct {
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	ToolCalls json.RawMessage `json:"tool_calls,omitempty"`
	Name      string          `json:"name,omitempty"`
}

// Response is the envelope shared by chat, confirm and upload.
type Response struct {
	Messages             []MessageOut  `json:"messages,omitempty"`
	RequiresConfirmation PendingAction `json:"requires_confirmation,omitempty"`
	Error                string        `json:"error,omitempty"`
	Detail               string        `json:"detail,omitempty"`
}

// Gateway is the set of logical backend operations the session core consumes.
// It exists as an interface so tests can substitute a fake backend.
type Gateway interface {
	SendChat(ctx context.Context, messages []chat.Message, model string) (*Response, error)
	SendConfirmation(ctx context.Context, confirmed bool, action PendingAction) (*Response, error)
	UploadFile(ctx context.Context, filename string, content io.Reader) (*Response, error)
	Ping(ctx context.Context) error
}

// Client is the HTTP implementation of Gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a gateway client against the given base URL
// (e.g. "http://localhost:5000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultRequestTimeout},
	}
}

// chatRequest is the wire payload for /chat: the entire message history plus
// the selected model.
type chatRequest struct {
	Messages []chat.Message `json:"messages"`
	Model    string         `json:"model"`
}

// confirmRequest is the wire payload for /confirm.
type confirmRequest struct {
	Confirmed     bool          `json:"confirmed"`
	ActionDetails PendingAction `json:"action_details"`
}

// SendChat posts the full message history and model to /chat.
func (c *Client) SendChat(ctx context.Context, messages []chat.Message, model string) (*Response, error) {
	logger.Debug("Gateway: SendChat with %d messages, model=%s", len(messages), model)
	return c.postJSON(ctx, chatPath, chatRequest{Messages: messages, Model: model})
}

// SendConfirmation posts the user's decision and the original action
// descriptor to /confirm.
func (c *Client) SendConfirmation(ctx context.Context, confirmed bool, action PendingAction) (*Response, error) {
	logger.Debug("Gateway: SendConfirmation confirmed=%v tool=%s", confirmed, action.ToolName())
	return c.postJSON(ctx, confirmPath, confirmRequest{Confirmed: confirmed, ActionDetails: action})
}

// UploadFile posts a file to /upload as multipart form data.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader) (*Response, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, apperrors.UploadFailed(filename, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, apperrors.UploadFailed(filename, err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.UploadFailed(filename, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &body)
	if err != nil {
		return nil, apperrors.UploadFailed(filename, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	logger.Debug("Gateway: UploadFile %s (%d bytes)", filename, body.Len())
	return c.roundTrip(req, "upload")
}

// Ping checks backend liveness with a GET to /ping. A nil return means the
// backend responded OK; the error kind distinguishes an unreachable backend
// (network/timeout) from a reachable-but-erroring one (server).
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pingPath, nil)
	if err != nil {
		return apperrors.E(apperrors.Op("gateway.Ping"), apperrors.KindInvalid, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError("ping", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.ServerError(resp.StatusCode, "")
	}
	return nil
}

// postJSON marshals the payload and performs a POST round-trip.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.E(apperrors.Op("gateway.postJSON"), apperrors.KindInvalid, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.E(apperrors.Op("gateway.postJSON"), apperrors.KindInvalid, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.roundTrip(req, path)
}

// roundTrip executes the request and decodes the shared response envelope.
// A non-2xx status yields a server error carrying the payload's error or
// detail text when present, or "server error: <status>" otherwise.
func (c *Client) roundTrip(req *http.Request, op string) (*Response, error) {
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(op, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperrors.BackendUnreachable(c.baseURL, err)
	}

	// Always try to parse the body: error payloads use the same envelope.
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil && httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		return nil, apperrors.E(apperrors.Op("gateway.roundTrip"), apperrors.KindInvalid,
			fmt.Sprintf("malformed response from %s", op), err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		detail := resp.Error
		if detail == "" {
			detail = resp.Detail
		}
		logger.Warn("Gateway: %s returned status %d: %s", op, httpResp.StatusCode, detail)
		return nil, apperrors.ServerError(httpResp.StatusCode, detail)
	}

	return &resp, nil
}

// transportError classifies a failed round-trip as timeout or unreachable.
func (c *Client) transportError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return apperrors.BackendTimeout(op, err)
	}
	return apperrors.BackendUnreachable(c.baseURL, err)
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
