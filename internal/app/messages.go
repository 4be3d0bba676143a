package app

import "github.com/zhubert/parley/internal/session"

// sendDoneMsg is sent when a chat request round-trip completes
type sendDoneMsg struct {
	err error
}

// confirmDoneMsg is sent when a confirmation decision round-trip completes
type confirmDoneMsg struct {
	err error
}

// uploadDoneMsg is sent when a file upload round-trip completes
type uploadDoneMsg struct {
	path string
	err  error
}

// probeTickMsg fires when it is time to probe the backend
type probeTickMsg struct{}

// probeDoneMsg carries the status a probe observed
type probeDoneMsg struct {
	status session.Status
}

// transcriptCopiedMsg is sent after the transcript is written to the clipboard
type transcriptCopiedMsg struct {
	err error
}
