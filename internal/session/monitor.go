package session

import (
	"context"
	"time"

	"github.com/zhubert/parley/internal/chat"
	apperrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

// Health probe schedule. The first probe runs shortly after startup so the
// footer shows a real state quickly, then probes repeat on a fixed interval.
const (
	ProbeInitialDelay = 1 * time.Second
	ProbeInterval     = 20 * time.Second
	ProbeTimeout      = 5 * time.Second
)

// Probe checks backend liveness and updates the connection state. The probe
// is skipped, not deferred, while a request or confirmation is outstanding.
// Transitions append a message exactly once: a System notice on the first
// success after a failure, an Error notice on the first failure after a
// success. A reachable server answering with an error status reports
// StatusError ("Server Issue"); an unreachable one reports
// StatusDisconnected ("Offline").
func (s *Session) Probe(ctx context.Context) Status {
	s.mu.Lock()
	if s.busy || s.gate.Pending() {
		status := s.status
		s.mu.Unlock()
		return status
	}
	s.mu.Unlock()

	pctx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	err := s.gw.Ping(pctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		if !s.connected {
			logger.Info("Monitor: backend reachable")
			s.store.Append(chat.Message{Role: chat.RoleSystem, Content: "Connected to backend."})
			s.connected = true
		}
		s.setStatusLocked(StatusConnected, LabelReady)

	case apperrors.GetKind(err) == apperrors.KindServer:
		if s.connected {
			logger.Warn("Monitor: backend answering with errors: %v", err)
			s.store.Append(chat.Message{Role: chat.RoleError, Content: "Connection to backend lost."})
			s.connected = false
		}
		s.setStatusLocked(StatusError, LabelServerIssue)

	default:
		if s.connected {
			logger.Warn("Monitor: backend unreachable: %v", err)
			s.store.Append(chat.Message{Role: chat.RoleError, Content: "Connection error."})
			s.connected = false
		}
		s.setStatusLocked(StatusDisconnected, LabelOffline)
	}

	return s.status
}

// Connected reports the last probe's verdict.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}
