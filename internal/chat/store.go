package chat

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the ordered, append-only log of messages for one session.
// Insertion order is chronological order and is exactly the sequence sent
// back to the backend on the next turn. Messages are never deleted.
//
// Store is safe for concurrent use: the TUI update loop reads it while
// gateway round-trips append from command goroutines.
type Store struct {
	mu       sync.RWMutex
	messages []Message
}

// NewStore creates an empty message store.
func NewStore() *Store {
	return &Store{messages: []Message{}}
}

// Append adds a message to the log and returns true if it was stored.
//
// A System or Error message identical in role and content to the immediately
// preceding entry is dropped to avoid duplicate connectivity spam. All other
// roles are always appended, even when identical to a neighbor.
func (s *Store) Append(msg Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.Role == RoleSystem || msg.Role == RoleError {
		if n := len(s.messages); n > 0 {
			last := s.messages[n-1]
			if last.Role == msg.Role && last.Content == msg.Content {
				return false
			}
		}
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	s.messages = append(s.messages, msg)
	return true
}

// Messages returns a snapshot copy of the log in insertion order.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of stored messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent message and true, or a zero Message and false
// when the store is empty.
func (s *Store) Last() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}
