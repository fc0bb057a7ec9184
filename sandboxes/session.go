package sandboxes

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SessionStatus is the terminal disposition of a run session.
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionErrored   SessionStatus = "errored"
	SessionStopped   SessionStatus = "stopped"
)

// Session is one execution of one script. At most one session is active
// per host; a new run request replaces the previous session.
type Session struct {
	ID        uuid.UUID
	Source    string
	Rewritten string

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	output strings.Builder
	status SessionStatus
}

func newSession(ctx context.Context, source string) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		ID:     uuid.New(),
		Source: source,
		ctx:    ctx,
		cancel: cancel,
		status: SessionRunning,
	}
}

// Cancel requests cooperative cancellation. The guest observes it at its
// next suspension point; a session with none runs to completion.
func (s *Session) Cancel() {
	s.cancel()
}

func (s *Session) appendOutput(str string) {
	s.mu.Lock()
	s.output.WriteString(str)
	s.mu.Unlock()
}

// Output returns the captured text so far. Each session owns its buffer;
// nothing leaks across sessions.
func (s *Session) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output.String()
}

func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) setStatus(status SessionStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
