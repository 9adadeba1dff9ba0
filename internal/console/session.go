package console

import (
	"strings"
	"sync"
	"time"
)

// Session is the UI state of one browser session. Callers must hold mu
// while touching it.
type Session struct {
	mu sync.Mutex

	Dialog          DialogState
	SelectedProject uint
	page            string
	tracker         *Tracker

	// guarded by Sessions.mu
	lastUsed time.Time
}

// enter records the page the browser shows. A dialog belongs to the page
// it was opened on and closes when the browser leaves that page.
func (s *Session) enter(path string) {
	page := strings.TrimSuffix(path, "/")

	if page != s.page {
		s.Dialog.Close()
		s.page = page
	}
}

// Sessions holds the UI state of every live browser session. A session
// unused for longer than the idle limit is evicted.
type Sessions struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewSessions keeps sessions for idle after their last use. Zero or less
// keeps them until they are dropped.
func NewSessions(idle time.Duration) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      time.Now,
	}
}

// Lock returns the session for id, creating it on first use, with its
// mutex held. The caller must call the returned unlock function.
func (s *Sessions) Lock(id string) (*Session, func()) {
	s.mu.Lock()
	now := s.now()
	s.sweep(now)

	session, ok := s.sessions[id]
	if !ok {
		session = &Session{tracker: NewTracker()}
		s.sessions[id] = session
	}
	session.lastUsed = now
	s.mu.Unlock()

	session.mu.Lock()
	return session, session.mu.Unlock
}

// sweep evicts idle sessions, at most once per idle/4. Callers hold s.mu.
func (s *Sessions) sweep(now time.Time) {
	if s.idle <= 0 || now.Sub(s.lastSweep) < s.idle/4 {
		return
	}
	s.lastSweep = now

	for id, session := range s.sessions {
		if now.Sub(session.lastUsed) > s.idle {
			delete(s.sessions, id)
		}
	}
}

func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
