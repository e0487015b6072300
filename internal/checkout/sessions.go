package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solimanzein/storefront-bot/internal/cart"
)

// Session snapshots a cart's total while the user picks a payment
// method. Later cart mutations cannot change an in-flight prompt.
type Session struct {
	ID        uuid.UUID
	UserID    string
	Total     decimal.Decimal
	Prompt    cart.DisplayRef
	StartedAt time.Time
}

// Sessions owns every in-flight checkout, keyed by user ID. At most
// one session exists per user; beginning a new one replaces the old.
type Sessions struct {
	mu     sync.Mutex
	byUser map[string]*Session
	now    func() time.Time
}

// NewSessions builds an empty session store.
func NewSessions() *Sessions {
	return &Sessions{
		byUser: make(map[string]*Session),
		now:    time.Now,
	}
}

// Begin snapshots the total and opens a session for the user.
func (s *Sessions) Begin(userID string, total decimal.Decimal) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Total:     total,
		StartedAt: s.now(),
	}
	s.byUser[userID] = session
	return *session
}

// SetPrompt records the payment-prompt message for later cleanup.
func (s *Sessions) SetPrompt(userID string, ref cart.DisplayRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.byUser[userID]; ok {
		session.Prompt = ref
	}
}

// Get returns a copy of the user's session, or ok=false if absent.
func (s *Sessions) Get(userID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.byUser[userID]
	if !ok {
		return Session{}, false
	}
	return *session, true
}

// Delete ends the user's session. Idempotent.
func (s *Sessions) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}

// Evict removes every session started before the cutoff and returns
// copies so the caller can delete abandoned prompt messages.
func (s *Sessions) Evict(cutoff time.Time) []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []Session
	for userID, session := range s.byUser {
		if session.StartedAt.Before(cutoff) {
			evicted = append(evicted, *session)
			delete(s.byUser, userID)
		}
	}
	return evicted
}
