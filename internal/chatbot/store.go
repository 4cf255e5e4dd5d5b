package chatbot

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matterai/timesheet-backend/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultSessionTTL bounds how long an abandoned conversation is kept.
	// Indefinite retention would leak memory one session per abandoned chat.
	DefaultSessionTTL = 24 * time.Hour

	cleanupInterval = 10 * time.Minute
)

// Store owns all chat sessions. Callers only ever hold session identifiers;
// the engine mutates sessions in place under their per-session lock.
// Expired sessions are evicted by the underlying cache, which makes a stale
// identifier indistinguishable from an unknown one, triggering the engine's
// "start fresh" fallback.
type Store struct {
	sessions *gocache.Cache
	ttl      time.Duration

	// deleteMu makes the existence check and the removal in Delete one
	// step, so exactly one of several concurrent deletes wins.
	deleteMu sync.Mutex
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		sessions: gocache.New(ttl, cleanupInterval),
		ttl:      ttl,
	}
}

// Create allocates a fresh session in the answering state. Always succeeds.
func (s *Store) Create() *Session {
	session := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	s.sessions.Set(session.ID, session, s.ttl)
	return session
}

// Get returns the session by identifier or entity.ErrChatSessionNotFound.
func (s *Store) Get(id string) (*Session, error) {
	value, ok := s.sessions.Get(id)
	if !ok {
		return nil, entity.ErrChatSessionNotFound
	}
	return value.(*Session), nil
}

// Touch extends the session's lifetime after activity.
func (s *Store) Touch(session *Session) {
	s.sessions.Set(session.ID, session, s.ttl)
}

// Delete removes the session and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.deleteMu.Lock()
	defer s.deleteMu.Unlock()

	if _, ok := s.sessions.Get(id); !ok {
		return false
	}
	s.sessions.Delete(id)
	return true
}

// List returns all live session identifiers for operational inspection.
func (s *Store) List() []string {
	items := s.sessions.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.sessions.ItemCount()
}
