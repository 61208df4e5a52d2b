package memory

import (
	"time"

	"career-assistant-be/internal/session"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps session state in process memory. Sessions expire after
// the TTL unless touched; nothing survives a restart.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *SessionRepository) Save(s *session.State) {
	r.cache.Set(s.UserID(), s, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID string) (*session.State, bool) {
	if x, found := r.cache.Get(userID); found {
		s := x.(*session.State)
		// Sliding expiration
		r.cache.Set(userID, s, cache.DefaultExpiration)
		return s, true
	}
	return nil, false
}

// GetOrCreate returns the existing state for userID or stores a fresh one.
// Concurrent callers for the same id always receive the same *State.
func (r *SessionRepository) GetOrCreate(userID string) *session.State {
	if s, ok := r.Get(userID); ok {
		return s
	}
	fresh := session.New(userID)
	if err := r.cache.Add(userID, fresh, cache.DefaultExpiration); err != nil {
		if s, ok := r.Get(userID); ok {
			return s
		}
		r.Save(fresh)
	}
	return fresh
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
