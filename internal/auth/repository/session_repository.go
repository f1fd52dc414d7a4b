package repository

import (
	"log"
	"sync"
	"time"

	authdomain "replydesk-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// SessionRepository stores live sessions. Nothing is persisted: a restart
// logs every user out.
type SessionRepository interface {
	Create(cred authdomain.Credential) *authdomain.Session
	FindByID(id string) *authdomain.Session
	Delete(id string)
	DeleteExpired() int
}

// sessionRepository implements SessionRepository in memory
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*authdomain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionRepository creates a new instance of sessionRepository
func NewSessionRepository(ttl time.Duration) SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*authdomain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *sessionRepository) Create(cred authdomain.Credential) *authdomain.Session {
	sess := authdomain.NewSession(uuid.New().String(), cred, r.now(), r.ttl)

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	return sess
}

// FindByID returns nil for unknown or expired sessions.
func (r *sessionRepository) FindByID(id string) *authdomain.Session {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok || sess.Expired(r.now()) {
		return nil
	}
	return sess
}

func (r *sessionRepository) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *sessionRepository) DeleteExpired() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sess := range r.sessions {
		if sess.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper drops expired sessions every interval until stop is closed.
func StartSweeper(repo SessionRepository, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := repo.DeleteExpired(); n > 0 {
					log.Printf("[Session] Swept %d expired sessions", n)
				}
			case <-stop:
				return
			}
		}
	}()
}
