package domain

import (
	"context"
	"sync"
	"time"

	emaildomain "replydesk-backend/internal/email/domain"
)

// Credential is the OAuth token pair held for a session.
type Credential struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Session is the state of one authenticated browser session: the mailbox
// credential and the reply index table built by the last listing.
//
// Acquire/Release serialize whole requests on the session. The field
// accessors are safe on their own.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	turn chan struct{}

	mu         sync.RWMutex
	credential Credential
	replyIndex []emaildomain.IndexEntry
}

func NewSession(id string, cred Credential, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		turn:       make(chan struct{}, 1),
		credential: cred,
	}
}

// Acquire blocks until no other request holds the session or ctx ends.
func (s *Session) Acquire(ctx context.Context) error {
	select {
	case s.turn <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) Release() {
	<-s.turn
}

func (s *Session) Credential() Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// UpdateAccessToken replaces the access token and its expiry. The refresh
// token is kept as is.
func (s *Session) UpdateAccessToken(accessToken string, expiry time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential.AccessToken = accessToken
	s.credential.Expiry = expiry
}

// ReplaceReplyIndex swaps in a new table. The previous table is dropped
// whole; readers never observe a mix of both.
func (s *Session) ReplaceReplyIndex(entries []emaildomain.IndexEntry) {
	table := make([]emaildomain.IndexEntry, len(entries))
	copy(table, entries)

	s.mu.Lock()
	s.replyIndex = table
	s.mu.Unlock()
}

func (s *Session) LookupReplyTarget(index int) (emaildomain.IndexEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.replyIndex {
		if e.Index == index {
			return e, true
		}
	}
	return emaildomain.IndexEntry{}, false
}

func (s *Session) ReplyIndexSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.replyIndex)
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
