package repository

import (
	"testing"
	"time"

	authdomain "replydesk-backend/internal/auth/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestRepository(ttl time.Duration) (*sessionRepository, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := NewSessionRepository(ttl).(*sessionRepository)
	repo.now = clock.Now
	return repo, clock
}

func TestCreateAndFind(t *testing.T) {
	repo, _ := newTestRepository(time.Hour)

	sess := repo.Create(authdomain.Credential{AccessToken: "a", RefreshToken: "r"})
	if sess.ID == "" {
		t.Fatal("session ID should be set")
	}

	got := repo.FindByID(sess.ID)
	if got != sess {
		t.Fatalf("FindByID() = %v, want the created session", got)
	}
	if got.Credential().AccessToken != "a" {
		t.Errorf("AccessToken = %q", got.Credential().AccessToken)
	}
}

func TestCreateUsesDistinctIDs(t *testing.T) {
	repo, _ := newTestRepository(time.Hour)
	a := repo.Create(authdomain.Credential{})
	b := repo.Create(authdomain.Credential{})
	if a.ID == b.ID {
		t.Errorf("duplicate session ID %q", a.ID)
	}
}

func TestFindByIDUnknownOrExpired(t *testing.T) {
	repo, clock := newTestRepository(time.Hour)
	sess := repo.Create(authdomain.Credential{})

	if repo.FindByID("nope") != nil {
		t.Error("unknown ID should not resolve")
	}

	clock.now = clock.now.Add(time.Hour)
	if repo.FindByID(sess.ID) != nil {
		t.Error("expired session should not resolve")
	}
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepository(time.Hour)
	sess := repo.Create(authdomain.Credential{})

	repo.Delete(sess.ID)
	if repo.FindByID(sess.ID) != nil {
		t.Error("deleted session should not resolve")
	}
	repo.Delete("missing")
}

func TestDeleteExpired(t *testing.T) {
	repo, clock := newTestRepository(time.Hour)
	old := repo.Create(authdomain.Credential{})

	clock.now = clock.now.Add(30 * time.Minute)
	fresh := repo.Create(authdomain.Credential{})

	clock.now = clock.now.Add(45 * time.Minute)
	if n := repo.DeleteExpired(); n != 1 {
		t.Fatalf("DeleteExpired() = %d, want 1", n)
	}
	if _, ok := repo.sessions[old.ID]; ok {
		t.Error("expired session was kept")
	}
	if repo.FindByID(fresh.ID) == nil {
		t.Error("live session was removed")
	}
}

func TestStartSweeperStops(t *testing.T) {
	repo, clock := newTestRepository(time.Minute)
	sess := repo.Create(authdomain.Credential{})
	clock.now = clock.now.Add(2 * time.Minute)

	stop := make(chan struct{})
	StartSweeper(repo, time.Millisecond, stop)

	deadline := time.After(time.Second)
	for {
		repo.mu.RLock()
		_, present := repo.sessions[sess.ID]
		repo.mu.RUnlock()
		if !present {
			break
		}
		select {
		case <-deadline:
			close(stop)
			t.Fatal("sweeper did not remove the expired session")
		case <-time.After(time.Millisecond):
		}
	}
	close(stop)
}
