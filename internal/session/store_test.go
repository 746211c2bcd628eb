package session

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinequiz/internal/domain"
)

func TestLoginLogoutInvariant(t *testing.T) {
	s := New("")
	if s.Authenticated() {
		t.Fatalf("fresh store must not be authenticated")
	}

	if err := s.Login(domain.User{ID: "u1", Username: "alice"}, "t1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !s.Authenticated() {
		t.Fatalf("expected authenticated after login")
	}
	if got := s.Token(); got != "t1" {
		t.Fatalf("expected token t1, got %q", got)
	}
	user, ok := s.Current()
	if !ok || user.Username != "alice" {
		t.Fatalf("expected alice, got %+v ok=%v", user, ok)
	}

	s.Logout()
	if s.Authenticated() || s.Token() != "" {
		t.Fatalf("logout must clear token and user")
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("logout must clear the user")
	}
}

func TestEmptyTokenRejected(t *testing.T) {
	s := New("")
	if err := s.Login(domain.User{Username: "alice"}, ""); err == nil {
		t.Fatalf("expected empty token rejection")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := New(path)
	if err := first.Login(domain.User{ID: "u1", Username: "alice", Role: "user"}, "t1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	second := New(path)
	if !second.Authenticated() {
		t.Fatalf("expected session restored from file")
	}
	user, _ := second.Current()
	if user.Username != "alice" || second.Token() != "t1" {
		t.Fatalf("restored session mismatch: %+v token=%q", user, second.Token())
	}

	second.Logout()
	third := New(path)
	if third.Authenticated() {
		t.Fatalf("logout must remove the persisted session")
	}
}

func TestExpiredPersistedTokenDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	first := New(path)
	if err := first.Login(domain.User{Username: "alice"}, token); err != nil {
		t.Fatalf("login: %v", err)
	}

	second := New(path)
	if second.Authenticated() {
		t.Fatalf("expired token must not be restored")
	}
}

func TestClaimsBackfillIdentity(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "u42",
		"username": "alice",
		"role":     "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	s := New("")
	if err := s.Login(domain.User{}, token); err != nil {
		t.Fatalf("login: %v", err)
	}
	user, _ := s.Current()
	if user.ID != "u42" || user.Username != "alice" || !user.IsAdmin() {
		t.Fatalf("claims backfill failed: %+v", user)
	}
}

func TestExpireFiresCallbackExactlyOnce(t *testing.T) {
	s := New("")
	if err := s.Login(domain.User{Username: "alice"}, "t1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	var mu sync.Mutex
	fired := 0
	s.OnExpire(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Expire()
		}()
	}
	wg.Wait()

	if fired != 1 {
		t.Fatalf("expected exactly one expiry notification, got %d", fired)
	}
	if s.Authenticated() {
		t.Fatalf("expire must clear the session")
	}
}

func TestExpireWithoutSessionIsNoop(t *testing.T) {
	s := New("")
	fired := 0
	s.OnExpire(func() { fired++ })
	s.Expire()
	if fired != 0 {
		t.Fatalf("no session held, callback must not fire")
	}
}

func TestFreshLoginRearmsExpiry(t *testing.T) {
	s := New("")
	fired := 0
	s.OnExpire(func() { fired++ })

	_ = s.Login(domain.User{Username: "alice"}, "t1")
	s.Expire()
	_ = s.Login(domain.User{Username: "alice"}, "t2")
	s.Expire()

	if fired != 2 {
		t.Fatalf("each login epoch gets one expiry, got %d", fired)
	}
}
