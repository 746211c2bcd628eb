package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinequiz/internal/domain"
)

// Store holds the current authentication token and user identity.
// Invariant: token is non-empty iff user is non-nil.
type Store struct {
	path string

	mu      sync.Mutex
	token   string
	user    *domain.User
	expired bool // set once per login epoch when the backend rejects the token

	onExpire func()
}

// New creates a store persisted at path. An existing session file is loaded;
// a corrupt file is discarded rather than surfaced.
func New(path string) *Store {
	s := &Store{path: path}
	s.load()
	return s
}

// OnExpire registers the callback fired exactly once when the session is
// force-cleared by a rejected-credential response.
func (s *Store) OnExpire(fn func()) {
	s.mu.Lock()
	s.onExpire = fn
	s.mu.Unlock()
}

// Login persists the user and token and marks the session authenticated.
func (s *Store) Login(user domain.User, token string) error {
	if token == "" {
		return fmt.Errorf("login: empty token")
	}
	fillFromClaims(&user, token)

	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.expired = false
	s.mu.Unlock()

	return s.save()
}

// Logout clears the session and removes the persisted file.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.path != "" {
		_ = os.Remove(s.path)
	}
}

// Token returns the stored bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Current returns the logged-in user.
func (s *Store) Current() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a session is held.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Expire clears the session in response to a rejected-credential response and
// fires the expiry callback. Concurrent rejections collapse to a single
// callback invocation; calling Expire with no session held is a no-op.
func (s *Store) Expire() {
	s.mu.Lock()
	if s.token == "" || s.expired {
		s.mu.Unlock()
		return
	}
	s.expired = true
	s.token = ""
	s.user = nil
	fn := s.onExpire
	s.mu.Unlock()

	if s.path != "" {
		_ = os.Remove(s.path)
	}
	if fn != nil {
		fn()
	}
}

type persisted struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *Store) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil || p.Token == "" {
		_ = os.Remove(s.path)
		return
	}
	if exp := tokenExpiry(p.Token); !exp.IsZero() && exp.Before(time.Now()) {
		_ = os.Remove(s.path)
		return
	}
	s.token = p.Token
	s.user = &p.User
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	p := persisted{Token: s.token}
	if s.user != nil {
		p.User = *s.user
	}
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// fillFromClaims backfills identity fields the login response omitted from the
// token claims. The signature is not verified; the backend is the authority
// and the client only needs the advisory payload.
func fillFromClaims(user *domain.User, token string) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return
	}
	if user.ID == "" {
		user.ID = claims.Subject
	}
	if user.Username == "" {
		user.Username = claims.Username
	}
	if user.Role == "" {
		user.Role = claims.Role
	}
}

func tokenExpiry(token string) time.Time {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
