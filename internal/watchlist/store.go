package watchlist

import (
	"context"
	"fmt"
	"sync"

	"cinequiz/internal/domain"
	"cinequiz/internal/notify"
	"cinequiz/internal/session"
)

// Remote is the slice of the backend client the store depends on.
type Remote interface {
	Watchlist(ctx context.Context) ([]domain.WatchlistEntry, error)
	AddToWatchlist(ctx context.Context, entry domain.WatchlistEntry) error
	RemoveFromWatchlist(ctx context.Context, movieID string) error
}

// Store is the client-side watchlist cache, synchronized optimistically with
// the backend. Mutations apply locally first and roll back on remote failure,
// so the observable list never diverges from last-known-good for longer than
// one outstanding round trip.
type Store struct {
	remote   Remote
	session  *session.Store
	notifier notify.Notifier

	mu      sync.Mutex
	entries []domain.WatchlistEntry
}

func NewStore(remote Remote, sess *session.Store, notifier notify.Notifier) *Store {
	return &Store{remote: remote, session: sess, notifier: notifier}
}

// Refresh replaces local state with the backend's list.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.session.Authenticated() {
		s.mu.Lock()
		s.entries = nil
		s.mu.Unlock()
		return nil
	}
	entries, err := s.remote.Watchlist(ctx)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Entries returns a copy of the current list.
func (s *Store) Entries() []domain.WatchlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WatchlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Contains reports membership by movie ID.
func (s *Store) Contains(movieID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(movieID) >= 0
}

// Add appends the entry optimistically and persists it. The optimistic entry
// is removed and the user notified if the remote call fails. Duplicate adds
// are a no-op with an informational notice.
func (s *Store) Add(ctx context.Context, entry domain.WatchlistEntry) error {
	if !s.session.Authenticated() {
		s.notifier.Error("Please login to add to watchlist")
		return domain.ErrNotAuthenticated
	}

	s.mu.Lock()
	if s.indexOf(entry.MovieID) >= 0 {
		s.mu.Unlock()
		s.notifier.Info(fmt.Sprintf("%q is already in your watchlist", entry.Title))
		return domain.ErrAlreadyInWatchlist
	}
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("Added %q to watchlist", entry.Title))

	if err := s.remote.AddToWatchlist(ctx, entry); err != nil {
		s.mu.Lock()
		if i := s.indexOf(entry.MovieID); i >= 0 {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
		}
		s.mu.Unlock()
		s.notifier.Error("Failed to save to server")
		return fmt.Errorf("persist watchlist add: %w", err)
	}
	return nil
}

// Remove deletes the entry optimistically. On remote failure the previous
// full list snapshot is restored.
func (s *Store) Remove(ctx context.Context, movieID string) error {
	s.mu.Lock()
	snapshot := make([]domain.WatchlistEntry, len(s.entries))
	copy(snapshot, s.entries)
	if i := s.indexOf(movieID); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
	s.mu.Unlock()

	s.notifier.Info("Removed from watchlist")

	if err := s.remote.RemoveFromWatchlist(ctx, movieID); err != nil {
		s.mu.Lock()
		s.entries = snapshot
		s.mu.Unlock()
		s.notifier.Error("Failed to remove movie")
		return fmt.Errorf("persist watchlist remove: %w", err)
	}
	return nil
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(movieID string) int {
	for i, e := range s.entries {
		if e.MovieID == movieID {
			return i
		}
	}
	return -1
}
