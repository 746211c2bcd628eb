package friends

import (
	"context"
	"fmt"
	"sync"

	"cinequiz/internal/domain"
	"cinequiz/internal/notify"
)

// Remote is the slice of the backend client the manager depends on.
type Remote interface {
	Friends(ctx context.Context) ([]domain.Friend, error)
	IncomingRequests(ctx context.Context) ([]domain.FriendRequest, error)
	SendFriendRequest(ctx context.Context, targetID string) error
	AcceptFriendRequest(ctx context.Context, requesterID string) error
	RejectFriendRequest(ctx context.Context, requestID string) error
	Unfriend(ctx context.Context, friendID string) error
}

// Manager wraps friendship operations with a local sent-request marker so a
// session never sends the same request twice, and optimistic removal from
// the pending list on accept/reject.
type Manager struct {
	remote   Remote
	notifier notify.Notifier

	mu      sync.Mutex
	sent    map[string]struct{}
	pending []domain.FriendRequest
}

func NewManager(remote Remote, notifier notify.Notifier) *Manager {
	return &Manager{remote: remote, notifier: notifier, sent: make(map[string]struct{})}
}

// List fetches confirmed friends.
func (m *Manager) List(ctx context.Context) ([]domain.Friend, error) {
	return m.remote.Friends(ctx)
}

// RefreshPending reloads the pending incoming requests.
func (m *Manager) RefreshPending(ctx context.Context) ([]domain.FriendRequest, error) {
	requests, err := m.remote.IncomingRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("load friend requests: %w", err)
	}
	m.mu.Lock()
	m.pending = requests
	m.mu.Unlock()
	return requests, nil
}

// Pending returns the locally tracked incoming requests.
func (m *Manager) Pending() []domain.FriendRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FriendRequest(nil), m.pending...)
}

// Send issues a friend request once per session per target. A backend
// duplicate rejection is surfaced as a notice, not a failure.
func (m *Manager) Send(ctx context.Context, targetID string) error {
	m.mu.Lock()
	if _, dup := m.sent[targetID]; dup {
		m.mu.Unlock()
		m.notifier.Info("Friend request already sent")
		return domain.ErrDuplicateFriendRequest
	}
	m.sent[targetID] = struct{}{}
	m.mu.Unlock()

	if err := m.remote.SendFriendRequest(ctx, targetID); err != nil {
		m.mu.Lock()
		delete(m.sent, targetID)
		m.mu.Unlock()
		return fmt.Errorf("send friend request: %w", err)
	}
	m.notifier.Success("Friend request sent")
	return nil
}

// Accept confirms a pending request, removing it from the local pending list
// optimistically and restoring it on failure.
func (m *Manager) Accept(ctx context.Context, request domain.FriendRequest) error {
	m.removePending(request.ID)
	if err := m.remote.AcceptFriendRequest(ctx, request.FromID); err != nil {
		m.restorePending(request)
		return fmt.Errorf("accept friend request: %w", err)
	}
	m.notifier.Success(fmt.Sprintf("You are now friends with %s", request.FromName))
	return nil
}

// Reject discards a pending request with the same optimistic handling.
func (m *Manager) Reject(ctx context.Context, request domain.FriendRequest) error {
	m.removePending(request.ID)
	if err := m.remote.RejectFriendRequest(ctx, request.ID); err != nil {
		m.restorePending(request)
		return fmt.Errorf("reject friend request: %w", err)
	}
	return nil
}

// Remove ends a friendship.
func (m *Manager) Remove(ctx context.Context, friendID string) error {
	if err := m.remote.Unfriend(ctx, friendID); err != nil {
		return fmt.Errorf("unfriend: %w", err)
	}
	m.notifier.Info("Friend removed")
	return nil
}

func (m *Manager) removePending(requestID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.pending {
		if r.ID == requestID {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

func (m *Manager) restorePending(request domain.FriendRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, request)
}
