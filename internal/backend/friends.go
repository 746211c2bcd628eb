package backend

import (
	"context"
	"net/http"
	"net/url"

	"cinequiz/internal/domain"
)

// Friends lists confirmed friendships.
func (c *Client) Friends(ctx context.Context) ([]domain.Friend, error) {
	var out []domain.Friend
	err := c.do(ctx, http.MethodGet, "/friends", nil, &out)
	return out, err
}

// IncomingRequests lists pending requests addressed to the current user.
func (c *Client) IncomingRequests(ctx context.Context) ([]domain.FriendRequest, error) {
	var out []domain.FriendRequest
	err := c.do(ctx, http.MethodGet, "/friends/requests/incoming", nil, &out)
	return out, err
}

// SendFriendRequest asks targetID for friendship.
func (c *Client) SendFriendRequest(ctx context.Context, targetID string) error {
	return c.do(ctx, http.MethodPost, "/friends/request/"+url.PathEscape(targetID), nil, nil)
}

// AcceptFriendRequest confirms the request from requesterID.
func (c *Client) AcceptFriendRequest(ctx context.Context, requesterID string) error {
	return c.do(ctx, http.MethodPost, "/friends/accept/"+url.PathEscape(requesterID), nil, nil)
}

// RejectFriendRequest discards a pending request by its request ID.
func (c *Client) RejectFriendRequest(ctx context.Context, requestID string) error {
	return c.do(ctx, http.MethodDelete, "/friends/requests/"+url.PathEscape(requestID), nil, nil)
}

// Unfriend removes an existing friendship.
func (c *Client) Unfriend(ctx context.Context, friendID string) error {
	return c.do(ctx, http.MethodDelete, "/friends/"+url.PathEscape(friendID), nil, nil)
}
