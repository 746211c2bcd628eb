package backend

import (
	"context"
	"net/http"
	"net/url"

	"cinequiz/internal/domain"
)

// Profile fetches the logged-in user's profile.
func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	var out domain.Profile
	err := c.do(ctx, http.MethodGet, "/users/profile", nil, &out)
	return out, err
}

// UserProfile fetches another user's public profile.
func (c *Client) UserProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var out domain.Profile
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/profile", nil, &out)
	return out, err
}

// UpdateAvatar patches the profile avatar URL.
func (c *Client) UpdateAvatar(ctx context.Context, avatarURL string) error {
	payload := struct {
		Avatar string `json:"avatar"`
	}{Avatar: avatarURL}
	return c.do(ctx, http.MethodPatch, "/users/profile", payload, nil)
}

// SearchUsers finds users by username fragment, used by the friends flow.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, http.MethodGet, "/users/search?q="+url.QueryEscape(query), nil, &out)
	return out, err
}
