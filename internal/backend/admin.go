package backend

import (
	"context"
	"net/http"
	"net/url"

	"cinequiz/internal/domain"
)

// AdminDashboard fetches aggregate counts and the user roster, admin only.
func (c *Client) AdminDashboard(ctx context.Context) (domain.AdminDashboard, error) {
	var out domain.AdminDashboard
	err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, &out)
	return out, err
}

// DeleteUser removes an account, admin only.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), nil, nil)
}

// SetUserRole changes an account's role, admin only.
func (c *Client) SetUserRole(ctx context.Context, userID, role string) error {
	payload := struct {
		Role string `json:"role"`
	}{Role: role}
	return c.do(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(userID)+"/role", payload, nil)
}
