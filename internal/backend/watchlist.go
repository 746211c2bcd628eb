package backend

import (
	"context"
	"net/http"
	"net/url"

	"cinequiz/internal/domain"
)

// Watchlist fetches the current user's saved movies.
func (c *Client) Watchlist(ctx context.Context) ([]domain.WatchlistEntry, error) {
	var out []domain.WatchlistEntry
	err := c.do(ctx, http.MethodGet, "/watchlist", nil, &out)
	return out, err
}

// AddToWatchlist persists one entry.
func (c *Client) AddToWatchlist(ctx context.Context, entry domain.WatchlistEntry) error {
	return c.do(ctx, http.MethodPost, "/watchlist", entry, nil)
}

// RemoveFromWatchlist deletes the entry for movieID.
func (c *Client) RemoveFromWatchlist(ctx context.Context, movieID string) error {
	return c.do(ctx, http.MethodDelete, "/watchlist/"+url.PathEscape(movieID), nil, nil)
}
