package backend

import (
	"context"
	"net/http"
	"net/url"

	"cinequiz/internal/domain"
)

// GlobalLeaderboard fetches the all-time scoreboard.
func (c *Client) GlobalLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var out []domain.LeaderboardEntry
	err := c.do(ctx, http.MethodGet, "/leaderboard/global", nil, &out)
	return out, err
}

// LeaderboardMovies lists movies that have per-movie scoreboards.
func (c *Client) LeaderboardMovies(ctx context.Context) ([]domain.MovieLeaderboard, error) {
	var out []domain.MovieLeaderboard
	err := c.do(ctx, http.MethodGet, "/leaderboard/movies", nil, &out)
	return out, err
}

// MovieLeaderboard fetches the scoreboard for one movie.
func (c *Client) MovieLeaderboard(ctx context.Context, movieID string) (domain.MovieLeaderboard, error) {
	var out domain.MovieLeaderboard
	err := c.do(ctx, http.MethodGet, "/leaderboard/movie/"+url.PathEscape(movieID), nil, &out)
	return out, err
}
