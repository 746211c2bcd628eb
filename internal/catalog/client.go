package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinequiz/internal/domain"
)

// Category is one of the catalog's browsable listings.
type Category string

const (
	Popular    Category = "popular"
	TopRated   Category = "top_rated"
	NowPlaying Category = "now_playing"
	Upcoming   Category = "upcoming"
)

// ParseCategory maps friendly names (top-rated, now-playing) onto catalog slugs.
func ParseCategory(name string) (Category, error) {
	switch strings.ReplaceAll(name, "-", "_") {
	case "popular":
		return Popular, nil
	case "top_rated":
		return TopRated, nil
	case "now_playing":
		return NowPlaying, nil
	case "upcoming":
		return Upcoming, nil
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// Page is one page of a listing with pagination bookkeeping.
type Page struct {
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Results    []domain.Movie `json:"results"`
}

// Client is a read-only client for the third-party movie catalog.
type Client struct {
	base     string
	imageURL string
	apiKey   string
	http     *http.Client
}

func NewClient(baseURL, imageURL, apiKey string) *Client {
	return &Client{
		base:     strings.TrimRight(baseURL, "/"),
		imageURL: strings.TrimRight(imageURL, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Search finds movies by title.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("include_adult", "false")
	q.Set("language", "en-US")
	var page Page
	if err := c.get(ctx, "/search/movie", q, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// ListCategory fetches one page of a category listing.
func (c *Client) ListCategory(ctx context.Context, category Category, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	var out Page
	err := c.get(ctx, "/movie/"+string(category), q, &out)
	return out, err
}

type detailsPayload struct {
	domain.MovieDetails
	Credits struct {
		Cast []domain.CastMember `json:"cast"`
	} `json:"credits"`
	VideoList struct {
		Results []domain.Video `json:"results"`
	} `json:"videos"`
}

// GetDetails fetches the full record with credits and videos in one call.
func (c *Client) GetDetails(ctx context.Context, movieID string) (domain.MovieDetails, error) {
	q := url.Values{}
	q.Set("append_to_response", "credits,videos")
	var payload detailsPayload
	if err := c.get(ctx, "/movie/"+url.PathEscape(movieID), q, &payload); err != nil {
		return domain.MovieDetails{}, err
	}
	details := payload.MovieDetails
	details.Cast = payload.Credits.Cast
	details.Videos = payload.VideoList.Results
	return details, nil
}

// ImageURL builds a CDN URL for a poster/backdrop path at the given size
// (w92, w200, w500, w1280, original). Empty paths yield an empty URL.
func (c *Client) ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return c.imageURL + "/" + size + path
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrMovieNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
