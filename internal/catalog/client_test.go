package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinequiz/internal/domain"
)

func testClientServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "https://image.example/t/p", "test-key")
}

func TestSearchSendsKeyAndQuery(t *testing.T) {
	var gotKey, gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/movie", func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		gotQuery = r.URL.Query().Get("query")
		_ = json.NewEncoder(w).Encode(Page{Page: 1, TotalPages: 1, Results: []domain.Movie{
			{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"},
		}})
	})
	client := testClientServer(t, mux)

	movies, err := client.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotKey != "test-key" || gotQuery != "matrix" {
		t.Fatalf("expected credential and query, got key=%q query=%q", gotKey, gotQuery)
	}
	if len(movies) != 1 || movies[0].Year() != "1999" {
		t.Fatalf("unexpected results %+v", movies)
	}
}

func TestGetDetailsAppendsCreditsAndVideos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /movie/603", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("append_to_response"); got != "credits,videos" {
			t.Fatalf("expected credits,videos appended, got %q", got)
		}
		_, _ = w.Write([]byte(`{
			"id": 603, "title": "The Matrix", "backdrop_path": "/bd.jpg",
			"credits": {"cast": [{"name": "Keanu Reeves", "character": "Neo"}]},
			"videos": {"results": [{"key": "abc123", "site": "YouTube", "type": "Trailer"}]}
		}`))
	})
	client := testClientServer(t, mux)

	details, err := client.GetDetails(context.Background(), "603")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details.Cast) != 1 || details.Cast[0].Name != "Keanu Reeves" {
		t.Fatalf("cast not attached: %+v", details.Cast)
	}
	trailer, ok := details.Trailer()
	if !ok || trailer.Key != "abc123" {
		t.Fatalf("trailer not found: %+v ok=%v", trailer, ok)
	}
}

func TestNotFoundIsExplicit(t *testing.T) {
	client := testClientServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	_, err := client.GetDetails(context.Background(), "999999")
	if !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("expected movie-not-found, got %v", err)
	}
}

func TestImageURL(t *testing.T) {
	client := NewClient("https://api.example", "https://image.example/t/p", "k")
	if got := client.ImageURL("w500", "/poster.jpg"); got != "https://image.example/t/p/w500/poster.jpg" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := client.ImageURL("w500", ""); got != "" {
		t.Fatalf("empty path must yield empty url, got %q", got)
	}
}

func TestParseCategory(t *testing.T) {
	if _, err := ParseCategory("top-rated"); err != nil {
		t.Fatalf("friendly name: %v", err)
	}
	if _, err := ParseCategory("now_playing"); err != nil {
		t.Fatalf("slug: %v", err)
	}
	if _, err := ParseCategory("bogus"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}
