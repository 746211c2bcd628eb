package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cinequiz/internal/domain"
	"cinequiz/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(t *testing.T, handler http.Handler) (*Client, *session.Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	sess := session.New("")
	return NewClient(server.URL, 5*time.Second, sess, testLogger()), sess, server
}

func TestLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode creds: %v", err)
		}
		if creds.Username != "alice" || creds.Password != "password1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "t1",
			User:        domain.User{Username: "alice"},
		})
	})
	client, sess, _ := testClient(t, mux)

	resp, err := client.Login(context.Background(), Credentials{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken != "t1" {
		t.Fatalf("expected token t1, got %q", resp.AccessToken)
	}
	if sess.Token() != "t1" {
		t.Fatalf("session must hold the token, got %q", sess.Token())
	}
	user, _ := sess.Current()
	if user.Username != "alice" {
		t.Fatalf("session must hold the user, got %+v", user)
	}
}

func TestLoginRejectionStaysInline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	})
	client, sess, _ := testClient(t, mux)

	expired := 0
	sess.OnExpire(func() { expired++ })

	_, err := client.Login(context.Background(), Credentials{Username: "alice", Password: "wrongpass"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected inline 401 APIError, got %v", err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("expected backend message, got %q", apiErr.Message)
	}
	if expired != 0 {
		t.Fatalf("login failures must not expire the session")
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /watchlist", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.WatchlistEntry{})
	})
	client, sess, _ := testClient(t, mux)
	_ = sess.Login(domain.User{Username: "alice"}, "t1")

	if _, err := client.Watchlist(context.Background()); err != nil {
		t.Fatalf("watchlist: %v", err)
	}
	if gotAuth != "Bearer t1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestConcurrent401ExpiresOnce(t *testing.T) {
	mux := http.NewServeMux()
	release := make(chan struct{})
	mux.HandleFunc("GET /watchlist", func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})
	client, sess, _ := testClient(t, mux)
	_ = sess.Login(domain.User{Username: "alice"}, "t1")

	var mu sync.Mutex
	expired := 0
	sess.OnExpire(func() {
		mu.Lock()
		expired++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Watchlist(context.Background())
		}(i)
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, domain.ErrSessionExpired) {
			t.Fatalf("request %d: expected session expired, got %v", i, err)
		}
	}
	if expired != 1 {
		t.Fatalf("two concurrent 401s must notify exactly once, got %d", expired)
	}
	if sess.Authenticated() {
		t.Fatalf("session must be cleared after a 401")
	}
}

func TestQuizForbiddenMeansAlreadyTaken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /quiz/603", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "quiz already taken"})
	})
	client, sess, _ := testClient(t, mux)
	_ = sess.Login(domain.User{Username: "alice"}, "t1")

	_, err := client.QuizQuestions(context.Background(), "603")
	if !errors.Is(err, domain.ErrQuizAlreadyTaken) {
		t.Fatalf("expected already-taken, got %v", err)
	}
}

func TestTransportFailureIsWrapped(t *testing.T) {
	sess := session.New("")
	client := NewClient("http://127.0.0.1:1", time.Second, sess, testLogger())
	_, err := client.Watchlist(context.Background())
	if err == nil {
		t.Fatalf("expected connectivity error")
	}
	if errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("transport failure must not be treated as auth rejection")
	}
}

func TestValidationRunsBeforeNetwork(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { called = true })
	client, _, _ := testClient(t, mux)

	if _, err := client.Login(context.Background(), Credentials{Username: "al"}); err == nil {
		t.Fatalf("expected validation error for short username and empty password")
	}
	if err := client.Register(context.Background(), Registration{Username: "alice", Email: "nope", Password: "password1"}); err == nil {
		t.Fatalf("expected validation error for bad email")
	}
	if called {
		t.Fatalf("validation failures must not reach the network")
	}
}

func TestSubmitQuizRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /quiz/submit", func(w http.ResponseWriter, r *http.Request) {
		var sub domain.QuizSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			t.Fatalf("decode submission: %v", err)
		}
		if sub.MovieID != "603" || len(sub.Answers) != 2 {
			t.Fatalf("unexpected submission %+v", sub)
		}
		_ = json.NewEncoder(w).Encode(domain.QuizResult{Score: 7, Rank: 2, CorrectCount: 1, TotalQuestions: 2})
	})
	client, sess, _ := testClient(t, mux)
	_ = sess.Login(domain.User{Username: "alice"}, "t1")

	result, err := client.SubmitQuiz(context.Background(), domain.QuizSubmission{
		MovieID: "603",
		Answers: []domain.Answer{{QuestionID: "q1", SelectedIndex: 0}, {QuestionID: "q2", SelectedIndex: 3}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 7 || result.Rank != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}
