package domain

import "time"

// User identifies an authenticated account.
type User struct {
	ID       string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == "admin" }

// Movie is a catalog listing entry.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
}

// Year extracts the release year, or "N/A" when the date is unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return "N/A"
	}
	return m.ReleaseDate[:4]
}

// CastMember is an actor credit on a movie.
type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// Video references a trailer or clip hosted off-catalog.
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// MovieDetails is the full detail record with credits and videos attached.
type MovieDetails struct {
	Movie
	BackdropPath string       `json:"backdrop_path"`
	Runtime      int          `json:"runtime"`
	Genres       []Genre      `json:"genres"`
	Cast         []CastMember `json:"-"`
	Videos       []Video      `json:"-"`
}

// Genre is a catalog genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Trailer returns the first YouTube trailer, if any.
func (d MovieDetails) Trailer() (Video, bool) {
	for _, v := range d.Videos {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return v, true
		}
	}
	return Video{}, false
}

// WatchlistEntry is a saved movie; membership is unique by MovieID.
type WatchlistEntry struct {
	MovieID   string `json:"movieId"`
	Title     string `json:"title"`
	PosterURL string `json:"posterUrl"`
	Year      string `json:"year"`
}

// QuizQuestion is immutable once fetched for an attempt.
type QuizQuestion struct {
	ID                 string   `json:"id" yaml:"id"`
	Text               string   `json:"questionText" yaml:"text"`
	Choices            []string `json:"choices" yaml:"choices"`
	CorrectChoiceIndex int      `json:"correctIndex" yaml:"correct"`
}

// Answer records one locked-in choice.
type Answer struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
}

// QuizSubmission is the payload for scoring, normal or partial.
type QuizSubmission struct {
	AttemptID  string   `json:"attemptId"`
	MovieID    string   `json:"movieId"`
	MovieTitle string   `json:"movieTitle"`
	Answers    []Answer `json:"answers"`
	TimeTaken  int      `json:"timeTaken"` // whole seconds, paused intervals excluded
}

// QuizResult is the backend's scoring of a submission.
type QuizResult struct {
	Score          int `json:"score"`
	Rank           int `json:"rank"`
	CorrectCount   int `json:"correctCount"`
	TotalQuestions int `json:"totalQuestions"`
	TimeTaken      int `json:"timeTaken"`
}

// QuizDefinition is the admin-facing editable form of a quiz.
type QuizDefinition struct {
	ID        string         `json:"id,omitempty" yaml:"id"`
	MovieID   string         `json:"movieId" yaml:"movieId"`
	Title     string         `json:"title" yaml:"title"`
	Questions []QuizQuestion `json:"questions" yaml:"questions"`
}

// LeaderboardEntry is a read-only projection from the backend.
type LeaderboardEntry struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Score       int    `json:"score"`
	Rank        int    `json:"rank"`
	QuizzesDone int    `json:"quizzesDone"`
}

// MovieLeaderboard ties a per-movie scoreboard to its catalog record.
type MovieLeaderboard struct {
	MovieID string             `json:"movieId"`
	Title   string             `json:"title"`
	Entries []LeaderboardEntry `json:"entries"`
}

// FriendRequest is a pending incoming request.
type FriendRequest struct {
	ID        string    `json:"id"`
	FromID    string    `json:"fromId"`
	FromName  string    `json:"fromUsername"`
	CreatedAt time.Time `json:"createdAt"`
}

// Friend is a confirmed friendship edge.
type Friend struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Profile is a user's public profile with quiz history.
type Profile struct {
	User         User         `json:"user"`
	TotalScore   int          `json:"totalScore"`
	GlobalRank   int          `json:"globalRank"`
	QuizHistory  []QuizResult `json:"quizHistory"`
	FriendsCount int          `json:"friendsCount"`
}

// AdminDashboard aggregates counts for the admin overview.
type AdminDashboard struct {
	UserCount    int    `json:"userCount"`
	QuizCount    int    `json:"quizCount"`
	AttemptCount int    `json:"attemptCount"`
	Users        []User `json:"users"`
}
