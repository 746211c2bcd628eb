package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation requires a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired indicates the backend rejected the stored credentials.
	ErrSessionExpired = errors.New("session expired")
	// ErrAlreadyInWatchlist indicates a duplicate add by movie ID.
	ErrAlreadyInWatchlist = errors.New("movie already in watchlist")
	// ErrQuizAlreadyTaken indicates the user has already completed this quiz.
	ErrQuizAlreadyTaken = errors.New("quiz already taken")
	// ErrNoQuestions indicates the quiz fetch succeeded but returned no questions.
	ErrNoQuestions = errors.New("no questions available")
	// ErrInvalidTransition is returned when a quiz event does not apply to the current state.
	ErrInvalidTransition = errors.New("invalid quiz state transition")
	// ErrDuplicateFriendRequest indicates a request was already sent this session.
	ErrDuplicateFriendRequest = errors.New("friend request already sent")
	// ErrMovieNotFound indicates the catalog has no record for the requested ID.
	ErrMovieNotFound = errors.New("movie not found")
)
