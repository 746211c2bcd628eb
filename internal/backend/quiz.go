package backend

import (
	"context"
	"net/http"
	"net/url"

	"cinequiz/internal/domain"
)

// QuizQuestions fetches the question set for a movie. A 403 means the user
// has already completed this quiz and maps to domain.ErrQuizAlreadyTaken.
func (c *Client) QuizQuestions(ctx context.Context, movieID string) ([]domain.QuizQuestion, error) {
	var out []domain.QuizQuestion
	err := c.do(ctx, http.MethodGet, "/quiz/"+url.PathEscape(movieID), nil, &out)
	if IsStatus(err, http.StatusForbidden) {
		return nil, domain.ErrQuizAlreadyTaken
	}
	return out, err
}

// SubmitQuiz scores a submission, normal or partial.
func (c *Client) SubmitQuiz(ctx context.Context, sub domain.QuizSubmission) (domain.QuizResult, error) {
	var out domain.QuizResult
	err := c.do(ctx, http.MethodPost, "/quiz/submit", sub, &out)
	return out, err
}

// AllQuizzes lists every quiz definition, admin only.
func (c *Client) AllQuizzes(ctx context.Context) ([]domain.QuizDefinition, error) {
	var out []domain.QuizDefinition
	err := c.do(ctx, http.MethodGet, "/quiz/all", nil, &out)
	return out, err
}

// CreateQuiz adds a quiz definition, admin only.
func (c *Client) CreateQuiz(ctx context.Context, def domain.QuizDefinition) (domain.QuizDefinition, error) {
	var out domain.QuizDefinition
	err := c.do(ctx, http.MethodPost, "/quiz", def, &out)
	return out, err
}

// UpdateQuiz replaces a quiz definition, admin only.
func (c *Client) UpdateQuiz(ctx context.Context, id string, def domain.QuizDefinition) error {
	return c.do(ctx, http.MethodPut, "/quiz/"+url.PathEscape(id), def, nil)
}

// DeleteQuiz removes a quiz definition, admin only.
func (c *Client) DeleteQuiz(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/quiz/"+url.PathEscape(id), nil, nil)
}
