package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"cinequiz/internal/domain"
)

// State enumerates the attempt lifecycle.
type State int

const (
	StateLoading State = iota
	StateAlreadyTaken
	StateNoQuestions
	StateAwaitingStart
	StateInProgress
	StateAnswerLocked
	StateExitConfirming
	StateSubmitting
	StateFinished
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAlreadyTaken:
		return "already_taken"
	case StateNoQuestions:
		return "no_questions"
	case StateAwaitingStart:
		return "awaiting_start"
	case StateInProgress:
		return "in_progress"
	case StateAnswerLocked:
		return "answer_locked"
	case StateExitConfirming:
		return "exit_confirming"
	case StateSubmitting:
		return "submitting"
	case StateFinished:
		return "finished"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Backend is the slice of the application backend the controller depends on.
type Backend interface {
	QuizQuestions(ctx context.Context, movieID string) ([]domain.QuizQuestion, error)
	SubmitQuiz(ctx context.Context, sub domain.QuizSubmission) (domain.QuizResult, error)
}

// TitleResolver enriches the attempt with the movie's display title and
// backdrop. Resolution failures never block the quiz.
type TitleResolver interface {
	GetDetails(ctx context.Context, movieID string) (domain.MovieDetails, error)
}

// DefaultRevealDelay is how long a locked answer stays on screen before the
// attempt advances. The interval is excluded from elapsed time.
const DefaultRevealDelay = 1500 * time.Millisecond

// Controller drives one quiz attempt as an explicit state machine:
//
//	Loading -> AwaitingStart -> InProgress(i) -> AnswerLocked(i) -> ... -> Submitting -> Finished
//
// with AlreadyTaken and NoQuestions reachable from Loading, and ExitConfirming
// reachable from InProgress/AnswerLocked. Events arrive as method calls from a
// single interactive loop; the mutex only protects against the abandonment
// path racing the normal one.
type Controller struct {
	AttemptID   string
	RevealDelay time.Duration

	movieID string
	backend Backend
	titles  TitleResolver
	log     *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	state      State
	exitReturn State // state to restore when an exit prompt is cancelled
	questions  []domain.QuizQuestion
	movieTitle string
	backdrop   string
	current    int
	answers    []domain.Answer
	selected   int
	correct    bool

	startedAt   time.Time
	paused      time.Duration // accumulated closed pause intervals
	pauseOpenAt time.Time     // zero when no pause interval is open

	submitted bool
	result    domain.QuizResult
	failure   error
}

// New builds a controller for one attempt. titles may be nil.
func New(movieID string, backend Backend, titles TitleResolver, log *slog.Logger) *Controller {
	return NewWithClock(movieID, backend, titles, log, time.Now)
}

// NewWithClock is test-only for deterministic timestamps.
func NewWithClock(movieID string, backend Backend, titles TitleResolver, log *slog.Logger, now func() time.Time) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		AttemptID:   uuid.NewString(),
		RevealDelay: DefaultRevealDelay,
		movieID:     movieID,
		backend:     backend,
		titles:      titles,
		log:         log,
		now:         now,
		state:       StateLoading,
		selected:    -1,
	}
}

// Load fetches the question set and resolves the movie title. The timer does
// not start here. A failed fetch is terminal for the attempt.
func (c *Controller) Load(ctx context.Context) error {
	c.resolveTitle(ctx)

	questions, err := c.backend.QuizQuestions(ctx, c.movieID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoading {
		return domain.ErrInvalidTransition
	}

	switch {
	case errors.Is(err, domain.ErrQuizAlreadyTaken):
		c.state = StateAlreadyTaken
		return nil
	case err != nil:
		c.state = StateFailed
		c.failure = err
		return fmt.Errorf("fetch quiz: %w", err)
	case len(questions) == 0:
		c.state = StateNoQuestions
		return nil
	}

	c.questions = questions
	c.state = StateAwaitingStart
	return nil
}

func (c *Controller) resolveTitle(ctx context.Context) {
	title := "Movie " + c.movieID
	backdrop := ""
	if c.titles != nil {
		if details, err := c.titles.GetDetails(ctx, c.movieID); err == nil {
			title = details.Title
			backdrop = details.BackdropPath
		}
	}
	c.mu.Lock()
	c.movieTitle = title
	c.backdrop = backdrop
	c.mu.Unlock()
}

// Start confirms the start gesture. The elapsed-time origin is recorded at
// this instant, not before.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAwaitingStart {
		return domain.ErrInvalidTransition
	}
	c.startedAt = c.now()
	c.state = StateInProgress
	return nil
}

// SelectAnswer locks in a choice for the current question. Correctness is
// reported immediately; no further input is accepted for this question. The
// reveal interval that follows is excluded from elapsed time.
func (c *Controller) SelectAnswer(choice int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress {
		return false, domain.ErrInvalidTransition
	}
	question := c.questions[c.current]
	if choice < 0 || choice >= len(question.Choices) {
		return false, fmt.Errorf("choice %d out of range", choice)
	}

	c.answers = append(c.answers, domain.Answer{QuestionID: question.ID, SelectedIndex: choice})
	c.selected = choice
	c.correct = choice == question.CorrectChoiceIndex
	c.state = StateAnswerLocked
	c.pauseOpenAt = c.now()
	return c.correct, nil
}

// RevealElapsed ends the answer-reveal display. It advances to the next
// question, or submits after the last one.
func (c *Controller) RevealElapsed(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateAnswerLocked {
		c.mu.Unlock()
		return domain.ErrInvalidTransition
	}
	c.closePauseLocked()

	if c.current < len(c.questions)-1 {
		c.current++
		c.selected = -1
		c.state = StateInProgress
		c.mu.Unlock()
		return nil
	}

	c.state = StateSubmitting
	c.mu.Unlock()
	return c.submit(ctx, false)
}

// RequestExit pauses the timer and asks for confirmation. Valid while a
// question is on screen or a reveal is showing.
func (c *Controller) RequestExit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress && c.state != StateAnswerLocked {
		return domain.ErrInvalidTransition
	}
	c.exitReturn = c.state
	c.state = StateExitConfirming
	if c.pauseOpenAt.IsZero() {
		c.pauseOpenAt = c.now()
	}
	return nil
}

// CancelExit resumes the attempt in the state it was interrupted in. Time
// spent in the confirmation prompt stays excluded.
func (c *Controller) CancelExit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateExitConfirming {
		return domain.ErrInvalidTransition
	}
	c.state = c.exitReturn
	if c.state == StateInProgress {
		c.closePauseLocked()
	}
	// A cancelled exit during a reveal leaves the pause open; RevealElapsed closes it.
	return nil
}

// ConfirmExit submits whatever has been locked in so far as a forced
// submission.
func (c *Controller) ConfirmExit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateExitConfirming {
		c.mu.Unlock()
		return domain.ErrInvalidTransition
	}
	c.closePauseLocked()
	c.state = StateSubmitting
	c.mu.Unlock()
	return c.submit(ctx, true)
}

// Abandon performs the best-effort partial submission for an unplanned
// departure. Failures are logged, not surfaced, and nothing is retried.
func (c *Controller) Abandon(ctx context.Context) {
	c.mu.Lock()
	started := !c.startedAt.IsZero()
	terminal := c.state == StateFinished || c.state == StateAlreadyTaken ||
		c.state == StateNoQuestions || c.state == StateFailed
	if !started || terminal || c.submitted {
		c.mu.Unlock()
		return
	}
	c.closePauseLocked()
	c.state = StateSubmitting
	c.mu.Unlock()

	if err := c.submit(ctx, true); err != nil {
		c.log.Warn("abandonment submit failed", "attempt", c.AttemptID, "movie", c.movieID, "err", err)
	}
}

func (c *Controller) submit(ctx context.Context, forced bool) error {
	c.mu.Lock()
	if c.submitted {
		c.mu.Unlock()
		return nil
	}
	c.submitted = true
	sub := domain.QuizSubmission{
		AttemptID:  c.AttemptID,
		MovieID:    c.movieID,
		MovieTitle: c.movieTitle,
		Answers:    append([]domain.Answer(nil), c.answers...),
		TimeTaken:  int(c.elapsedLocked().Seconds()),
	}
	c.mu.Unlock()

	result, err := c.backend.SubmitQuiz(ctx, sub)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if forced {
			// Forced submissions are best-effort; the attempt still ends.
			c.state = StateFinished
			c.result.TimeTaken = sub.TimeTaken
			return fmt.Errorf("forced submit: %w", err)
		}
		c.state = StateFailed
		c.failure = err
		c.submitted = false // answers are preserved; a retry is allowed
		return fmt.Errorf("submit quiz: %w", err)
	}
	result.TimeTaken = sub.TimeTaken
	c.result = result
	c.state = StateFinished
	return nil
}

// Elapsed is the wall-clock time since start minus all paused intervals,
// clamped to zero. It reads zero before the start gesture.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

func (c *Controller) elapsedLocked() time.Duration {
	if c.startedAt.IsZero() {
		return 0
	}
	elapsed := c.now().Sub(c.startedAt) - c.paused
	if !c.pauseOpenAt.IsZero() {
		elapsed -= c.now().Sub(c.pauseOpenAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// closePauseLocked folds an open pause interval into the accumulated total.
func (c *Controller) closePauseLocked() {
	if c.pauseOpenAt.IsZero() {
		return
	}
	c.paused += c.now().Sub(c.pauseOpenAt)
	c.pauseOpenAt = time.Time{}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the on-screen question, its index, and the total count.
func (c *Controller) Current() (domain.QuizQuestion, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.questions) == 0 {
		return domain.QuizQuestion{}, 0, 0
	}
	return c.questions[c.current], c.current, len(c.questions)
}

// LastSelection reports the locked-in choice for the current question and
// whether it was correct. Valid in AnswerLocked.
func (c *Controller) LastSelection() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.correct
}

// Answers returns a copy of the recorded answer list.
func (c *Controller) Answers() []domain.Answer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Answer(nil), c.answers...)
}

// Result returns the backend's scoring, valid in Finished.
func (c *Controller) Result() domain.QuizResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// MovieTitle returns the resolved display title.
func (c *Controller) MovieTitle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.movieTitle
}

// Err returns the terminal failure, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}
