package app

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"wedding-trivia/internal/backend"
	"wedding-trivia/internal/domain"
)

// Backend is the remote session/score service. Start, submit and index
// updates are best-effort: the controller logs failures and keeps going so
// a flaky network never blocks the player.
type Backend interface {
	StartSession(ctx context.Context, profile domain.Profile, sessionID string, totalQuestions int) (string, error)
	UpdateQuestionIndex(ctx context.Context, sessionID, email string, index int) error
	SubmitAnswer(ctx context.Context, profile domain.Profile, sessionID string, rec domain.AnsweredQuestion) error
	CheckForcedAdvance(ctx context.Context, sessionID, email string, currentIndex int) (backend.Advance, error)
	EndSession(ctx context.Context, summary domain.SessionSummary) error
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// ProfileStore persists the player identity and the pending-answer audit
// queue across runs. The queue is append-only and never flushed back to the
// backend automatically.
type ProfileStore interface {
	Profile(ctx context.Context) (domain.Profile, bool, error)
	SaveProfile(ctx context.Context, profile domain.Profile) error
	AppendPendingAnswer(ctx context.Context, rec domain.AnsweredQuestion) error
	PendingAnswers(ctx context.Context) ([]domain.AnsweredQuestion, error)
}

// State is the controller's position in the quiz lifecycle.
type State int

const (
	StateRegistration State = iota
	StateRules
	StatePlaying
	StateResults
)

func (s State) String() string {
	switch s {
	case StateRegistration:
		return "registration"
	case StateRules:
		return "rules"
	case StatePlaying:
		return "playing"
	case StateResults:
		return "results"
	}
	return "unknown"
}

// EventKind classifies controller notifications.
type EventKind int

const (
	// EventJumped fires when a forced advance moved the session to a later question.
	EventJumped EventKind = iota
	// EventFinished fires when the session reached results.
	EventFinished
)

// Event is pushed to subscribers when the session moves without a direct
// user action.
type Event struct {
	Kind  EventKind
	Index int
}

// Config tunes a controller.
type Config struct {
	Scoring             ScoringConfig
	AdvancePollInterval time.Duration
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Controller owns one quiz session end to end: registration, question
// progression, scoring, backend synchronization and the forced-advance
// poll. All state is per-instance; nothing is process-global.
type Controller struct {
	backendAPI Backend
	store      ProfileStore
	questions  []domain.Question
	cfg        Config
	now        func() time.Time

	mu          sync.Mutex
	state       State
	sessionID   string
	profile     domain.Profile
	startedAt   time.Time
	index       int
	score       int
	answers     []domain.AnsweredQuestion
	answered    bool
	displayedAt time.Time
	subscribers map[chan Event]struct{}
	stopPoll    context.CancelFunc
}

func NewController(backendAPI Backend, store ProfileStore, questions []domain.Question, cfg Config) *Controller {
	return NewControllerWithClock(backendAPI, store, questions, cfg, time.Now)
}

// NewControllerWithClock allows deterministic timestamps in tests.
func NewControllerWithClock(backendAPI Backend, store ProfileStore, questions []domain.Question, cfg Config, now func() time.Time) *Controller {
	if cfg.Scoring == (ScoringConfig{}) {
		cfg.Scoring = DefaultScoring()
	}
	if cfg.AdvancePollInterval <= 0 {
		cfg.AdvancePollInterval = 2 * time.Second
	}
	return &Controller{
		backendAPI:  backendAPI,
		store:       store,
		questions:   questions,
		cfg:         cfg,
		now:         now,
		state:       StateRegistration,
		subscribers: make(map[chan Event]struct{}),
	}
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RememberedProfile returns the identity persisted by an earlier run, if any.
func (c *Controller) RememberedProfile(ctx context.Context) (domain.Profile, bool) {
	profile, ok, err := c.store.Profile(ctx)
	if err != nil {
		log.Printf("quiz: load profile: %v", err)
		return domain.Profile{}, false
	}
	return profile, ok
}

// Register validates the player identity, persists it, and starts a backend
// session. A backend failure degrades to the locally generated session
// token so the quiz can run offline.
func (c *Controller) Register(ctx context.Context, email, name string) error {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	if name == "" {
		return domain.ErrEmptyName
	}
	if len(c.questions) == 0 {
		return domain.ErrNoQuestions
	}

	c.mu.Lock()
	if c.state != StateRegistration {
		c.mu.Unlock()
		return domain.ErrWrongState
	}
	profile := domain.Profile{Email: email, Name: name}
	token := "sess-" + uuid.NewString()
	c.profile = profile
	c.sessionID = token
	c.startedAt = c.now()
	c.state = StateRules
	c.mu.Unlock()

	if err := c.store.SaveProfile(ctx, profile); err != nil {
		log.Printf("quiz: save profile: %v", err)
	}

	id, err := c.backendAPI.StartSession(ctx, profile, token, len(c.questions))
	if err != nil {
		log.Printf("quiz: start session, continuing with local token: %v", err)
		return nil
	}
	if id != "" && id != token {
		c.mu.Lock()
		c.sessionID = id
		c.mu.Unlock()
	}
	return nil
}

// Begin moves from rules confirmation into play, reports question 0 and
// starts the forced-advance poll.
func (c *Controller) Begin(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateRules {
		c.mu.Unlock()
		return domain.ErrWrongState
	}
	c.state = StatePlaying
	c.index = 0
	c.answered = false
	c.displayedAt = c.now()
	sessionID, email := c.sessionID, c.profile.Email
	c.startAdvancePollLocked()
	c.mu.Unlock()

	if err := c.backendAPI.UpdateQuestionIndex(ctx, sessionID, email, 0); err != nil {
		log.Printf("quiz: report question index 0: %v", err)
	}
	return nil
}

// Current returns the question on screen.
func (c *Controller) Current() (int, domain.Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlaying || c.index >= len(c.questions) {
		return 0, domain.Question{}, false
	}
	return c.index, c.questions[c.index], true
}

// Answered reports whether the current question has been answered.
func (c *Controller) Answered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answered
}

// Answer scores the selected option for the current question. The first
// selection freezes the question; further calls return ErrAlreadyAnswered.
// Correctness comes from the immutable question record, never from
// rendered state.
func (c *Controller) Answer(ctx context.Context, option int) (domain.AnsweredQuestion, error) {
	c.mu.Lock()
	if c.state != StatePlaying || c.index >= len(c.questions) {
		c.mu.Unlock()
		return domain.AnsweredQuestion{}, domain.ErrWrongState
	}
	if c.answered {
		c.mu.Unlock()
		return domain.AnsweredQuestion{}, domain.ErrAlreadyAnswered
	}
	q := c.questions[c.index]
	if option < 0 || option >= len(q.Options) {
		c.mu.Unlock()
		return domain.AnsweredQuestion{}, domain.ErrOptionOutOfRange
	}

	correct := option == q.Correct
	elapsed := c.now().Sub(c.displayedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	rec := domain.AnsweredQuestion{
		QuestionID:     q.ID,
		QuestionText:   q.Text,
		SelectedAnswer: q.Options[option],
		CorrectAnswer:  q.CorrectText(),
		Correct:        correct,
		TimeTaken:      elapsed,
		Points:         Score(c.cfg.Scoring, correct, elapsed),
	}
	c.answered = true
	c.answers = append(c.answers, rec)
	c.score += rec.Points
	profile, sessionID := c.profile, c.sessionID
	c.mu.Unlock()

	if err := c.backendAPI.SubmitAnswer(ctx, profile, sessionID, rec); err != nil {
		log.Printf("quiz: submit answer %d: %v", rec.QuestionID, err)
		if qErr := c.store.AppendPendingAnswer(ctx, rec); qErr != nil {
			log.Printf("quiz: queue answer %d: %v", rec.QuestionID, qErr)
		}
	}
	return rec, nil
}

// Next advances to the following question, or finishes the session when
// the last question was answered.
func (c *Controller) Next(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.state != StatePlaying {
		c.mu.Unlock()
		return false, domain.ErrWrongState
	}
	if !c.answered {
		c.mu.Unlock()
		return false, domain.ErrWrongState
	}
	c.index++
	if c.index >= len(c.questions) {
		summary := c.finishLocked()
		c.mu.Unlock()
		c.reportEnd(ctx, summary)
		return true, nil
	}
	c.answered = false
	c.displayedAt = c.now()
	index, sessionID, email := c.index, c.sessionID, c.profile.Email
	c.mu.Unlock()

	if err := c.backendAPI.UpdateQuestionIndex(ctx, sessionID, email, index); err != nil {
		log.Printf("quiz: report question index %d: %v", index, err)
	}
	return false, nil
}

// Summary returns the session outcome so far.
func (c *Controller) Summary() domain.SessionSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaryLocked()
}

// Leaderboard fetches current standings from the backend.
func (c *Controller) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return c.backendAPI.Leaderboard(ctx)
}

// Restart returns to registration for another run. Score, answers, index
// and the session token are reset; the persisted profile is kept.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPollLocked()
	c.state = StateRegistration
	c.sessionID = ""
	c.index = 0
	c.score = 0
	c.answers = nil
	c.answered = false
}

// Subscribe returns a channel of session events (forced jumps, finish).
// The caller must invoke the returned cancel function to avoid leaks.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Close stops the forced-advance poll. It does not end the session on the
// backend; use Next through the last question for that.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPollLocked()
}

func (c *Controller) startAdvancePollLocked() {
	c.stopPollLocked()
	ctx, cancel := context.WithCancel(context.Background())
	c.stopPoll = cancel
	go c.pollForcedAdvance(ctx)
}

func (c *Controller) stopPollLocked() {
	if c.stopPoll != nil {
		c.stopPoll()
		c.stopPoll = nil
	}
}

func (c *Controller) pollForcedAdvance(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.AdvancePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.state != StatePlaying {
				c.mu.Unlock()
				return
			}
			sessionID, email, index := c.sessionID, c.profile.Email, c.index
			c.mu.Unlock()

			adv, err := c.backendAPI.CheckForcedAdvance(ctx, sessionID, email, index)
			if err != nil {
				log.Printf("quiz: forced-advance poll: %v", err)
				continue
			}
			if adv.ShouldAdvance {
				c.applyForcedAdvance(adv.TargetIndex)
			}
		}
	}
}

// applyForcedAdvance jumps the session to target, skipping intermediate
// questions without creating answer records for them. A target at or past
// the question count ends the session.
func (c *Controller) applyForcedAdvance(target int) {
	c.mu.Lock()
	if c.state != StatePlaying || target <= c.index {
		c.mu.Unlock()
		return
	}
	if target >= len(c.questions) {
		summary := c.finishLocked()
		c.mu.Unlock()
		// finishLocked cancelled the poll context, so the end report
		// needs its own.
		c.reportEnd(context.Background(), summary)
		return
	}
	c.index = target
	c.answered = false
	c.displayedAt = c.now()
	c.notifyLocked(Event{Kind: EventJumped, Index: target})
	c.mu.Unlock()
}

// finishLocked transitions to results and stops the poll. The caller holds
// the mutex and must send the returned summary to the backend after
// releasing it.
func (c *Controller) finishLocked() domain.SessionSummary {
	c.state = StateResults
	c.stopPollLocked()
	summary := c.summaryLocked()
	c.notifyLocked(Event{Kind: EventFinished, Index: len(c.questions)})
	return summary
}

func (c *Controller) summaryLocked() domain.SessionSummary {
	correct := 0
	for _, rec := range c.answers {
		if rec.Correct {
			correct++
		}
	}
	answers := append([]domain.AnsweredQuestion(nil), c.answers...)
	return domain.SessionSummary{
		SessionID:      c.sessionID,
		Email:          c.profile.Email,
		Name:           c.profile.Name,
		StartedAt:      c.startedAt,
		TotalScore:     c.score,
		CorrectAnswers: correct,
		TotalQuestions: len(c.questions),
		Answers:        answers,
	}
}

func (c *Controller) reportEnd(ctx context.Context, summary domain.SessionSummary) {
	if err := c.backendAPI.EndSession(ctx, summary); err != nil {
		log.Printf("quiz: end session: %v", err)
	}
}

func (c *Controller) notifyLocked(ev Event) {
	for ch := range c.subscribers {
		select {
		case ch <- ev:
		default:
			// drop the stale event so a slow consumer never blocks progress
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
