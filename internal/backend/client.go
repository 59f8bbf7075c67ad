package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wedding-trivia/internal/domain"
)

// Client talks to the quiz backend: a single endpoint that dispatches on an
// "action" form field and answers with JSON. All requests are POSTs with
// application/x-www-form-urlencoded bodies.
//
// Failure policy is the caller's concern. Session start, answer submission
// and index updates are treated optimistically upstream; only question
// loading blocks on errors.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Advance is the backend's answer to a forced-advance poll.
type Advance struct {
	ShouldAdvance bool `json:"shouldAdvance"`
	TargetIndex   int  `json:"targetQuestionIndex"`
}

type response struct {
	Success       bool                      `json:"success"`
	Error         string                    `json:"error"`
	SessionID     string                    `json:"sessionId"`
	ShouldAdvance bool                      `json:"shouldAdvance"`
	TargetIndex   int                       `json:"targetQuestionIndex"`
	Leaderboard   []domain.LeaderboardEntry `json:"leaderboard"`
}

// StartSession registers a new quiz session and returns the session ID the
// backend settled on (normally the one the client proposed).
func (c *Client) StartSession(ctx context.Context, profile domain.Profile, sessionID string, totalQuestions int) (string, error) {
	resp, err := c.post(ctx, url.Values{
		"action":         {"startSession"},
		"email":          {profile.Email},
		"name":           {profile.Name},
		"sessionId":      {sessionID},
		"totalQuestions": {strconv.Itoa(totalQuestions)},
	})
	if err != nil {
		return "", err
	}
	if resp.SessionID != "" {
		return resp.SessionID, nil
	}
	return sessionID, nil
}

// UpdateQuestionIndex reports the question the session moved to.
func (c *Client) UpdateQuestionIndex(ctx context.Context, sessionID, email string, index int) error {
	_, err := c.post(ctx, url.Values{
		"action":        {"updateQuestionIndex"},
		"sessionId":     {sessionID},
		"email":         {email},
		"questionIndex": {strconv.Itoa(index)},
	})
	return err
}

// SubmitAnswer reports a scored answer.
func (c *Client) SubmitAnswer(ctx context.Context, profile domain.Profile, sessionID string, rec domain.AnsweredQuestion) error {
	_, err := c.post(ctx, url.Values{
		"action":         {"submitAnswer"},
		"email":          {profile.Email},
		"name":           {profile.Name},
		"sessionId":      {sessionID},
		"questionId":     {strconv.Itoa(rec.QuestionID)},
		"questionText":   {rec.QuestionText},
		"selectedAnswer": {rec.SelectedAnswer},
		"correctAnswer":  {rec.CorrectAnswer},
		"isCorrect":      {strconv.FormatBool(rec.Correct)},
		"timeTaken":      {strconv.FormatInt(rec.TimeTaken.Milliseconds(), 10)},
		"points":         {strconv.Itoa(rec.Points)},
	})
	return err
}

// CheckForcedAdvance asks whether an administrator has pushed this session
// past its current question.
func (c *Client) CheckForcedAdvance(ctx context.Context, sessionID, email string, currentIndex int) (Advance, error) {
	resp, err := c.post(ctx, url.Values{
		"action":               {"checkForcedAdvance"},
		"sessionId":            {sessionID},
		"email":                {email},
		"currentQuestionIndex": {strconv.Itoa(currentIndex)},
	})
	if err != nil {
		return Advance{}, err
	}
	return Advance{ShouldAdvance: resp.ShouldAdvance, TargetIndex: resp.TargetIndex}, nil
}

// EndSession reports the final outcome of a session.
func (c *Client) EndSession(ctx context.Context, summary domain.SessionSummary) error {
	_, err := c.post(ctx, url.Values{
		"action":         {"endSession"},
		"email":          {summary.Email},
		"sessionId":      {summary.SessionID},
		"totalScore":     {strconv.Itoa(summary.TotalScore)},
		"totalQuestions": {strconv.Itoa(summary.TotalQuestions)},
		"correctAnswers": {strconv.Itoa(summary.CorrectAnswers)},
	})
	return err
}

// Leaderboard fetches the backend-ordered standings.
func (c *Client) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	resp, err := c.post(ctx, url.Values{"action": {"getLeaderboard"}})
	if err != nil {
		return nil, err
	}
	return resp.Leaderboard, nil
}

// UpdateUserName renames the player across their backend records.
func (c *Client) UpdateUserName(ctx context.Context, email, newName string) error {
	_, err := c.post(ctx, url.Values{
		"action":  {"updateUserName"},
		"email":   {email},
		"newName": {newName},
	})
	return err
}

// ForceAdvance is the admin-side trigger the forced-advance poll observes.
func (c *Client) ForceAdvance(ctx context.Context, sessionID string, targetIndex int) error {
	_, err := c.post(ctx, url.Values{
		"action":              {"forceAdvance"},
		"sessionId":           {sessionID},
		"targetQuestionIndex": {strconv.Itoa(targetIndex)},
	})
	return err
}

func (c *Client) post(ctx context.Context, form url.Values) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return response{}, fmt.Errorf("build backend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("backend %s: %w", form.Get("action"), err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return response{}, fmt.Errorf("backend %s: read body: %w", form.Get("action"), err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return response{}, fmt.Errorf("backend %s: HTTP %d", form.Get("action"), httpResp.StatusCode)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return response{}, fmt.Errorf("backend %s: decode: %w", form.Get("action"), err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		return response{}, fmt.Errorf("backend %s: %s", form.Get("action"), msg)
	}
	return resp, nil
}
