package domain

import "time"

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is an immutable quiz question with its options in display order.
// Correct indexes into Options; correctness is always resolved from this
// record, never from rendered state.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// CorrectText returns the text of the correct option.
func (q Question) CorrectText() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}

// Profile is the durable player identity that survives restarts.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AnsweredQuestion records a single scored answer. Exactly one record is
// appended per answered question, in question order.
type AnsweredQuestion struct {
	QuestionID     int           `json:"questionId"`
	QuestionText   string        `json:"questionText"`
	SelectedAnswer string        `json:"selectedAnswer"`
	CorrectAnswer  string        `json:"correctAnswer"`
	Correct        bool          `json:"isCorrect"`
	TimeTaken      time.Duration `json:"timeTakenMs"`
	Points         int           `json:"points"`
}

// LeaderboardEntry is a backend-owned standing. Entries arrive already
// ordered; clients render them as given.
type LeaderboardEntry struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	TotalScore     int    `json:"totalScore"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalQuestions int    `json:"totalQuestions"`
}

// SessionSummary captures the final outcome of a quiz run.
type SessionSummary struct {
	SessionID      string             `json:"sessionId"`
	Email          string             `json:"email"`
	Name           string             `json:"name"`
	StartedAt      time.Time          `json:"startedAt"`
	TotalScore     int                `json:"totalScore"`
	CorrectAnswers int                `json:"correctAnswers"`
	TotalQuestions int                `json:"totalQuestions"`
	Answers        []AnsweredQuestion `json:"answers"`
}
