package memory

import (
	"sort"
	"sync"
	"time"

	"wedding-trivia/internal/domain"
)

// SessionRecord is the stub backend's view of one quiz session.
type SessionRecord struct {
	ID             string
	Email          string
	Name           string
	TotalQuestions int
	CurrentIndex   int
	TotalScore     int
	CorrectAnswers int
	AnswerCount    int
	ForcedTarget   int // -1 when no forced advance is pending
	StartedAt      time.Time
	UpdatedAt      time.Time
	Ended          bool
}

// SessionStore holds the stub backend's session records and derives the
// leaderboard from them. One best record per email is reported, ordered by
// score, then correct answers, then name.
type SessionStore struct {
	mu       sync.RWMutex
	now      func() time.Time
	sessions map[string]*SessionRecord
}

func NewSessionStore() *SessionStore {
	return NewSessionStoreWithClock(time.Now)
}

// NewSessionStoreWithClock allows deterministic timestamps in tests.
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	return &SessionStore{
		now:      now,
		sessions: make(map[string]*SessionRecord),
	}
}

// Start registers a session, replacing any previous record with the same ID.
func (s *SessionStore) Start(id, email, name string, totalQuestions int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sessions[id] = &SessionRecord{
		ID:             id,
		Email:          email,
		Name:           name,
		TotalQuestions: totalQuestions,
		ForcedTarget:   -1,
		StartedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *SessionStore) UpdateIndex(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	rec.CurrentIndex = index
	rec.UpdatedAt = s.now()
	return nil
}

func (s *SessionStore) RecordAnswer(id string, correct bool, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	rec.AnswerCount++
	if correct {
		rec.CorrectAnswers++
	}
	rec.TotalScore += points
	rec.UpdatedAt = s.now()
	return nil
}

// SetForcedTarget arms a forced advance for the session.
func (s *SessionStore) SetForcedTarget(id string, target int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	rec.ForcedTarget = target
	rec.UpdatedAt = s.now()
	return nil
}

// ForcedTarget reports whether the session should jump past currentIndex.
// The target stays armed until it is no longer ahead of the session.
func (s *SessionStore) ForcedTarget(id string, currentIndex int) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[id]
	if !ok {
		return 0, false, domain.ErrSessionNotFound
	}
	if rec.ForcedTarget >= 0 && rec.ForcedTarget > currentIndex {
		return rec.ForcedTarget, true, nil
	}
	return 0, false, nil
}

// End finalizes a session with the client-reported totals.
func (s *SessionStore) End(id string, totalScore, correctAnswers, totalQuestions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	rec.TotalScore = totalScore
	rec.CorrectAnswers = correctAnswers
	rec.TotalQuestions = totalQuestions
	rec.Ended = true
	rec.UpdatedAt = s.now()
	return nil
}

// Rename updates the display name on every session for the email.
func (s *SessionStore) Rename(email, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.sessions {
		if rec.Email == email {
			rec.Name = newName
			rec.UpdatedAt = s.now()
		}
	}
}

// Leaderboard returns the best session per email, highest score first.
func (s *SessionStore) Leaderboard() []domain.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := make(map[string]*SessionRecord)
	for _, rec := range s.sessions {
		cur, ok := best[rec.Email]
		if !ok || rec.TotalScore > cur.TotalScore ||
			(rec.TotalScore == cur.TotalScore && rec.CorrectAnswers > cur.CorrectAnswers) {
			best[rec.Email] = rec
		}
	}

	entries := make([]domain.LeaderboardEntry, 0, len(best))
	for _, rec := range best {
		entries = append(entries, domain.LeaderboardEntry{
			Email:          rec.Email,
			Name:           rec.Name,
			TotalScore:     rec.TotalScore,
			CorrectAnswers: rec.CorrectAnswers,
			TotalQuestions: rec.TotalQuestions,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		if entries[i].CorrectAnswers != entries[j].CorrectAnswers {
			return entries[i].CorrectAnswers > entries[j].CorrectAnswers
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
