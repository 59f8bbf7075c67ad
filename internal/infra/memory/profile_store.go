package memory

import (
	"context"
	"sync"

	"wedding-trivia/internal/domain"
)

// ProfileStore is an in-memory implementation of app.ProfileStore, useful
// for tests and throwaway runs.
type ProfileStore struct {
	mu      sync.RWMutex
	profile domain.Profile
	saved   bool
	pending []domain.AnsweredQuestion
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

func (s *ProfileStore) Profile(_ context.Context) (domain.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.saved, nil
}

func (s *ProfileStore) SaveProfile(_ context.Context, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.saved = true
	return nil
}

func (s *ProfileStore) AppendPendingAnswer(_ context.Context, rec domain.AnsweredQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, rec)
	return nil
}

func (s *ProfileStore) PendingAnswers(_ context.Context) ([]domain.AnsweredQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.AnsweredQuestion(nil), s.pending...), nil
}
