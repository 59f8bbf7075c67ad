package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"wedding-trivia/internal/domain"
)

// ProfileStore persists the player identity and the pending-answer queue as
// a JSON document on disk. Field names match the durable storage keys the
// quiz has always used.
type ProfileStore struct {
	path string
	mu   sync.Mutex
}

type document struct {
	Email   string                    `json:"quiz_user_email"`
	Name    string                    `json:"quiz_user_name"`
	Pending []domain.AnsweredQuestion `json:"quiz_pending_answers"`
}

func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{path: path}
}

func (s *ProfileStore) Profile(_ context.Context) (domain.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return domain.Profile{}, false, err
	}
	if doc.Email == "" && doc.Name == "" {
		return domain.Profile{}, false, nil
	}
	return domain.Profile{Email: doc.Email, Name: doc.Name}, true, nil
}

func (s *ProfileStore) SaveProfile(_ context.Context, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Email = profile.Email
	doc.Name = profile.Name
	return s.write(doc)
}

func (s *ProfileStore) AppendPendingAnswer(_ context.Context, rec domain.AnsweredQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Pending = append(doc.Pending, rec)
	return s.write(doc)
}

func (s *ProfileStore) PendingAnswers(_ context.Context) ([]domain.AnsweredQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Pending, nil
}

func (s *ProfileStore) read() (document, error) {
	var doc document
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read profile store: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode profile store: %w", err)
	}
	return doc, nil
}

func (s *ProfileStore) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile store dir: %w", err)
		}
	}
	// write-then-rename keeps the store intact when interrupted mid-write
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write profile store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace profile store: %w", err)
	}
	return nil
}
