package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"wedding-trivia/internal/domain"
)

const (
	emailKey   = "quiz_user_email"
	nameKey    = "quiz_user_name"
	pendingKey = "quiz_pending_answers"
)

// ProfileStore keeps the player identity and the pending-answer queue in
// Redis, under the same key names the quiz has always used for durable
// storage. The queue is an RPUSH list, append-only.
type ProfileStore struct {
	client *redis.Client
	prefix string
}

// NewProfileStore creates a store. The prefix namespaces a player's keys
// so several players can share one Redis.
func NewProfileStore(client *redis.Client, prefix string) *ProfileStore {
	return &ProfileStore{client: client, prefix: prefix}
}

func (s *ProfileStore) Profile(ctx context.Context) (domain.Profile, bool, error) {
	email, err := s.client.Get(ctx, s.key(emailKey)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("load email: %w", err)
	}
	name, err := s.client.Get(ctx, s.key(nameKey)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.Profile{}, false, fmt.Errorf("load name: %w", err)
	}
	return domain.Profile{Email: email, Name: name}, true, nil
}

func (s *ProfileStore) SaveProfile(ctx context.Context, profile domain.Profile) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(emailKey), profile.Email, 0)
	pipe.Set(ctx, s.key(nameKey), profile.Name, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) AppendPendingAnswer(ctx context.Context, rec domain.AnsweredQuestion) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode pending answer: %w", err)
	}
	if err := s.client.RPush(ctx, s.key(pendingKey), data).Err(); err != nil {
		return fmt.Errorf("queue pending answer: %w", err)
	}
	return nil
}

func (s *ProfileStore) PendingAnswers(ctx context.Context) ([]domain.AnsweredQuestion, error) {
	raw, err := s.client.LRange(ctx, s.key(pendingKey), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load pending answers: %w", err)
	}
	records := make([]domain.AnsweredQuestion, 0, len(raw))
	for _, item := range raw {
		var rec domain.AnsweredQuestion
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode pending answer: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *ProfileStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}
