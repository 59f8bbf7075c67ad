package postgres

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"wedding-trivia/internal/domain"
	"wedding-trivia/internal/questions"
)

// QuestionSource loads quiz questions from Postgres instead of a flat TSV
// file. Options are shuffled per question, same as the TSV path.
type QuestionSource struct {
	pool *pgxpool.Pool
	rnd  *rand.Rand
}

func NewQuestionSource(pool *pgxpool.Pool) *QuestionSource {
	return &QuestionSource{
		pool: pool,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *QuestionSource) Load(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, question, option_1, option_2, option_3, option_4, correct_option
		FROM questions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var loaded []domain.Question
	for rows.Next() {
		var (
			id      int
			text    string
			options = make([]string, domain.OptionCount)
			correct int
		)
		if err := rows.Scan(&id, &text, &options[0], &options[1], &options[2], &options[3], &correct); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q := domain.Question{
			ID:      id,
			Text:    text,
			Options: options,
			Correct: correct - 1,
		}
		questions.ShuffleOptions(&q, s.rnd)
		loaded = append(loaded, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return loaded, nil
}
