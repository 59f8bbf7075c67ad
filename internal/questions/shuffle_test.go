package questions

import (
	"math/rand"
	"sort"
	"testing"

	"wedding-trivia/internal/domain"
)

func TestShuffleKeepsCorrectOption(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		q := domain.Question{
			ID:      1,
			Text:    "pick b",
			Options: []string{"a", "b", "c", "d"},
			Correct: 1,
		}
		ShuffleOptions(&q, rnd)
		if q.Options[q.Correct] != "b" {
			t.Fatalf("iteration %d: correct index points at %q", i, q.Options[q.Correct])
		}
		sorted := append([]string(nil), q.Options...)
		sort.Strings(sorted)
		if sorted[0] != "a" || sorted[1] != "b" || sorted[2] != "c" || sorted[3] != "d" {
			t.Fatalf("iteration %d: options lost in shuffle: %v", i, q.Options)
		}
	}
}

func TestShuffleProducesDifferentOrders(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		q := domain.Question{Options: []string{"a", "b", "c", "d"}, Correct: 0}
		ShuffleOptions(&q, rnd)
		seen[q.Options[0]+q.Options[1]+q.Options[2]+q.Options[3]] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected multiple distinct orders, got %d", len(seen))
	}
}
