package app

import (
	"testing"
	"time"
)

func TestScoreFormula(t *testing.T) {
	cfg := ScoringConfig{TimeLimit: 30 * time.Second, BasePoints: 1000, MaxTimeBonus: 500}

	cases := []struct {
		name    string
		correct bool
		elapsed time.Duration
		want    int
	}{
		{"instant answer earns full bonus", true, 0, 1500},
		{"answer at the limit earns base", true, 30 * time.Second, 1000},
		{"slow answer loses bonus", true, 45 * time.Second, 750},
		{"half the limit", true, 15 * time.Second, 1250},
		{"incorrect earns nothing", false, 0, 0},
		{"incorrect earns nothing however slow", false, 2 * time.Minute, 0},
	}
	for _, tc := range cases {
		if got := Score(cfg, tc.correct, tc.elapsed); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestScoreRoundsToNearest(t *testing.T) {
	cfg := ScoringConfig{TimeLimit: 30 * time.Second, BasePoints: 1000, MaxTimeBonus: 500}
	// 10s left of 30s -> bonus 500/3 = 166.67 -> rounds to 167
	if got := Score(cfg, true, 20*time.Second); got != 1167 {
		t.Fatalf("expected 1167, got %d", got)
	}
}

func TestScoreZeroLimitFallsBackToBase(t *testing.T) {
	cfg := ScoringConfig{TimeLimit: 0, BasePoints: 1000, MaxTimeBonus: 500}
	if got := Score(cfg, true, 5*time.Second); got != 1000 {
		t.Fatalf("expected base points with no limit, got %d", got)
	}
}
