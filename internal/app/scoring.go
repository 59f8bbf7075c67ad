package app

import (
	"math"
	"time"
)

// ScoringConfig controls the per-answer point formula.
type ScoringConfig struct {
	TimeLimit    time.Duration
	BasePoints   int
	MaxTimeBonus int
}

// DefaultScoring returns the standard 1000-base, 500-max-bonus scoring
// against a 30 second reference limit.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		TimeLimit:    30 * time.Second,
		BasePoints:   1000,
		MaxTimeBonus: 500,
	}
}

// Score computes the points for an answer. A correct answer earns the base
// plus a time bonus proportional to how much of the reference limit was
// left. There is no per-question timeout, so the bonus goes negative when
// the answer took longer than the limit. Incorrect answers earn nothing.
func Score(cfg ScoringConfig, correct bool, elapsed time.Duration) int {
	if !correct {
		return 0
	}
	limitMs := cfg.TimeLimit.Milliseconds()
	if limitMs <= 0 {
		return cfg.BasePoints
	}
	bonus := float64(limitMs-elapsed.Milliseconds()) / float64(limitMs) * float64(cfg.MaxTimeBonus)
	return int(math.Round(float64(cfg.BasePoints) + bonus))
}
