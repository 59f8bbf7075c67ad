package render

import (
	"strings"
	"testing"

	"wedding-trivia/internal/domain"
)

func sampleEntries() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{Email: "a@b.com", Name: "Alice", TotalScore: 2750, CorrectAnswers: 2, TotalQuestions: 3},
		{Email: "b@b.com", Name: "Bob", TotalScore: 1000, CorrectAnswers: 1, TotalQuestions: 3},
	}
}

func TestTextRanksInGivenOrder(t *testing.T) {
	var sb strings.Builder
	if err := Text(&sb, sampleEntries()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()
	aliceAt := strings.Index(out, "Alice")
	bobAt := strings.Index(out, "Bob")
	if aliceAt < 0 || bobAt < 0 || aliceAt > bobAt {
		t.Fatalf("expected given order preserved, got:\n%s", out)
	}
	if !strings.Contains(out, "🥇") || !strings.Contains(out, "🥈") {
		t.Fatalf("expected medal markers for top ranks, got:\n%s", out)
	}
	if !strings.Contains(out, "2/3 correct") {
		t.Fatalf("expected correct ratio, got:\n%s", out)
	}
}

func TestTextEmptyState(t *testing.T) {
	var sb strings.Builder
	if err := Text(&sb, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(sb.String(), EmptyMessage) {
		t.Fatalf("expected empty-state message, got %q", sb.String())
	}
}

func TestTextStripsControlCharacters(t *testing.T) {
	var sb strings.Builder
	entries := []domain.LeaderboardEntry{{Name: "Eve\x1b[2Jhacker", TotalScore: 10}}
	if err := Text(&sb, entries); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(sb.String(), "\x1b") {
		t.Fatalf("expected control characters stripped, got %q", sb.String())
	}
}

func TestHTMLEscapesNames(t *testing.T) {
	var sb strings.Builder
	entries := []domain.LeaderboardEntry{{Name: "<script>alert(1)</script>", TotalScore: 10}}
	if err := HTML(&sb, entries); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(sb.String(), "<script>") {
		t.Fatalf("expected escaped markup, got %q", sb.String())
	}
	if !strings.Contains(sb.String(), "&lt;script&gt;") {
		t.Fatalf("expected escaped name in output, got %q", sb.String())
	}
}

func TestHTMLEmptyState(t *testing.T) {
	var sb strings.Builder
	if err := HTML(&sb, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(sb.String(), "leaderboard-empty") {
		t.Fatalf("expected designated empty state, got %q", sb.String())
	}
	if strings.Contains(sb.String(), "<table") {
		t.Fatalf("expected no table for empty standings, got %q", sb.String())
	}
}
