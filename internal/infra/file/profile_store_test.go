package file

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wedding-trivia/internal/domain"
)

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore(filepath.Join(t.TempDir(), "profile.json"))

	if _, ok, err := store.Profile(ctx); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.SaveProfile(ctx, domain.Profile{Email: "a@b.com", Name: "Jo"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Reopen to prove durability.
	reopened := NewProfileStore(store.path)
	profile, ok, err := reopened.Profile(ctx)
	if err != nil || !ok {
		t.Fatalf("expected profile after reopen, ok=%v err=%v", ok, err)
	}
	if profile.Email != "a@b.com" || profile.Name != "Jo" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestPendingAnswersAppendOnly(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore(filepath.Join(t.TempDir(), "profile.json"))

	rec := domain.AnsweredQuestion{
		QuestionID:     1,
		QuestionText:   "Where?",
		SelectedAnswer: "Paris",
		CorrectAnswer:  "Paris",
		Correct:        true,
		TimeTaken:      3 * time.Second,
		Points:         1450,
	}
	if err := store.AppendPendingAnswer(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	rec.QuestionID = 2
	if err := store.AppendPendingAnswer(ctx, rec); err != nil {
		t.Fatalf("append 2: %v", err)
	}

	pending, err := store.PendingAnswers(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 || pending[0].QuestionID != 1 || pending[1].QuestionID != 2 {
		t.Fatalf("expected records in append order, got %+v", pending)
	}
}

func TestSaveProfileKeepsPendingAnswers(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore(filepath.Join(t.TempDir(), "profile.json"))

	if err := store.AppendPendingAnswer(ctx, domain.AnsweredQuestion{QuestionID: 7}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.SaveProfile(ctx, domain.Profile{Email: "a@b.com", Name: "Jo"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	pending, err := store.PendingAnswers(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected queue untouched by profile save, got %d records", len(pending))
	}
}
