package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"wedding-trivia/internal/domain"
)

func TestProfileRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewProfileStore(client, "p1")

	if _, ok, err := store.Profile(ctx); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}

	if err := store.SaveProfile(ctx, domain.Profile{Email: "a@b.com", Name: "Jo"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := mr.Get("p1:quiz_user_email"); got != "a@b.com" {
		t.Fatalf("expected email under durable key, got %q", got)
	}

	profile, ok, err := store.Profile(ctx)
	if err != nil || !ok {
		t.Fatalf("expected profile, ok=%v err=%v", ok, err)
	}
	if profile.Name != "Jo" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestPendingAnswersQueue(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewProfileStore(client, "")

	for i := 1; i <= 3; i++ {
		if err := store.AppendPendingAnswer(ctx, domain.AnsweredQuestion{QuestionID: i}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	pending, err := store.PendingAnswers(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 3 || pending[0].QuestionID != 1 || pending[2].QuestionID != 3 {
		t.Fatalf("expected append order preserved, got %+v", pending)
	}
}
