package memory

import "testing"

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	store.Start("s1", "a@b.com", "Jo", 10)
	if err := store.UpdateIndex("s1", 2); err != nil {
		t.Fatalf("update index: %v", err)
	}
	if err := store.RecordAnswer("s1", true, 1200); err != nil {
		t.Fatalf("record answer: %v", err)
	}
	if err := store.End("s1", 1200, 1, 10); err != nil {
		t.Fatalf("end: %v", err)
	}

	if err := store.UpdateIndex("missing", 0); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestForcedTargetArmsUntilPassed(t *testing.T) {
	store := NewSessionStore()
	store.Start("s1", "a@b.com", "Jo", 10)

	if _, ok, _ := store.ForcedTarget("s1", 2); ok {
		t.Fatalf("expected no forced target initially")
	}
	if err := store.SetForcedTarget("s1", 5); err != nil {
		t.Fatalf("set target: %v", err)
	}
	target, ok, err := store.ForcedTarget("s1", 2)
	if err != nil || !ok || target != 5 {
		t.Fatalf("expected target 5, got %d ok=%v err=%v", target, ok, err)
	}
	if _, ok, _ := store.ForcedTarget("s1", 5); ok {
		t.Fatalf("expected target disarmed once reached")
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	store := NewSessionStore()
	store.Start("s1", "a@b.com", "Alice", 3)
	store.Start("s2", "b@b.com", "Bob", 3)
	store.Start("s3", "a@b.com", "Alice", 3)

	_ = store.End("s1", 1000, 1, 3)
	_ = store.End("s2", 2500, 2, 3)
	_ = store.End("s3", 3000, 3, 3)

	entries := store.Leaderboard()
	if len(entries) != 2 {
		t.Fatalf("expected best session per email, got %d entries", len(entries))
	}
	if entries[0].Email != "a@b.com" || entries[0].TotalScore != 3000 {
		t.Fatalf("expected Alice's best run first, got %+v", entries[0])
	}
	if entries[1].Email != "b@b.com" {
		t.Fatalf("expected Bob second, got %+v", entries[1])
	}
}

func TestRenameUpdatesAllSessions(t *testing.T) {
	store := NewSessionStore()
	store.Start("s1", "a@b.com", "Jo", 3)
	store.Rename("a@b.com", "Joanna")

	entries := store.Leaderboard()
	if len(entries) != 1 || entries[0].Name != "Joanna" {
		t.Fatalf("expected renamed entry, got %+v", entries)
	}
}
