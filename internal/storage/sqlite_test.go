package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestRecordAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	results := []SessionResult{
		{SessionID: "a", Player: "alice", Seed: 1, Outcome: OutcomeWon, Beers: 2, Cards: 1, Turns: 80},
		{SessionID: "b", Player: "bob", Seed: 2, Outcome: OutcomeEaten, Beers: 0, Cards: 0, Turns: 12},
		{SessionID: "c", Player: "alice", Seed: 3, Outcome: OutcomeWon, Beers: 1, Cards: 1, Turns: 45},
	}
	for _, r := range results {
		if _, err := store.RecordResult(r); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(recent))
	}
	// Same timestamp resolution, so ordering falls back to insertion
	if recent[0].SessionID != "c" {
		t.Errorf("Expected newest session first, got %s", recent[0].SessionID)
	}

	alice, err := store.PlayerResults("alice", 10)
	if err != nil {
		t.Fatalf("PlayerResults() failed: %v", err)
	}
	if len(alice) != 2 {
		t.Errorf("Expected 2 sessions for alice, got %d", len(alice))
	}

	got, err := store.ResultBySession("b")
	if err != nil {
		t.Fatalf("ResultBySession() failed: %v", err)
	}
	if got == nil || got.Outcome != OutcomeEaten || got.Seed != 2 || got.Turns != 12 {
		t.Errorf("Unexpected result %+v", got)
	}
}

func TestResultBySessionMissing(t *testing.T) {
	store := openTestStore(t)
	got, err := store.ResultBySession("nope")
	if err != nil || got != nil {
		t.Errorf("Expected nil, nil for missing session, got %v, %v", got, err)
	}
}

func TestRecordDuplicateSession(t *testing.T) {
	store := openTestStore(t)
	r := SessionResult{SessionID: "dup", Seed: 1, Outcome: OutcomeWon}
	if _, err := store.RecordResult(r); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordResult(r); err == nil {
		t.Error("Expected an error recording the same session twice")
	}
}

func TestRecentResultsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		store.RecordResult(SessionResult{SessionID: string(rune('a' + i)), Seed: int64(i), Outcome: OutcomeEaten})
	}
	recent, err := store.RecentResults(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 results with limit, got %d", len(recent))
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Played != 0 || stats.BestTurns != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.RecordResult(SessionResult{SessionID: "1", Outcome: OutcomeWon, Turns: 90})
	store.RecordResult(SessionResult{SessionID: "2", Outcome: OutcomeWon, Turns: 40})
	store.RecordResult(SessionResult{SessionID: "3", Outcome: OutcomeEaten, Turns: 10})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Played != 3 || stats.Wins != 2 || stats.Losses != 1 {
		t.Errorf("Unexpected counts %+v", stats)
	}
	if stats.BestTurns != 40 {
		t.Errorf("Expected best turns 40, got %d", stats.BestTurns)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected a last played time")
	}
}

func TestClearResults(t *testing.T) {
	store := openTestStore(t)
	store.RecordResult(SessionResult{SessionID: "x", Outcome: OutcomeWon})
	if err := store.ClearResults(); err != nil {
		t.Fatal(err)
	}
	recent, _ := store.RecentResults(10)
	if len(recent) != 0 {
		t.Errorf("Expected empty history, got %d", len(recent))
	}
}
