package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndFetchRound(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRound(RoundRecord{
		Variant:         "breakout",
		Seed:            42,
		Outcome:         OutcomeWon,
		BlocksDestroyed: 50,
		Ticks:           3600,
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("SaveRound() should assign an ID")
	}

	r, err := store.RoundByID(id)
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("RoundByID() returned nil for a saved round")
	}
	if r.ID != id || r.Variant != "breakout" || r.Seed != 42 || r.Outcome != OutcomeWon ||
		r.BlocksDestroyed != 50 || r.Ticks != 3600 {
		t.Errorf("round = %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	missing, err := store.RoundByID(uuid.New())
	if err != nil || missing != nil {
		t.Errorf("RoundByID() of unknown ID = %v, %v, expected nil, nil", missing, err)
	}
}

func TestStoreKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.New()
	got, err := store.SaveRound(RoundRecord{ID: want, Variant: "breakout", Outcome: OutcomeLost})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if got != want {
		t.Errorf("SaveRound() = %v, expected %v", got, want)
	}

	if _, err := store.SaveRound(RoundRecord{ID: want, Variant: "breakout", Outcome: OutcomeLost}); err == nil {
		t.Error("saving the same ID twice should fail")
	}
}

func TestStoreRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRound(RoundRecord{Variant: "breakout", Outcome: "draw"}); err == nil {
		t.Error("unknown outcome should be rejected")
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveRound(RoundRecord{Variant: "breakout", Seed: int64(i), Outcome: OutcomeLost}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveRound(RoundRecord{Variant: "breakout-touch", Seed: 99, Outcome: OutcomeWon}); err != nil {
		t.Fatal(err)
	}

	rounds, err := store.RecentRounds("breakout", 3)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	// Newest first
	for i, want := range []int64{4, 3, 2} {
		if rounds[i].Seed != want {
			t.Errorf("rounds[%d].Seed = %d, expected %d", i, rounds[i].Seed, want)
		}
	}

	all, err := store.RecentRounds("", 0)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(all) != 6 || all[0].Variant != "breakout-touch" {
		t.Errorf("expected 6 rounds led by breakout-touch, got %d", len(all))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	records := []RoundRecord{
		{Variant: "breakout", Outcome: OutcomeWon, BlocksDestroyed: 50},
		{Variant: "breakout", Outcome: OutcomeLost, BlocksDestroyed: 12},
		{Variant: "breakout", Outcome: OutcomeLost, BlocksDestroyed: 30},
		{Variant: "breakout", Outcome: OutcomeAbandoned, BlocksDestroyed: 3},
		{Variant: "breakout-touch", Outcome: OutcomeLost, BlocksDestroyed: 7},
	}
	for _, r := range records {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	b := stats["breakout"]
	if b == nil {
		t.Fatal("missing breakout stats")
	}
	if b.Rounds != 4 || b.Wins != 1 || b.Losses != 2 || b.BestClear != 50 {
		t.Errorf("breakout stats = %+v", b)
	}
	if touch := stats["breakout-touch"]; touch == nil || touch.Rounds != 1 || touch.BestClear != 7 {
		t.Errorf("breakout-touch stats = %+v", touch)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(RoundRecord{Variant: "breakout", Outcome: OutcomeLost})
	store.SaveRound(RoundRecord{Variant: "breakout-touch", Outcome: OutcomeLost})

	if err := store.ClearRounds("breakout"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	left, err := store.RecentRounds("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].Variant != "breakout-touch" {
		t.Errorf("ClearRounds should only drop one variant, left %+v", left)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
