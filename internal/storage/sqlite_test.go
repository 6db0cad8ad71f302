package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("alice", "s1", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("bob", "s2", 150); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	want := []int{200, 150, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[1].Player != "bob" || scores[1].SessionID != "s2" {
		t.Errorf("scores[1] = %+v, expected bob/s2", scores[1])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("p", "", (i+1)*100)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores(0)
	if err != nil {
		t.Fatalf("TopScores(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("TopScores(0) should fall back to the default limit, got %d rows", len(all))
	}
}

func TestStoreRejectsNegativeScore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("p", "", -1); err == nil {
		t.Error("SaveScore() with a negative score should fail")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	store.SaveScore("alice", "", 100)
	store.SaveScore("bob", "", 300)
	store.SaveScore("alice", "", 200)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	aliceHigh, err := store.PlayerHighScore("alice")
	if err != nil {
		t.Fatalf("PlayerHighScore() failed: %v", err)
	}
	if aliceHigh != 200 {
		t.Errorf("Expected alice's best to be 200, got %d", aliceHigh)
	}

	nobody, err := store.PlayerHighScore("carol")
	if err != nil {
		t.Fatalf("PlayerHighScore() failed: %v", err)
	}
	if nobody != 0 {
		t.Errorf("Expected 0 for a player with no rounds, got %d", nobody)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("p", "", 100)
	store.SaveScore("p", "", 200)

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if empty.Rounds != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty store: %+v", empty)
	}

	store.SaveScore("p", "", 10)
	store.SaveScore("p", "", 20)
	store.SaveScore("p", "", 30)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 3 {
		t.Errorf("Rounds = %d, expected 3", stats.Rounds)
	}
	if stats.HighScore != 30 {
		t.Errorf("HighScore = %d, expected 30", stats.HighScore)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %g, expected 20", stats.AvgScore)
	}
	if stats.TotalScore != 60 {
		t.Errorf("TotalScore = %d, expected 60", stats.TotalScore)
	}
}

func TestStoreSettingsDefaults(t *testing.T) {
	store := openTestStore(t)

	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if settings != config.DefaultSettings() {
		t.Errorf("LoadSettings() on empty store = %+v, expected defaults", settings)
	}
}

func TestStoreSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := config.Settings{Theme: config.ThemeLight, TutorialCompleted: true}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	// Overwrite one value to exercise the upsert
	want.Theme = config.ThemeDark
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, want)
	}
}

func TestStoreSettingsRejectsUnknownTheme(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveSettings(config.Settings{Theme: "neon"}); err == nil {
		t.Error("SaveSettings() with an unknown theme should fail")
	}
}
