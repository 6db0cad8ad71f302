package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "", 80, 24)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "no database is open") {
		t.Errorf("view without a store should explain why scores are missing:\n%s", view)
	}
}

func TestScoreboardEmptyStore(t *testing.T) {
	m := NewScoreboardModel(openStore(t), "", 80, 24)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "No scores recorded yet.") {
		t.Errorf("empty store view:\n%s", view)
	}
}

func TestScoreboardListsScoresAndStats(t *testing.T) {
	store := openStore(t)
	store.SaveScore("alice", "a", 12)
	store.SaveScore("bob", "b", 30)
	store.SaveScore("alice", "a", 18)

	m := NewScoreboardModel(store, "", 80, 24)
	if len(m.scores) != 3 || m.scores[0].Player != "bob" {
		t.Fatalf("scores = %+v, expected bob first", m.scores)
	}

	view := ansi.Strip(m.View())
	for _, want := range []string{"HIGH SCORES", "#1", "bob", "30", "3 rounds", "best 30", "avg 20.0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardShowsPlayerBest(t *testing.T) {
	store := openStore(t)
	store.SaveScore("alice", "a", 12)
	store.SaveScore("bob", "b", 30)
	store.SaveScore("alice", "a", 18)

	m := NewScoreboardModel(store, "alice", 100, 24)
	if m.personal != 18 {
		t.Errorf("personal best = %d, expected 18", m.personal)
	}
	if line := m.statsLine(); !strings.HasSuffix(line, "alice 18") {
		t.Errorf("stats line = %q, expected alice's best at the end", line)
	}

	// A player without rounds still gets a zero entry.
	m = NewScoreboardModel(store, "carol", 100, 24)
	if line := m.statsLine(); !strings.HasSuffix(line, "carol 0") {
		t.Errorf("stats line = %q, expected carol 0", line)
	}
}

func TestScoreboardRefresh(t *testing.T) {
	store := openStore(t)
	m := NewScoreboardModel(store, "", 80, 24)

	store.SaveScore("carol", "c", 4)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(ScoreboardModel)

	if len(m.scores) != 1 {
		t.Errorf("refresh should reload scores, got %d", len(m.scores))
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	standalone := NewScoreboardModel(nil, "", 80, 24)
	next, cmd := standalone.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("standalone scoreboard should quit its program on back")
	}

	embedded := NewScoreboardModel(nil, "", 80, 24)
	embedded.embedded = true
	next, cmd = embedded.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(ScoreboardModel).IsGoingBack() || cmd != nil {
		t.Error("embedded scoreboard should only flag back")
	}

	next, cmd = NewScoreboardModel(nil, "", 80, 24).Update(runeKey('q'))
	if !next.(ScoreboardModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abcdef", 4, "abcdef"},
		{"a\nbc", 6, "  a\n  bc"},
	}
	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tt.text, tt.width, got, tt.want)
		}
	}
}
