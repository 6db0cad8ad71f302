package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{TickRate: 60, Seed: 1, Player: "tester"}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// send delivers one message and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

// press queues a key and runs the tick that applies it.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m = send(t, m, msg)
	return send(t, m, TickMsg(time.Now()))
}

// crash forces the next tick to end the round with the given score.
func crash(m Model, score int) {
	st := m.Engine().State()
	st.Score = score
	st.Bird.Y = -50
	st.Bird.Velocity = 0
}

func TestModelStartsIdleWithTutorial(t *testing.T) {
	m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime())

	if m.Engine().Status() != flappy.StatusIdle {
		t.Fatalf("status = %v, expected idle", m.Engine().Status())
	}
	if !m.showHelp {
		t.Error("tutorial should show until it has been completed")
	}
	if _, err := uuid.Parse(m.SessionID()); err != nil {
		t.Errorf("session ID %q is not a UUID: %v", m.SessionID(), err)
	}

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "HOW TO PLAY") {
		t.Error("idle view should include the tutorial overlay")
	}
}

func TestModelJumpStartsAndFlaps(t *testing.T) {
	m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime())

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Engine().Status() != flappy.StatusPlaying {
		t.Fatalf("status = %v, expected playing after space", m.Engine().Status())
	}
	if m.showHelp {
		t.Error("starting should dismiss the tutorial")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	cfg := m.Engine().Config()
	// Jump sets the impulse, then the same tick applies gravity once.
	want := cfg.Physics.JumpImpulse + cfg.Physics.Gravity
	if got := m.Engine().State().Bird.Velocity; got != want {
		t.Errorf("velocity after flap = %g, expected %g", got, want)
	}
}

func TestModelPauseToggle(t *testing.T) {
	m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime())
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m = press(t, m, runeKey('p'))
	if m.Engine().Status() != flappy.StatusPaused {
		t.Fatalf("status = %v, expected paused", m.Engine().Status())
	}

	y := m.Engine().State().Bird.Y
	m = send(t, m, TickMsg(time.Now()))
	if m.Engine().State().Bird.Y != y {
		t.Error("bird should not move while paused")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Engine().Status() != flappy.StatusPlaying {
		t.Errorf("status = %v, expected playing after esc", m.Engine().Status())
	}
}

func TestModelHelpPausesPlay(t *testing.T) {
	m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime())
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m = press(t, m, runeKey('?'))
	if !m.showHelp || m.Engine().Status() != flappy.StatusPaused {
		t.Fatalf("help should open and pause, showHelp=%v status=%v", m.showHelp, m.Engine().Status())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.showHelp || m.Engine().Status() != flappy.StatusPlaying {
		t.Errorf("space should close help and resume, showHelp=%v status=%v", m.showHelp, m.Engine().Status())
	}
}

func TestModelHelpKeyClosesLikeSpace(t *testing.T) {
	m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime())
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m = press(t, m, runeKey('?'))
	if m.Engine().Status() != flappy.StatusPaused {
		t.Fatalf("status = %v, expected help to pause", m.Engine().Status())
	}
	m = press(t, m, runeKey('?'))
	if m.showHelp || m.Engine().Status() != flappy.StatusPlaying {
		t.Errorf("second ? should close help and resume, showHelp=%v status=%v", m.showHelp, m.Engine().Status())
	}

	// A round paused by hand stays paused when help opens and closes over it.
	m = press(t, m, runeKey('p'))
	m = press(t, m, runeKey('?'))
	m = press(t, m, runeKey('?'))
	if m.showHelp || m.Engine().Status() != flappy.StatusPaused {
		t.Errorf("help over a manual pause: showHelp=%v status=%v, expected closed and paused", m.showHelp, m.Engine().Status())
	}
}

func TestModelRestartClosesHelp(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeySpace}, runeKey('r')} {
		t.Run(k.String(), func(t *testing.T) {
			m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime())
			m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
			crash(m, 1)
			m = send(t, m, TickMsg(time.Now()))

			m = press(t, m, runeKey('?'))
			if !m.showHelp || m.Engine().Status() != flappy.StatusGameOver {
				t.Fatalf("? at game over: showHelp=%v status=%v", m.showHelp, m.Engine().Status())
			}

			m = press(t, m, k)
			if m.Engine().Status() != flappy.StatusPlaying {
				t.Fatalf("status = %v, expected a new round", m.Engine().Status())
			}
			if m.showHelp {
				t.Error("a new round must not run under the help overlay")
			}
			if strings.Contains(ansi.Strip(m.View()), "HOW TO PLAY") {
				t.Error("view still draws the help overlay during play")
			}
		})
	}
}

func TestModelRecordsRoundOnce(t *testing.T) {
	store := openStore(t)
	m := NewModel(config.DefaultFlappyConfig(), store, testRuntime())

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	crash(m, 3)
	m = send(t, m, TickMsg(time.Now()))

	if m.Engine().Status() != flappy.StatusGameOver {
		t.Fatalf("status = %v, expected gameOver", m.Engine().Status())
	}

	// Further ticks must not record the same round again.
	m = send(t, m, TickMsg(time.Now()))
	m = send(t, m, TickMsg(time.Now()))

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("recorded %d rounds, expected 1", len(scores))
	}
	if scores[0].Score != 3 || scores[0].Player != "tester" || scores[0].SessionID != m.SessionID() {
		t.Errorf("recorded %+v, expected score 3 for tester in this session", scores[0])
	}

	// Restart and lose again: a second round is recorded.
	m = press(t, m, runeKey('r'))
	if m.Engine().Status() != flappy.StatusPlaying || m.Engine().Score() != 0 {
		t.Fatalf("restart: status=%v score=%d", m.Engine().Status(), m.Engine().Score())
	}
	crash(m, 5)
	send(t, m, TickMsg(time.Now()))

	if scores, _ = store.TopScores(10); len(scores) != 2 {
		t.Errorf("recorded %d rounds after restart, expected 2", len(scores))
	}
}

func TestModelSkipsZeroScores(t *testing.T) {
	store := openStore(t)
	m := NewModel(config.DefaultFlappyConfig(), store, testRuntime())

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	crash(m, 0)
	send(t, m, TickMsg(time.Now()))

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("zero-score round should not be recorded, got %v", scores)
	}
}

func TestModelJumpAfterGameOverRestarts(t *testing.T) {
	m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime())
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	crash(m, 2)
	m = send(t, m, TickMsg(time.Now()))

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Engine().Status() != flappy.StatusPlaying {
		t.Errorf("status = %v, expected a new round", m.Engine().Status())
	}
	if m.Engine().HighScore() != 2 {
		t.Errorf("high score = %d, expected 2 to survive the restart", m.Engine().HighScore())
	}
}

func TestModelPersistsTutorialAndSeedsHighScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("someone", "", 42); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewModel(config.DefaultFlappyConfig(), store, testRuntime())
	if m.Engine().HighScore() != 42 {
		t.Errorf("high score = %d, expected 42 from the store", m.Engine().HighScore())
	}
	press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if !settings.TutorialCompleted {
		t.Error("starting a round should mark the tutorial completed")
	}

	next := NewModel(config.DefaultFlappyConfig(), store, testRuntime())
	if next.showHelp {
		t.Error("tutorial should not show again once completed")
	}
}

func TestModelSessionSettingsLeaveStoreAlone(t *testing.T) {
	store := openStore(t)
	if err := store.SaveSettings(config.Settings{Theme: config.ThemeDark, TutorialCompleted: true}); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	m := NewModel(config.DefaultFlappyConfig(), store, testRuntime(), WithSessionSettings())
	if !m.showHelp || m.settings.Theme != config.ThemeSystem {
		t.Errorf("session settings should start from defaults, showHelp=%v theme=%v", m.showHelp, m.settings.Theme)
	}

	if err := store.SaveSettings(config.DefaultSettings()); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if settings.TutorialCompleted {
		t.Error("a session-only model must not persist tutorial progress")
	}
}

func TestModelScoreboardOverlay(t *testing.T) {
	store := openStore(t)
	store.SaveScore("tester", "s", 7)

	m := NewModel(config.DefaultFlappyConfig(), store, testRuntime())
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if m.Engine().Status() != flappy.StatusPaused {
		t.Errorf("status = %v, expected paused behind the scoreboard", m.Engine().Status())
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "tester") {
		t.Errorf("scoreboard view missing title or entry:\n%s", view)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scoreboard != nil {
		t.Error("esc should close the scoreboard")
	}
	if m.quitting {
		t.Error("closing the scoreboard should not quit")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime())

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if view := next.(Model).View(); view != "" {
		t.Errorf("quitting view = %q, expected empty", view)
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(config.DefaultFlappyConfig(), nil, testRuntime(), WithScreenSize(60, 20))
	if m.screen.Width() != 60 || m.screen.Height() != 20 {
		t.Fatalf("initial screen = %dx%d, expected 60x20", m.screen.Width(), m.screen.Height())
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestTutorialLinesListEveryBinding(t *testing.T) {
	lines := tutorialLines(DefaultGameKeyMap())
	text := strings.Join(lines, "\n")
	for _, want := range []string{"flap", "pause", "restart", "high scores", "quit"} {
		if !strings.Contains(text, want) {
			t.Errorf("tutorial missing %q", want)
		}
	}
}
