package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Default screen size until the first WindowSizeMsg arrives.
const (
	defaultScreenW = 80
	defaultScreenH = 24
)

// tutorialLines builds the how-to-play overlay from the key bindings.
func tutorialLines(keys GameKeyMap) []string {
	lines := []string{"HOW TO PLAY", ""}
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("%-10s %-12s", h.Key, h.Desc))
		}
	}
	return append(lines,
		"",
		"Fly through the gaps. Each pipe is a point.",
		"Press SPACE to begin",
	)
}

// Model is the Bubble Tea model that drives one engine.
// The Bubble Tea update loop is the engine's only caller.
type Model struct {
	engine     *flappy.Engine
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	runtime    core.RuntimeConfig
	settings   config.Settings
	keyMapper  *KeyMapper
	scoreboard *ScoreboardModel
	inputFrame core.InputFrame
	sessionID  string
	lastTick   time.Time
	recorded   bool // Whether the current game over has been recorded
	showHelp   bool
	helpPaused bool // The open help overlay paused a running round
	ephemeral  bool // Settings are never read from or written to the store
	quitting   bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger routes host diagnostics to logger. Without it the model stays silent,
// which is what a local terminal session wants.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) ModelOption {
	return func(m *Model) {
		m.sessionID = id
	}
}

// WithSessionSettings keeps settings in memory for this model only. Hosts
// that share one store between many players use it so one player's theme or
// tutorial progress does not leak to the next.
func WithSessionSettings() ModelOption {
	return func(m *Model) {
		m.ephemeral = true
	}
}

// WithScreenSize sets the initial screen size.
func WithScreenSize(width, height int) ModelOption {
	return func(m *Model) {
		m.screen.Resize(width, height)
	}
}

// NewModel creates a model with a fresh engine. The high score is seeded from
// the store and settings are loaded from it; a nil store disables persistence.
func NewModel(cfg config.FlappyConfig, store *storage.Store, rt core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	m := Model{
		screen:     core.NewScreen(defaultScreenW, defaultScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		runtime:    rt,
		settings:   config.DefaultSettings(),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		sessionID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	var best int
	if store != nil {
		var err error
		if best, err = store.HighScore(); err != nil {
			m.logger.Warn("could not load high score", "error", err)
		}
		if !m.ephemeral {
			if m.settings, err = store.LoadSettings(); err != nil {
				m.logger.Warn("could not load settings", "error", err)
			}
		}
	}

	m.engine = flappy.New(cfg,
		flappy.WithSeed(rt.Seed),
		flappy.WithHighScore(best),
	)
	m.showHelp = !m.settings.TutorialCompleted

	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scoreboard != nil {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues actions for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// updateScoreboard forwards input to the open scoreboard.
func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		return m, cmd
	}

	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
		return m, nil
	}

	m.scoreboard = &sb
	return m, cmd
}

// handleResize processes window resize events. The engine keeps running in
// canvas units, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, msg.Height)
	if m.scoreboard != nil {
		m.scoreboard.resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick applies queued input and advances the engine by one step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.runtime.TickMillis()
	if !m.lastTick.IsZero() {
		elapsed = float64(now.Sub(m.lastTick)) / float64(time.Millisecond)
	}
	m.lastTick = now

	m.applyInput()
	m.engine.Update(elapsed)
	m.recordRound()

	m.inputFrame.Clear()
	return m, tickCmd(m.runtime.TickRate)
}

// applyInput turns the queued actions into engine commands.
func (m *Model) applyInput() {
	in := m.inputFrame
	if in.Empty() {
		return
	}

	if in.Has(core.ActionHelp) {
		if m.showHelp {
			m.closeHelp()
		} else {
			m.openHelp()
		}
	}

	if in.Has(core.ActionScores) {
		m.engine.Pause()
		sb := NewScoreboardModel(m.store, m.runtime.Player, m.screen.Width(), m.screen.Height())
		sb.embedded = true
		m.scoreboard = &sb
		return
	}

	if in.Has(core.ActionRestart) && m.engine.Status() != flappy.StatusIdle {
		m.restart()
	}

	if in.Has(core.ActionPause) {
		switch m.engine.Status() {
		case flappy.StatusPlaying:
			m.engine.Pause()
		case flappy.StatusPaused:
			m.showHelp = false
			m.helpPaused = false
			m.engine.Resume()
		}
	}

	if in.Has(core.ActionJump) {
		switch m.engine.Status() {
		case flappy.StatusIdle:
			m.dismissTutorial()
			m.engine.Start()
		case flappy.StatusPlaying:
			m.engine.Jump()
		case flappy.StatusPaused:
			if m.showHelp {
				m.closeHelp()
				m.engine.Resume()
			}
		case flappy.StatusGameOver:
			m.restart()
		}
	}
}

// restart resets the engine and starts a fresh round with the overlay closed.
func (m *Model) restart() {
	m.dismissTutorial()
	m.engine.Reset()
	m.engine.Start()
	m.recorded = false
}

// openHelp shows the overlay, pausing a running round.
func (m *Model) openHelp() {
	m.showHelp = true
	if m.engine.Status() == flappy.StatusPlaying {
		m.engine.Pause()
		m.helpPaused = true
	}
}

// closeHelp hides the overlay and resumes the round if the overlay paused it.
func (m *Model) closeHelp() {
	resume := m.helpPaused
	m.dismissTutorial()
	if resume {
		m.engine.Resume()
	}
}

// dismissTutorial hides the overlay and remembers that it was seen.
func (m *Model) dismissTutorial() {
	m.showHelp = false
	m.helpPaused = false
	if m.settings.TutorialCompleted {
		return
	}
	m.settings.TutorialCompleted = true
	if m.store == nil || m.ephemeral {
		return
	}
	if err := m.store.SaveSettings(m.settings); err != nil {
		m.logger.Warn("could not save settings", "error", err)
	}
}

// recordRound stores the score once per game over. Zero scores are skipped.
func (m *Model) recordRound() {
	if m.engine.Status() != flappy.StatusGameOver || m.recorded {
		return
	}
	m.recorded = true

	score := m.engine.Score()
	m.logger.Info("round over",
		"player", m.runtime.Player,
		"session", m.sessionID,
		"score", score,
		"best", m.engine.HighScore(),
	)
	if score <= 0 || m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(m.runtime.Player, m.sessionID, score); err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.engine.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("flappy_%s.txt", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.engine.Render(m.screen)
	if m.showHelp {
		m.screen.DrawPanel(tutorialLines(m.keyMapper.Keys()), core.ColorHUD, core.ColorHint)
	}
	return RenderScreen(m.screen, m.settings.Theme)
}

// Engine returns the engine driven by this model.
func (m Model) Engine() *flappy.Engine {
	return m.engine
}

// SessionID returns the identifier recorded with this session's scores.
func (m Model) SessionID() string {
	return m.sessionID
}

// Run starts the Bubble Tea program with a new model.
func Run(cfg config.FlappyConfig, store *storage.Store, rt core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(cfg, store, rt, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
