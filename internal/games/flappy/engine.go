// Package flappy implements the side-scrolling physics and collision engine.
// A bird falls under gravity, the player imparts upward impulses, and pipes
// scroll in from the right at a fixed cadence.
//
// The engine is synchronous and performs no I/O. It is owned by exactly one
// driving loop, which calls Update once per frame. Commands that do not apply
// to the current status are silent no-ops.
package flappy

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Engine owns the authoritative session state.
type Engine struct {
	cfg       config.FlappyConfig
	state     State
	pool      *PipePool
	rng       *rand.Rand
	clock     func() time.Time
	lastSpawn time.Time
	interval  time.Duration
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithRand sets the source used for gap placement.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds gap placement for reproducible sessions.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithClock sets the time source for the spawn timer and timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithHighScore seeds the high score, e.g. from persisted records.
func WithHighScore(score int) Option {
	return func(e *Engine) {
		if score > e.state.HighScore {
			e.state.HighScore = score
		}
	}
}

// WithPool replaces the pipe recycler.
func WithPool(pool *PipePool) Option {
	return func(e *Engine) {
		if pool != nil {
			e.pool = pool
		}
	}
}

// New creates an idle engine for the given configuration.
func New(cfg config.FlappyConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		pool:     NewPipePool(cfg.Pipes.PoolSize),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		clock:    time.Now,
		interval: time.Duration(cfg.Pipes.SpawnIntervalMs) * time.Millisecond,
	}
	e.state.Pipes = make([]*Pipe, 0, cfg.Pipes.MaxOnScreen)

	for _, opt := range opts {
		opt(e)
	}

	e.reinit()
	return e
}

// reinit restores every field except the high score.
// Live pipes must already have been released.
func (e *Engine) reinit() {
	e.state.Bird = Bird{
		X: e.cfg.Bird.X,
		Y: e.cfg.Canvas.Height / 2,
	}
	e.state.Pipes = e.state.Pipes[:0]
	e.state.Score = 0
	e.state.Status = StatusIdle
	e.state.LastUpdate = e.clock()
}

// releasePipes hands every live pipe back to the pool.
func (e *Engine) releasePipes() {
	for i, p := range e.state.Pipes {
		e.pool.Release(p)
		e.state.Pipes[i] = nil
	}
	e.state.Pipes = e.state.Pipes[:0]
}

// Start begins a round from idle: the bird is re-centred and one pipe spawns immediately.
func (e *Engine) Start() {
	if e.state.Status != StatusIdle {
		return
	}

	e.releasePipes()
	e.reinit()
	e.state.Status = StatusPlaying
	e.lastSpawn = e.state.LastUpdate
	e.spawnPipe()
}

// Jump overwrites the bird's velocity with the jump impulse.
// Repeated jumps do not stack.
func (e *Engine) Jump() {
	if e.state.Status != StatusPlaying {
		return
	}
	e.state.Bird.Velocity = e.cfg.Physics.JumpImpulse
}

// Pause freezes a running round.
func (e *Engine) Pause() {
	if e.state.Status == StatusPlaying {
		e.state.Status = StatusPaused
	}
}

// Resume continues a paused round.
func (e *Engine) Resume() {
	if e.state.Status == StatusPaused {
		e.state.Status = StatusPlaying
	}
}

// Reset releases all pipes and returns to idle, keeping the high score.
func (e *Engine) Reset() {
	e.releasePipes()
	e.reinit()
}

// Update advances the simulation by one fixed tick.
// elapsedMs is advisory: physics constants are per tick, not per millisecond.
func (e *Engine) Update(elapsedMs float64) {
	if e.state.Status != StatusPlaying {
		return
	}

	now := e.clock()
	e.state.LastUpdate = now

	phys := e.cfg.Physics
	bird := &e.state.Bird

	bird.Velocity += phys.Gravity
	if bird.Velocity > phys.MaxVelocity {
		bird.Velocity = phys.MaxVelocity
	}
	bird.Y += bird.Velocity
	bird.Rotation = core.ClampF(bird.Velocity*phys.RotationScale, phys.MinRotation, phys.MaxRotation)

	if bird.Y > e.cfg.FloorY() || bird.Y < 0 {
		e.gameOver()
		return
	}

	e.updatePipes()

	if now.Sub(e.lastSpawn) > e.interval && len(e.state.Pipes) < e.cfg.Pipes.MaxOnScreen {
		e.spawnPipe()
		e.lastSpawn = now
	}

	if e.checkCollisions() {
		e.gameOver()
	}
}

// updatePipes scrolls pipes, awards points and recycles pipes that left the canvas.
// Iterates in reverse so removal does not disturb unvisited indices.
func (e *Engine) updatePipes() {
	width := e.cfg.Pipes.Width
	birdX := e.state.Bird.X

	for i := len(e.state.Pipes) - 1; i >= 0; i-- {
		p := e.state.Pipes[i]
		p.X -= e.cfg.Pipes.Speed

		if !p.Passed && p.X+width < birdX {
			p.Passed = true
			e.state.Score++
		}

		if p.X+width < 0 {
			e.pool.Release(p)
			e.state.Pipes = slices.Delete(e.state.Pipes, i, i+1)
		}
	}
}

// spawnPipe appends a pipe at the right edge with a random gap centre.
// Skipped, not queued, when the cap is reached.
func (e *Engine) spawnPipe() {
	if len(e.state.Pipes) >= e.cfg.Pipes.MaxOnScreen {
		return
	}

	minGapY := e.cfg.MinGapY()
	maxGapY := e.cfg.MaxGapY()
	gapY := e.rng.Float64()*(maxGapY-minGapY) + minGapY

	e.state.Pipes = append(e.state.Pipes, e.pool.Acquire(e.cfg.Canvas.Width, gapY))
}

// checkCollisions tests the bird against both solid segments of every pipe.
func (e *Engine) checkCollisions() bool {
	birdBox := e.BirdBox()
	for _, p := range e.state.Pipes {
		top, bottom := e.PipeBoxes(p)
		if birdBox.Intersects(top) || birdBox.Intersects(bottom) {
			return true
		}
	}
	return false
}

// gameOver freezes the round and raises the high score if beaten.
func (e *Engine) gameOver() {
	e.state.Status = StatusGameOver
	if e.state.Score > e.state.HighScore {
		e.state.HighScore = e.state.Score
	}
}

// BirdBox returns the bird's bounding box in canvas units.
func (e *Engine) BirdBox() core.Box {
	b := e.state.Bird
	return core.NewBox(b.X, b.Y, e.cfg.Bird.Size, e.cfg.Bird.Size)
}

// PipeBoxes returns the top and bottom solid segments of a pipe.
// The top spans from the ceiling to the gap, the bottom from the gap to the floor.
func (e *Engine) PipeBoxes(p *Pipe) (top, bottom core.Box) {
	half := e.cfg.Pipes.Gap / 2
	width := e.cfg.Pipes.Width
	gapTop := p.GapY - half
	gapBottom := p.GapY + half

	top = core.NewBox(p.X, 0, width, gapTop)
	bottom = core.NewBox(p.X, gapBottom, width, e.cfg.Canvas.Height-gapBottom)
	return top, bottom
}

// State returns a live view of the session. It is mutated by later calls;
// read it, render, and drop it before the next tick.
func (e *Engine) State() *State {
	return &e.state
}

// Status returns the current status.
func (e *Engine) Status() Status {
	return e.state.Status
}

// Score returns the current round's score.
func (e *Engine) Score() int {
	return e.state.Score
}

// HighScore returns the best terminal score seen by this engine.
func (e *Engine) HighScore() int {
	return e.state.HighScore
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.FlappyConfig {
	return e.cfg
}

// Pool exposes the pipe recycler, mainly for inspection.
func (e *Engine) Pool() *PipePool {
	return e.pool
}
