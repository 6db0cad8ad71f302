package flappy

// NextPipe returns the first pipe whose trailing edge is not yet behind the
// bird, or nil when none is on screen.
func (e *Engine) NextPipe() *Pipe {
	for _, p := range e.state.Pipes {
		if p.X+e.cfg.Pipes.Width >= e.state.Bird.X {
			return p
		}
	}
	return nil
}

// ShouldFlap is a simple autopilot for headless runs and demos. It flaps when
// the bird's centre has dropped a quarter gap below the next gap centre and
// the bird is no longer rising.
func (e *Engine) ShouldFlap() bool {
	if e.state.Status != StatusPlaying {
		return false
	}

	target := e.cfg.Canvas.Height / 2
	if p := e.NextPipe(); p != nil {
		target = p.GapY
	}

	b := e.state.Bird
	centre := b.Y + e.cfg.Bird.Size/2
	return b.Velocity >= 0 && centre > target+e.cfg.Pipes.Gap/4
}
