package flappy

// DefaultPoolSize is the free-list capacity used when none is configured.
const DefaultPoolSize = 10

// PipePool is a capacity-bounded free list of pipe records.
// Records are keyed only by availability, never by identity.
// Not safe for concurrent use; Release must be the last use of a pipe.
type PipePool struct {
	free    []*Pipe
	maxSize int
	nextID  uint64
}

// NewPipePool creates a pool that retains at most maxSize released pipes.
func NewPipePool(maxSize int) *PipePool {
	if maxSize <= 0 {
		maxSize = DefaultPoolSize
	}
	return &PipePool{
		free:    make([]*Pipe, 0, maxSize),
		maxSize: maxSize,
	}
}

// Acquire returns a pipe at x with the given gap centre.
// A released record is reused when available; otherwise a new one is minted.
func (p *PipePool) Acquire(x, gapY float64) *Pipe {
	if n := len(p.free); n > 0 {
		pipe := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]

		pipe.X = x
		pipe.GapY = gapY
		pipe.Passed = false
		return pipe
	}

	pipe := &Pipe{
		ID:   p.nextID,
		X:    x,
		GapY: gapY,
	}
	p.nextID++
	return pipe
}

// Release returns a pipe to the free list, dropping it if the list is full.
func (p *PipePool) Release(pipe *Pipe) {
	if pipe == nil {
		return
	}
	if len(p.free) < p.maxSize {
		p.free = append(p.free, pipe)
	}
}

// Clear empties the free list.
func (p *PipePool) Clear() {
	clear(p.free)
	p.free = p.free[:0]
}

// Len returns the number of pipes waiting for reuse.
func (p *PipePool) Len() int {
	return len(p.free)
}

// Cap returns the maximum number of pipes the pool retains.
func (p *PipePool) Cap() int {
	return p.maxSize
}
