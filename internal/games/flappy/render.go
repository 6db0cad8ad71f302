package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdBodyChar  = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// viewport maps canvas units onto screen cells. Row 0 is the HUD and the
// last row is the ground; the canvas is stretched over the rows between.
type viewport struct {
	top    int // First playfield row
	ground int // Ground row, one past the playfield
	sx, sy float64
}

func newViewport(dst *core.Screen, width, height float64) viewport {
	rows := dst.Height() - 2
	v := viewport{top: 1, ground: dst.Height() - 1}
	if rows > 0 && height > 0 {
		v.sy = float64(rows) / height
	}
	if width > 0 {
		v.sx = float64(dst.Width()) / width
	}
	return v
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// span converts a canvas interval to a half-open cell interval that is at
// least one cell wide.
func span(from, to int) (int, int) {
	if to <= from {
		to = from + 1
	}
	return from, to
}

// Render draws the current engine state to the screen. It only reads state.
func (e *Engine) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Height() < 3 || dst.Width() == 0 {
		e.drawHUD(dst)
		return
	}

	v := newViewport(dst, e.cfg.Canvas.Width, e.cfg.Canvas.Height)

	dst.DrawHLine(0, v.ground, dst.Width(), GroundChar, core.ColorGround)

	for _, p := range e.state.Pipes {
		e.drawPipe(dst, v, p)
	}
	e.drawBird(dst, v)
	e.drawHUD(dst)

	switch e.state.Status {
	case StatusIdle:
		dst.DrawPanel([]string{"F L A P P Y", "", "Press SPACE to flap"}, core.ColorHUD, core.ColorHint)
	case StatusPaused:
		dst.DrawPanel([]string{"PAUSED", "", "Press P to resume"}, core.ColorHUD, core.ColorHint)
	case StatusGameOver:
		dst.DrawPanel([]string{
			"GAME OVER",
			"",
			fmt.Sprintf("Score: %d  Best: %d", e.state.Score, e.state.HighScore),
			"Press R to restart",
		}, core.ColorAlert, core.ColorHUD)
	}
}

// drawPipe renders the top and bottom segments of one pipe, clipped above the ground.
func (e *Engine) drawPipe(dst *core.Screen, v viewport, p *Pipe) {
	left, right := span(v.col(p.X), v.col(p.X+e.cfg.Pipes.Width))
	half := e.cfg.Pipes.Gap / 2
	topEnd := v.row(p.GapY - half)
	bottomStart := v.row(p.GapY + half)

	for x := left; x < right; x++ {
		for y := v.top; y < topEnd && y < v.ground; y++ {
			dst.SetColor(x, y, PipeChar, core.ColorPipe)
		}
		if topEnd > v.top {
			dst.SetColor(x, topEnd-1, PipeCapTop, core.ColorPipe)
		}

		for y := bottomStart; y < v.ground; y++ {
			dst.SetColor(x, y, PipeChar, core.ColorPipe)
		}
		if bottomStart < v.ground {
			dst.SetColor(x, bottomStart, PipeCapBottom, core.ColorPipe)
		}
	}
}

// drawBird renders the bird body with a heading glyph in the top-right cell.
func (e *Engine) drawBird(dst *core.Screen, v viewport) {
	b := e.state.Bird
	size := e.cfg.Bird.Size
	left, right := span(v.col(b.X), v.col(b.X+size))
	top, bottom := span(v.row(b.Y), v.row(b.Y+size))

	for y := top; y < bottom && y < v.ground; y++ {
		for x := left; x < right; x++ {
			dst.SetColor(x, y, BirdBodyChar, core.ColorBird)
		}
	}
	if top < v.ground {
		dst.SetColor(right-1, top, BirdGlyph(b.Rotation), core.ColorBeak)
	}
}

// drawHUD draws the score line.
func (e *Engine) drawHUD(dst *core.Screen) {
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", e.state.Score), core.ColorHUD)

	best := fmt.Sprintf(" Best: %d ", e.state.HighScore)
	dst.DrawTextColor(dst.Width()-len(best)-2, 0, best, core.ColorHUD)
}

// BirdGlyph picks the heading character for a rotation in degrees.
func BirdGlyph(rotation float64) rune {
	switch {
	case rotation < -10:
		return '▲'
	case rotation > 30:
		return '▼'
	default:
		return '▶'
	}
}
