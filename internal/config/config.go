// Package config provides YAML-based engine configuration loading and
// host settings for the flappy arcade.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains the static configuration consumed by the engine at
// construction. It is never mutated by the simulation.
type FlappyConfig struct {
	Physics FlappyPhysics `yaml:"physics"`
	Pipes   FlappyPipes   `yaml:"pipes"`
	Bird    FlappyBird    `yaml:"bird"`
	Canvas  FlappyCanvas  `yaml:"canvas"`
}

// FlappyPhysics defines the per-tick physics constants.
type FlappyPhysics struct {
	Gravity       float64 `yaml:"gravity"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	MaxVelocity   float64 `yaml:"max_velocity"`
	RotationScale float64 `yaml:"rotation_scale"`
	MinRotation   float64 `yaml:"min_rotation"`
	MaxRotation   float64 `yaml:"max_rotation"`
}

// FlappyPipes defines obstacle geometry and cadence.
type FlappyPipes struct {
	Speed           float64 `yaml:"speed"`
	Gap             float64 `yaml:"gap"`
	Width           float64 `yaml:"width"`
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
	MinHeight       float64 `yaml:"min_height"`
	MaxOnScreen     int     `yaml:"max_on_screen"`
	PoolSize        int     `yaml:"pool_size"`
}

// FlappyBird defines the controllable body.
type FlappyBird struct {
	X    float64 `yaml:"x"`
	Size float64 `yaml:"size"`
}

// FlappyCanvas defines the logical playfield in canvas units.
type FlappyCanvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// MinGapY returns the lowest allowed gap centre.
func (c FlappyConfig) MinGapY() float64 {
	return c.Pipes.MinHeight + c.Pipes.Gap/2
}

// MaxGapY returns the highest allowed gap centre.
func (c FlappyConfig) MaxGapY() float64 {
	return c.Canvas.Height - c.Pipes.MinHeight - c.Pipes.Gap/2
}

// FloorY returns the largest bird Y that is still in bounds.
func (c FlappyConfig) FloorY() float64 {
	return c.Canvas.Height - c.Bird.Size
}

// Validate reports configuration values the engine cannot run with.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Bird.Size <= 0 {
		errs = append(errs, fmt.Errorf("bird.size must be positive, got %g", c.Bird.Size))
	}
	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_impulse must be negative (up), got %g", c.Physics.JumpImpulse))
	}
	if c.Physics.MaxVelocity <= 0 {
		errs = append(errs, fmt.Errorf("physics.max_velocity must be positive, got %g", c.Physics.MaxVelocity))
	}
	if c.Physics.MinRotation > c.Physics.MaxRotation {
		errs = append(errs, fmt.Errorf("physics.min_rotation %g exceeds max_rotation %g", c.Physics.MinRotation, c.Physics.MaxRotation))
	}
	if c.Pipes.Width <= 0 || c.Pipes.Gap <= 0 {
		errs = append(errs, fmt.Errorf("pipes.width and pipes.gap must be positive"))
	}
	if c.Pipes.SpawnIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("pipes.spawn_interval_ms must be positive, got %d", c.Pipes.SpawnIntervalMs))
	}
	if c.Pipes.MaxOnScreen <= 0 {
		errs = append(errs, fmt.Errorf("pipes.max_on_screen must be positive, got %d", c.Pipes.MaxOnScreen))
	}
	if c.MinGapY() > c.MaxGapY() {
		errs = append(errs, fmt.Errorf("gap band is empty: min %g > max %g", c.MinGapY(), c.MaxGapY()))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}
