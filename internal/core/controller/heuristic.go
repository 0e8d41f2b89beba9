// Package controller drives a paddle from inside the server process.
package controller

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/volley/internal/core/physics"
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidConfig     = errors.New("invalid controller config")
)

type Config struct {
	Enabled bool   `yaml:"enabled"`
	Paddle  string `yaml:"paddle"`
	// Difficulty fills max_speed, reaction_delay and tracking_noise where
	// they are left at zero.
	Difficulty    string        `yaml:"difficulty"`
	MaxSpeed      float64       `yaml:"max_speed"`
	ReactionDelay time.Duration `yaml:"reaction_delay"`
	// TrackingNoise is the standard deviation of the aim error.
	TrackingNoise float64 `yaml:"tracking_noise"`
	// DeadZone is the distance to the target below which the paddle stops.
	DeadZone float64 `yaml:"dead_zone"`
	Seed     uint64  `yaml:"seed"`
}

var presets = map[string]Config{
	"easy":   {MaxSpeed: 10, ReactionDelay: 100 * time.Millisecond, TrackingNoise: 0.5},
	"medium": {MaxSpeed: 12, ReactionDelay: 50 * time.Millisecond, TrackingNoise: 0.3},
	"hard":   {MaxSpeed: 14, ReactionDelay: 20 * time.Millisecond, TrackingNoise: 0.1},
}

// DefaultConfig is the medium opponent on paddle2.
func DefaultConfig() Config {
	return Config{
		Paddle:     "paddle2",
		Difficulty: "medium",
		DeadZone:   0.1,
	}
}

// Resolve fills unset fields from the difficulty preset.
func (c Config) Resolve() (Config, error) {
	if c.Difficulty == "" {
		return c, nil
	}
	p, ok := presets[c.Difficulty]
	if !ok {
		return c, fmt.Errorf("%w: %q", ErrUnknownDifficulty, c.Difficulty)
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = p.MaxSpeed
	}
	if c.ReactionDelay == 0 {
		c.ReactionDelay = p.ReactionDelay
	}
	if c.TrackingNoise == 0 {
		c.TrackingNoise = p.TrackingNoise
	}
	return c, nil
}

// World is the part of the simulation a controller reads and steers.
type World interface {
	PaddleID(name string) (physics.BodyID, error)
	BallID() physics.BodyID
	Body(id physics.BodyID) (physics.Body, error)
	PaddleBounds(id physics.BodyID) (lo, hi mgl64.Vec3, err error)
	SetPaddleVelocity(id physics.BodyID, v mgl64.Vec3) error
}

// Heuristic chases the ball across the paddle plane. It re-aims only after
// its reaction delay and aims with gaussian noise, so it misses sometimes.
type Heuristic struct {
	cfg    Config
	world  World
	paddle physics.BodyID
	rng    *rand.Rand

	elapsed   float64
	lastAim   float64
	aimed     bool
	target    mgl64.Vec3
	lo, hi    mgl64.Vec3
	delaySecs float64
}

// Validate resolves the difficulty preset and checks the result.
func (c Config) Validate() error {
	resolved, err := c.Resolve()
	if err != nil {
		return err
	}
	return resolved.validate()
}

func (c Config) validate() error {
	switch {
	case !(c.MaxSpeed > 0):
		return fmt.Errorf("%w: max_speed must be positive", ErrInvalidConfig)
	case c.TrackingNoise < 0:
		return fmt.Errorf("%w: tracking_noise must not be negative", ErrInvalidConfig)
	case c.ReactionDelay < 0:
		return fmt.Errorf("%w: reaction_delay must not be negative", ErrInvalidConfig)
	case c.DeadZone < 0:
		return fmt.Errorf("%w: dead_zone must not be negative", ErrInvalidConfig)
	}
	return nil
}

func NewHeuristic(cfg Config, w World) (*Heuristic, error) {
	cfg, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	if err = cfg.validate(); err != nil {
		return nil, err
	}

	paddle, err := w.PaddleID(cfg.Paddle)
	if err != nil {
		return nil, err
	}
	lo, hi, err := w.PaddleBounds(paddle)
	if err != nil {
		return nil, err
	}

	return &Heuristic{
		cfg:       cfg,
		world:     w,
		paddle:    paddle,
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1)),
		lo:        lo,
		hi:        hi,
		delaySecs: cfg.ReactionDelay.Seconds(),
	}, nil
}

func (h *Heuristic) Paddle() physics.BodyID {
	return h.paddle
}

// Update advances the controller by dt seconds of simulation time and
// commands the paddle velocity for the next step.
func (h *Heuristic) Update(dt float64) error {
	h.elapsed += dt

	paddle, err := h.world.Body(h.paddle)
	if err != nil {
		return err
	}

	if !h.aimed || h.elapsed-h.lastAim > h.delaySecs {
		ball, err := h.world.Body(h.world.BallID())
		if err != nil {
			return err
		}
		target := paddle.Position
		target[physics.AxisY] = ball.Position.Y() + h.noise()
		target[physics.AxisZ] = ball.Position.Z() + h.noise()
		h.target = physics.ClampVec(target, h.lo, h.hi)
		h.lastAim = h.elapsed
		h.aimed = true
	}

	offset := h.target.Sub(paddle.Position)
	offset[physics.AxisX] = 0

	var v mgl64.Vec3
	if dist := offset.Len(); dist > h.cfg.DeadZone {
		// Slow down on the last step so the paddle does not overshoot.
		speed := h.cfg.MaxSpeed
		if dt > 0 {
			speed = math.Min(speed, dist/dt)
		}
		v = offset.Mul(speed / dist)
	}
	return h.world.SetPaddleVelocity(h.paddle, v)
}

func (h *Heuristic) noise() float64 {
	if h.cfg.TrackingNoise == 0 {
		return 0
	}
	return h.rng.NormFloat64() * h.cfg.TrackingNoise
}
