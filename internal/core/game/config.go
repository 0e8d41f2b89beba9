package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/volley/internal/core/physics"
)

var ErrInvalidConfig = errors.New("invalid game config")

// GoalRule decides when the ball counts as past a goal plane.
type GoalRule string

const (
	// GoalCrossing scores once any part of the ball is strictly beyond the plane.
	GoalCrossing GoalRule = "crossing"
	// GoalCenter scores once the ball's center is strictly beyond the plane.
	GoalCenter GoalRule = "center"
	// GoalClearance scores once the whole ball is strictly beyond the plane.
	GoalClearance GoalRule = "clearance"
)

func (r GoalRule) valid() bool {
	switch r {
	case GoalCrossing, GoalCenter, GoalClearance:
		return true
	default:
		return false
	}
}

type Config struct {
	TickRate           int     `yaml:"tick_rate"`
	TimeScale          float64 `yaml:"time_scale"`
	MaxCatchUpSteps    int     `yaml:"max_catch_up_steps"`
	PositionCorrection float64 `yaml:"position_correction"`
	PaddleWallContacts bool    `yaml:"paddle_wall_contacts"`

	Court  CourtConfig  `yaml:"court"`
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`
	Rules  RulesConfig  `yaml:"rules"`
}

// CourtConfig sizes the box the match is played in. The court spans
// [-Width/2, Width/2] on X with the goal planes at both ends.
type CourtConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
	// WallThickness is the half-thickness of each wall slab.
	WallThickness   float64 `yaml:"wall_thickness"`
	WallRestitution float64 `yaml:"wall_restitution"`
}

type PaddleConfig struct {
	// X is the distance of each paddle from the court center.
	X           float64    `yaml:"x"`
	HalfExtents mgl64.Vec3 `yaml:"half_extents"`
	Mass        float64    `yaml:"mass"`
	Restitution float64    `yaml:"restitution"`
	// Travel lets a paddle move this far along X around its home position.
	Travel float64 `yaml:"travel"`
}

type BallConfig struct {
	HalfExtents   mgl64.Vec3 `yaml:"half_extents"`
	Mass          float64    `yaml:"mass"`
	Restitution   float64    `yaml:"restitution"`
	MinSpeed      float64    `yaml:"min_speed"`
	MaxSpeed      float64    `yaml:"max_speed"`
	ServeVelocity mgl64.Vec3 `yaml:"serve_velocity"`
	// ServeJitter is the largest random offset added to the serve's Y and Z.
	ServeJitter float64 `yaml:"serve_jitter"`
}

type RulesConfig struct {
	// WinScore ends the match when a side reaches it. Zero plays forever.
	WinScore     int           `yaml:"win_score"`
	RespawnDelay time.Duration `yaml:"respawn_delay"`
	GoalRule     GoalRule      `yaml:"goal_rule"`
	Seed         uint64        `yaml:"seed"`
}

// DefaultConfig returns the standard court: a 60x40x40 box, paddles at
// x=±25 and a unit ball.
func DefaultConfig() Config {
	return Config{
		TickRate:           120,
		TimeScale:          1,
		MaxCatchUpSteps:    0,
		PositionCorrection: physics.DefaultPositionCorrection,
		Court: CourtConfig{
			Width:           60,
			Height:          40,
			Depth:           40,
			WallThickness:   1,
			WallRestitution: 1,
		},
		Paddle: PaddleConfig{
			X:           25,
			HalfExtents: mgl64.Vec3{1, 3, 3},
			Mass:        1000,
			Restitution: 1,
		},
		Ball: BallConfig{
			HalfExtents:   mgl64.Vec3{1, 1, 1},
			Mass:          1,
			Restitution:   1,
			MinSpeed:      4,
			MaxSpeed:      40,
			ServeVelocity: mgl64.Vec3{8, 4, 0},
		},
		Rules: RulesConfig{
			WinScore: 11,
			GoalRule: GoalCrossing,
		},
	}
}

// FixedStep returns the simulation step in seconds.
func (c Config) FixedStep() float64 {
	return 1 / float64(c.TickRate)
}

// RespawnSteps is the respawn delay rounded up to whole steps.
func (c Config) RespawnSteps() uint64 {
	if c.Rules.RespawnDelay <= 0 {
		return 0
	}
	steps := math.Ceil(c.Rules.RespawnDelay.Seconds() * float64(c.TickRate))
	return uint64(steps)
}

func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if !(c.TimeScale >= 0) || math.IsInf(c.TimeScale, 1) {
		return fmt.Errorf("%w: time_scale must be non-negative, got %v", ErrInvalidConfig, c.TimeScale)
	}
	if c.MaxCatchUpSteps < 0 {
		return fmt.Errorf("%w: max_catch_up_steps must not be negative", ErrInvalidConfig)
	}
	if !(c.PositionCorrection >= 0 && c.PositionCorrection <= 1) {
		return fmt.Errorf("%w: position_correction %v outside [0,1]", ErrInvalidConfig, c.PositionCorrection)
	}

	court := c.Court
	if !(court.Width > 0 && court.Height > 0 && court.Depth > 0) {
		return fmt.Errorf("%w: court dimensions must be positive", ErrInvalidConfig)
	}
	if !(court.WallThickness > 0) {
		return fmt.Errorf("%w: wall_thickness must be positive", ErrInvalidConfig)
	}

	paddle := c.Paddle
	if !(paddle.X > 0 && paddle.X+paddle.HalfExtents.X()+paddle.Travel < court.Width/2) {
		return fmt.Errorf("%w: paddles must sit inside the goal planes", ErrInvalidConfig)
	}
	if paddle.Travel < 0 {
		return fmt.Errorf("%w: paddle travel must not be negative", ErrInvalidConfig)
	}
	if paddle.HalfExtents.Y() >= court.Height/2-court.WallThickness ||
		paddle.HalfExtents.Z() >= court.Depth/2-court.WallThickness {
		return fmt.Errorf("%w: paddle does not fit between the walls", ErrInvalidConfig)
	}

	ball := c.Ball
	if !(ball.MinSpeed > 0 && ball.MaxSpeed >= ball.MinSpeed) {
		return fmt.Errorf("%w: ball speed range [%v, %v] is empty", ErrInvalidConfig, ball.MinSpeed, ball.MaxSpeed)
	}
	if ball.ServeVelocity.X() == 0 {
		return fmt.Errorf("%w: serve velocity needs an X component", ErrInvalidConfig)
	}
	if ball.ServeJitter < 0 {
		return fmt.Errorf("%w: serve_jitter must not be negative", ErrInvalidConfig)
	}

	if c.Rules.WinScore < 0 {
		return fmt.Errorf("%w: win_score must not be negative", ErrInvalidConfig)
	}
	if c.Rules.RespawnDelay < 0 {
		return fmt.Errorf("%w: respawn_delay must not be negative", ErrInvalidConfig)
	}
	if !c.Rules.GoalRule.valid() {
		return fmt.Errorf("%w: unknown goal_rule %q", ErrInvalidConfig, c.Rules.GoalRule)
	}
	return nil
}
