package game

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/volley/internal/core/physics"
)

// referee applies the scoring rules and picks serve velocities.
type referee struct {
	rule   GoalRule
	goalX  float64
	ball   BallConfig
	seed   uint64
	rng    *rand.Rand
	delay  uint64
	target int
}

func newReferee(cfg Config, goalX float64) *referee {
	r := &referee{
		rule:   cfg.Rules.GoalRule,
		goalX:  goalX,
		ball:   cfg.Ball,
		seed:   cfg.Rules.Seed,
		delay:  cfg.RespawnSteps(),
		target: cfg.Rules.WinScore,
	}
	r.reseed()
	return r
}

func (r *referee) reseed() {
	r.rng = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// scorer returns the side that scores with the ball in its current place, or
// NoSide. Player1 scores past the +X plane and Player2 past the -X plane.
func (r *referee) scorer(ball *physics.Body) Side {
	box := ball.Bounds()
	var lead, trail float64
	switch r.rule {
	case GoalCenter:
		lead, trail = ball.Position.X(), ball.Position.X()
	case GoalClearance:
		lead, trail = box.Min.X(), box.Max.X()
	case GoalCrossing:
		lead, trail = box.Max.X(), box.Min.X()
	default:
		lead, trail = box.Max.X(), box.Min.X()
	}

	switch {
	case lead > r.goalX:
		return Player1
	case trail < -r.goalX:
		return Player2
	default:
		return NoSide
	}
}

// respawnDue reports whether a ball held since step scoredAt goes back into
// play at step tick. A zero delay still waits for the next step.
func (r *referee) respawnDue(scoredAt, tick uint64) bool {
	return tick-scoredAt >= max(r.delay, 1)
}

// winner returns the side that has reached the winning score, if any.
func (r *referee) winner(score Score) Side {
	if r.target <= 0 {
		return NoSide
	}
	switch {
	case score.Player1 >= r.target:
		return Player1
	case score.Player2 >= r.target:
		return Player2
	default:
		return NoSide
	}
}

// serve returns a launch velocity travelling toward the goal that receiver
// defends.
func (r *referee) serve(receiver Side) mgl64.Vec3 {
	v := r.ball.ServeVelocity
	sign := 1.0
	if receiver == Player1 {
		sign = -1
	}
	v[physics.AxisX] = sign * math.Abs(v.X())

	if j := r.ball.ServeJitter; j > 0 {
		v[physics.AxisY] += (r.rng.Float64()*2 - 1) * j
		v[physics.AxisZ] += (r.rng.Float64()*2 - 1) * j
	}
	return physics.ClampSpeed(v, r.ball.MinSpeed, r.ball.MaxSpeed, physics.AxisX.Unit(sign))
}
