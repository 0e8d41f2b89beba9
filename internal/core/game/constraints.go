package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/volley/internal/core/physics"
)

// clampPaddles moves every paddle center back inside its movable volume.
// Velocities are left untouched so a paddle held against a limit can reverse
// on the next step.
func clampPaddles(s *physics.Store, c *court) {
	s.OfKind(physics.KindPaddle).Each(func(b *physics.Body) {
		bounds, ok := c.bounds[b.ID]
		if !ok {
			return
		}
		b.Position = physics.ClampVec(b.Position, bounds[0], bounds[1])
	})
}

// normalizeBall keeps the ball speed within [MinSpeed, MaxSpeed]. A ball with
// no velocity is sent along fallback.
func normalizeBall(b *physics.Body, cfg BallConfig, fallback mgl64.Vec3) {
	b.Velocity = physics.ClampSpeed(b.Velocity, cfg.MinSpeed, cfg.MaxSpeed, fallback)
}
