package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/volley/internal/core/physics"
)

const (
	BallName    = "ball"
	Paddle1Name = "paddle1"
	Paddle2Name = "paddle2"
)

// court records the bodies of a match and where they start.
type court struct {
	walls   []physics.BodyID
	paddles [2]physics.BodyID
	ball    physics.BodyID
	home    map[physics.BodyID]mgl64.Vec3

	// bounds holds the movable volume of each paddle center.
	bounds map[physics.BodyID][2]mgl64.Vec3

	goalX float64
}

// buildCourt adds walls, paddles and ball to the store in that order.
func buildCourt(s *physics.Store, cfg Config) (*court, error) {
	c := &court{
		home:   make(map[physics.BodyID]mgl64.Vec3),
		bounds: make(map[physics.BodyID][2]mgl64.Vec3),
		goalX:  cfg.Court.Width / 2,
	}

	w, h, d, t := cfg.Court.Width, cfg.Court.Height, cfg.Court.Depth, cfg.Court.WallThickness
	walls := []struct {
		pos, half mgl64.Vec3
	}{
		{mgl64.Vec3{0, -h / 2, 0}, mgl64.Vec3{w / 2, t, d / 2}},
		{mgl64.Vec3{0, h / 2, 0}, mgl64.Vec3{w / 2, t, d / 2}},
		{mgl64.Vec3{0, 0, -d / 2}, mgl64.Vec3{w / 2, h / 2, t}},
		{mgl64.Vec3{0, 0, d / 2}, mgl64.Vec3{w / 2, h / 2, t}},
	}
	for i, wall := range walls {
		id, err := s.Add(physics.BodySpec{
			Name:        fmt.Sprintf("wall_%d", i),
			Kind:        physics.KindWall,
			Position:    wall.pos,
			HalfExtents: wall.half,
			Restitution: cfg.Court.WallRestitution,
		})
		if err != nil {
			return nil, err
		}
		c.walls = append(c.walls, id)
		c.home[id] = wall.pos
	}

	p := cfg.Paddle
	reachY := h/2 - t - p.HalfExtents.Y()
	reachZ := d/2 - t - p.HalfExtents.Z()
	for i, name := range []string{Paddle1Name, Paddle2Name} {
		x := -p.X
		if i == 1 {
			x = p.X
		}
		pos := mgl64.Vec3{x, 0, 0}
		id, err := s.Add(physics.BodySpec{
			Name:        name,
			Kind:        physics.KindPaddle,
			Position:    pos,
			HalfExtents: p.HalfExtents,
			Mass:        p.Mass,
			Restitution: p.Restitution,
		})
		if err != nil {
			return nil, err
		}
		c.paddles[i] = id
		c.home[id] = pos
		c.bounds[id] = [2]mgl64.Vec3{
			{x - p.Travel, -reachY, -reachZ},
			{x + p.Travel, reachY, reachZ},
		}
	}

	b := cfg.Ball
	id, err := s.Add(physics.BodySpec{
		Name:        BallName,
		Kind:        physics.KindBall,
		HalfExtents: b.HalfExtents,
		Mass:        b.Mass,
		Restitution: b.Restitution,
	})
	if err != nil {
		return nil, err
	}
	c.ball = id
	c.home[id] = mgl64.Vec3{}

	return c, nil
}

// paddleOf returns the paddle a side controls.
func (c *court) paddleOf(side Side) physics.BodyID {
	switch side {
	case Player1:
		return c.paddles[0]
	case Player2:
		return c.paddles[1]
	default:
		return 0
	}
}
