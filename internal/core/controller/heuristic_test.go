package controller

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/volley/internal/core/game"
	"github.com/zeusync/volley/internal/core/physics"
)

type fakeWorld struct {
	bodies   map[physics.BodyID]physics.Body
	commands []mgl64.Vec3
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{bodies: map[physics.BodyID]physics.Body{
		1: {ID: 1, Kind: physics.KindPaddle, Position: mgl64.Vec3{25, 0, 0}},
		2: {ID: 2, Kind: physics.KindBall},
	}}
}

func (f *fakeWorld) PaddleID(name string) (physics.BodyID, error) {
	if name != "paddle2" {
		return 0, physics.ErrNotFound
	}
	return 1, nil
}

func (f *fakeWorld) BallID() physics.BodyID { return 2 }

func (f *fakeWorld) Body(id physics.BodyID) (physics.Body, error) {
	b, ok := f.bodies[id]
	if !ok {
		return physics.Body{}, physics.ErrNotFound
	}
	return b, nil
}

func (f *fakeWorld) PaddleBounds(physics.BodyID) (mgl64.Vec3, mgl64.Vec3, error) {
	return mgl64.Vec3{25, -16, -16}, mgl64.Vec3{25, 16, 16}, nil
}

func (f *fakeWorld) SetPaddleVelocity(_ physics.BodyID, v mgl64.Vec3) error {
	f.commands = append(f.commands, v)
	return nil
}

func (f *fakeWorld) moveBall(pos mgl64.Vec3) {
	b := f.bodies[2]
	b.Position = pos
	f.bodies[2] = b
}

func exact() Config {
	return Config{Paddle: "paddle2", MaxSpeed: 12, DeadZone: 0.1}
}

func TestHeuristicChasesBallAtMaxSpeed(t *testing.T) {
	w := newFakeWorld()
	w.moveBall(mgl64.Vec3{0, 3, 4})

	h, err := NewHeuristic(exact(), w)
	require.NoError(t, err)
	require.NoError(t, h.Update(1.0/120))

	require.Len(t, w.commands, 1)
	v := w.commands[0]
	assert.Zero(t, v.X(), "paddles only steer across their plane")
	assert.InDelta(t, 12, v.Len(), 1e-9)
	assert.True(t, v.Normalize().ApproxEqual(mgl64.Vec3{0, 0.6, 0.8}))
}

func TestHeuristicStopsInsideDeadZone(t *testing.T) {
	w := newFakeWorld()
	w.moveBall(mgl64.Vec3{0, 0.05, 0})

	h, err := NewHeuristic(exact(), w)
	require.NoError(t, err)
	require.NoError(t, h.Update(1.0/120))
	assert.Equal(t, mgl64.Vec3{}, w.commands[0])
}

func TestHeuristicAimsWithinBounds(t *testing.T) {
	w := newFakeWorld()
	w.moveBall(mgl64.Vec3{0, 40, 0})

	h, err := NewHeuristic(exact(), w)
	require.NoError(t, err)
	require.NoError(t, h.Update(1.0/120))
	assert.Equal(t, mgl64.Vec3{25, 16, 0}, h.target)
}

func TestHeuristicWaitsForReactionDelay(t *testing.T) {
	w := newFakeWorld()
	w.moveBall(mgl64.Vec3{0, 5, 0})

	cfg := exact()
	cfg.ReactionDelay = 50 * time.Millisecond
	h, err := NewHeuristic(cfg, w)
	require.NoError(t, err)
	require.NoError(t, h.Update(0.01))
	assert.Greater(t, w.commands[0].Y(), 0.0)

	w.moveBall(mgl64.Vec3{0, -5, 0})
	require.NoError(t, h.Update(0.01))
	assert.Greater(t, w.commands[1].Y(), 0.0, "still chasing the old aim")

	for range 5 {
		require.NoError(t, h.Update(0.01))
	}
	assert.Less(t, w.commands[len(w.commands)-1].Y(), 0.0, "re-aimed after the delay")
}

func TestResolveAppliesPresets(t *testing.T) {
	cfg, err := Config{Difficulty: "hard", MaxSpeed: 20}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.MaxSpeed, "explicit values win")
	assert.Equal(t, 20*time.Millisecond, cfg.ReactionDelay)
	assert.Equal(t, 0.1, cfg.TrackingNoise)

	cfg, err = DefaultConfig().Resolve()
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.MaxSpeed)
	assert.Equal(t, 50*time.Millisecond, cfg.ReactionDelay)

	_, err = Config{Difficulty: "impossible"}.Resolve()
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestNewHeuristicUnknownPaddle(t *testing.T) {
	cfg := exact()
	cfg.Paddle = "paddle9"
	_, err := NewHeuristic(cfg, newFakeWorld())
	assert.ErrorIs(t, err, physics.ErrNotFound)
}

func TestHeuristicKeepsUpWithServeInRealWorld(t *testing.T) {
	w, err := game.New(game.DefaultConfig(), nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Difficulty = ""
	cfg.MaxSpeed = 12
	h, err := NewHeuristic(cfg, w)
	require.NoError(t, err)

	dt := w.Config().FixedStep()
	for range 120 {
		require.NoError(t, h.Update(dt))
		w.Step()
	}

	paddle, _ := w.Body(h.Paddle())
	ball, _ := w.Body(w.BallID())
	assert.InDelta(t, ball.Position.Y(), paddle.Position.Y(), 1.5)
	assert.InDelta(t, ball.Position.Z(), paddle.Position.Z(), 1.5)
}

func TestNewHeuristicRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no speed", mutate: func(c *Config) { c.MaxSpeed = 0 }},
		{name: "negative noise", mutate: func(c *Config) { c.TrackingNoise = -1 }},
		{name: "negative delay", mutate: func(c *Config) { c.ReactionDelay = -time.Millisecond }},
		{name: "negative dead zone", mutate: func(c *Config) { c.DeadZone = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := exact()
			tt.mutate(&cfg)

			_, err := NewHeuristic(cfg, newFakeWorld())
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
