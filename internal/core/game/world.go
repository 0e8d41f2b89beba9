// Package game runs a 3D pong match on top of the physics package: the
// court, the fixed-step pipeline, scoring and the event log.
package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/zeusync/volley/internal/core/clock"
	"github.com/zeusync/volley/internal/core/events"
	"github.com/zeusync/volley/internal/core/observability/log"
	"github.com/zeusync/volley/internal/core/physics"
)

// World owns every piece of simulation state of one match. It is not safe
// for concurrent use: callers confine it to a single goroutine.
type World struct {
	cfg    Config
	logger log.Log

	store    *physics.Store
	clock    *clock.Clock
	policy   physics.Policy
	resolver physics.Resolver
	court    *court
	referee  *referee

	state    State
	score    Score
	tick     uint64
	scoredAt uint64
	matchID  uuid.UUID

	// serveDir is the direction of the last serve, used when the ball stalls.
	serveDir mgl64.Vec3
	pending  map[physics.BodyID]mgl64.Vec3
	previous map[physics.BodyID]mgl64.Vec3
	events   *events.Queue[Event]
}

// New builds the court described by cfg and serves the first ball toward
// Player2.
func New(cfg Config, logger log.Log) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}

	clk, err := clock.New(cfg.FixedStep(),
		clock.WithTimeScale(cfg.TimeScale),
		clock.WithMaxSteps(cfg.MaxCatchUpSteps),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	store := physics.NewStore()
	c, err := buildCourt(store, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	w := &World{
		cfg:      cfg,
		logger:   logger.With(log.String("component", "world")),
		store:    store,
		clock:    clk,
		policy:   physics.Policy{PaddleWallContacts: cfg.PaddleWallContacts},
		resolver: physics.Resolver{PositionCorrection: cfg.PositionCorrection},
		court:    c,
		referee:  newReferee(cfg, c.goalX),
		pending:  make(map[physics.BodyID]mgl64.Vec3),
		previous: make(map[physics.BodyID]mgl64.Vec3),
		events:   events.NewQueue[Event](),
	}
	w.restart()
	return w, nil
}

// Update feeds a frame delta in seconds to the clock and runs the steps that
// became due. It returns the number of steps run.
func (w *World) Update(delta float64) int {
	steps := w.Advance(delta)
	for range steps {
		w.Step()
	}
	return steps
}

// Advance feeds a frame delta to the clock without stepping and returns how
// many steps are due. Callers that need to act between steps use it together
// with Step.
func (w *World) Advance(delta float64) int {
	return w.clock.Advance(delta)
}

// Step runs exactly one fixed step regardless of the clock: pending input,
// integration, collisions, constraints and the referee, in that order.
func (w *World) Step() {
	w.tick++
	dt := w.clock.Fixed()

	w.applyInput()
	w.store.Iter().Each(func(b *physics.Body) {
		w.previous[b.ID] = b.Position
	})

	physics.Integrate(w.store, dt, w.frozen)

	if w.state.Phase != PhaseGameOver {
		impacts := w.resolver.Resolve(w.store, physics.Detect(w.store, w.policy))
		for _, impact := range impacts {
			w.events.Push(CollisionEvent{
				Step:   w.tick,
				A:      impact.A,
				B:      impact.B,
				Speed:  impact.Speed,
				Normal: impact.Normal,
			})
		}
	}

	clampPaddles(w.store, w.court)
	ball := w.ball()
	normalizeBall(ball, w.cfg.Ball, w.serveDir)

	w.referee.step(w, ball)
}

func (w *World) frozen(b *physics.Body) bool {
	switch w.state.Phase {
	case PhaseGameOver:
		return true
	case PhaseScored:
		return b.Kind == physics.KindBall
	case PhasePlaying:
		return false
	default:
		return false
	}
}

func (w *World) applyInput() {
	if w.state.Phase == PhaseGameOver || len(w.pending) == 0 {
		return
	}
	for id, v := range w.pending {
		if b, err := w.store.GetMut(id); err == nil {
			b.Velocity = v
		}
		delete(w.pending, id)
	}
}

// step is the referee's part of a world step.
func (r *referee) step(w *World, ball *physics.Body) {
	switch w.state.Phase {
	case PhasePlaying:
		side := r.scorer(ball)
		if side == NoSide {
			return
		}
		w.score.add(side)
		w.scoredAt = w.tick
		w.events.Push(ScoreEvent{Step: w.tick, Side: side, Score: w.score})
		w.transition(Scored(side))

	case PhaseScored:
		if !r.respawnDue(w.scoredAt, w.tick) {
			return
		}
		if winner := r.winner(w.score); winner != NoSide {
			w.transition(GameOver(winner))
			return
		}
		w.serveBall(w.state.Side.Opponent())
		w.transition(Playing())

	case PhaseGameOver:
	}
}

func (w *World) transition(next State) {
	prev := w.state
	w.state = next
	w.events.Push(StateChangeEvent{Step: w.tick, Previous: prev, Current: next})
	w.logger.Info("Game state changed",
		log.String("from", prev.String()),
		log.String("to", next.String()),
		log.Uint64("tick", w.tick),
		log.Int("player1", w.score.Player1),
		log.Int("player2", w.score.Player2),
	)
}

// serveBall puts the ball back in the center and launches it toward receiver.
func (w *World) serveBall(receiver Side) {
	ball := w.ball()
	ball.Position = w.court.home[ball.ID]
	ball.Velocity = w.referee.serve(receiver)
	w.serveDir = ball.Velocity.Normalize()
	w.previous[ball.ID] = ball.Position
}

// restart puts every body at its home position and starts a new match.
func (w *World) restart() {
	w.store.Iter().Each(func(b *physics.Body) {
		b.Position = w.court.home[b.ID]
		b.Velocity = mgl64.Vec3{}
		w.previous[b.ID] = b.Position
	})
	w.referee.reseed()
	w.score = Score{}
	w.tick = 0
	w.scoredAt = 0
	w.clock.Reset()
	w.matchID = uuid.New()
	w.serveBall(Player2)
}

func (w *World) ball() *physics.Body {
	b, err := w.store.GetMut(w.court.ball)
	if err != nil {
		panic(fmt.Sprintf("world lost its ball: %v", err))
	}
	return b
}

// SetPaddleVelocity queues a velocity for a paddle, applied at the start of
// the next step. While the match is over the input is kept until ResetGame.
func (w *World) SetPaddleVelocity(id physics.BodyID, v mgl64.Vec3) error {
	b, err := w.store.Get(id)
	if err != nil {
		return err
	}
	if b.Kind != physics.KindPaddle {
		return fmt.Errorf("%w: body %d is a %s, not a paddle", ErrInvalidState, id, b.Kind)
	}
	if !physics.IsFinite(v) {
		return fmt.Errorf("%w: non-finite paddle velocity", physics.ErrInvalidSpec)
	}

	w.pending[id] = v
	if w.state.Phase == PhaseGameOver {
		w.logger.Debug("Paddle input deferred until reset",
			log.Uint64("paddle", uint64(id)),
			log.Vec3("velocity", v),
		)
	}
	return nil
}

// ResetGame clears the score, puts all bodies back and resumes play. It may
// be called in any state.
func (w *World) ResetGame() {
	prev := w.state
	w.restart()
	w.state = Playing()
	if prev != w.state {
		w.events.Push(StateChangeEvent{Step: w.tick, Previous: prev, Current: w.state})
	}
	w.logger.Info("Game reset", log.String("match_id", w.matchID.String()))
}

// DrainEvents returns and removes every queued event in the order produced.
func (w *World) DrainEvents() []Event {
	return w.events.Drain()
}

// PaddleID resolves a paddle name such as "paddle1".
func (w *World) PaddleID(name string) (physics.BodyID, error) {
	id, err := w.store.Lookup(name)
	if err != nil {
		return 0, err
	}
	b, _ := w.store.Get(id)
	if b.Kind != physics.KindPaddle {
		return 0, fmt.Errorf("%w: %q is not a paddle", ErrInvalidState, name)
	}
	return id, nil
}

// PaddleOf returns the paddle controlled by side.
func (w *World) PaddleOf(side Side) (physics.BodyID, error) {
	id := w.court.paddleOf(side)
	if id == 0 {
		return 0, fmt.Errorf("%w: side %s has no paddle", physics.ErrNotFound, side)
	}
	return id, nil
}

func (w *World) BallID() physics.BodyID {
	return w.court.ball
}

// Body returns a copy of a body.
func (w *World) Body(id physics.BodyID) (physics.Body, error) {
	return w.store.Get(id)
}

// PaddleBounds returns the movable volume of a paddle center.
func (w *World) PaddleBounds(id physics.BodyID) (lo, hi mgl64.Vec3, err error) {
	bounds, ok := w.court.bounds[id]
	if !ok {
		return lo, hi, fmt.Errorf("%w: paddle %d", physics.ErrNotFound, id)
	}
	return bounds[0], bounds[1], nil
}

func (w *World) State() State { return w.state }
func (w *World) Score() Score { return w.score }
func (w *World) Tick() uint64 { return w.tick }
func (w *World) MatchID() uuid.UUID { return w.matchID }
func (w *World) Config() Config { return w.cfg }

func (w *World) SetPaused(paused bool) {
	w.clock.SetPaused(paused)
}

func (w *World) Paused() bool {
	return w.clock.Paused()
}

func (w *World) SetTimeScale(scale float64) error {
	if !w.clock.SetTimeScale(scale) {
		return fmt.Errorf("%w: time scale %v", ErrInvalidConfig, scale)
	}
	return nil
}

// DroppedSteps reports how many catch-up steps the clock has discarded.
func (w *World) DroppedSteps() uint64 {
	return w.clock.Dropped()
}
