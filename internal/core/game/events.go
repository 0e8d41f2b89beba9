package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/volley/internal/core/physics"
)

const (
	CollisionEventType   = "collision"
	ScoreEventType       = "score"
	StateChangeEventType = "state_change"
)

// Event is a record of something that happened during a step. Events are
// values and are never modified after they are queued.
type Event interface {
	Type() string
	// Tick is the step the event was produced in.
	Tick() uint64
}

type CollisionEvent struct {
	Step   uint64
	A, B   physics.BodyID
	Speed  float64
	Normal mgl64.Vec3
}

func (e CollisionEvent) Type() string { return CollisionEventType }
func (e CollisionEvent) Tick() uint64 { return e.Step }

type ScoreEvent struct {
	Step  uint64
	Side  Side
	Score Score
}

func (e ScoreEvent) Type() string { return ScoreEventType }
func (e ScoreEvent) Tick() uint64 { return e.Step }

type StateChangeEvent struct {
	Step     uint64
	Previous State
	Current  State
}

func (e StateChangeEvent) Type() string { return StateChangeEventType }
func (e StateChangeEvent) Tick() uint64 { return e.Step }
