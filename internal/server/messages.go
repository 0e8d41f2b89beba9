package server

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/volley/internal/core/game"
)

// Client message types.
const (
	MessagePaddle    = "paddle"
	MessageReset     = "reset"
	MessagePause     = "pause"
	MessageTimeScale = "time_scale"
)

// Server frame types.
const (
	FrameState = "state"
	FrameEvent = "event"
	FrameError = "error"
)

// ClientMessage is any message a client sends.
type ClientMessage struct {
	Type     string    `json:"type" msgpack:"type"`
	Paddle   string    `json:"paddle,omitempty" msgpack:"paddle,omitempty"`
	Velocity []float64 `json:"velocity,omitempty" msgpack:"velocity,omitempty"`
	Paused   *bool     `json:"paused,omitempty" msgpack:"paused,omitempty"`
	Scale    *float64  `json:"scale,omitempty" msgpack:"scale,omitempty"`
}

// Frame is any message the server sends. Exactly one of State, Event and
// Error is set, matching Type.
type Frame struct {
	Type  string      `json:"type" msgpack:"type"`
	State *StateFrame `json:"state,omitempty" msgpack:"state,omitempty"`
	Event *EventFrame `json:"event,omitempty" msgpack:"event,omitempty"`
	Error string      `json:"error,omitempty" msgpack:"error,omitempty"`
}

type StateFrame struct {
	MatchID  string      `json:"match_id" msgpack:"match_id"`
	Tick     uint64      `json:"tick" msgpack:"tick"`
	Alpha    float64     `json:"alpha" msgpack:"alpha"`
	Paused   bool        `json:"paused" msgpack:"paused"`
	Phase    string      `json:"phase" msgpack:"phase"`
	Side     string      `json:"side,omitempty" msgpack:"side,omitempty"`
	Score    game.Score  `json:"score" msgpack:"score"`
	Checksum uint64      `json:"checksum" msgpack:"checksum"`
	Bodies   []BodyFrame `json:"bodies" msgpack:"bodies"`
}

type BodyFrame struct {
	ID          uint64     `json:"id" msgpack:"id"`
	Name        string     `json:"name" msgpack:"name"`
	Kind        string     `json:"kind" msgpack:"kind"`
	Position    [3]float64 `json:"position" msgpack:"position"`
	Previous    [3]float64 `json:"previous" msgpack:"previous"`
	Velocity    [3]float64 `json:"velocity" msgpack:"velocity"`
	HalfExtents [3]float64 `json:"half_extents" msgpack:"half_extents"`
}

type EventFrame struct {
	Kind string `json:"kind" msgpack:"kind"`
	Tick uint64 `json:"tick" msgpack:"tick"`

	A      uint64     `json:"a,omitempty" msgpack:"a,omitempty"`
	B      uint64     `json:"b,omitempty" msgpack:"b,omitempty"`
	Speed  float64    `json:"speed,omitempty" msgpack:"speed,omitempty"`
	Normal [3]float64 `json:"normal,omitempty" msgpack:"normal,omitempty"`

	Side  string      `json:"side,omitempty" msgpack:"side,omitempty"`
	Score *game.Score `json:"score,omitempty" msgpack:"score,omitempty"`

	From string `json:"from,omitempty" msgpack:"from,omitempty"`
	To   string `json:"to,omitempty" msgpack:"to,omitempty"`
}

func stateFrame(s game.Snapshot) Frame {
	bodies := make([]BodyFrame, len(s.Bodies))
	for i, b := range s.Bodies {
		bodies[i] = BodyFrame{
			ID:          uint64(b.ID),
			Name:        b.Name,
			Kind:        b.Kind.String(),
			Position:    b.Position,
			Previous:    b.Previous,
			Velocity:    b.Velocity,
			HalfExtents: b.HalfExtents,
		}
	}

	sf := &StateFrame{
		MatchID:  s.MatchID.String(),
		Tick:     s.Tick,
		Alpha:    s.Alpha,
		Paused:   s.Paused,
		Phase:    s.State.Phase.String(),
		Score:    s.Score,
		Checksum: s.Checksum,
		Bodies:   bodies,
	}
	if s.State.Side != game.NoSide {
		sf.Side = s.State.Side.String()
	}
	return Frame{Type: FrameState, State: sf}
}

// eventFrame converts a simulation event. The second result is false for
// event types the wire format does not know.
func eventFrame(e game.Event) (Frame, bool) {
	ef := &EventFrame{Kind: e.Type(), Tick: e.Tick()}
	switch ev := e.(type) {
	case game.CollisionEvent:
		ef.A = uint64(ev.A)
		ef.B = uint64(ev.B)
		ef.Speed = ev.Speed
		ef.Normal = ev.Normal
	case game.ScoreEvent:
		score := ev.Score
		ef.Side = ev.Side.String()
		ef.Score = &score
	case game.StateChangeEvent:
		ef.From = ev.Previous.String()
		ef.To = ev.Current.String()
	default:
		return Frame{}, false
	}
	return Frame{Type: FrameEvent, Event: ef}, true
}

func errorFrame(err error) Frame {
	return Frame{Type: FrameError, Error: err.Error()}
}

func (m ClientMessage) velocity() (mgl64.Vec3, bool) {
	if len(m.Velocity) != 3 {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{m.Velocity[0], m.Velocity[1], m.Velocity[2]}, true
}
