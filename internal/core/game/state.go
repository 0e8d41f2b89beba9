package game

import (
	"errors"
	"fmt"
)

var ErrInvalidState = errors.New("invalid state")

// Side identifies a player. Player1 defends the -X goal.
type Side uint8

const (
	NoSide Side = iota
	Player1
	Player2
)

func (s Side) String() string {
	switch s {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	case NoSide:
		return "none"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Opponent returns the other player.
func (s Side) Opponent() Side {
	switch s {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoSide
	}
}

type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseScored
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseScored:
		return "scored"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// State is the match state. Side is the scorer while Scored and the winner
// once GameOver; it is NoSide while Playing.
type State struct {
	Phase Phase
	Side  Side
}

func Playing() State { return State{Phase: PhasePlaying} }
func Scored(side Side) State { return State{Phase: PhaseScored, Side: side} }
func GameOver(win Side) State { return State{Phase: PhaseGameOver, Side: win} }

func (s State) String() string {
	switch s.Phase {
	case PhasePlaying:
		return s.Phase.String()
	case PhaseScored, PhaseGameOver:
		return fmt.Sprintf("%s(%s)", s.Phase, s.Side)
	default:
		return s.Phase.String()
	}
}

// Score holds the points of both players.
type Score struct {
	Player1 int `json:"player1" msgpack:"player1"`
	Player2 int `json:"player2" msgpack:"player2"`
}

// Of returns the points of one side.
func (s Score) Of(side Side) int {
	switch side {
	case Player1:
		return s.Player1
	case Player2:
		return s.Player2
	default:
		return 0
	}
}

func (s *Score) add(side Side) {
	switch side {
	case Player1:
		s.Player1++
	case Player2:
		s.Player2++
	case NoSide:
	}
}
