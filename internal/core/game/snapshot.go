package game

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/zeusync/volley/internal/core/physics"
	"github.com/zeusync/volley/pkg/sequence"
)

// BodyState is the settled transform of one body.
type BodyState struct {
	ID          physics.BodyID
	Name        string
	Kind        physics.Kind
	Position    mgl64.Vec3
	Previous    mgl64.Vec3
	Velocity    mgl64.Vec3
	HalfExtents mgl64.Vec3
}

// Interpolated blends the previous and current position by alpha.
func (b BodyState) Interpolated(alpha float64) mgl64.Vec3 {
	return b.Previous.Add(b.Position.Sub(b.Previous).Mul(alpha))
}

// Snapshot is a read-only copy of the world taken between steps.
type Snapshot struct {
	MatchID  uuid.UUID
	Tick     uint64
	Alpha    float64
	Paused   bool
	State    State
	Score    Score
	Bodies   []BodyState
	Checksum uint64
}

// Body finds a body of the snapshot by id.
func (s Snapshot) Body(id physics.BodyID) (BodyState, bool) {
	return sequence.From(s.Bodies).Find(func(b BodyState) bool { return b.ID == id })
}

func (w *World) Snapshot() Snapshot {
	bodies := make([]BodyState, 0, w.store.Len())
	w.store.Iter().Each(func(b *physics.Body) {
		bodies = append(bodies, BodyState{
			ID:          b.ID,
			Name:        b.Name,
			Kind:        b.Kind,
			Position:    b.Position,
			Previous:    w.previous[b.ID],
			Velocity:    b.Velocity,
			HalfExtents: b.HalfExtents,
		})
	})

	return Snapshot{
		MatchID:  w.matchID,
		Tick:     w.tick,
		Alpha:    w.clock.Alpha(),
		Paused:   w.clock.Paused(),
		State:    w.state,
		Score:    w.score,
		Bodies:   bodies,
		Checksum: w.Checksum(),
	}
}

// Checksum digests the tick, state, score and every body's position and
// velocity. Two worlds fed the same configuration and inputs report the same
// checksum after the same number of steps. The match id is not included.
func (w *World) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte

	putUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	putVec := func(v mgl64.Vec3) {
		for _, c := range v {
			putUint(math.Float64bits(c))
		}
	}

	putUint(w.tick)
	putUint(uint64(w.state.Phase)<<8 | uint64(w.state.Side))
	putUint(uint64(w.score.Player1))
	putUint(uint64(w.score.Player2))
	for b := range w.store.Iter().Seq() {
		putUint(uint64(b.ID))
		putVec(b.Position)
		putVec(b.Velocity)
	}
	return d.Sum64()
}
