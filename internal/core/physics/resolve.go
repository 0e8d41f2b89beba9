package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultPositionCorrection is the share of the penetration removed after an
// impulse. Removing all of it makes resting contacts jitter.
const DefaultPositionCorrection = 0.8

// Impact describes an impulse applied to a contact pair.
type Impact struct {
	A, B BodyID
	// Normal points from the lower-id body toward the higher-id body.
	Normal mgl64.Vec3
	// Speed is the approach speed along Normal before the impulse.
	Speed   float64
	Impulse float64
}

// Resolver applies impulse-based velocity corrections to contacts.
type Resolver struct {
	// PositionCorrection in [0,1] scales how far overlapping bodies are pushed
	// apart after the impulse. Zero disables positional correction.
	PositionCorrection float64
}

// Resolve handles contacts sequentially in the given order and returns one
// Impact per pair that received an impulse. Separating pairs are skipped.
func (r Resolver) Resolve(s *Store, contacts []Contact) []Impact {
	var impacts []Impact
	for _, c := range contacts {
		a, errA := s.GetMut(c.A)
		b, errB := s.GetMut(c.B)
		if errA != nil || errB != nil {
			continue
		}
		if impact, ok := r.resolvePair(a, b, c.Depth); ok {
			impacts = append(impacts, impact)
		}
	}
	return impacts
}

func (r Resolver) resolvePair(a, b *Body, depth mgl64.Vec3) (Impact, bool) {
	lo, hi := a, b
	if hi.ID < lo.ID {
		lo, hi = hi, lo
	}

	axis := minAxis(depth)
	sign := 1.0
	if hi.Position[axis] < lo.Position[axis] {
		sign = -1
	}
	normal := axis.Unit(sign)

	relV := hi.Velocity.Sub(lo.Velocity).Dot(normal)
	if relV >= 0 {
		return Impact{}, false
	}

	invLo, invHi := lo.InverseMass(), hi.InverseMass()
	invSum := invLo + invHi
	if invSum == 0 {
		return Impact{}, false
	}

	e := math.Min(lo.Restitution, hi.Restitution)
	j := -(1 + e) * relV / invSum

	if invLo > 0 {
		lo.Velocity = lo.Velocity.Sub(normal.Mul(j * invLo))
	}
	if invHi > 0 {
		hi.Velocity = hi.Velocity.Add(normal.Mul(j * invHi))
	}

	if r.PositionCorrection > 0 {
		penetration := lo.Bounds().Penetration(hi.Bounds())[axis]
		push := penetration * r.PositionCorrection / invSum
		if invLo > 0 {
			lo.Position = lo.Position.Sub(normal.Mul(push * invLo))
		}
		if invHi > 0 {
			hi.Position = hi.Position.Add(normal.Mul(push * invHi))
		}
	}

	return Impact{
		A:       lo.ID,
		B:       hi.ID,
		Normal:  normal,
		Speed:   -relV,
		Impulse: j,
	}, true
}

// minAxis picks the axis of least penetration; ties go to the earlier axis.
// A zero depth is a face contact and wins, so touching boxes separate across
// the shared face.
func minAxis(depth mgl64.Vec3) Axis {
	axis := AxisX
	if depth[AxisY] < depth[axis] {
		axis = AxisY
	}
	if depth[AxisZ] < depth[axis] {
		axis = AxisZ
	}
	return axis
}
