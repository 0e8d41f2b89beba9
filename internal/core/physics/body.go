package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID identifies a body for the lifetime of its store. Ids are assigned
// in insertion order starting at 1, so comparing ids compares insertion order.
type BodyID uint64

// Kind is the closed set of body variants.
type Kind uint8

const (
	KindBall Kind = iota + 1
	KindPaddle
	KindWall
)

func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	case KindWall:
		return "wall"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Dynamic reports whether bodies of this kind move and respond to impulses.
func (k Kind) Dynamic() bool {
	switch k {
	case KindBall, KindPaddle:
		return true
	case KindWall:
		return false
	default:
		return false
	}
}

func (k Kind) valid() bool {
	switch k {
	case KindBall, KindPaddle, KindWall:
		return true
	default:
		return false
	}
}

// Body is a non-rotating box-shaped rigid body.
type Body struct {
	ID          BodyID
	Name        string
	Kind        Kind
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	HalfExtents mgl64.Vec3
	// Mass is ignored for walls, which behave as infinitely heavy.
	Mass        float64
	Restitution float64
}

// Bounds returns the body's box at its current position.
func (b *Body) Bounds() AABB {
	return BoxAt(b.Position, b.HalfExtents)
}

// InverseMass is 0 for walls and 1/Mass otherwise.
func (b *Body) InverseMass() float64 {
	if !b.Kind.Dynamic() {
		return 0
	}
	return 1 / b.Mass
}

// BodySpec describes a body to add to a Store.
type BodySpec struct {
	Name        string
	Kind        Kind
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	HalfExtents mgl64.Vec3
	Mass        float64
	Restitution float64
}

// Validate checks the spec against the body invariants.
func (s BodySpec) Validate() error {
	if !s.Kind.valid() {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidSpec, uint8(s.Kind))
	}
	if s.Kind.Dynamic() && !(s.Mass > 0 && !math.IsInf(s.Mass, 1)) {
		return fmt.Errorf("%w: %s mass must be positive and finite, got %v", ErrInvalidSpec, s.Kind, s.Mass)
	}
	for i, h := range s.HalfExtents {
		if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			return fmt.Errorf("%w: half extent %s is %v", ErrInvalidSpec, Axis(i), h)
		}
	}
	if !(s.Restitution >= 0 && s.Restitution <= 1) {
		return fmt.Errorf("%w: restitution %v outside [0,1]", ErrInvalidSpec, s.Restitution)
	}
	if !IsFinite(s.Position) || !IsFinite(s.Velocity) {
		return fmt.Errorf("%w: non-finite position or velocity", ErrInvalidSpec)
	}
	if s.Kind == KindWall && s.Velocity != (mgl64.Vec3{}) {
		return fmt.Errorf("%w: wall %q has nonzero velocity", ErrInvalidSpec, s.Name)
	}
	return nil
}
