package physics

import "github.com/go-gl/mathgl/mgl64"

// Policy filters candidate pairs during the broad phase. Wall-wall pairs are
// always excluded regardless of policy.
type Policy struct {
	// PaddleWallContacts enables paddle-wall collision pairs. Paddles are
	// normally kept off the walls by the constraint solver instead.
	PaddleWallContacts bool
}

// Contact is an overlapping pair found by Detect. A was inserted before B.
type Contact struct {
	A, B  BodyID
	Depth mgl64.Vec3
}

// Allows reports whether bodies of kinds a and b form a candidate pair.
func (p Policy) Allows(a, b Kind) bool {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == KindWall && b == KindWall:
		return false
	case a == KindPaddle && b == KindWall:
		return p.PaddleWallContacts
	default:
		return a.valid() && b.valid()
	}
}

// Detect enumerates all pairs (i, j), i < j in insertion order, that pass the
// policy and whose boxes overlap. The result order is deterministic.
func Detect(s *Store, policy Policy) []Contact {
	bodies := s.Iter().Collect()
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		boxA := a.Bounds()
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if !policy.Allows(a.Kind, b.Kind) {
				continue
			}
			boxB := b.Bounds()
			if !boxA.Overlaps(boxB) {
				continue
			}
			contacts = append(contacts, Contact{
				A:     a.ID,
				B:     b.ID,
				Depth: boxA.Penetration(boxB),
			})
		}
	}
	return contacts
}
