package physics

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/zeusync/volley/pkg/sequence"
)

// Store owns every body of a world and keeps them in insertion order.
// It is not safe for concurrent use.
type Store struct {
	bodies *orderedmap.OrderedMap[BodyID, *Body]
	names  map[string]BodyID
	nextID BodyID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		bodies: orderedmap.NewOrderedMap[BodyID, *Body](),
		names:  make(map[string]BodyID),
		nextID: 1,
	}
}

// Add validates spec and stores a new body built from it.
func (s *Store) Add(spec BodySpec) (BodyID, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if spec.Name != "" {
		if _, taken := s.names[spec.Name]; taken {
			return 0, fmt.Errorf("%w: name %q already in use", ErrInvalidSpec, spec.Name)
		}
	}

	id := s.nextID
	s.nextID++

	body := &Body{
		ID:          id,
		Name:        spec.Name,
		Kind:        spec.Kind,
		Position:    spec.Position,
		Velocity:    spec.Velocity,
		HalfExtents: spec.HalfExtents,
		Mass:        spec.Mass,
		Restitution: spec.Restitution,
	}
	s.bodies.Set(id, body)
	if spec.Name != "" {
		s.names[spec.Name] = id
	}
	return id, nil
}

// Get returns a copy of the body.
func (s *Store) Get(id BodyID) (Body, error) {
	b, err := s.GetMut(id)
	if err != nil {
		return Body{}, err
	}
	return *b, nil
}

// GetMut returns the stored body. The pointer must not be retained beyond the
// operation that requested it.
func (s *Store) GetMut(id BodyID) (*Body, error) {
	b, ok := s.bodies.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return b, nil
}

// Lookup resolves a body name to its id.
func (s *Store) Lookup(name string) (BodyID, error) {
	id, ok := s.names[name]
	if !ok {
		return 0, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return id, nil
}

// Len returns the number of bodies.
func (s *Store) Len() int {
	return s.bodies.Len()
}

// Iter returns a lazy sequence over all bodies in insertion order. Each
// traversal starts from the first body again.
func (s *Store) Iter() *sequence.Iterator[*Body] {
	return sequence.FromSeq(func(yield func(*Body) bool) {
		for el := s.bodies.Front(); el != nil; el = el.Next() {
			if !yield(el.Value) {
				return
			}
		}
	})
}

// OfKind returns a lazy sequence over the bodies of one kind.
func (s *Store) OfKind(kind Kind) *sequence.Iterator[*Body] {
	return s.Iter().Filter(func(b *Body) bool { return b.Kind == kind })
}
