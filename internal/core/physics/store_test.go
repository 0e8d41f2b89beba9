package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ballSpec() BodySpec {
	return BodySpec{
		Name:        "ball",
		Kind:        KindBall,
		HalfExtents: mgl64.Vec3{1, 1, 1},
		Mass:        1,
		Restitution: 1,
	}
}

func TestStoreAddAssignsSequentialIDs(t *testing.T) {
	s := NewStore()

	ball, err := s.Add(ballSpec())
	require.NoError(t, err)
	wall, err := s.Add(BodySpec{Name: "wall", Kind: KindWall, HalfExtents: mgl64.Vec3{30, 1, 20}, Restitution: 1})
	require.NoError(t, err)

	assert.Equal(t, BodyID(1), ball)
	assert.Equal(t, BodyID(2), wall)
	assert.Equal(t, 2, s.Len())

	id, err := s.Lookup("wall")
	require.NoError(t, err)
	assert.Equal(t, wall, id)
}

func TestStoreRejectsInvalidSpecs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BodySpec)
	}{
		{"zero mass ball", func(s *BodySpec) { s.Mass = 0 }},
		{"negative mass paddle", func(s *BodySpec) { s.Kind = KindPaddle; s.Mass = -1 }},
		{"infinite mass", func(s *BodySpec) { s.Mass = math.Inf(1) }},
		{"negative extent", func(s *BodySpec) { s.HalfExtents = mgl64.Vec3{1, -0.5, 1} }},
		{"restitution above one", func(s *BodySpec) { s.Restitution = 1.5 }},
		{"moving wall", func(s *BodySpec) { s.Kind = KindWall; s.Velocity = mgl64.Vec3{1, 0, 0} }},
		{"unknown kind", func(s *BodySpec) { s.Kind = Kind(42) }},
		{"nan position", func(s *BodySpec) { s.Position = mgl64.Vec3{math.NaN(), 0, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ballSpec()
			tt.mutate(&spec)
			_, err := NewStore().Add(spec)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestStoreWallMassIsIgnored(t *testing.T) {
	s := NewStore()
	id, err := s.Add(BodySpec{Kind: KindWall, HalfExtents: mgl64.Vec3{1, 1, 1}, Mass: 0})
	require.NoError(t, err)

	wall, err := s.GetMut(id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, wall.InverseMass())
}

func TestStoreRejectsDuplicateNames(t *testing.T) {
	s := NewStore()
	_, err := s.Add(ballSpec())
	require.NoError(t, err)
	_, err = s.Add(ballSpec())
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Equal(t, 1, s.Len())
}

func TestStoreNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Get(7)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetMut(7)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Lookup("paddle9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore()
	id, err := s.Add(ballSpec())
	require.NoError(t, err)

	b, err := s.Get(id)
	require.NoError(t, err)
	b.Position = mgl64.Vec3{9, 9, 9}

	stored, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{}, stored.Position)
}

func TestStoreIterInsertionOrderAndRestart(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"c", "a", "b"} {
		_, err := s.Add(BodySpec{Name: name, Kind: KindWall, HalfExtents: mgl64.Vec3{1, 1, 1}})
		require.NoError(t, err)
	}

	names := func() []string {
		var out []string
		for b := range s.Iter().Seq() {
			out = append(out, b.Name)
		}
		return out
	}
	assert.Equal(t, []string{"c", "a", "b"}, names())
	assert.Equal(t, []string{"c", "a", "b"}, names(), "iteration restarts from the first body")

	_, err := s.Add(ballSpec())
	require.NoError(t, err)
	assert.Len(t, s.OfKind(KindBall).Collect(), 1)
	assert.Len(t, s.OfKind(KindWall).Collect(), 3)
}
