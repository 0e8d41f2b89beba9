package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAdd(t *testing.T, s *Store, spec BodySpec) BodyID {
	t.Helper()
	id, err := s.Add(spec)
	require.NoError(t, err)
	return id
}

func wallSpec(name string, pos, half mgl64.Vec3) BodySpec {
	return BodySpec{Name: name, Kind: KindWall, Position: pos, HalfExtents: half, Restitution: 1}
}

func TestDetectNeverPairsWalls(t *testing.T) {
	s := NewStore()
	// Same geometry as the floor and a side wall meeting at a corner, plus a
	// wall fully inside another.
	mustAdd(t, s, wallSpec("floor", mgl64.Vec3{0, -20, 0}, mgl64.Vec3{30, 1, 20}))
	mustAdd(t, s, wallSpec("side", mgl64.Vec3{0, 0, -20}, mgl64.Vec3{30, 20, 1}))
	mustAdd(t, s, wallSpec("inner", mgl64.Vec3{0, -20, 0}, mgl64.Vec3{1, 1, 1}))

	for _, policy := range []Policy{{}, {PaddleWallContacts: true}} {
		assert.Empty(t, Detect(s, policy))
	}
}

func TestDetectOrderAndDepth(t *testing.T) {
	s := NewStore()
	wall := mustAdd(t, s, wallSpec("wall", mgl64.Vec3{0, 20, 0}, mgl64.Vec3{30, 1, 20}))
	paddle := mustAdd(t, s, BodySpec{
		Name: "paddle", Kind: KindPaddle, Position: mgl64.Vec3{0, 17.5, 0},
		HalfExtents: mgl64.Vec3{1, 3, 3}, Mass: 1000, Restitution: 1,
	})
	spec := ballSpec()
	spec.Position = mgl64.Vec3{1.5, 18.5, 0}
	ball := mustAdd(t, s, spec)

	contacts := Detect(s, Policy{})
	require.Len(t, contacts, 2)
	assert.Equal(t, wall, contacts[0].A)
	assert.Equal(t, ball, contacts[0].B)
	assert.Equal(t, paddle, contacts[1].A)
	assert.Equal(t, ball, contacts[1].B)
	assert.InDelta(t, 0.5, contacts[1].Depth.X(), 1e-12)

	withPaddleWall := Detect(s, Policy{PaddleWallContacts: true})
	require.Len(t, withPaddleWall, 3)
	assert.Equal(t, Contact{A: wall, B: paddle, Depth: mgl64.Vec3{2, 1.5, 6}}, withPaddleWall[0])
}

func TestDetectSkipsSeparatedPairs(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, ballSpec())
	mustAdd(t, s, BodySpec{
		Name: "paddle", Kind: KindPaddle, Position: mgl64.Vec3{0, 0, 2.01},
		HalfExtents: mgl64.Vec3{1, 1, 1}, Mass: 1, Restitution: 1,
	})
	assert.Empty(t, Detect(s, Policy{}))
}

func TestPolicyAllows(t *testing.T) {
	p := Policy{}
	assert.False(t, p.Allows(KindWall, KindWall))
	assert.False(t, p.Allows(KindPaddle, KindWall))
	assert.False(t, p.Allows(KindWall, KindPaddle))
	assert.True(t, p.Allows(KindBall, KindWall))
	assert.True(t, p.Allows(KindPaddle, KindBall))
	assert.True(t, p.Allows(KindPaddle, KindPaddle))
	assert.True(t, Policy{PaddleWallContacts: true}.Allows(KindWall, KindPaddle))
}
