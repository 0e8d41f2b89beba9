package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxAt builds the box centered at center with the given half extents.
func BoxAt(center, halfExtents mgl64.Vec3) AABB {
	return AABB{
		Min: center.Sub(halfExtents),
		Max: center.Add(halfExtents),
	}
}

// Overlaps reports whether the boxes overlap on all three axes. Touching faces
// count as overlap. The test exits on the first separating axis.
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if !(a.Max[i] >= b.Min[i] && a.Min[i] <= b.Max[i]) {
			return false
		}
	}
	return true
}

// Penetration returns the per-axis overlap depth, clamped to zero for
// separated axes.
func (a AABB) Penetration(b AABB) mgl64.Vec3 {
	var depth mgl64.Vec3
	for i := 0; i < 3; i++ {
		depth[i] = math.Max(0, math.Min(a.Max[i], b.Max[i])-math.Max(a.Min[i], b.Min[i]))
	}
	return depth
}
