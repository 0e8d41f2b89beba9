package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis indexes one component of an mgl64.Vec3.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Unit returns the unit vector along the axis, negated when sign < 0.
func (a Axis) Unit(sign float64) mgl64.Vec3 {
	var v mgl64.Vec3
	if sign < 0 {
		v[a] = -1
	} else {
		v[a] = 1
	}
	return v
}

// ClampVec clamps v componentwise into [lo, hi].
func ClampVec(v, lo, hi mgl64.Vec3) mgl64.Vec3 {
	for i := range v {
		v[i] = math.Min(math.Max(v[i], lo[i]), hi[i])
	}
	return v
}

// ClampSpeed rescales v so that its length lies within [lo, hi] while keeping
// its direction. A zero vector has no direction, so fallback supplies one.
func ClampSpeed(v mgl64.Vec3, lo, hi float64, fallback mgl64.Vec3) mgl64.Vec3 {
	speed := v.Len()
	switch {
	case speed == 0:
		if lo <= 0 {
			return v
		}
		dir := fallback
		if dir.Len() == 0 {
			dir = AxisX.Unit(1)
		}
		return dir.Normalize().Mul(lo)
	case speed < lo:
		return v.Mul(lo / speed)
	case hi > 0 && speed > hi:
		return v.Mul(hi / speed)
	default:
		return v
	}
}

// IsFinite reports whether every component is neither NaN nor infinite.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
