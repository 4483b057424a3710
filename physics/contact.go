package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// contact returns the normal from a to b and the penetration depth.
// Cuboid pairs are not tested.
func contact(a, b *body) (mgl32.Vec3, float32, bool) {
	switch {
	case a.collider.Kind == ShapeBall && b.collider.Kind == ShapeBall:
		return ballBall(a.transform.Translation, a.collider.Radius,
			b.transform.Translation, b.collider.Radius)
	case a.collider.Kind == ShapeBall && b.collider.Kind == ShapeCuboid:
		n, d, ok := ballCuboid(a.transform.Translation, a.collider.Radius, b)
		return n.Mul(-1), d, ok
	case a.collider.Kind == ShapeCuboid && b.collider.Kind == ShapeBall:
		return ballCuboid(b.transform.Translation, b.collider.Radius, a)
	}
	return mgl32.Vec3{}, 0, false
}

func ballBall(ca mgl32.Vec3, ra float32, cb mgl32.Vec3, rb float32) (mgl32.Vec3, float32, bool) {
	d := cb.Sub(ca)
	dist := d.Len()
	if dist >= ra+rb {
		return mgl32.Vec3{}, 0, false
	}
	if dist < 1e-6 {
		return mgl32.Vec3{0, 1, 0}, ra + rb, true
	}
	return d.Mul(1 / dist), ra + rb - dist, true
}

// ballCuboid returns the normal pointing from the cuboid towards the ball.
func ballCuboid(center mgl32.Vec3, radius float32, box *body) (mgl32.Vec3, float32, bool) {
	local := box.transform.InversePoint(center)
	half := box.collider.HalfExtents
	var closest mgl32.Vec3
	for i := range 3 {
		closest[i] = mgl32.Clamp(local[i], -half[i], half[i])
	}
	d := local.Sub(closest)
	dist := d.Len()
	if dist >= radius {
		return mgl32.Vec3{}, 0, false
	}
	var n mgl32.Vec3
	var depth float32
	if dist > 1e-6 {
		n = d.Mul(1 / dist)
		depth = radius - dist
	} else {
		// center inside: leave through the nearest face
		axis, gap := 0, half[0]-abs(local[0])
		for i := 1; i < 3; i++ {
			if g := half[i] - abs(local[i]); g < gap {
				axis, gap = i, g
			}
		}
		n[axis] = 1
		if local[axis] < 0 {
			n[axis] = -1
		}
		depth = radius + gap
	}
	return box.transform.Rotation.Rotate(n), depth, true
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
