// Package transform holds the spatial component shared by cameras, meshes
// and physics bodies.
package transform

import "github.com/go-gl/mathgl/mgl32"

// Axes in world space. -Z is forward.
var (
	Up      = mgl32.Vec3{0, 1, 0}
	Forward = mgl32.Vec3{0, 0, -1}
	Right   = mgl32.Vec3{1, 0, 0}
)

// Transform places an entity: scale, then rotate, then translate. The zero
// value has a zero rotation and scale; build values with the constructors.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// FromXYZ returns an identity transform moved to (x, y, z).
func FromXYZ(x, y, z float32) Transform {
	return FromTranslation(mgl32.Vec3{x, y, z})
}

// FromTranslation returns an identity transform moved to v.
func FromTranslation(v mgl32.Vec3) Transform {
	t := Identity()
	t.Translation = v
	return t
}

// LookingAt returns t rotated so that its forward axis points at target and
// its up axis lies in the plane of forward and up.
func (t Transform) LookingAt(target, up mgl32.Vec3) Transform {
	t.LookAt(target, up)
	return t
}

// LookAt rotates t in place; see LookingAt. It is a no-op when target equals
// the translation.
func (t *Transform) LookAt(target, up mgl32.Vec3) {
	dir := target.Sub(t.Translation)
	if dir.Len() == 0 {
		return
	}
	back := dir.Normalize().Mul(-1)
	right := up.Cross(back)
	if right.Len() < 1e-6 {
		// up is parallel to the view direction; any perpendicular will do.
		right = orthogonal(back)
	}
	right = right.Normalize()
	upn := back.Cross(right)
	t.Rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, upn, back).Mat4()).Normalize()
}

func orthogonal(v mgl32.Vec3) mgl32.Vec3 {
	if abs(v.X()) < 0.9 {
		return Right.Cross(v)
	}
	return Up.Cross(v)
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Forward returns the local -Z axis in world space.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(Forward)
}

// Right returns the local +X axis in world space.
func (t Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(Right)
}

// Up returns the local +Y axis in world space.
func (t Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(Up)
}

// Matrix returns the local-to-world matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Point maps a local point to world space.
func (t Transform) Point(p mgl32.Vec3) mgl32.Vec3 {
	s := mgl32.Vec3{p.X() * t.Scale.X(), p.Y() * t.Scale.Y(), p.Z() * t.Scale.Z()}
	return t.Rotation.Rotate(s).Add(t.Translation)
}

// InversePoint maps a world point into t's local frame, ignoring scale.
func (t Transform) InversePoint(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Conjugate().Rotate(p.Sub(t.Translation))
}
