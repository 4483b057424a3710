// Package physics simulates rigid bodies with ball and cuboid colliders under
// gravity. Entities with a Collider but no RigidBody are fixed in place.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/ecs"
)

// RigidBody selects how the simulation moves an entity.
type RigidBody int

// Body kinds.
const (
	// RigidBodyDynamic is moved by gravity and contacts.
	RigidBodyDynamic RigidBody = iota
	// RigidBodyFixed never moves.
	RigidBodyFixed
	// RigidBodyKinematicPositionBased is moved only by its Transform; contacts
	// treat it as fixed.
	RigidBodyKinematicPositionBased
)

func (b RigidBody) String() string {
	switch b {
	case RigidBodyDynamic:
		return "Dynamic"
	case RigidBodyFixed:
		return "Fixed"
	case RigidBodyKinematicPositionBased:
		return "KinematicPositionBased"
	}
	return "RigidBody(?)"
}

// ShapeKind is the collider geometry.
type ShapeKind int

// Shapes.
const (
	ShapeBall ShapeKind = iota
	ShapeCuboid
)

// Collider is the collision shape, centered on the entity's translation and
// rotated with it. Scale is ignored.
type Collider struct {
	Kind        ShapeKind
	Radius      float32
	HalfExtents mgl32.Vec3
}

// Ball returns a sphere collider.
func Ball(radius float32) Collider {
	return Collider{Kind: ShapeBall, Radius: radius}
}

// Cuboid returns a box collider from its half-extents.
func Cuboid(hx, hy, hz float32) Collider {
	return Collider{Kind: ShapeCuboid, HalfExtents: mgl32.Vec3{hx, hy, hz}}
}

// volume is used as mass at unit density.
func (c Collider) volume() float32 {
	switch c.Kind {
	case ShapeBall:
		return 4.0 / 3.0 * math.Pi * c.Radius * c.Radius * c.Radius
	case ShapeCuboid:
		return 8 * c.HalfExtents.X() * c.HalfExtents.Y() * c.HalfExtents.Z()
	}
	return 0
}

// CoefficientCombineRule decides how two colliders' coefficients mix. When
// the rules differ, the one declared later wins.
type CoefficientCombineRule int

// Combine rules.
const (
	CombineAverage CoefficientCombineRule = iota
	CombineMin
	CombineMultiply
	CombineMax
)

// Combine mixes a and b under the stronger of r and other.
func (r CoefficientCombineRule) Combine(other CoefficientCombineRule, a, b float32) float32 {
	switch max(r, other) {
	case CombineMin:
		return min(a, b)
	case CombineMultiply:
		return a * b
	case CombineMax:
		return max(a, b)
	}
	return (a + b) / 2
}

// Restitution is how much approach speed survives a contact: 0 stops dead,
// 1 bounces back at full speed. Colliders without it have coefficient 0.
type Restitution struct {
	Coefficient float32
	CombineRule CoefficientCombineRule
}

// RestitutionCoefficient returns a Restitution with the average rule.
func RestitutionCoefficient(c float32) Restitution {
	return Restitution{Coefficient: c}
}

// Velocity of a dynamic body in world units per second. Dynamic bodies get a
// zero Velocity at the first frame if they lack one.
type Velocity struct {
	Linvel mgl32.Vec3
	Angvel mgl32.Vec3
}

// CollisionStarted is sent when two colliders begin touching.
type CollisionStarted struct {
	A, B ecs.Entity
}

// CollisionStopped is sent when two colliders stop touching.
type CollisionStopped struct {
	A, B ecs.Entity
}
