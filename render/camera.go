package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/transform"
)

// PerspectiveProjection maps view space to clip space.
type PerspectiveProjection struct {
	// FOV is the vertical field of view in radians.
	FOV  float32
	Near float32
	Far  float32
}

// DefaultPerspective returns a 45 degree projection from 0.1 to 1000.
func DefaultPerspective() PerspectiveProjection {
	return PerspectiveProjection{FOV: math.Pi / 4, Near: 0.1, Far: 1000}
}

// Matrix returns the projection matrix for the given aspect ratio.
func (p PerspectiveProjection) Matrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(p.FOV, aspect, p.Near, p.Far)
}

// Camera3d marks the entity the scene is rendered from. Among active cameras
// the one with the highest Priority wins; ties go to the lowest entity ID.
type Camera3d struct {
	Projection PerspectiveProjection
	IsActive   bool
	Priority   int
}

// DefaultCamera3d returns an active camera with the default projection.
func DefaultCamera3d() Camera3d {
	return Camera3d{Projection: DefaultPerspective(), IsActive: true}
}

// Camera3dBundle spawns a camera.
type Camera3dBundle struct {
	Camera    Camera3d
	Transform transform.Transform
}

// NewCamera3dBundle returns a default camera at t.
func NewCamera3dBundle(t transform.Transform) Camera3dBundle {
	return Camera3dBundle{Camera: DefaultCamera3d(), Transform: t}
}

// Components implements ecs.Bundle.
func (b Camera3dBundle) Components() []any {
	return []any{b.Camera, b.Transform}
}
