// Package camera drives camera transforms from an eye/target pair, with an
// optional first-person controller on top.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/transform"
)

// LookTransform places a camera at Eye facing Target.
type LookTransform struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
}

// NewLookTransform returns a LookTransform with world up.
func NewLookTransform(eye, target mgl32.Vec3) LookTransform {
	return LookTransform{Eye: eye, Target: target, Up: transform.Up}
}

// Radius is the eye to target distance.
func (l LookTransform) Radius() float32 {
	return l.Target.Sub(l.Eye).Len()
}

// LookDirection returns the unit vector from Eye to Target. It reports false
// when they coincide.
func (l LookTransform) LookDirection() (mgl32.Vec3, bool) {
	d := l.Target.Sub(l.Eye)
	if d.Len() < 1e-6 {
		return mgl32.Vec3{}, false
	}
	return d.Normalize(), true
}

// Transform converts l to a scene transform.
func (l LookTransform) Transform() transform.Transform {
	return transform.FromTranslation(l.Eye).LookingAt(l.Target, l.Up)
}

// Smoother eases a LookTransform towards its latest value. LagWeight in
// [0, 1) is the share of the previous frame kept each frame.
type Smoother struct {
	LagWeight float32
	Enabled   bool
	last      *LookTransform
}

// NewSmoother returns an enabled Smoother.
func NewSmoother(lagWeight float32) Smoother {
	return Smoother{LagWeight: lagWeight, Enabled: true}
}

// Smooth blends target with the previous result and remembers the blend.
func (s *Smoother) Smooth(target LookTransform) LookTransform {
	prev := target
	if s.last != nil {
		prev = *s.last
	}
	lead := 1 - s.LagWeight
	out := LookTransform{
		Eye:    prev.Eye.Mul(s.LagWeight).Add(target.Eye.Mul(lead)),
		Target: prev.Target.Mul(s.LagWeight).Add(target.Target.Mul(lead)),
		Up:     target.Up,
	}
	s.last = &out
	return out
}

// Reset makes the next Smooth jump straight to its input.
func (s *Smoother) Reset() {
	s.last = nil
}

// LookTransformBundle is the component set for a look-driven camera.
type LookTransformBundle struct {
	Transform LookTransform
	Smoother  Smoother
}

// Components implements ecs.Bundle.
func (b LookTransformBundle) Components() []any {
	return []any{b.Transform, b.Smoother}
}

// LookTransformPlugin writes every LookTransform into its entity's Transform.
type LookTransformPlugin struct{}

// Build implements app.Plugin.
func (LookTransformPlugin) Build(a *app.App) {
	a.AddSystem(app.PostUpdate, applyLookTransforms)
}

func applyLookTransforms(w *ecs.World) {
	f := ecs.NewFilter2[LookTransform, transform.Transform](w)
	for f.Next() {
		look, t := f.Get()
		l := *look
		if s := ecs.Get[Smoother](w, f.Entity()); s != nil && s.Enabled {
			l = s.Smooth(l)
		}
		if _, ok := l.LookDirection(); !ok {
			continue
		}
		scale := t.Scale
		*t = l.Transform()
		t.Scale = scale
	}
}
