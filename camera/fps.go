package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/input"
	"github.com/edwinsyarief/combine/transform"
)

// FpsCameraController flies a LookTransform with keys and mouse.
type FpsCameraController struct {
	Enabled bool
	// MouseRotateSensitivity is radians per pixel per second of cursor motion.
	MouseRotateSensitivity mgl32.Vec2
	// TranslateSensitivity is units per second.
	TranslateSensitivity float32
	SmoothingWeight      float32
}

// DefaultFpsCameraController returns the stock controller settings.
func DefaultFpsCameraController() FpsCameraController {
	return FpsCameraController{
		Enabled:                true,
		MouseRotateSensitivity: mgl32.Vec2{0.2, 0.2},
		TranslateSensitivity:   2.0,
		SmoothingWeight:        0.9,
	}
}

// FpsCameraBundle is the controller plus the look transform it drives.
type FpsCameraBundle struct {
	Controller FpsCameraController
	Look       LookTransformBundle
}

// NewFpsCameraBundle returns a bundle looking from eye to target with world up.
func NewFpsCameraBundle(controller FpsCameraController, eye, target mgl32.Vec3) FpsCameraBundle {
	return FpsCameraBundle{
		Controller: controller,
		Look: LookTransformBundle{
			Transform: NewLookTransform(eye, target),
			Smoother:  NewSmoother(controller.SmoothingWeight),
		},
	}
}

// Components implements ecs.Bundle.
func (b FpsCameraBundle) Components() []any {
	return []any{b.Controller, b.Look}
}

// ControlKind tells what a ControlEvent moves.
type ControlKind int

// Control kinds.
const (
	// ControlRotate carries cursor motion scaled by sensitivity in X and Y.
	ControlRotate ControlKind = iota
	// ControlTranslateEye carries right, up and forward speeds.
	ControlTranslateEye
)

// ControlEvent is one frame's worth of input for the fps controller.
type ControlEvent struct {
	Kind  ControlKind
	Value mgl32.Vec3
}

// FpsKeys maps movement directions to keys.
type FpsKeys struct {
	Forward, Back, Left, Right, Up, Down input.KeyCode
}

// DefaultFpsKeys returns WASD with Space up and left Shift down.
func DefaultFpsKeys() FpsKeys {
	return FpsKeys{
		Forward: input.KeyW,
		Back:    input.KeyS,
		Left:    input.KeyA,
		Right:   input.KeyD,
		Up:      input.KeySpace,
		Down:    input.KeyShiftLeft,
	}
}

// maxPitch keeps the view off the poles.
const maxPitch = math.Pi/2 - 0.01

// FpsCameraPlugin turns keyboard and mouse input into ControlEvents and
// applies them to the first enabled controller. OverrideInputSystem leaves
// event production to the caller.
type FpsCameraPlugin struct {
	OverrideInputSystem bool
}

// Build implements app.Plugin.
func (p FpsCameraPlugin) Build(a *app.App) {
	keys := DefaultFpsKeys()
	app.InitResource(a, &keys)
	if !p.OverrideInputSystem {
		a.AddSystem(app.Update, fpsInput)
	}
	w := a.World()
	ecs.Subscribe(w.Events(), func(ev ControlEvent) { applyControl(w, ev) })
}

func activeController(w *ecs.World) (*FpsCameraController, *LookTransform, bool) {
	f := ecs.NewFilter2[FpsCameraController, LookTransform](w)
	for f.Next() {
		c, l := f.Get()
		if c.Enabled {
			return c, l, true
		}
	}
	return nil, nil, false
}

func fpsInput(w *ecs.World) {
	c, _, ok := activeController(w)
	if !ok {
		return
	}
	res := w.Resources()
	keyboard, _ := ecs.GetResource[input.Keyboard](res)
	mouse, _ := ecs.GetResource[input.Mouse](res)
	keys := ecs.Resource[FpsKeys](w)

	if mouse != nil && mouse.Delta != (mgl32.Vec2{}) {
		d := mouse.Delta
		ecs.Send(w.Events(), ControlEvent{
			Kind:  ControlRotate,
			Value: mgl32.Vec3{d.X() * c.MouseRotateSensitivity.X(), d.Y() * c.MouseRotateSensitivity.Y(), 0},
		})
	}
	if keyboard == nil {
		return
	}
	var move mgl32.Vec3
	for _, k := range []struct {
		key input.KeyCode
		dir mgl32.Vec3
	}{
		{keys.Forward, mgl32.Vec3{0, 0, 1}},
		{keys.Back, mgl32.Vec3{0, 0, -1}},
		{keys.Left, mgl32.Vec3{-1, 0, 0}},
		{keys.Right, mgl32.Vec3{1, 0, 0}},
		{keys.Down, mgl32.Vec3{0, -1, 0}},
		{keys.Up, mgl32.Vec3{0, 1, 0}},
	} {
		if keyboard.Pressed(k.key) {
			move = move.Add(k.dir)
		}
	}
	if move != (mgl32.Vec3{}) {
		ecs.Send(w.Events(), ControlEvent{Kind: ControlTranslateEye, Value: move.Mul(c.TranslateSensitivity)})
	}
}

// Angles returns the yaw around world up and the pitch of dir, in radians.
// Yaw zero faces +Z.
func Angles(dir mgl32.Vec3) (yaw, pitch float32) {
	yaw = float32(math.Atan2(float64(dir.X()), float64(dir.Z())))
	pitch = float32(math.Asin(float64(mgl32.Clamp(dir.Y(), -1, 1))))
	return yaw, pitch
}

// Direction is the inverse of Angles.
func Direction(yaw, pitch float32) mgl32.Vec3 {
	sy, cy := math.Sincos(float64(yaw))
	sp, cp := math.Sincos(float64(pitch))
	return mgl32.Vec3{float32(sy * cp), float32(sp), float32(cy * cp)}
}

func applyControl(w *ecs.World, ev ControlEvent) {
	_, look, ok := activeController(w)
	if !ok {
		return
	}
	dir, ok := look.LookDirection()
	if !ok {
		return
	}
	dt := float32(ecs.Resource[app.Time](w).RealDelta.Seconds())
	yaw, pitch := Angles(dir)
	radius := look.Radius()

	switch ev.Kind {
	case ControlRotate:
		yaw -= dt * ev.Value.X()
		pitch -= dt * ev.Value.Y()
	case ControlTranslateEye:
		sy, cy := math.Sincos(float64(yaw))
		forward := mgl32.Vec3{float32(sy), 0, float32(cy)}
		right := forward.Cross(transform.Up)
		step := right.Mul(ev.Value.X()).
			Add(transform.Up.Mul(ev.Value.Y())).
			Add(forward.Mul(ev.Value.Z()))
		look.Eye = look.Eye.Add(step.Mul(dt))
	}
	pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
	look.Target = look.Eye.Add(Direction(yaw, pitch).Mul(radius))
}
