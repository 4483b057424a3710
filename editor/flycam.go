package editor

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/camera"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/input"
	"github.com/edwinsyarief/combine/transform"
)

// EditorCamera marks the camera the editor flies while active.
type EditorCamera struct{}

// FlycamControls configures the editor camera's movement.
type FlycamControls struct {
	KeyForward input.KeyCode
	KeyBack    input.KeyCode
	KeyLeft    input.KeyCode
	KeyRight   input.KeyCode
	KeyUp      input.KeyCode
	KeyDown    input.KeyCode
	// Speed is in units per second.
	Speed float32
	// Sensitivity is radians per pixel while the look button is held.
	Sensitivity    float32
	LookButton     input.MouseButton
	EnableMovement bool
	EnableLook     bool
}

// DefaultFlycamControls returns WASD movement, Space up and left Shift down.
func DefaultFlycamControls() FlycamControls {
	return FlycamControls{
		KeyForward:     input.KeyW,
		KeyBack:        input.KeyS,
		KeyLeft:        input.KeyA,
		KeyRight:       input.KeyD,
		KeyUp:          input.KeySpace,
		KeyDown:        input.KeyShiftLeft,
		Speed:          8,
		Sensitivity:    0.003,
		LookButton:     input.MouseRight,
		EnableMovement: true,
		EnableLook:     true,
	}
}

const flycamMaxPitch = math.Pi/2 - 0.01

// Move returns the world-space displacement for one frame of dt seconds.
func (c FlycamControls) Move(keys *input.Keyboard, t transform.Transform, dt float32) mgl32.Vec3 {
	if !c.EnableMovement || keys == nil {
		return mgl32.Vec3{}
	}
	var dir mgl32.Vec3
	add := func(k input.KeyCode, v mgl32.Vec3) {
		if keys.Pressed(k) {
			dir = dir.Add(v)
		}
	}
	add(c.KeyForward, t.Forward())
	add(c.KeyBack, t.Forward().Mul(-1))
	add(c.KeyRight, t.Right())
	add(c.KeyLeft, t.Right().Mul(-1))
	add(c.KeyUp, transform.Up)
	add(c.KeyDown, transform.Up.Mul(-1))
	if dir.Len() == 0 {
		return dir
	}
	return dir.Normalize().Mul(c.Speed * dt)
}

func flycam(w *ecs.World) {
	state := ecs.Resource[EditorState](w)
	if !state.Active {
		return
	}
	res := w.Resources()
	keys, _ := ecs.GetResource[input.Keyboard](res)
	buttons, _ := ecs.GetResource[input.MouseButtons](res)
	mouse, _ := ecs.GetResource[input.Mouse](res)
	dt := float32(ecs.Resource[app.Time](w).RealDelta.Seconds())

	f := ecs.NewFilter3[EditorCamera, FlycamControls, transform.Transform](w)
	for f.Next() {
		_, c, t := f.Get()
		t.Translation = t.Translation.Add(c.Move(keys, *t, dt))

		if !c.EnableLook || mouse == nil || buttons == nil || !buttons.Pressed(c.LookButton) {
			continue
		}
		if mouse.Delta == (mgl32.Vec2{}) {
			continue
		}
		yaw, pitch := camera.Angles(t.Forward())
		yaw -= mouse.Delta.X() * c.Sensitivity
		pitch = mgl32.Clamp(pitch-mouse.Delta.Y()*c.Sensitivity, -flycamMaxPitch, flycamMaxPitch)
		t.LookAt(t.Translation.Add(camera.Direction(yaw, pitch)), transform.Up)
	}
}
