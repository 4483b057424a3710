package editor

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/input"
	"github.com/edwinsyarief/combine/render"
	"github.com/edwinsyarief/combine/transform"
	"github.com/edwinsyarief/combine/window"
)

// PickRay returns the world space ray from a camera at t through the cursor
// position p, given in pixels from the top left of a width by height viewport.
// A degenerate viewport yields the camera's forward ray.
func PickRay(t transform.Transform, proj render.PerspectiveProjection, p mgl32.Vec2, width, height float32) (origin, dir mgl32.Vec3) {
	dir = t.Forward()
	if width <= 0 || height <= 0 {
		return t.Translation, dir
	}
	x := 2*p.X()/width - 1
	y := 1 - 2*p.Y()/height
	tanHalf := float32(math.Tan(float64(proj.FOV) / 2))
	dir = dir.
		Add(t.Right().Mul(x * tanHalf * width / height)).
		Add(t.Up().Mul(y * tanHalf))
	return t.Translation, dir.Normalize()
}

// Pick returns the non-camera entity whose origin lies at the smallest angle
// from the ray. Entities behind the ray origin are ignored.
func Pick(w *ecs.World, origin, dir mgl32.Vec3) (ecs.Entity, bool) {
	var (
		best    ecs.Entity
		bestCos float32
		found   bool
	)
	f := ecs.NewFilter[transform.Transform](w)
	for f.Next() {
		e := f.Entity()
		if ecs.Has[render.Camera3d](w, e) {
			continue
		}
		to := f.Get().Translation.Sub(origin)
		if to.Len() == 0 {
			continue
		}
		c := to.Normalize().Dot(dir)
		if c <= 0 {
			continue
		}
		if !found || c > bestCos {
			best, bestCos, found = e, c, true
		}
	}
	return best, found
}

func selectClicked(w *ecs.World) {
	state := ecs.Resource[EditorState](w)
	if !state.Active {
		return
	}
	res := w.Resources()
	buttons, _ := ecs.GetResource[input.MouseButtons](res)
	mouse, _ := ecs.GetResource[input.Mouse](res)
	if buttons == nil || mouse == nil || !buttons.JustPressed(input.MouseLeft) {
		return
	}
	t := ecs.Get[transform.Transform](w, state.camera)
	cam := ecs.Get[render.Camera3d](w, state.camera)
	if t == nil || cam == nil {
		return
	}
	var width, height float32
	if win, _ := ecs.GetResource[window.Window](res); win != nil {
		width, height = win.Width, win.Height
	}
	origin, dir := PickRay(*t, cam.Projection, mouse.Position, width, height)
	if e, ok := Pick(w, origin, dir); ok {
		state.Select(e)
		log.Printf("editor: selected %v", e)
	}
}
