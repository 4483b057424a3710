package render

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/asset"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/transform"
	"github.com/edwinsyarief/combine/window"
)

// Triangle is a shaded triangle in screen pixels.
type Triangle struct {
	Points [3]mgl32.Vec2
	// Depth is the mean distance in front of the camera.
	Depth float32
	Color Color
}

// Line is a screen-space segment.
type Line struct {
	From, To mgl32.Vec2
	Color    Color
}

// Frame is what the host draws: triangles sorted far to near, then lines.
// It is rebuilt in the Render stage every frame.
type Frame struct {
	Width, Height float32
	Clear         Color
	Camera        ecs.Entity
	HasCamera     bool
	Triangles     []Triangle
	Lines         []Line
}

func (f *Frame) reset(width, height float32, clear Color) {
	f.Width, f.Height = width, height
	f.Clear = clear
	f.Camera = ecs.Entity{}
	f.HasCamera = false
	f.Triangles = f.Triangles[:0]
	f.Lines = f.Lines[:0]
}

// ActiveCamera returns the camera the scene is rendered from.
func ActiveCamera(w *ecs.World) (ecs.Entity, *Camera3d, *transform.Transform, bool) {
	var (
		best   ecs.Entity
		cam    *Camera3d
		camT   *transform.Transform
		picked bool
	)
	f := ecs.NewFilter2[Camera3d, transform.Transform](w)
	for f.Next() {
		c, t := f.Get()
		if !c.IsActive {
			continue
		}
		if !picked || c.Priority > cam.Priority {
			best, cam, camT, picked = f.Entity(), c, t, true
		}
	}
	return best, cam, camT, picked
}

// projector carries the per-frame camera state.
type projector struct {
	view, proj    mgl32.Mat4
	eye           mgl32.Vec3
	near          float32
	width, height float32
	light         mgl32.Vec3 // towards the light, normalized
	ambient       float32
	intensity     float32
}

func extractFrame(w *ecs.World) {
	res := w.Resources()
	frame := ecs.MustResource[Frame](res)
	width, height := float32(1280), float32(720)
	aspect := width / height
	if win, _ := ecs.GetResource[window.Window](res); win != nil {
		width, height, aspect = win.Width, win.Height, win.AspectRatio()
	}
	frame.reset(width, height, ecs.MustResource[ClearColor](res).Color)

	camE, cam, camT, ok := ActiveCamera(w)
	if !ok {
		return
	}
	frame.Camera, frame.HasCamera = camE, true

	light := ecs.MustResource[Light](res)
	p := projector{
		view:      camT.Matrix().Inv(),
		proj:      cam.Projection.Matrix(aspect),
		eye:       camT.Translation,
		near:      cam.Projection.Near,
		width:     width,
		height:    height,
		light:     mgl32.Vec3(light.Direction).Mul(-1).Normalize(),
		ambient:   light.Ambient,
		intensity: light.Intensity,
	}
	meshes := ecs.MustResource[asset.Assets[Mesh]](res)
	materials := ecs.MustResource[asset.Assets[StandardMaterial]](res)
	lines := ecs.MustResource[WgpuSettings](res).Features.Has(FeaturePolygonModeLine)
	global := ecs.MustResource[WireframeConfig](res).Global

	f := ecs.NewFilter3[asset.Handle[Mesh], asset.Handle[StandardMaterial], transform.Transform](w)
	for f.Next() {
		meshH, matH, tr := f.Get()
		mesh, mat := meshes.Get(*meshH), materials.Get(*matH)
		if mesh == nil || mat == nil {
			continue
		}
		wire := lines && (global || ecs.Has[Wireframe](w, f.Entity()))
		p.addMesh(frame, mesh, mat, *tr, wire)
	}
	slices.SortStableFunc(frame.Triangles, func(a, b Triangle) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		}
		return 0
	})
}

func (p *projector) addMesh(frame *Frame, mesh *Mesh, mat *StandardMaterial, tr transform.Transform, wire bool) {
	smooth := len(mesh.Normals) == len(mesh.Positions)
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		idx := [3]uint32{mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]}
		var world [3]mgl32.Vec3
		for k, j := range idx {
			world[k] = tr.Point(mesh.Positions[j])
		}
		face := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
		if face.Len() == 0 {
			continue
		}
		face = face.Normalize()
		facing := face.Dot(p.eye.Sub(world[0])) > 0
		if !facing && !mat.DoubleSided {
			continue
		}

		color := mat.BaseColor
		if !mat.Unlit {
			n := face
			if smooth {
				n = mgl32.Vec3{}
				for _, j := range idx {
					n = n.Add(tr.Rotation.Rotate(mesh.Normals[j]))
				}
				n = n.Normalize()
			}
			if !facing {
				n = n.Mul(-1)
			}
			color = color.Scale(p.ambient + p.intensity*max(0, n.Dot(p.light)))
		}

		var view [3]mgl32.Vec3
		var depth float32
		for k := range world {
			view[k] = p.view.Mul4x1(world[k].Vec4(1)).Vec3()
			depth -= view[k].Z() / 3
		}
		poly := clipNear(view[:], p.near)
		if len(poly) < 3 {
			continue
		}
		screen := make([]mgl32.Vec2, len(poly))
		for k, v := range poly {
			screen[k] = p.toScreen(v)
		}
		for k := 1; k+1 < len(screen); k++ {
			frame.Triangles = append(frame.Triangles, Triangle{
				Points: [3]mgl32.Vec2{screen[0], screen[k], screen[k+1]},
				Depth:  depth,
				Color:  color,
			})
		}
		if wire {
			edge := mat.BaseColor.Scale(0.5)
			for k := range screen {
				frame.Lines = append(frame.Lines, Line{From: screen[k], To: screen[(k+1)%len(screen)], Color: edge})
			}
		}
	}
}

// toScreen projects a view-space point in front of the camera to pixels, with
// y growing downwards.
func (p *projector) toScreen(v mgl32.Vec3) mgl32.Vec2 {
	c := p.proj.Mul4x1(v.Vec4(1))
	x, y := c.X()/c.W(), c.Y()/c.W()
	return mgl32.Vec2{(x + 1) / 2 * p.width, (1 - y) / 2 * p.height}
}

// clipNear clips a view-space polygon against the plane z = -near, keeping
// the part in front of the camera.
func clipNear(poly []mgl32.Vec3, near float32) []mgl32.Vec3 {
	inside := func(v mgl32.Vec3) bool { return v.Z() <= -near }
	out := make([]mgl32.Vec3, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, intersectNear(prev, cur, near), cur)
		case inside(prev):
			out = append(out, intersectNear(prev, cur, near))
		}
	}
	return out
}

func intersectNear(a, b mgl32.Vec3, near float32) mgl32.Vec3 {
	t := (-near - a.Z()) / (b.Z() - a.Z())
	return a.Add(b.Sub(a).Mul(t))
}
