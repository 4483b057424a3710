package editor

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/camera"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/input"
	"github.com/edwinsyarief/combine/render"
	"github.com/edwinsyarief/combine/transform"
)

// EditorState is the editor's runtime state.
type EditorState struct {
	Active bool
	// Selected is the entity FocusSelected points the editor camera at. A left
	// click while the editor is active selects the entity under the cursor.
	Selected     ecs.Entity
	HasSelection bool

	camera   ecs.Entity
	disabled []ecs.Entity
}

// Camera returns the editor camera entity.
func (s *EditorState) Camera() ecs.Entity { return s.camera }

// Select marks e as the focus target.
func (s *EditorState) Select(e ecs.Entity) {
	s.Selected, s.HasSelection = e, true
}

// EditorPlugin adds the editor camera, state and controls. Controls inserted
// before or after the plugin replace the defaults.
type EditorPlugin struct{}

// Build implements app.Plugin.
func (EditorPlugin) Build(a *app.App) {
	app.InitResource(a, DefaultBindings())
	app.InitResource(a, &EditorState{})
	a.AddStartupSystem(spawnEditorCamera)
	a.AddSystem(app.PreUpdate, editorActions)
	a.AddSystem(app.PreUpdate, selectClicked)
	a.AddSystem(app.Update, flycam)
}

func spawnEditorCamera(w *ecs.World) {
	cam := render.DefaultCamera3d()
	cam.IsActive = false
	cam.Priority = 1
	e := w.Commands().Spawn(
		render.Camera3dBundle{
			Camera:    cam,
			Transform: transform.FromXYZ(0, 2, 5).LookingAt(mgl32.Vec3{}, transform.Up),
		},
		DefaultFlycamControls(),
		EditorCamera{},
	).ID()
	ecs.Resource[EditorState](w).camera = e
}

func editorActions(w *ecs.World) {
	state := ecs.Resource[EditorState](w)
	controls := ecs.Resource[EditorControls](w)
	res := w.Resources()
	keys, _ := ecs.GetResource[input.Keyboard](res)
	buttons, _ := ecs.GetResource[input.MouseButtons](res)
	ctx := Context{Keys: keys, Buttons: buttons, EditorActive: state.Active}
	if text, _ := ecs.GetResource[input.TextInput](res); text != nil {
		ctx.ListeningForText = text.Listening
	}

	if controls.JustPressed(PlayPauseEditor, ctx) {
		SetActive(w, !state.Active)
	}
	if controls.JustPressed(PauseUnpauseTime, ctx) {
		paused := ecs.Resource[app.Time](w).TogglePause()
		log.Printf("editor: time paused=%t", paused)
	}
	if controls.JustPressed(FocusSelected, ctx) {
		focusSelected(w, state)
	}
}

// SetActive switches the editor on or off. Turning it on moves the editor
// camera to the game camera's view, makes it the active camera and disables
// every fps controller; turning it off restores them.
func SetActive(w *ecs.World, active bool) {
	state := ecs.Resource[EditorState](w)
	if state.Active == active {
		return
	}
	state.Active = active
	edCam := ecs.Get[render.Camera3d](w, state.camera)

	if active {
		if _, _, gameT, ok := render.ActiveCamera(w); ok {
			if t := ecs.Get[transform.Transform](w, state.camera); t != nil {
				*t = *gameT
			}
		}
		f := ecs.NewFilter[camera.FpsCameraController](w)
		for f.Next() {
			if c := f.Get(); c.Enabled {
				c.Enabled = false
				state.disabled = append(state.disabled, f.Entity())
			}
		}
	} else {
		for _, e := range state.disabled {
			if c := ecs.Get[camera.FpsCameraController](w, e); c != nil {
				c.Enabled = true
			}
		}
		state.disabled = state.disabled[:0]
	}
	if edCam != nil {
		edCam.IsActive = active
	}
	log.Printf("editor: active=%t", active)
}

func focusSelected(w *ecs.World, state *EditorState) {
	if !state.HasSelection || !w.IsValid(state.Selected) {
		return
	}
	target := ecs.Get[transform.Transform](w, state.Selected)
	t := ecs.Get[transform.Transform](w, state.camera)
	if target == nil || t == nil || t.Translation == target.Translation {
		return
	}
	t.LookAt(target.Translation, transform.Up)
}
