package editor

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/camera"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/input"
	"github.com/edwinsyarief/combine/render"
	"github.com/edwinsyarief/combine/transform"
	"github.com/edwinsyarief/combine/window"
)

func TestDefaultBindings(t *testing.T) {
	c := DefaultBindings()
	play := c.Bindings(PlayPauseEditor)
	if len(play) != 2 {
		t.Fatalf("expected 2 PlayPauseEditor bindings, got %d", len(play))
	}
	if got := play[0].Input.String(); got != "ControlLeft+Enter" {
		t.Errorf("expected ControlLeft+Enter, got %s", got)
	}
	if got := play[1].Input.String(); got != "E" {
		t.Errorf("expected E, got %s", got)
	}
	for _, b := range play {
		if len(b.Conditions) != 1 || b.Conditions[0] != ListeningForText(false) {
			t.Errorf("expected not-listening-for-text condition, got %v", b.Conditions)
		}
	}
	if n := len(c.Bindings(PauseUnpauseTime)); n != 1 {
		t.Errorf("expected 1 PauseUnpauseTime binding, got %d", n)
	}
	focus := c.Bindings(FocusSelected)
	if len(focus) != 1 || focus[0].Conditions[0] != EditorActive(true) {
		t.Errorf("expected FocusSelected gated on the active editor, got %v", focus)
	}
}

func TestUnbindInsert(t *testing.T) {
	c := DefaultBindings()
	c.Unbind(PlayPauseEditor)
	if len(c.Bindings(PlayPauseEditor)) != 0 {
		t.Fatal("expected no bindings after Unbind")
	}
	c.Insert(PlayPauseEditor, Binding{Input: Single(Keyboard(input.KeyEscape))})
	if got := c.Bindings(PlayPauseEditor); len(got) != 1 || got[0].Input.Buttons[0] != Keyboard(input.KeyEscape) {
		t.Errorf("expected single Escape binding, got %v", got)
	}
	if n := len(c.Bindings(PauseUnpauseTime)); n != 1 {
		t.Errorf("expected other actions untouched, got %d", n)
	}
}

func TestBindingJustPressed(t *testing.T) {
	chord := Binding{Input: Chord(Keyboard(input.KeyControlLeft), Keyboard(input.KeyP))}
	keys := input.NewInput[input.KeyCode]()
	ctx := Context{Keys: keys}

	keys.Press(input.KeyP)
	if chord.JustPressed(ctx) {
		t.Error("expected chord to need every button")
	}
	keys.Clear()
	keys.Press(input.KeyControlLeft)
	if !chord.JustPressed(ctx) {
		t.Error("expected chord to fire on the last button going down")
	}
	keys.Clear()
	if chord.JustPressed(ctx) {
		t.Error("expected held chord not to fire again")
	}

	mouse := Binding{Input: Single(Mouse(input.MouseMiddle))}
	buttons := input.NewInput[input.MouseButton]()
	buttons.Press(input.MouseMiddle)
	if !mouse.JustPressed(Context{Buttons: buttons}) {
		t.Error("expected mouse binding to fire")
	}
	if (Binding{}).JustPressed(ctx) {
		t.Error("expected empty binding never to fire")
	}
}

func TestBindingConditions(t *testing.T) {
	b := Binding{
		Input:      Single(Keyboard(input.KeyE)),
		Conditions: []BindingCondition{ListeningForText(false), EditorActive(true)},
	}
	keys := input.NewInput[input.KeyCode]()
	keys.Press(input.KeyE)

	tests := []struct {
		name string
		ctx  Context
		want bool
	}{
		{"both hold", Context{Keys: keys, EditorActive: true}, true},
		{"typing", Context{Keys: keys, EditorActive: true, ListeningForText: true}, false},
		{"inactive", Context{Keys: keys}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.JustPressed(tt.ctx); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func newEditorApp() (*app.App, ecs.Entity) {
	a := app.New().
		AddPlugin(window.Plugin{}).
		AddPlugin(input.Plugin{}).
		AddPlugin(render.Plugin{}).
		AddPlugin(camera.LookTransformPlugin{}).
		AddPlugin(camera.FpsCameraPlugin{}).
		AddPlugin(EditorPlugin{})
	eye := mgl32.Vec3{-3, 3, 10}
	game := a.World().SpawnWith(
		render.NewCamera3dBundle(transform.FromTranslation(eye).LookingAt(mgl32.Vec3{}, transform.Up)),
		camera.NewFpsCameraBundle(camera.DefaultFpsCameraController(), eye, mgl32.Vec3{}),
	)
	a.Step(time.Millisecond)
	return a, game
}

func tap(a *app.App, k input.KeyCode) {
	keys := ecs.Resource[input.Keyboard](a.World())
	keys.Press(k)
	a.Step(time.Millisecond)
	keys.Release(k)
	a.Step(time.Millisecond)
}

func TestEditorPluginSpawnsCamera(t *testing.T) {
	a, _ := newEditorApp()
	w := a.World()
	state := ecs.Resource[EditorState](w)
	if state.Active {
		t.Error("expected editor inactive at start")
	}
	if !ecs.Has[EditorCamera](w, state.Camera()) || !ecs.Has[FlycamControls](w, state.Camera()) {
		t.Fatal("expected an editor flycam camera")
	}
	if ecs.Get[render.Camera3d](w, state.Camera()).IsActive {
		t.Error("expected editor camera inactive at start")
	}
}

func TestEditorToggle(t *testing.T) {
	a, game := newEditorApp()
	w := a.World()
	state := ecs.Resource[EditorState](w)

	tap(a, input.KeyE)

	if !state.Active {
		t.Fatal("expected E to open the editor")
	}
	if e, _, _, _ := render.ActiveCamera(w); e != state.Camera() {
		t.Errorf("expected editor camera active, got %v", e)
	}
	if ecs.Get[camera.FpsCameraController](w, game).Enabled {
		t.Error("expected fps controller disabled while editing")
	}
	gameT := ecs.Get[transform.Transform](w, game)
	if edT := ecs.Get[transform.Transform](w, state.Camera()); !edT.Translation.ApproxEqual(gameT.Translation) {
		t.Errorf("expected editor camera to start at the game view, got %v", edT.Translation)
	}

	tap(a, input.KeyE)

	if state.Active {
		t.Fatal("expected E to close the editor")
	}
	if e, _, _, _ := render.ActiveCamera(w); e != game {
		t.Errorf("expected game camera active, got %v", e)
	}
	if !ecs.Get[camera.FpsCameraController](w, game).Enabled {
		t.Error("expected fps controller restored")
	}
}

func TestEditorIgnoresTyping(t *testing.T) {
	a, _ := newEditorApp()
	ecs.Resource[input.TextInput](a.World()).Listening = true
	tap(a, input.KeyE)
	if ecs.Resource[EditorState](a.World()).Active {
		t.Error("expected E ignored while typing")
	}
}

func TestPauseUnpauseTime(t *testing.T) {
	a, _ := newEditorApp()
	w := a.World()
	keys := ecs.Resource[input.Keyboard](w)
	keys.Press(input.KeyControlLeft)
	tap(a, input.KeyP)

	tm := ecs.Resource[app.Time](w)
	if !tm.Paused {
		t.Fatal("expected Ctrl+P to pause time")
	}
	elapsed := tm.Elapsed
	a.Step(time.Second)
	if tm.Elapsed != elapsed {
		t.Error("expected elapsed frozen while paused")
	}
	tap(a, input.KeyP)
	if tm.Paused {
		t.Error("expected Ctrl+P to resume time")
	}
}

func TestFlycam(t *testing.T) {
	a, _ := newEditorApp()
	w := a.World()
	state := ecs.Resource[EditorState](w)
	SetActive(w, true)
	edT := ecs.Get[transform.Transform](w, state.Camera())
	start, forward := edT.Translation, edT.Forward()

	ecs.Resource[input.Keyboard](w).Press(input.KeyW)
	a.Step(time.Second / 2)

	want := start.Add(forward.Mul(4))
	if !edT.Translation.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("expected %v, got %v", want, edT.Translation)
	}
}

func TestFlycamLook(t *testing.T) {
	a, _ := newEditorApp()
	w := a.World()
	state := ecs.Resource[EditorState](w)
	SetActive(w, true)
	edT := ecs.Get[transform.Transform](w, state.Camera())
	before, start := edT.Forward(), edT.Translation

	ecs.Resource[input.MouseButtons](w).Press(input.MouseRight)
	ecs.Resource[input.Mouse](w).Move(mgl32.Vec2{100, 0})
	a.Step(time.Millisecond)

	if edT.Forward().ApproxEqualThreshold(before, 1e-3) {
		t.Error("expected dragging with the look button to turn the camera")
	}
	if edT.Translation != start {
		t.Error("expected look not to move the camera")
	}
}

func TestFocusSelected(t *testing.T) {
	a, _ := newEditorApp()
	w := a.World()
	state := ecs.Resource[EditorState](w)
	target := w.SpawnWith(transform.FromXYZ(5, 0, 0))
	state.Select(target)

	tap(a, input.KeyF)
	edT := ecs.Get[transform.Transform](w, state.Camera())
	if !edT.Forward().ApproxEqualThreshold(mgl32.Vec3{0, -2, -5}.Normalize(), 1e-4) {
		t.Error("expected F ignored while the editor is inactive")
	}

	SetActive(w, true)
	tap(a, input.KeyF)

	want := mgl32.Vec3{5, 0, 0}.Sub(edT.Translation).Normalize()
	if !edT.Forward().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("expected camera to face the selection, got %v want %v", edT.Forward(), want)
	}
}

func TestPickRay(t *testing.T) {
	cam := transform.FromXYZ(0, 0, 5).LookingAt(mgl32.Vec3{}, transform.Up)
	proj := render.DefaultPerspective()

	t.Run("center", func(t *testing.T) {
		origin, dir := PickRay(cam, proj, mgl32.Vec2{640, 360}, 1280, 720)
		if origin != cam.Translation || !dir.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
			t.Errorf("expected forward ray, got %v %v", origin, dir)
		}
	})
	t.Run("top edge", func(t *testing.T) {
		_, dir := PickRay(cam, proj, mgl32.Vec2{640, 0}, 1280, 720)
		want := mgl32.Vec3{0, float32(math.Tan(math.Pi / 8)), -1}.Normalize()
		if !dir.ApproxEqualThreshold(want, 1e-5) {
			t.Errorf("expected %v, got %v", want, dir)
		}
	})
	t.Run("no viewport", func(t *testing.T) {
		if _, dir := PickRay(cam, proj, mgl32.Vec2{10, 10}, 0, 0); !dir.ApproxEqualThreshold(cam.Forward(), 1e-6) {
			t.Errorf("expected forward ray, got %v", dir)
		}
	})
}

func click(a *app.App, p mgl32.Vec2) {
	w := a.World()
	ecs.Resource[input.Mouse](w).Position = p
	buttons := ecs.Resource[input.MouseButtons](w)
	buttons.Press(input.MouseLeft)
	a.Step(time.Millisecond)
	buttons.Release(input.MouseLeft)
	a.Step(time.Millisecond)
}

func TestClickSelects(t *testing.T) {
	a, _ := newEditorApp()
	w := a.World()
	state := ecs.Resource[EditorState](w)
	center := w.SpawnWith(transform.FromXYZ(0, 0, 0))
	right := w.SpawnWith(transform.FromXYZ(5, 0, 0))
	a.Step(time.Millisecond)

	click(a, mgl32.Vec2{640, 360})
	if state.HasSelection {
		t.Fatal("expected clicks ignored while the editor is inactive")
	}

	SetActive(w, true)
	click(a, mgl32.Vec2{640, 360})
	if !state.HasSelection || state.Selected != center {
		t.Errorf("expected %v selected, got %v", center, state.Selected)
	}

	click(a, mgl32.Vec2{960, 360})
	if state.Selected != right {
		t.Errorf("expected %v selected, got %v", right, state.Selected)
	}

	tap(a, input.KeyF)
	edT := ecs.Get[transform.Transform](w, state.Camera())
	want := mgl32.Vec3{5, 0, 0}.Sub(edT.Translation).Normalize()
	if !edT.Forward().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("expected camera to face the clicked entity, got %v want %v", edT.Forward(), want)
	}
}

func TestPickSkipsCamerasAndEntitiesBehind(t *testing.T) {
	a, _ := newEditorApp()
	w := a.World()
	behind := w.SpawnWith(transform.FromXYZ(0, 0, 10))
	if _, ok := Pick(w, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}); ok {
		t.Error("expected nothing picked: only cameras and an entity behind the ray")
	}
	if e, ok := Pick(w, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}); !ok || e != behind {
		t.Errorf("expected %v, got %v %t", behind, e, ok)
	}
}
