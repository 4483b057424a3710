// Package game assembles the Combine scene: a fly camera over a ground slab
// with a bouncing sphere, plus an optional editor.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/asset"
	"github.com/edwinsyarief/combine/camera"
	"github.com/edwinsyarief/combine/diagnostics"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/editor"
	"github.com/edwinsyarief/combine/host"
	"github.com/edwinsyarief/combine/input"
	"github.com/edwinsyarief/combine/physics"
	"github.com/edwinsyarief/combine/render"
	"github.com/edwinsyarief/combine/transform"
	"github.com/edwinsyarief/combine/window"
)

// Title is the window title.
const Title = "Bevy Jam 2.0 - Combine"

var (
	// Eye is where the camera starts.
	Eye = mgl32.Vec3{-3, 3, 10}
	// Target is what the camera starts looking at.
	Target = mgl32.Vec3{0, 0, 0}
)

// WindowDescriptor returns the fixed 1280x720 borderless window.
func WindowDescriptor() window.WindowDescriptor {
	return window.WindowDescriptor{
		Width:       1280,
		Height:      720,
		Title:       Title,
		PresentMode: window.PresentModeFifo,
		Resizable:   false,
		Decorations: false,
	}
}

// AssetSettings returns asset settings with hot reload on.
func AssetSettings(folder string) asset.AssetServerSettings {
	s := asset.DefaultSettings()
	if folder != "" {
		s.AssetFolder = folder
	}
	s.WatchForChanges = true
	return s
}

// RendererSettings enables line polygons so wireframes can be drawn.
func RendererSettings() render.WgpuSettings {
	return render.WgpuSettings{Features: render.FeaturePolygonModeLine}
}

// DefaultPlugins is the window, input, asset and render stack.
func DefaultPlugins() app.Plugins {
	return app.Plugins{
		window.Plugin{},
		input.Plugin{},
		asset.Plugin{},
		render.Plugin{},
	}
}

// New builds the app. The editor variant adds frame time and entity count
// diagnostics logged once a second, the editor with Escape as its toggle and
// E/Q flycam up/down keys.
func New(cfg Config) *app.App {
	desc := WindowDescriptor()
	assets := AssetSettings(cfg.AssetFolder)
	wgpu := RendererSettings()

	a := app.New()
	a.InsertResource(&desc).
		InsertResource(&assets).
		InsertResource(&wgpu).
		AddPlugins(DefaultPlugins()).
		AddPlugin(physics.Plugin{})

	if cfg.Editor {
		a.AddPlugin(diagnostics.FrameTimeDiagnosticsPlugin{}).
			AddPlugin(diagnostics.EntityCountDiagnosticsPlugin{}).
			AddPlugin(diagnostics.LogDiagnosticsPlugin{}).
			AddPlugin(editor.EditorPlugin{}).
			InsertResource(EditorControls()).
			AddStartupSystem(SetCam3dControls)
	}

	a.AddPlugin(camera.LookTransformPlugin{}).
		AddPlugin(camera.FpsCameraPlugin{})

	a.AddStartupSystem(setup)
	return a
}

// Run builds the app for cfg and runs it in a window, or headless when
// cfg.Headless is set. Cancelling ctx is a clean exit.
func Run(ctx context.Context, cfg Config) error {
	a := New(cfg)
	if cfg.Headless {
		a.SetRunner(app.HeadlessRunner(ctx, app.HeadlessConfig{Hz: cfg.Hz, Frames: cfg.Frames}))
	} else {
		a.SetRunner(host.Runner(ctx))
	}
	if err := a.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("combine: %w", err)
	}
	return nil
}

// EditorControls returns the default editor bindings with PlayPauseEditor
// moved to Escape alone, ignored while typing.
func EditorControls() *editor.EditorControls {
	c := editor.DefaultBindings()
	c.Unbind(editor.PlayPauseEditor)
	c.Insert(editor.PlayPauseEditor, editor.Binding{
		Input:      editor.Single(editor.Keyboard(input.KeyEscape)),
		Conditions: []editor.BindingCondition{editor.ListeningForText(false)},
	})
	return c
}

// SetCam3dControls rebinds the editor flycam's vertical movement to E and Q.
// It panics unless exactly one flycam exists.
func SetCam3dControls(w *ecs.World) {
	f := ecs.NewFilter[editor.FlycamControls](w)
	if n := f.Len(); n != 1 {
		panic(fmt.Sprintf("game: expected one editor flycam, found %d", n))
	}
	f.Next()
	c := f.Get()
	c.KeyUp = input.KeyE
	c.KeyDown = input.KeyQ
}

func setup(w *ecs.World) {
	Setup(w.Commands(),
		ecs.Resource[asset.Assets[render.Mesh]](w),
		ecs.Resource[asset.Assets[render.StandardMaterial]](w))
}

// Setup queues the scene: the fly camera, the fixed ground and the dynamic
// sphere.
func Setup(cmd *ecs.Commands, meshes *asset.Assets[render.Mesh], materials *asset.Assets[render.StandardMaterial]) {
	cmd.Spawn(
		render.NewCamera3dBundle(transform.FromTranslation(Eye).LookingAt(Target, transform.Up)),
		camera.NewFpsCameraBundle(camera.DefaultFpsCameraController(), Eye, Target),
	)

	cmd.Spawn(physics.Cuboid(100, 0.1, 100)).Insert(render.PbrBundle{
		Mesh: meshes.Add(render.NewMesh(render.Box{
			MinX: -50, MaxX: 50,
			MinY: -0.05, MaxY: 0.05,
			MinZ: -50, MaxZ: 50,
		})),
		Material:  materials.Add(render.NewStandardMaterial(render.White)),
		Transform: transform.FromXYZ(0, -2, 0),
	})

	cmd.Spawn(
		physics.RigidBodyDynamic,
		physics.Ball(0.5),
		physics.RestitutionCoefficient(0.7),
	).Insert(render.PbrBundle{
		Mesh:      meshes.Add(render.NewMesh(render.Icosphere{Radius: 0.5})),
		Material:  materials.Add(render.NewStandardMaterial(render.Indigo)),
		Transform: transform.FromXYZ(0, 4, 0),
	})
}
