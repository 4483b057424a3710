// Package app assembles plugins, resources and systems around an ecs.World and
// drives them through a runner.
package app

import (
	"fmt"
	"time"

	"github.com/edwinsyarief/combine/ecs"
)

// AppExit asks the runner to stop after the current frame.
type AppExit struct{}

// Runner owns the main loop. It returns when the application should stop.
type Runner func(a *App) error

// App is the application: one world, the plugins that configured it and the
// systems they registered.
type App struct {
	world   *ecs.World
	plugins []string
	names   map[string]struct{}
	startup []System
	stages  [stageCount][]System
	runner  Runner
	stop    []func()
	started bool
	exit    bool
}

// New creates an empty App with a Time resource.
func New() *App {
	a := &App{
		world: ecs.NewWorld(64),
		names: make(map[string]struct{}),
	}
	a.world.Resources().Add(&Time{})
	ecs.Subscribe(a.world.Events(), func(AppExit) { a.exit = true })
	return a
}

// World returns the application world.
func (a *App) World() *ecs.World {
	return a.world
}

// InsertResource adds res, replacing a resource of the same type.
func (a *App) InsertResource(res any) *App {
	a.world.Resources().Insert(res)
	return a
}

// InitResource inserts def unless a resource of type T already exists, and
// returns the stored one.
func InitResource[T any](a *App, def *T) *T {
	if res, _ := ecs.GetResource[T](a.world.Resources()); res != nil {
		return res
	}
	a.world.Resources().Add(def)
	return def
}

// AddPlugin builds p into the app. Adding two plugins with the same name panics.
func (a *App) AddPlugin(p Plugin) *App {
	name := PluginName(p)
	if _, ok := a.names[name]; ok {
		panic(fmt.Sprintf("app: plugin %s already added", name))
	}
	a.names[name] = struct{}{}
	a.plugins = append(a.plugins, name)
	p.Build(a)
	return a
}

// AddPlugins adds every plugin of g in order.
func (a *App) AddPlugins(g PluginGroup) *App {
	for _, p := range g.Plugins() {
		a.AddPlugin(p)
	}
	return a
}

// HasPlugin reports whether a plugin with the given name was added.
func (a *App) HasPlugin(name string) bool {
	_, ok := a.names[name]
	return ok
}

// PluginNames lists added plugins in insertion order.
func (a *App) PluginNames() []string {
	return append([]string(nil), a.plugins...)
}

// AddStartupSystem registers s to run once before the first frame.
func (a *App) AddStartupSystem(s System) *App {
	a.startup = append(a.startup, s)
	return a
}

// AddSystem registers s to run every frame in stage.
func (a *App) AddSystem(stage Stage, s System) *App {
	if stage < 0 || stage >= stageCount {
		panic(fmt.Sprintf("app: invalid stage %d", stage))
	}
	a.stages[stage] = append(a.stages[stage], s)
	return a
}

// SetRunner replaces the main loop.
func (a *App) SetRunner(r Runner) *App {
	a.runner = r
	return a
}

// OnStop registers f to run after the runner returns, in reverse order of
// registration.
func (a *App) OnStop(f func()) *App {
	a.stop = append(a.stop, f)
	return a
}

// Run hands control to the runner. Without one, the app runs a single frame.
// Stop hooks run whether or not the runner failed.
func (a *App) Run() error {
	r := a.runner
	if r == nil {
		r = RunOnce
	}
	defer a.runStop()
	if err := r(a); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func (a *App) runStop() {
	for i := len(a.stop) - 1; i >= 0; i-- {
		a.stop[i]()
	}
	a.stop = nil
}

// Startup runs the startup systems. Later calls do nothing.
func (a *App) Startup() {
	if a.started {
		return
	}
	a.started = true
	for _, s := range a.startup {
		a.runSystem(s)
	}
	a.world.Events().Flush()
}

// Update runs one frame: startup on the first call, then every stage in order.
// Commands are applied after each system and queued events are delivered after
// each stage.
func (a *App) Update() {
	a.Startup()
	for stage := range stageCount {
		for _, s := range a.stages[stage] {
			a.runSystem(s)
		}
		a.world.Events().Flush()
	}
}

// Step advances Time by d and runs one frame.
func (a *App) Step(d time.Duration) {
	ecs.Resource[Time](a.world).Advance(d)
	a.Update()
}

func (a *App) runSystem(s System) {
	s(a.world)
	a.world.Flush()
}

// Exit requests the runner to stop after the current frame.
func (a *App) Exit() {
	ecs.Send(a.world.Events(), AppExit{})
}

// ShouldExit reports whether an AppExit event was delivered.
func (a *App) ShouldExit() bool {
	return a.exit
}
