package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
)

// Input is the press state of a set of buttons. JustPressed and JustReleased
// hold for the frame in which the edge happened.
type Input[T comparable] struct {
	pressed      map[T]struct{}
	justPressed  map[T]struct{}
	justReleased map[T]struct{}
}

// NewInput returns an empty Input.
func NewInput[T comparable]() *Input[T] {
	return &Input[T]{
		pressed:      make(map[T]struct{}),
		justPressed:  make(map[T]struct{}),
		justReleased: make(map[T]struct{}),
	}
}

// Press records b going down. Holding an already pressed button is not an edge.
func (in *Input[T]) Press(b T) {
	if _, ok := in.pressed[b]; !ok {
		in.justPressed[b] = struct{}{}
	}
	in.pressed[b] = struct{}{}
}

// Release records b going up.
func (in *Input[T]) Release(b T) {
	if _, ok := in.pressed[b]; ok {
		in.justReleased[b] = struct{}{}
	}
	delete(in.pressed, b)
}

// Pressed reports whether b is held.
func (in *Input[T]) Pressed(b T) bool {
	_, ok := in.pressed[b]
	return ok
}

// AnyPressed reports whether any of bs is held.
func (in *Input[T]) AnyPressed(bs ...T) bool {
	for _, b := range bs {
		if in.Pressed(b) {
			return true
		}
	}
	return false
}

// JustPressed reports whether b went down this frame.
func (in *Input[T]) JustPressed(b T) bool {
	_, ok := in.justPressed[b]
	return ok
}

// JustReleased reports whether b went up this frame.
func (in *Input[T]) JustReleased(b T) bool {
	_, ok := in.justReleased[b]
	return ok
}

// Clear forgets this frame's edges, keeping held buttons.
func (in *Input[T]) Clear() {
	clear(in.justPressed)
	clear(in.justReleased)
}

// Reset releases everything without reporting edges.
func (in *Input[T]) Reset() {
	clear(in.pressed)
	in.Clear()
}

// Keyboard is the key state resource.
type Keyboard = Input[KeyCode]

// MouseButtons is the mouse button state resource.
type MouseButtons = Input[MouseButton]

// Mouse holds cursor position and the motion accumulated this frame, in pixels.
type Mouse struct {
	Position mgl32.Vec2
	Delta    mgl32.Vec2
}

// Move records the cursor at p and accumulates the motion.
func (m *Mouse) Move(p mgl32.Vec2) {
	m.Delta = m.Delta.Add(p.Sub(m.Position))
	m.Position = p
}

// TextInput says whether a text field currently owns the keyboard.
type TextInput struct {
	Listening bool
}

// Plugin inserts the input resources and clears edges at the end of each frame.
type Plugin struct{}

// Build implements app.Plugin.
func (Plugin) Build(a *app.App) {
	app.InitResource(a, NewInput[KeyCode]())
	app.InitResource(a, NewInput[MouseButton]())
	app.InitResource(a, &Mouse{})
	app.InitResource(a, &TextInput{})
	a.AddSystem(app.Last, clearInput)
}

func clearInput(w *ecs.World) {
	ecs.Resource[Keyboard](w).Clear()
	ecs.Resource[MouseButtons](w).Clear()
	ecs.Resource[Mouse](w).Delta = mgl32.Vec2{}
}
