package input

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
)

func TestInputEdges(t *testing.T) {
	in := NewInput[KeyCode]()
	in.Press(KeyE)
	if !in.Pressed(KeyE) || !in.JustPressed(KeyE) {
		t.Fatal("expected E pressed and just pressed")
	}
	in.Clear()
	in.Press(KeyE)
	if in.JustPressed(KeyE) {
		t.Error("holding a key must not repeat the edge")
	}
	in.Release(KeyE)
	if in.Pressed(KeyE) || !in.JustReleased(KeyE) {
		t.Error("expected E released with an edge")
	}
	in.Release(KeyQ)
	if in.JustReleased(KeyQ) {
		t.Error("releasing an unpressed key is not an edge")
	}
	if NewInput[KeyCode]().AnyPressed() {
		t.Error("AnyPressed with no keys must be false")
	}
}

func TestKeyNames(t *testing.T) {
	cases := map[KeyCode]string{KeyEscape: "Escape", KeyE: "E", KeyQ: "Q", Key0: "0", KeyF12: "F12", KeyCode(-1): "Unknown"}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
	if n := len(AllKeys()); n != int(keyCount)-1 {
		t.Errorf("expected %d keys, got %d", keyCount-1, n)
	}
}

func TestPluginClearsEdgesAtFrameEnd(t *testing.T) {
	a := app.New().AddPlugin(Plugin{})
	kb := ecs.Resource[Keyboard](a.World())
	m := ecs.Resource[Mouse](a.World())

	var sawEdge bool
	a.AddSystem(app.Update, func(*ecs.World) { sawEdge = kb.JustPressed(KeySpace) })

	kb.Press(KeySpace)
	m.Move(mgl32.Vec2{3, 4})
	a.Step(time.Millisecond)

	if !sawEdge {
		t.Error("systems must see the edge during the frame")
	}
	if kb.JustPressed(KeySpace) || !kb.Pressed(KeySpace) {
		t.Error("expected edge cleared and key still held")
	}
	if m.Delta != (mgl32.Vec2{}) || m.Position != (mgl32.Vec2{3, 4}) {
		t.Errorf("expected delta reset and position kept, got %v %v", m.Delta, m.Position)
	}
}
