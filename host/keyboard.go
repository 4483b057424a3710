//go:build cgo

package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/input"
)

var keyTable = map[input.KeyCode]ebiten.Key{
	input.KeyA:            ebiten.KeyA,
	input.KeyB:            ebiten.KeyB,
	input.KeyC:            ebiten.KeyC,
	input.KeyD:            ebiten.KeyD,
	input.KeyE:            ebiten.KeyE,
	input.KeyF:            ebiten.KeyF,
	input.KeyG:            ebiten.KeyG,
	input.KeyH:            ebiten.KeyH,
	input.KeyI:            ebiten.KeyI,
	input.KeyJ:            ebiten.KeyJ,
	input.KeyK:            ebiten.KeyK,
	input.KeyL:            ebiten.KeyL,
	input.KeyM:            ebiten.KeyM,
	input.KeyN:            ebiten.KeyN,
	input.KeyO:            ebiten.KeyO,
	input.KeyP:            ebiten.KeyP,
	input.KeyQ:            ebiten.KeyQ,
	input.KeyR:            ebiten.KeyR,
	input.KeyS:            ebiten.KeyS,
	input.KeyT:            ebiten.KeyT,
	input.KeyU:            ebiten.KeyU,
	input.KeyV:            ebiten.KeyV,
	input.KeyW:            ebiten.KeyW,
	input.KeyX:            ebiten.KeyX,
	input.KeyY:            ebiten.KeyY,
	input.KeyZ:            ebiten.KeyZ,
	input.Key0:            ebiten.KeyDigit0,
	input.Key1:            ebiten.KeyDigit1,
	input.Key2:            ebiten.KeyDigit2,
	input.Key3:            ebiten.KeyDigit3,
	input.Key4:            ebiten.KeyDigit4,
	input.Key5:            ebiten.KeyDigit5,
	input.Key6:            ebiten.KeyDigit6,
	input.Key7:            ebiten.KeyDigit7,
	input.Key8:            ebiten.KeyDigit8,
	input.Key9:            ebiten.KeyDigit9,
	input.KeyF1:           ebiten.KeyF1,
	input.KeyF2:           ebiten.KeyF2,
	input.KeyF3:           ebiten.KeyF3,
	input.KeyF4:           ebiten.KeyF4,
	input.KeyF5:           ebiten.KeyF5,
	input.KeyF6:           ebiten.KeyF6,
	input.KeyF7:           ebiten.KeyF7,
	input.KeyF8:           ebiten.KeyF8,
	input.KeyF9:           ebiten.KeyF9,
	input.KeyF10:          ebiten.KeyF10,
	input.KeyF11:          ebiten.KeyF11,
	input.KeyF12:          ebiten.KeyF12,
	input.KeyEscape:       ebiten.KeyEscape,
	input.KeyEnter:        ebiten.KeyEnter,
	input.KeyTab:          ebiten.KeyTab,
	input.KeyBackspace:    ebiten.KeyBackspace,
	input.KeySpace:        ebiten.KeySpace,
	input.KeyDelete:       ebiten.KeyDelete,
	input.KeyShiftLeft:    ebiten.KeyShiftLeft,
	input.KeyShiftRight:   ebiten.KeyShiftRight,
	input.KeyControlLeft:  ebiten.KeyControlLeft,
	input.KeyControlRight: ebiten.KeyControlRight,
	input.KeyAltLeft:      ebiten.KeyAltLeft,
	input.KeyAltRight:     ebiten.KeyAltRight,
	input.KeyArrowUp:      ebiten.KeyArrowUp,
	input.KeyArrowDown:    ebiten.KeyArrowDown,
	input.KeyArrowLeft:    ebiten.KeyArrowLeft,
	input.KeyArrowRight:   ebiten.KeyArrowRight,
}

var mouseTable = map[input.MouseButton]ebiten.MouseButton{
	input.MouseLeft:   ebiten.MouseButtonLeft,
	input.MouseRight:  ebiten.MouseButtonRight,
	input.MouseMiddle: ebiten.MouseButtonMiddle,
}

// keyboard copies ebiten's device state into the input resources.
type keyboard struct {
	seeded bool
}

func newKeyboard() *keyboard {
	return &keyboard{}
}

func (k *keyboard) poll(w *ecs.World) {
	res := w.Resources()
	if keys, _ := ecs.GetResource[input.Keyboard](res); keys != nil {
		for code, key := range keyTable {
			switch {
			case inpututil.IsKeyJustPressed(key):
				keys.Press(code)
			case inpututil.IsKeyJustReleased(key):
				keys.Release(code)
			}
		}
	}
	if buttons, _ := ecs.GetResource[input.MouseButtons](res); buttons != nil {
		for code, b := range mouseTable {
			switch {
			case inpututil.IsMouseButtonJustPressed(b):
				buttons.Press(code)
			case inpututil.IsMouseButtonJustReleased(b):
				buttons.Release(code)
			}
		}
	}
	if mouse, _ := ecs.GetResource[input.Mouse](res); mouse != nil {
		p := cursor()
		if !k.seeded {
			mouse.Position = p
			k.seeded = true
		}
		mouse.Move(p)
	}
}
