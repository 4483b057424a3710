//go:build cgo

package host

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/render"
	"github.com/edwinsyarief/combine/window"
)

// Runner opens a window configured from the app's WindowDescriptor and runs
// one app frame per tick until the window closes, the app exits or ctx ends.
func Runner(ctx context.Context) app.Runner {
	return func(a *app.App) error {
		desc := window.DefaultWindowDescriptor()
		if d, _ := ecs.GetResource[window.WindowDescriptor](a.World().Resources()); d != nil {
			desc = *d
		}
		ebiten.SetWindowTitle(desc.Title)
		ebiten.SetWindowSize(int(desc.Width), int(desc.Height))
		ebiten.SetVsyncEnabled(desc.PresentMode.VSync())
		if desc.Resizable {
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		} else {
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
		}
		ebiten.SetWindowDecorated(desc.Decorations)
		ebiten.SetWindowClosingHandled(true)
		ebiten.SetTPS(60)

		white := ebiten.NewImage(3, 3)
		white.Fill(color.White)
		g := &hostGame{
			ctx:   ctx,
			app:   a,
			desc:  desc,
			white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
			keys:  newKeyboard(),
		}
		return ebiten.RunGame(g)
	}
}

type hostGame struct {
	ctx   context.Context
	app   *app.App
	desc  window.WindowDescriptor
	white *ebiten.Image
	keys  *keyboard
	last  time.Time

	vertices []ebiten.Vertex
	indices  []uint16
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil || g.app.ShouldExit() {
		return ebiten.Termination
	}
	w := g.app.World()
	if ebiten.IsWindowBeingClosed() {
		ecs.Send(w.Events(), window.CloseRequested{})
	}
	if win, _ := ecs.GetResource[window.Window](w.Resources()); win != nil {
		width, height := ebiten.WindowSize()
		win.Width, win.Height = float32(width), float32(height)
		win.Focused = ebiten.IsFocused()
	}
	g.keys.poll(w)

	now := time.Now()
	d := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		d = now.Sub(g.last)
	}
	g.last = now
	g.app.Step(d)

	if g.app.ShouldExit() {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w := g.app.World()
	frame, _ := ecs.GetResource[render.Frame](w.Resources())
	if frame == nil {
		return
	}
	screen.Fill(frame.Clear.RGBA())

	for _, r := range batches(len(frame.Triangles), maxBatchTriangles) {
		g.vertices, g.indices = g.vertices[:0], g.indices[:0]
		for _, tri := range frame.Triangles[r[0]:r[1]] {
			cr, cg, cb, ca := vertexColor(tri.Color)
			for _, p := range tri.Points {
				g.indices = append(g.indices, uint16(len(g.vertices)))
				g.vertices = append(g.vertices, ebiten.Vertex{
					DstX: p.X(), DstY: p.Y(),
					SrcX: 1, SrcY: 1,
					ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
				})
			}
		}
		screen.DrawTriangles(g.vertices, g.indices, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	for _, l := range frame.Lines {
		vector.StrokeLine(screen, l.From.X(), l.From.Y(), l.To.X(), l.To.Y(), 1, l.Color.RGBA(), true)
	}
	if text := overlayText(w); text != "" {
		ebitenutil.DebugPrint(screen, text)
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.desc.Resizable && outsideWidth > 0 && outsideHeight > 0 {
		return outsideWidth, outsideHeight
	}
	return int(g.desc.Width), int(g.desc.Height)
}

func cursor() mgl32.Vec2 {
	x, y := ebiten.CursorPosition()
	return mgl32.Vec2{float32(x), float32(y)}
}
