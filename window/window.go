// Package window describes the output surface the host opens.
package window

import (
	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
)

// PresentMode is the frame pacing policy.
type PresentMode int

// Present modes.
const (
	// PresentModeAutoVsync picks a vsync mode the platform supports.
	PresentModeAutoVsync PresentMode = iota
	// PresentModeAutoNoVsync picks a non-vsync mode the platform supports.
	PresentModeAutoNoVsync
	// PresentModeFifo queues frames and presents one per vertical blank.
	PresentModeFifo
	// PresentModeImmediate presents as soon as a frame is ready, tearing allowed.
	PresentModeImmediate
	// PresentModeMailbox presents the newest frame at vertical blank.
	PresentModeMailbox
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeAutoVsync:
		return "AutoVsync"
	case PresentModeAutoNoVsync:
		return "AutoNoVsync"
	case PresentModeFifo:
		return "Fifo"
	case PresentModeImmediate:
		return "Immediate"
	case PresentModeMailbox:
		return "Mailbox"
	}
	return "PresentMode(?)"
}

// VSync reports whether the mode waits for the vertical blank.
func (m PresentMode) VSync() bool {
	switch m {
	case PresentModeAutoNoVsync, PresentModeImmediate:
		return false
	}
	return true
}

// WindowDescriptor configures the primary window. Insert it before adding
// the WindowPlugin to override the defaults.
type WindowDescriptor struct {
	Width       float32
	Height      float32
	Title       string
	PresentMode PresentMode
	Resizable   bool
	Decorations bool
}

// DefaultWindowDescriptor returns a 1280x720 decorated, resizable window.
func DefaultWindowDescriptor() WindowDescriptor {
	return WindowDescriptor{
		Width:       1280,
		Height:      720,
		Title:       "app",
		PresentMode: PresentModeFifo,
		Resizable:   true,
		Decorations: true,
	}
}

// Window is the live state of the primary window, kept current by the host.
type Window struct {
	Width   float32
	Height  float32
	Focused bool
}

// AspectRatio returns width over height, 1 for a degenerate window.
func (w *Window) AspectRatio() float32 {
	if w.Width <= 0 || w.Height <= 0 {
		return 1
	}
	return w.Width / w.Height
}

// CloseRequested is sent by the host when the user closes the window.
type CloseRequested struct{}

// Plugin inserts the window resources and exits the app on close.
type Plugin struct{}

// Build implements app.Plugin.
func (Plugin) Build(a *app.App) {
	d := DefaultWindowDescriptor()
	desc := app.InitResource(a, &d)
	app.InitResource(a, &Window{Width: desc.Width, Height: desc.Height, Focused: true})
	ecs.Subscribe(a.World().Events(), func(CloseRequested) { a.Exit() })
}
