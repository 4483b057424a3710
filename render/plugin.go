// Package render turns meshes, materials and cameras into a screen-space
// frame the host can draw.
package render

import (
	"log"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/asset"
)

// Plugin inserts the mesh and material stores, renderer settings and the
// frame extraction system.
type Plugin struct{}

// Build implements app.Plugin.
func (Plugin) Build(a *app.App) {
	settings := app.InitResource(a, &WgpuSettings{})
	app.InitResource(a, &WireframeConfig{})
	app.InitResource(a, &ClearColor{Color: RGB(0.4, 0.4, 0.4)})
	light := DefaultLight()
	app.InitResource(a, &light)
	app.InitResource(a, asset.NewAssets[Mesh]())
	app.InitResource(a, asset.NewAssets[StandardMaterial]())
	app.InitResource(a, &Frame{})
	a.AddSystem(app.Render, extractFrame)
	log.Printf("render: features %s", settings.Features)
}
